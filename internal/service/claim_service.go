package service

import (
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"github.com/google/uuid"
)

// ClaimService claim / unclaim of wishlist items by users or guests
type ClaimService interface {
	Claim(itemID uuid.UUID, claimant domain.Claimant) (*domain.ItemResponse, error)
	Unclaim(itemID uuid.UUID, requester domain.Claimant) (*domain.ItemResponse, error)
}

type claimService struct {
	itemRepo repository.ItemRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewClaimService creates a new ClaimService
func NewClaimService(itemRepo repository.ItemRepository, userRepo repository.UserRepository) ClaimService {
	return &claimService{
		itemRepo: itemRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Claim marks an unclaimed item as taken by claimant.
// The state check runs twice: once on the loaded row for a precise error, and again
// inside the conditional UPDATE so a concurrent claim cannot be overwritten.
func (s *claimService) Claim(itemID uuid.UUID, claimant domain.Claimant) (resp *domain.ItemResponse, err error) {
	defer func() { s.record("claim", itemID, claimant, err) }()

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, notFound(err, "item")
	}

	next, err := item.ClaimState().Claim(claimant, s.now().UTC())
	if err != nil {
		return nil, err
	}

	claimed, err := s.itemRepo.Claim(itemID, next)
	if err != nil {
		return nil, err
	}
	return itemResponse(s.userRepo, claimed)
}

// Unclaim releases the item when requester is exactly the current claimant
func (s *claimService) Unclaim(itemID uuid.UUID, requester domain.Claimant) (resp *domain.ItemResponse, err error) {
	defer func() { s.record("unclaim", itemID, requester, err) }()

	item, err := s.itemRepo.FindByID(itemID)
	if err != nil {
		return nil, notFound(err, "item")
	}

	if _, err := item.ClaimState().Unclaim(requester); err != nil {
		return nil, err
	}

	released, err := s.itemRepo.Unclaim(itemID, requester)
	if err != nil {
		return nil, err
	}
	return itemResponse(s.userRepo, released)
}

func (s *claimService) record(op string, itemID uuid.UUID, c domain.Claimant, err error) {
	result := outcome(err)
	claimOperations.WithLabelValues(op, result).Inc()

	kind := "guest"
	if c.IsUser() {
		kind = "user"
	}
	event := pkglogger.GetLogger().Debug()
	if result == "error" {
		event = pkglogger.GetLogger().Error().Err(err)
	}
	event.Str("operation", op).
		Str("item_id", itemID.String()).
		Str("claimant", kind).
		Str("result", result).
		Msg("item claim")
}
