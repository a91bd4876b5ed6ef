package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
	// rows fetched from the database before in-process ranking
	searchCandidateCap = 200
)

// RelationshipService friend requests, friends list and friend search
type RelationshipService interface {
	SendRequest(requesterID, targetID uuid.UUID) (*domain.RelationshipResponse, error)
	Respond(relationshipID, responderID uuid.UUID, decision domain.FriendDecision) (*domain.RelationshipResponse, error)
	Remove(relationshipID, actorID uuid.UUID) error

	Friends(userID uuid.UUID) ([]*domain.UserResponse, error)
	PendingIncoming(userID uuid.UUID) ([]*domain.RelationshipResponse, error)
	PendingOutgoing(userID uuid.UUID) ([]*domain.RelationshipResponse, error)
	List(userID uuid.UUID, status domain.RelationshipStatus) ([]*domain.RelationshipResponse, error)
	FriendsWishlists(userID uuid.UUID) ([]*domain.WishlistResponse, error)
	Search(userID uuid.UUID, query string, limit int) ([]*domain.UserResponse, error)
}

type relationshipService struct {
	relRepo      repository.RelationshipRepository
	userRepo     repository.UserRepository
	wishlistRepo repository.WishlistRepository
}

// NewRelationshipService creates a new RelationshipService
func NewRelationshipService(
	relRepo repository.RelationshipRepository,
	userRepo repository.UserRepository,
	wishlistRepo repository.WishlistRepository,
) RelationshipService {
	return &relationshipService{
		relRepo:      relRepo,
		userRepo:     userRepo,
		wishlistRepo: wishlistRepo,
	}
}

// SendRequest creates a pending request from requesterID to targetID
func (s *relationshipService) SendRequest(requesterID, targetID uuid.UUID) (resp *domain.RelationshipResponse, err error) {
	defer func() { recordRelationship("send", err) }()

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	if requesterID == targetID {
		return nil, fmt.Errorf("%w: cannot friend yourself", common.ErrInvalidOperation)
	}

	existing, err := s.relRepo.FindBetween(requesterID, targetID)
	switch {
	case err == nil:
		return nil, existingRelationshipError(existing)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	rel := domain.NewFriendRequest(requesterID, targetID)
	if err := s.relRepo.Create(rel); err != nil {
		return nil, err
	}
	return rel.ToResponse(requesterID, target), nil
}

func existingRelationshipError(rel *domain.Relationship) error {
	switch rel.Status {
	case domain.RelationshipAccepted:
		return fmt.Errorf("%w: already friends", common.ErrConflict)
	case domain.RelationshipPending:
		return fmt.Errorf("%w: friend request already pending", common.ErrConflict)
	default:
		return fmt.Errorf("%w: relationship already exists", common.ErrConflict)
	}
}

// Respond accepts or declines a pending request; only the recipient may answer.
// Declining deletes the row so the pair can request again later.
func (s *relationshipService) Respond(relationshipID, responderID uuid.UUID, decision domain.FriendDecision) (resp *domain.RelationshipResponse, err error) {
	defer func() { recordRelationship(string(decision), err) }()

	rel, err := s.relRepo.FindByID(relationshipID)
	if err != nil {
		return nil, notFound(err, "friend request")
	}
	if rel.RecipientID != responderID {
		return nil, fmt.Errorf("%w: only the recipient can respond to this request", common.ErrForbidden)
	}
	if rel.Status != domain.RelationshipPending {
		return nil, fmt.Errorf("%w: request is no longer pending", common.ErrConflict)
	}

	var ok bool
	switch decision {
	case domain.DecisionAccept:
		ok, err = s.relRepo.Accept(relationshipID, responderID)
	case domain.DecisionDecline:
		ok, err = s.relRepo.DeletePending(relationshipID, responderID)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", common.ErrInvalidOperation, decision)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		// changed between the read and the conditional write
		return nil, s.lostRace(relationshipID)
	}

	// requester profile is decoration only
	requester, _ := s.userRepo.FindByID(rel.RequesterID)
	if decision == domain.DecisionAccept {
		rel.Status = domain.RelationshipAccepted
	}
	return rel.ToResponse(responderID, requester), nil
}

// Remove deletes the relationship in any status; either party may do it
func (s *relationshipService) Remove(relationshipID, actorID uuid.UUID) (err error) {
	defer func() { recordRelationship("remove", err) }()

	rel, err := s.relRepo.FindByID(relationshipID)
	if err != nil {
		return notFound(err, "relationship")
	}
	if !rel.Involves(actorID) {
		return fmt.Errorf("%w: not a party to this relationship", common.ErrForbidden)
	}

	ok, err := s.relRepo.DeleteForParty(relationshipID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: relationship not found", common.ErrNotFound)
	}
	return nil
}

func (s *relationshipService) lostRace(relationshipID uuid.UUID) error {
	if _, err := s.relRepo.FindByID(relationshipID); err != nil {
		return notFound(err, "friend request")
	}
	return fmt.Errorf("%w: request is no longer pending", common.ErrConflict)
}

// Friends returns users with an accepted relationship to userID, either direction
func (s *relationshipService) Friends(userID uuid.UUID) ([]*domain.UserResponse, error) {
	ids, err := s.relRepo.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	friends := make([]*domain.UserResponse, 0, len(ids))
	for _, id := range ids {
		if u, ok := users[id]; ok {
			friends = append(friends, u.ToPublicResponse())
		}
	}
	return friends, nil
}

func (s *relationshipService) PendingIncoming(userID uuid.UUID) ([]*domain.RelationshipResponse, error) {
	rels, err := s.relRepo.PendingIncoming(userID)
	if err != nil {
		return nil, err
	}
	return s.responses(userID, rels)
}

func (s *relationshipService) PendingOutgoing(userID uuid.UUID) ([]*domain.RelationshipResponse, error) {
	rels, err := s.relRepo.PendingOutgoing(userID)
	if err != nil {
		return nil, err
	}
	return s.responses(userID, rels)
}

// List returns every relationship of userID, optionally filtered by status
func (s *relationshipService) List(userID uuid.UUID, status domain.RelationshipStatus) ([]*domain.RelationshipResponse, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", common.ErrInvalidInput, status)
	}
	rels, err := s.relRepo.ListForUser(userID, status)
	if err != nil {
		return nil, err
	}
	return s.responses(userID, rels)
}

// FriendsWishlists returns public wishlists owned by friends of userID
func (s *relationshipService) FriendsWishlists(userID uuid.UUID) ([]*domain.WishlistResponse, error) {
	ids, err := s.relRepo.FriendIDs(userID)
	if err != nil {
		return nil, err
	}
	wishlists, err := s.wishlistRepo.ListPublicByUsers(ids)
	if err != nil {
		return nil, err
	}
	return wishlistResponses(s.wishlistRepo, wishlists)
}

// Search finds users to befriend. Self and anyone already sharing a relationship row
// (any status) are excluded. Ranking: exact handle, handle prefix, name prefix,
// handle substring, name substring; ties by lower-cased handle.
func (s *relationshipService) Search(userID uuid.UUID, query string, limit int) ([]*domain.UserResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*domain.UserResponse{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	related, err := s.relRepo.RelatedUserIDs(userID)
	if err != nil {
		return nil, err
	}
	exclude := append([]uuid.UUID{userID}, related...)

	candidates, err := s.userRepo.SearchCandidates(query, exclude, searchCandidateCap)
	if err != nil {
		return nil, err
	}

	ranked := domain.RankCandidates(query, candidates, limit)
	results := make([]*domain.UserResponse, len(ranked))
	for i, u := range ranked {
		results[i] = u.ToPublicResponse()
	}
	return results, nil
}

// responses attaches the other party's profile to each relationship
func (s *relationshipService) responses(viewerID uuid.UUID, rels []*domain.Relationship) ([]*domain.RelationshipResponse, error) {
	ids := make([]uuid.UUID, len(rels))
	for i, rel := range rels {
		ids[i] = rel.OtherParty(viewerID)
	}
	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.RelationshipResponse, len(rels))
	for i, rel := range rels {
		out[i] = rel.ToResponse(viewerID, users[ids[i]])
	}
	return out, nil
}

func recordRelationship(op string, err error) {
	result := outcome(err)
	relationshipOperations.WithLabelValues(op, result).Inc()
	if result == "error" {
		pkglogger.GetLogger().Error().Err(err).Str("operation", op).Msg("relationship operation failed")
	}
}
