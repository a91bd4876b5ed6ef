package service

import (
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/google/uuid"
)

// WishlistService 위시리스트 비즈니스 로직
type WishlistService interface {
	Create(userID uuid.UUID, req *domain.CreateWishlistRequest) (*domain.WishlistResponse, error)
	ListMine(userID uuid.UUID, page, perPage int) ([]*domain.WishlistResponse, int64, error)
	Get(userID, id uuid.UUID) (*domain.WishlistResponse, error)
	Update(userID, id uuid.UUID, req *domain.UpdateWishlistRequest) (*domain.WishlistResponse, error)
	Delete(userID, id uuid.UUID) error

	GetPublic(id uuid.UUID) (*domain.WishlistResponse, error)
	ListPublicByUser(ownerID uuid.UUID, page, perPage int) ([]*domain.WishlistResponse, int64, error)
	PublicItems(id uuid.UUID) ([]*domain.ItemResponse, error)
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
	itemRepo     repository.ItemRepository
	userRepo     repository.UserRepository
}

// NewWishlistService 위시리스트 서비스 생성
func NewWishlistService(
	wishlistRepo repository.WishlistRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
) WishlistService {
	return &wishlistService{
		wishlistRepo: wishlistRepo,
		itemRepo:     itemRepo,
		userRepo:     userRepo,
	}
}

func (s *wishlistService) Create(userID uuid.UUID, req *domain.CreateWishlistRequest) (*domain.WishlistResponse, error) {
	title := common.SanitizeText(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrInvalidInput)
	}

	wishlist := &domain.Wishlist{
		UserID:      userID,
		Title:       title,
		Description: common.SanitizeOptional(req.Description),
		Color:       req.Color,
		IsPublic:    req.IsPublic,
	}
	if err := s.wishlistRepo.Create(wishlist); err != nil {
		return nil, err
	}
	return wishlist.ToResponse(0), nil
}

func (s *wishlistService) ListMine(userID uuid.UUID, page, perPage int) ([]*domain.WishlistResponse, int64, error) {
	wishlists, total, err := s.wishlistRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	responses, err := wishlistResponses(s.wishlistRepo, wishlists)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

func (s *wishlistService) Get(userID, id uuid.UUID) (*domain.WishlistResponse, error) {
	wishlist, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return s.single(wishlist)
}

func (s *wishlistService) Update(userID, id uuid.UUID, req *domain.UpdateWishlistRequest) (*domain.WishlistResponse, error) {
	wishlist, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := common.SanitizeText(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", common.ErrInvalidInput)
		}
		wishlist.Title = title
	}
	if req.Description != nil {
		wishlist.Description = common.SanitizeOptional(req.Description)
	}
	if req.Color != nil {
		wishlist.Color = req.Color
	}
	if req.IsPublic != nil {
		wishlist.IsPublic = *req.IsPublic
	}

	if err := s.wishlistRepo.Update(wishlist); err != nil {
		return nil, err
	}
	return s.single(wishlist)
}

// Delete removes the wishlist and its items
func (s *wishlistService) Delete(userID, id uuid.UUID) error {
	if _, err := s.owned(userID, id); err != nil {
		return err
	}
	return s.wishlistRepo.Delete(id)
}

// GetPublic 공개 위시리스트 조회 (비로그인 허용); private lists look missing
func (s *wishlistService) GetPublic(id uuid.UUID) (*domain.WishlistResponse, error) {
	wishlist, err := s.public(id)
	if err != nil {
		return nil, err
	}
	return s.single(wishlist)
}

func (s *wishlistService) ListPublicByUser(ownerID uuid.UUID, page, perPage int) ([]*domain.WishlistResponse, int64, error) {
	if _, err := s.userRepo.FindByID(ownerID); err != nil {
		return nil, 0, notFound(err, "user")
	}

	wishlists, total, err := s.wishlistRepo.ListPublicByUser(ownerID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	responses, err := wishlistResponses(s.wishlistRepo, wishlists)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// PublicItems lists the items of a public wishlist with claim status
func (s *wishlistService) PublicItems(id uuid.UUID) ([]*domain.ItemResponse, error) {
	if _, err := s.public(id); err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByWishlist(id)
	if err != nil {
		return nil, err
	}
	return itemResponses(s.userRepo, items)
}

func (s *wishlistService) owned(userID, id uuid.UUID) (*domain.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "wishlist")
	}
	if !wishlist.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: not the owner of this wishlist", common.ErrForbidden)
	}
	return wishlist, nil
}

func (s *wishlistService) public(id uuid.UUID) (*domain.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "wishlist")
	}
	if !wishlist.IsPublic {
		return nil, fmt.Errorf("%w: wishlist not found", common.ErrNotFound)
	}
	return wishlist, nil
}

func (s *wishlistService) single(wishlist *domain.Wishlist) (*domain.WishlistResponse, error) {
	responses, err := wishlistResponses(s.wishlistRepo, []*domain.Wishlist{wishlist})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}
