package service

import (
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/google/uuid"
)

// SavedWishlistService 공개 위시리스트 저장(북마크)
type SavedWishlistService interface {
	Save(userID, wishlistID uuid.UUID) (*domain.SavedWishlistResponse, error)
	Unsave(userID, wishlistID uuid.UUID) error
	List(userID uuid.UUID, page, perPage int) ([]*domain.SavedWishlistResponse, int64, error)
}

type savedWishlistService struct {
	savedRepo    repository.SavedWishlistRepository
	wishlistRepo repository.WishlistRepository
}

// NewSavedWishlistService 저장 서비스 생성
func NewSavedWishlistService(savedRepo repository.SavedWishlistRepository, wishlistRepo repository.WishlistRepository) SavedWishlistService {
	return &savedWishlistService{savedRepo: savedRepo, wishlistRepo: wishlistRepo}
}

// Save bookmarks someone else's public wishlist
func (s *savedWishlistService) Save(userID, wishlistID uuid.UUID) (*domain.SavedWishlistResponse, error) {
	wishlist, err := s.wishlistRepo.FindByID(wishlistID)
	if err != nil {
		return nil, notFound(err, "wishlist")
	}
	if !wishlist.IsPublic {
		return nil, fmt.Errorf("%w: wishlist not found", common.ErrNotFound)
	}
	if wishlist.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: cannot save your own wishlist", common.ErrInvalidOperation)
	}

	saved := &domain.SavedWishlist{UserID: userID, WishlistID: wishlistID}
	if err := s.savedRepo.Create(saved); err != nil {
		return nil, err
	}

	responses, err := wishlistResponses(s.wishlistRepo, []*domain.Wishlist{wishlist})
	if err != nil {
		return nil, err
	}
	return &domain.SavedWishlistResponse{
		ID:         saved.ID,
		WishlistID: wishlistID,
		SavedAt:    saved.CreatedAt,
		Wishlist:   responses[0],
	}, nil
}

func (s *savedWishlistService) Unsave(userID, wishlistID uuid.UUID) error {
	ok, err := s.savedRepo.Delete(userID, wishlistID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: wishlist is not saved", common.ErrNotFound)
	}
	return nil
}

// List returns saved wishlists; lists that became private are hidden
func (s *savedWishlistService) List(userID uuid.UUID, page, perPage int) ([]*domain.SavedWishlistResponse, int64, error) {
	saved, total, err := s.savedRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, 0, err
	}

	var visible []*domain.Wishlist
	for _, sw := range saved {
		if sw.Wishlist != nil && sw.Wishlist.IsPublic {
			visible = append(visible, sw.Wishlist)
		}
	}
	wishlists, err := wishlistResponses(s.wishlistRepo, visible)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[uuid.UUID]*domain.WishlistResponse, len(wishlists))
	for _, w := range wishlists {
		byID[w.ID] = w
	}

	responses := make([]*domain.SavedWishlistResponse, 0, len(saved))
	for _, sw := range saved {
		w, ok := byID[sw.WishlistID]
		if !ok {
			continue
		}
		responses = append(responses, &domain.SavedWishlistResponse{
			ID:         sw.ID,
			WishlistID: sw.WishlistID,
			SavedAt:    sw.CreatedAt,
			Wishlist:   w,
		})
	}
	return responses, total, nil
}
