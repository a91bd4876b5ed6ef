package service

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/google/uuid"
)

// itemResponses converts items, resolving display names of claiming users in one query
func itemResponses(userRepo repository.UserRepository, items []*domain.Item) ([]*domain.ItemResponse, error) {
	var claimerIDs []uuid.UUID
	for _, item := range items {
		if id, ok := item.ClaimState().UserID(); ok {
			claimerIDs = append(claimerIDs, id)
		}
	}

	claimers, err := userRepo.FindByIDs(claimerIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.ItemResponse, len(items))
	for i, item := range items {
		var claimer *domain.User
		if id, ok := item.ClaimState().UserID(); ok {
			claimer = claimers[id]
		}
		responses[i] = item.ToResponse(claimer)
	}
	return responses, nil
}

func itemResponse(userRepo repository.UserRepository, item *domain.Item) (*domain.ItemResponse, error) {
	responses, err := itemResponses(userRepo, []*domain.Item{item})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

// wishlistResponses converts wishlists with their item counts
func wishlistResponses(wishlistRepo repository.WishlistRepository, wishlists []*domain.Wishlist) ([]*domain.WishlistResponse, error) {
	ids := make([]uuid.UUID, len(wishlists))
	for i, w := range wishlists {
		ids[i] = w.ID
	}

	counts, err := wishlistRepo.CountItems(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]*domain.WishlistResponse, len(wishlists))
	for i, w := range wishlists {
		responses[i] = w.ToResponse(counts[w.ID])
	}
	return responses, nil
}
