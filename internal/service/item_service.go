package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/scraper"
	"github.com/google/uuid"
)

// ProductScraper fetches product details from a shop page
type ProductScraper interface {
	Scrape(ctx context.Context, rawURL string) (*scraper.Product, error)
}

// ItemService 아이템 비즈니스 로직
type ItemService interface {
	Create(ctx context.Context, userID uuid.UUID, req *domain.CreateItemRequest, image *Upload) (*domain.ItemResponse, error)
	ListMine(userID uuid.UUID, page, perPage int) ([]*domain.ItemResponse, int64, error)
	Get(viewerID *uuid.UUID, id uuid.UUID) (*domain.ItemResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateItemRequest, image *Upload) (*domain.ItemResponse, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByWishlist(userID, wishlistID uuid.UUID) ([]*domain.ItemResponse, error)
	Scrape(ctx context.Context, rawURL string) (*scraper.Product, error)
}

type itemService struct {
	itemRepo     repository.ItemRepository
	wishlistRepo repository.WishlistRepository
	userRepo     repository.UserRepository
	storage      FileStorage
	scraper      ProductScraper
}

// NewItemService 아이템 서비스 생성; storage may be nil
func NewItemService(
	itemRepo repository.ItemRepository,
	wishlistRepo repository.WishlistRepository,
	userRepo repository.UserRepository,
	storage FileStorage,
	scraper ProductScraper,
) ItemService {
	return &itemService{
		itemRepo:     itemRepo,
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		storage:      storage,
		scraper:      scraper,
	}
}

func (s *itemService) Create(ctx context.Context, userID uuid.UUID, req *domain.CreateItemRequest, image *Upload) (*domain.ItemResponse, error) {
	name := common.SanitizeText(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrInvalidInput)
	}

	wishlistID, err := s.targetWishlist(userID, req.WishlistID)
	if err != nil {
		return nil, err
	}
	link, err := optionalURL(req.URL)
	if err != nil {
		return nil, err
	}

	item := &domain.Item{
		UserID:      userID,
		WishlistID:  wishlistID,
		Name:        name,
		Description: common.SanitizeOptional(req.Description),
		Price:       req.Price,
		URL:         link,
		Image:       req.Image,
		IsPurchased: req.IsPurchased,
		Priority:    req.Priority,
	}

	if image != nil {
		url, err := uploadImage(ctx, s.storage, folderItems, image)
		if err != nil {
			return nil, err
		}
		item.Image = &url
	}

	if err := s.itemRepo.Create(item); err != nil {
		if image != nil {
			deleteImage(ctx, s.storage, item.Image)
		}
		return nil, err
	}
	return item.ToResponse(nil), nil
}

func (s *itemService) ListMine(userID uuid.UUID, page, perPage int) ([]*domain.ItemResponse, int64, error) {
	items, total, err := s.itemRepo.ListByUser(userID, page, perPage)
	if err != nil {
		return nil, 0, err
	}
	responses, err := itemResponses(s.userRepo, items)
	if err != nil {
		return nil, 0, err
	}
	return responses, total, nil
}

// Get returns an item to its owner, or to anyone when it sits in a public wishlist
func (s *itemService) Get(viewerID *uuid.UUID, id uuid.UUID) (*domain.ItemResponse, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "item")
	}

	if viewerID == nil || *viewerID != item.UserID {
		visible, err := s.inPublicWishlist(item)
		if err != nil {
			return nil, err
		}
		if !visible {
			return nil, fmt.Errorf("%w: item not found", common.ErrNotFound)
		}
	}
	return itemResponse(s.userRepo, item)
}

// Update edits an owned item; claim columns are never touched here
func (s *itemService) Update(ctx context.Context, userID, id uuid.UUID, req *domain.UpdateItemRequest, image *Upload) (*domain.ItemResponse, error) {
	item, err := s.owned(userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := common.SanitizeText(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", common.ErrInvalidInput)
		}
		item.Name = name
	}
	if req.Description != nil {
		item.Description = common.SanitizeOptional(req.Description)
	}
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.URL != nil {
		link, err := optionalURL(req.URL)
		if err != nil {
			return nil, err
		}
		item.URL = link
	}
	if req.IsPurchased != nil {
		item.IsPurchased = *req.IsPurchased
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}
	if req.WishlistID != nil {
		wishlistID, err := s.targetWishlist(userID, req.WishlistID)
		if err != nil {
			return nil, err
		}
		item.WishlistID = wishlistID
	}

	oldImage := item.Image
	replaced := false
	switch {
	case image != nil:
		url, err := uploadImage(ctx, s.storage, folderItems, image)
		if err != nil {
			return nil, err
		}
		item.Image = &url
		replaced = true
	case req.Image != nil:
		item.Image = req.Image
		replaced = oldImage == nil || *oldImage != *req.Image
	}

	if err := s.itemRepo.Update(item); err != nil {
		if image != nil {
			deleteImage(ctx, s.storage, item.Image)
		}
		return nil, err
	}
	if replaced {
		deleteImage(ctx, s.storage, oldImage)
	}

	fresh, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "item")
	}
	return itemResponse(s.userRepo, fresh)
}

func (s *itemService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	item, err := s.owned(userID, id)
	if err != nil {
		return err
	}
	if err := s.itemRepo.Delete(id); err != nil {
		return err
	}
	deleteImage(ctx, s.storage, item.Image)
	return nil
}

// ListByWishlist lists the items of one of the caller's wishlists
func (s *itemService) ListByWishlist(userID, wishlistID uuid.UUID) ([]*domain.ItemResponse, error) {
	wishlist, err := s.wishlistRepo.FindByID(wishlistID)
	if err != nil {
		return nil, notFound(err, "wishlist")
	}
	if !wishlist.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: not the owner of this wishlist", common.ErrForbidden)
	}

	items, err := s.itemRepo.ListByWishlist(wishlistID)
	if err != nil {
		return nil, err
	}
	return itemResponses(s.userRepo, items)
}

// Scrape extracts product details from a shop page
func (s *itemService) Scrape(ctx context.Context, rawURL string) (*scraper.Product, error) {
	link, err := common.ValidateProductURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	product, err := s.scraper.Scrape(ctx, link)
	if err != nil {
		if errors.Is(err, scraper.ErrNoDetails) {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		return nil, err
	}
	product.Name = common.SanitizeText(product.Name)
	return product, nil
}

func (s *itemService) owned(userID, id uuid.UUID) (*domain.Item, error) {
	item, err := s.itemRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "item")
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("%w: not the owner of this item", common.ErrForbidden)
	}
	return item, nil
}

// targetWishlist parses and checks that the wishlist belongs to userID
func (s *itemService) targetWishlist(userID uuid.UUID, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid wishlist_id", common.ErrInvalidInput)
	}

	wishlist, err := s.wishlistRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "wishlist")
	}
	if !wishlist.IsOwnedBy(userID) {
		return nil, fmt.Errorf("%w: wishlist belongs to another user", common.ErrForbidden)
	}
	return &id, nil
}

func (s *itemService) inPublicWishlist(item *domain.Item) (bool, error) {
	if item.WishlistID == nil {
		return false, nil
	}
	wishlist, err := s.wishlistRepo.FindByID(*item.WishlistID)
	if err != nil {
		if errors.Is(notFound(err, "wishlist"), common.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return wishlist.IsPublic, nil
}

func optionalURL(raw *string) (*string, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	link, err := common.ValidateProductURL(*raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	return &link, nil
}
