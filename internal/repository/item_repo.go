package repository

import (
	"errors"
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// editableItemColumns are the columns an owner edit may write; claim columns are excluded
var editableItemColumns = []string{
	"name", "description", "price", "url", "image", "is_purchased", "priority", "wishlist_id", "updated_at",
}

// ItemRepository 아이템 저장소
type ItemRepository interface {
	Create(item *domain.Item) error
	FindByID(id uuid.UUID) (*domain.Item, error)
	Update(item *domain.Item) error
	Delete(id uuid.UUID) error
	ListByUser(userID uuid.UUID, page, limit int) ([]*domain.Item, int64, error)
	ListByWishlist(wishlistID uuid.UUID) ([]*domain.Item, error)

	// Claim writes state only if the item is still unclaimed
	Claim(id uuid.UUID, state domain.ClaimState) (*domain.Item, error)
	// Unclaim clears the claim only if it is held by claimant
	Unclaim(id uuid.UUID, claimant domain.Claimant) (*domain.Item, error)
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository 아이템 저장소 생성
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(item *domain.Item) error {
	return r.db.Omit("User", "Wishlist").Create(item).Error
}

func (r *itemRepository) FindByID(id uuid.UUID) (*domain.Item, error) {
	var item domain.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	return &item, err
}

// Update writes the editable columns only, so a concurrent claim is never overwritten
func (r *itemRepository) Update(item *domain.Item) error {
	return r.db.Model(item).Select(editableItemColumns).Updates(item).Error
}

func (r *itemRepository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&domain.Item{}).Error
}

func (r *itemRepository) ListByUser(userID uuid.UUID, page, limit int) ([]*domain.Item, int64, error) {
	var items []*domain.Item
	var total int64

	query := r.db.Model(&domain.Item{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("priority DESC, created_at DESC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *itemRepository) ListByWishlist(wishlistID uuid.UUID) ([]*domain.Item, error) {
	var items []*domain.Item
	err := r.db.Where("wishlist_id = ?", wishlistID).
		Order("priority DESC, created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *itemRepository) Claim(id uuid.UUID, state domain.ClaimState) (*domain.Item, error) {
	if !state.IsClaimed() {
		return nil, fmt.Errorf("%w: claim requires a claimed state", common.ErrInvalidOperation)
	}

	result := r.db.Model(&domain.Item{}).
		Where("id = ? AND claimed_by_user_id IS NULL AND claimed_by_name IS NULL", id).
		Updates(state.Columns())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.existing(id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: item already claimed", common.ErrConflict)
	}
	return r.FindByID(id)
}

func (r *itemRepository) Unclaim(id uuid.UUID, claimant domain.Claimant) (*domain.Item, error) {
	query := r.db.Model(&domain.Item{}).Where("id = ?", id)
	if claimant.IsUser() {
		query = query.Where("claimed_by_user_id = ?", claimant.UserID())
	} else {
		query = query.Where("claimed_by_name = ?", claimant.GuestName())
	}

	result := query.Updates(domain.Unclaimed().Columns())
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.existing(id); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: you did not claim this item", common.ErrForbidden)
	}
	return r.FindByID(id)
}

func (r *itemRepository) existing(id uuid.UUID) (*domain.Item, error) {
	item, err := r.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: item not found", common.ErrNotFound)
	}
	return item, err
}
