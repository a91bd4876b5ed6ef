package repository

import (
	"fmt"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedWishlistRepository 저장된 위시리스트 저장소
type SavedWishlistRepository interface {
	Create(saved *domain.SavedWishlist) error
	Delete(userID, wishlistID uuid.UUID) (bool, error)
	Exists(userID, wishlistID uuid.UUID) (bool, error)
	ListByUser(userID uuid.UUID, page, limit int) ([]*domain.SavedWishlist, int64, error)
}

type savedWishlistRepository struct {
	db *gorm.DB
}

// NewSavedWishlistRepository 저장된 위시리스트 저장소 생성
func NewSavedWishlistRepository(db *gorm.DB) SavedWishlistRepository {
	return &savedWishlistRepository{db: db}
}

func (r *savedWishlistRepository) Create(saved *domain.SavedWishlist) error {
	err := r.db.Omit("Wishlist", "User").Create(saved).Error
	if isDuplicateKey(err) {
		return fmt.Errorf("%w: wishlist already saved", common.ErrConflict)
	}
	return err
}

func (r *savedWishlistRepository) Delete(userID, wishlistID uuid.UUID) (bool, error) {
	result := r.db.Where("user_id = ? AND wishlist_id = ?", userID, wishlistID).
		Delete(&domain.SavedWishlist{})
	return result.RowsAffected > 0, result.Error
}

func (r *savedWishlistRepository) Exists(userID, wishlistID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&domain.SavedWishlist{}).
		Where("user_id = ? AND wishlist_id = ?", userID, wishlistID).
		Count(&count).Error
	return count > 0, err
}

func (r *savedWishlistRepository) ListByUser(userID uuid.UUID, page, limit int) ([]*domain.SavedWishlist, int64, error) {
	var saved []*domain.SavedWishlist
	var total int64

	query := r.db.Model(&domain.SavedWishlist{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Wishlist").Preload("Wishlist.User").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&saved).Error
	if err != nil {
		return nil, 0, err
	}
	return saved, total, nil
}
