package repository

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistRepository 위시리스트 저장소
type WishlistRepository interface {
	Create(wishlist *domain.Wishlist) error
	FindByID(id uuid.UUID) (*domain.Wishlist, error)
	Update(wishlist *domain.Wishlist) error
	Delete(id uuid.UUID) error
	ListByUser(userID uuid.UUID, page, limit int) ([]*domain.Wishlist, int64, error)
	ListPublicByUser(userID uuid.UUID, page, limit int) ([]*domain.Wishlist, int64, error)
	ListPublicByUsers(userIDs []uuid.UUID) ([]*domain.Wishlist, error)
	CountItems(wishlistIDs []uuid.UUID) (map[uuid.UUID]int64, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 위시리스트 저장소 생성
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(wishlist *domain.Wishlist) error {
	return r.db.Create(wishlist).Error
}

func (r *wishlistRepository) FindByID(id uuid.UUID) (*domain.Wishlist, error) {
	var wishlist domain.Wishlist
	err := r.db.Preload("User").Where("id = ?", id).First(&wishlist).Error
	return &wishlist, err
}

func (r *wishlistRepository) Update(wishlist *domain.Wishlist) error {
	return r.db.Omit("User").Save(wishlist).Error
}

// Delete removes the wishlist together with its items and saves
func (r *wishlistRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("wishlist_id = ?", id).Delete(&domain.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("wishlist_id = ?", id).Delete(&domain.SavedWishlist{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.Wishlist{}).Error
	})
}

func (r *wishlistRepository) ListByUser(userID uuid.UUID, page, limit int) ([]*domain.Wishlist, int64, error) {
	return r.list(r.db.Model(&domain.Wishlist{}).Where("user_id = ?", userID), page, limit)
}

func (r *wishlistRepository) ListPublicByUser(userID uuid.UUID, page, limit int) ([]*domain.Wishlist, int64, error) {
	return r.list(r.db.Model(&domain.Wishlist{}).Where("user_id = ? AND is_public = ?", userID, true), page, limit)
}

func (r *wishlistRepository) list(query *gorm.DB, page, limit int) ([]*domain.Wishlist, int64, error) {
	var wishlists []*domain.Wishlist
	var total int64

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&wishlists).Error
	if err != nil {
		return nil, 0, err
	}
	return wishlists, total, nil
}

// ListPublicByUsers returns public wishlists owned by any of userIDs, newest first
func (r *wishlistRepository) ListPublicByUsers(userIDs []uuid.UUID) ([]*domain.Wishlist, error) {
	if len(userIDs) == 0 {
		return []*domain.Wishlist{}, nil
	}

	var wishlists []*domain.Wishlist
	err := r.db.Preload("User").
		Where("user_id IN ? AND is_public = ?", userIDs, true).
		Order("updated_at DESC").
		Find(&wishlists).Error
	return wishlists, err
}

// CountItems returns item counts per wishlist id
func (r *wishlistRepository) CountItems(wishlistIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(wishlistIDs))
	if len(wishlistIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		WishlistID uuid.UUID
		Count      int64
	}
	err := r.db.Model(&domain.Item{}).
		Select("wishlist_id, COUNT(*) AS count").
		Where("wishlist_id IN ?", wishlistIDs).
		Group("wishlist_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.WishlistID] = row.Count
	}
	return counts, nil
}
