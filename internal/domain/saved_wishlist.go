package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedWishlist 다른 회원의 공개 위시리스트 저장(북마크)
type SavedWishlist struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"column:user_id;type:char(36);not null;uniqueIndex:idx_saved_user_wishlist" json:"user_id"`
	WishlistID uuid.UUID `gorm:"column:wishlist_id;type:char(36);not null;uniqueIndex:idx_saved_user_wishlist;index" json:"wishlist_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Wishlist *Wishlist `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"wishlist,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (SavedWishlist) TableName() string {
	return "saved_wishlists"
}

func (s *SavedWishlist) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// SavedWishlistResponse 저장된 위시리스트 응답
type SavedWishlistResponse struct {
	ID         uuid.UUID         `json:"id"`
	WishlistID uuid.UUID         `json:"wishlist_id"`
	SavedAt    time.Time         `json:"saved_at"`
	Wishlist   *WishlistResponse `json:"wishlist,omitempty"`
}
