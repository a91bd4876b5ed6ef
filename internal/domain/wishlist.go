package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Wishlist 위시리스트
type Wishlist struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"column:user_id;type:char(36);index;not null" json:"user_id"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Color       *string   `gorm:"column:color;size:7" json:"color,omitempty"`
	IsPublic    bool      `gorm:"column:is_public;default:false;index" json:"is_public"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

func (w *Wishlist) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether userID owns the wishlist
func (w *Wishlist) IsOwnedBy(userID uuid.UUID) bool {
	return w.UserID == userID
}

// CreateWishlistRequest 위시리스트 생성 요청
type CreateWishlistRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Color       *string `json:"color" binding:"omitempty,hexcolor,max=7"`
	IsPublic    bool    `json:"is_public"`
}

// UpdateWishlistRequest 위시리스트 수정 요청
type UpdateWishlistRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	Color       *string `json:"color" binding:"omitempty,hexcolor,max=7"`
	IsPublic    *bool   `json:"is_public"`
}

// WishlistResponse 위시리스트 응답
type WishlistResponse struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	Color       *string       `json:"color,omitempty"`
	IsPublic    bool          `json:"is_public"`
	ItemCount   int64         `json:"item_count"`
	Owner       *UserResponse `json:"owner,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ToResponse Wishlist를 WishlistResponse로 변환
func (w *Wishlist) ToResponse(itemCount int64) *WishlistResponse {
	resp := &WishlistResponse{
		ID:          w.ID,
		UserID:      w.UserID,
		Title:       w.Title,
		Description: w.Description,
		Color:       w.Color,
		IsPublic:    w.IsPublic,
		ItemCount:   itemCount,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
	if w.User != nil {
		resp.Owner = w.User.ToPublicResponse()
	}
	return resp
}
