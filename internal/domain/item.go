package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item 위시리스트 아이템
//
// claimed_by_user_id / claimed_by_name / claimed_at are persisted columns for ClaimState.
// Read and write them only through ClaimState and SetClaimState.
type Item struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:char(36);index;not null" json:"user_id"`
	WishlistID  *uuid.UUID `gorm:"column:wishlist_id;type:char(36);index" json:"wishlist_id,omitempty"`
	Name        string     `gorm:"column:name;size:255;index;not null" json:"name"`
	Description *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Price       *float64   `gorm:"column:price" json:"price,omitempty"`
	URL         *string    `gorm:"column:url;size:2048" json:"url,omitempty"`
	Image       *string    `gorm:"column:image;size:2048" json:"image,omitempty"`
	IsPurchased bool       `gorm:"column:is_purchased;default:false" json:"is_purchased"`
	Priority    int        `gorm:"column:priority;default:0" json:"priority"`

	ClaimedByUserID *uuid.UUID `gorm:"column:claimed_by_user_id;type:char(36);index;check:claim_identity_exclusive,claimed_by_user_id IS NULL OR claimed_by_name IS NULL" json:"-"`
	ClaimedByName   *string    `gorm:"column:claimed_by_name;size:100" json:"-"`
	ClaimedAt       *time.Time `gorm:"column:claimed_at" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlist *Wishlist `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Item) TableName() string {
	return "wishlist_items"
}

func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ClaimState reads the claim columns as a tagged variant
func (i *Item) ClaimState() ClaimState {
	var at time.Time
	if i.ClaimedAt != nil {
		at = *i.ClaimedAt
	}
	switch {
	case i.ClaimedByUserID != nil && *i.ClaimedByUserID != uuid.Nil:
		return ClaimedByUser(*i.ClaimedByUserID, at)
	case i.ClaimedByName != nil && *i.ClaimedByName != "":
		return ClaimedByGuest(*i.ClaimedByName, at)
	default:
		return Unclaimed()
	}
}

// SetClaimState writes all three claim columns from s
func (i *Item) SetClaimState(s ClaimState) {
	i.ClaimedByUserID = nil
	i.ClaimedByName = nil
	i.ClaimedAt = s.ClaimedAt()
	if id, ok := s.UserID(); ok {
		i.ClaimedByUserID = &id
	}
	if name, ok := s.GuestName(); ok {
		i.ClaimedByName = &name
	}
}

// CreateItemRequest 아이템 생성 요청 (JSON 또는 multipart form)
type CreateItemRequest struct {
	Name        string     `form:"name" json:"name" binding:"required,max=255"`
	Description *string    `form:"description" json:"description" binding:"omitempty,max=5000"`
	Price       *float64   `form:"price" json:"price" binding:"omitempty,gte=0"`
	URL         *string    `form:"url" json:"url" binding:"omitempty,max=2048"`
	Image       *string    `form:"image" json:"image" binding:"omitempty,max=2048"`
	IsPurchased bool       `form:"is_purchased" json:"is_purchased"`
	Priority    int        `form:"priority" json:"priority" binding:"gte=0,lte=5"`
	WishlistID  *string    `form:"wishlist_id" json:"wishlist_id" binding:"omitempty,uuid"`
}

// UpdateItemRequest 아이템 수정 요청; claim columns are not updatable here
type UpdateItemRequest struct {
	Name        *string    `form:"name" json:"name" binding:"omitempty,min=1,max=255"`
	Description *string    `form:"description" json:"description" binding:"omitempty,max=5000"`
	Price       *float64   `form:"price" json:"price" binding:"omitempty,gte=0"`
	URL         *string    `form:"url" json:"url" binding:"omitempty,max=2048"`
	Image       *string    `form:"image" json:"image" binding:"omitempty,max=2048"`
	IsPurchased *bool      `form:"is_purchased" json:"is_purchased"`
	Priority    *int       `form:"priority" json:"priority" binding:"omitempty,gte=0,lte=5"`
	WishlistID  *string    `form:"wishlist_id" json:"wishlist_id" binding:"omitempty,uuid"`
}

// ClaimRequest claim/unclaim 요청; 로그인 사용자 또는 게스트 이름 중 하나
type ClaimRequest struct {
	UserID    *uuid.UUID `json:"user_id"`
	GuestName *string    `json:"guest_name" binding:"omitempty,max=100"`
}

// ScrapeRequest 상품 페이지 스크랩 요청
type ScrapeRequest struct {
	URL string `json:"url" binding:"required,url,max=2048"`
}

// ItemResponse 아이템 응답
type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	WishlistID  *uuid.UUID `json:"wishlist_id,omitempty"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	URL         *string    `json:"url,omitempty"`
	Image       *string    `json:"image,omitempty"`
	IsPurchased bool       `json:"is_purchased"`
	Priority    int        `json:"priority"`

	ClaimStatus          ClaimKind  `json:"claim_status"`
	ClaimedByUserID      *uuid.UUID `json:"claimed_by_user_id,omitempty"`
	ClaimedByName        *string    `json:"claimed_by_name,omitempty"`
	ClaimedAt            *time.Time `json:"claimed_at,omitempty"`
	ClaimedByDisplayName *string    `json:"claimed_by_display_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToResponse Item을 ItemResponse로 변환.
// claimer is the claiming user when the item is claimed by a registered user, else nil.
func (i *Item) ToResponse(claimer *User) *ItemResponse {
	resp := &ItemResponse{
		ID:          i.ID,
		UserID:      i.UserID,
		WishlistID:  i.WishlistID,
		Name:        i.Name,
		Description: i.Description,
		Price:       i.Price,
		URL:         i.URL,
		Image:       i.Image,
		IsPurchased: i.IsPurchased,
		Priority:    i.Priority,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}

	state := i.ClaimState()
	resp.ClaimStatus = state.Kind()
	resp.ClaimedAt = state.ClaimedAt()
	if id, ok := state.UserID(); ok {
		resp.ClaimedByUserID = &id
		if claimer != nil && claimer.ID == id {
			name := claimer.DisplayName()
			resp.ClaimedByDisplayName = &name
		}
	}
	if name, ok := state.GuestName(); ok {
		resp.ClaimedByName = &name
		resp.ClaimedByDisplayName = &name
	}
	return resp
}
