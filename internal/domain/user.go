package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User 회원
type User struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Username  string    `gorm:"column:username;size:50;uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	Name      string    `gorm:"column:name;size:100" json:"name"`
	AvatarURL *string   `gorm:"column:avatar_url;size:500" json:"avatar_url,omitempty"`
	IsActive  bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a random id when none is set
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName returns the name, falling back to the username
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// RegisterRequest 회원가입 요청 (multipart form)
type RegisterRequest struct {
	Email    string `form:"email" json:"email" binding:"required,email,max=255"`
	Username string `form:"username" json:"username" binding:"required,username"`
	Password string `form:"password" json:"password" binding:"required,min=8,max=72"`
	Name     string `form:"name" json:"name" binding:"omitempty,max=100"`
}

// LoginRequest 로그인 요청
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest 토큰 갱신 요청
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateUserRequest 회원 정보 수정 요청 (multipart form)
type UpdateUserRequest struct {
	Email    *string `form:"email" json:"email" binding:"omitempty,email,max=255"`
	Username *string `form:"username" json:"username" binding:"omitempty,username"`
	Name     *string `form:"name" json:"name" binding:"omitempty,max=100"`
	Password *string `form:"password" json:"password" binding:"omitempty,min=8,max=72"`
}

// UserResponse 회원 응답
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse User를 UserResponse로 변환
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.DisplayName(),
		AvatarURL: u.AvatarURL,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// ToPublicResponse omits the contact address
func (u *User) ToPublicResponse() *UserResponse {
	resp := u.ToResponse()
	resp.Email = ""
	return resp
}

// TokenResponse 인증 토큰 응답
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}
