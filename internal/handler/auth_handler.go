package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles POST /api/v2/auth/register
// @Summary 회원가입
// @Description JSON 또는 multipart (avatar 파일 선택)
// @Tags auth
// @Accept json,mpfd
// @Produce json
// @Param request body domain.RegisterRequest true "가입 정보"
// @Success 201 {object} common.V2Response{data=domain.TokenResponse}
// @Failure 400 {object} common.V2Response
// @Failure 409 {object} common.V2Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	avatar, closeAvatar, err := formImage(c, "avatar")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeAvatar()

	tokens, err := h.service.Register(c.Request.Context(), &req, avatar)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}
	common.V2Created(c, tokens)
}

// Login handles POST /api/v2/auth/login
// @Summary 로그인
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "이메일/비밀번호"
// @Success 200 {object} common.V2Response{data=domain.TokenResponse}
// @Failure 401 {object} common.V2Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := h.service.Login(&req)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}
	common.V2Success(c, tokens)
}

// Refresh handles POST /api/v2/auth/refresh
// @Summary 토큰 갱신
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.RefreshRequest true "refresh token"
// @Success 200 {object} common.V2Response{data=domain.TokenResponse}
// @Failure 401 {object} common.V2Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req domain.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	tokens, err := h.service.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err, "Token refresh failed")
		return
	}
	common.V2Success(c, tokens)
}

// Me handles GET /api/v2/auth/me
// @Summary 내 정보
// @Tags auth
// @Produce json
// @Success 200 {object} common.V2Response{data=domain.UserResponse}
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.service.Me(userID)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	common.V2Success(c, user)
}

// Logout handles POST /api/v2/auth/logout; tokens are stateless, the client discards them
func (h *AuthHandler) Logout(c *gin.Context) {
	common.V2Success(c, MessageResponse{Message: "logged out"})
}
