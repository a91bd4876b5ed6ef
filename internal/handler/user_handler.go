package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user profile endpoints
type UserHandler struct {
	service service.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service service.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/v2/users
// @Summary 회원 목록
// @Tags users
// @Produce json
// @Param page query int false "page"
// @Param per_page query int false "per page"
// @Success 200 {object} common.V2Response{data=[]domain.UserResponse}
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, perPage := ginutil.Pagination(c)

	users, total, err := h.service.List(page, perPage)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	common.V2SuccessWithMeta(c, users, common.NewV2Meta(page, perPage, total))
}

// Get handles GET /api/v2/users/:id
// @Summary 회원 조회
// @Tags users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} common.V2Response{data=domain.UserResponse}
// @Failure 404 {object} common.V2Response
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	user, err := h.service.Get(id)
	if err != nil {
		respondError(c, err, "Failed to load user")
		return
	}
	common.V2Success(c, user)
}

// Update handles PUT /api/v2/users/:id (self only, multipart with optional avatar)
// @Summary 회원 정보 수정
// @Tags users
// @Accept json,mpfd
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} common.V2Response{data=domain.UserResponse}
// @Failure 403 {object} common.V2Response
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateUserRequest
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

	user, err := h.service.Update(c.Request.Context(), actorID, id, &req, avatar)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	common.V2Success(c, user)
}

// Delete handles DELETE /api/v2/users/:id (self only)
// @Summary 회원 탈퇴
// @Tags users
// @Param id path string true "user id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actorID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), actorID, id); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	common.V2Success(c, MessageResponse{Message: "user deleted"})
}
