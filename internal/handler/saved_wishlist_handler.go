package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// SavedWishlistHandler 위시리스트 저장(북마크)
type SavedWishlistHandler struct {
	service service.SavedWishlistService
}

// NewSavedWishlistHandler creates a new SavedWishlistHandler
func NewSavedWishlistHandler(service service.SavedWishlistService) *SavedWishlistHandler {
	return &SavedWishlistHandler{service: service}
}

// Save handles POST /api/v2/wishlists/:id/save
// @Summary 공개 위시리스트 저장
// @Tags saved
// @Param id path string true "wishlist id"
// @Success 201 {object} common.V2Response{data=domain.SavedWishlistResponse}
// @Failure 409 {object} common.V2Response
// @Security BearerAuth
// @Router /wishlists/{id}/save [post]
func (h *SavedWishlistHandler) Save(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	saved, err := h.service.Save(userID, id)
	if err != nil {
		respondError(c, err, "Failed to save wishlist")
		return
	}
	common.V2Created(c, saved)
}

// Unsave handles DELETE /api/v2/wishlists/:id/save
// @Summary 저장 취소
// @Tags saved
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /wishlists/{id}/save [delete]
func (h *SavedWishlistHandler) Unsave(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Unsave(userID, id); err != nil {
		respondError(c, err, "Failed to unsave wishlist")
		return
	}
	common.V2Success(c, MessageResponse{Message: "wishlist unsaved"})
}

// List handles GET /api/v2/me/saved-wishlists
// @Summary 저장한 위시리스트 목록
// @Tags saved
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.SavedWishlistResponse}
// @Security BearerAuth
// @Router /me/saved-wishlists [get]
func (h *SavedWishlistHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, perPage := ginutil.Pagination(c)

	saved, total, err := h.service.List(userID, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to list saved wishlists")
		return
	}
	common.V2SuccessWithMeta(c, saved, common.NewV2Meta(page, perPage, total))
}
