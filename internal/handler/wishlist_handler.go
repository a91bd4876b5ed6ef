package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	service     service.WishlistService
	itemService service.ItemService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(service service.WishlistService, itemService service.ItemService) *WishlistHandler {
	return &WishlistHandler{service: service, itemService: itemService}
}

// Create handles POST /api/v2/wishlists
// @Summary 위시리스트 생성
// @Tags wishlists
// @Accept json
// @Produce json
// @Param request body domain.CreateWishlistRequest true "wishlist"
// @Success 201 {object} common.V2Response{data=domain.WishlistResponse}
// @Security BearerAuth
// @Router /wishlists [post]
func (h *WishlistHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req domain.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	wishlist, err := h.service.Create(userID, &req)
	if err != nil {
		respondError(c, err, "Failed to create wishlist")
		return
	}
	common.V2Created(c, wishlist)
}

// ListMine handles GET /api/v2/wishlists
// @Summary 내 위시리스트 목록
// @Tags wishlists
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.WishlistResponse}
// @Security BearerAuth
// @Router /wishlists [get]
func (h *WishlistHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, perPage := ginutil.Pagination(c)

	wishlists, total, err := h.service.ListMine(userID, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to list wishlists")
		return
	}
	common.V2SuccessWithMeta(c, wishlists, common.NewV2Meta(page, perPage, total))
}

// Get handles GET /api/v2/wishlists/:id (owner)
// @Summary 위시리스트 조회
// @Tags wishlists
// @Produce json
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response{data=domain.WishlistResponse}
// @Security BearerAuth
// @Router /wishlists/{id} [get]
func (h *WishlistHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	wishlist, err := h.service.Get(userID, id)
	if err != nil {
		respondError(c, err, "Failed to load wishlist")
		return
	}
	common.V2Success(c, wishlist)
}

// Update handles PUT /api/v2/wishlists/:id
// @Summary 위시리스트 수정
// @Tags wishlists
// @Accept json
// @Produce json
// @Param id path string true "wishlist id"
// @Param request body domain.UpdateWishlistRequest true "changes"
// @Success 200 {object} common.V2Response{data=domain.WishlistResponse}
// @Security BearerAuth
// @Router /wishlists/{id} [put]
func (h *WishlistHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	wishlist, err := h.service.Update(userID, id, &req)
	if err != nil {
		respondError(c, err, "Failed to update wishlist")
		return
	}
	common.V2Success(c, wishlist)
}

// Delete handles DELETE /api/v2/wishlists/:id
// @Summary 위시리스트 삭제 (아이템 포함)
// @Tags wishlists
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /wishlists/{id} [delete]
func (h *WishlistHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(userID, id); err != nil {
		respondError(c, err, "Failed to delete wishlist")
		return
	}
	common.V2Success(c, MessageResponse{Message: "wishlist deleted"})
}

// Items handles GET /api/v2/wishlists/:id/items (owner)
// @Summary 위시리스트 아이템 목록
// @Tags wishlists
// @Produce json
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response{data=[]domain.ItemResponse}
// @Security BearerAuth
// @Router /wishlists/{id}/items [get]
func (h *WishlistHandler) Items(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.itemService.ListByWishlist(userID, id)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	common.V2Success(c, items)
}

// GetPublic handles GET /api/v2/wishlists/public/:id (no auth)
// @Summary 공개 위시리스트 조회
// @Tags wishlists
// @Produce json
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response{data=domain.WishlistResponse}
// @Failure 404 {object} common.V2Response
// @Router /wishlists/public/{id} [get]
func (h *WishlistHandler) GetPublic(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	wishlist, err := h.service.GetPublic(id)
	if err != nil {
		respondError(c, err, "Failed to load wishlist")
		return
	}
	common.V2Success(c, wishlist)
}

// PublicItems handles GET /api/v2/wishlists/public/:id/items (no auth)
// @Summary 공개 위시리스트 아이템 (claim 상태 포함)
// @Tags wishlists
// @Produce json
// @Param id path string true "wishlist id"
// @Success 200 {object} common.V2Response{data=[]domain.ItemResponse}
// @Router /wishlists/public/{id}/items [get]
func (h *WishlistHandler) PublicItems(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	items, err := h.service.PublicItems(id)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	common.V2Success(c, items)
}

// ListByUser handles GET /api/v2/wishlists/user/:user_id (public lists of a user)
// @Summary 사용자의 공개 위시리스트
// @Tags wishlists
// @Produce json
// @Param user_id path string true "user id"
// @Success 200 {object} common.V2Response{data=[]domain.WishlistResponse}
// @Router /wishlists/user/{user_id} [get]
func (h *WishlistHandler) ListByUser(c *gin.Context) {
	ownerID, ok := paramID(c, "user_id")
	if !ok {
		return
	}
	page, perPage := ginutil.Pagination(c)

	wishlists, total, err := h.service.ListPublicByUser(ownerID, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to list wishlists")
		return
	}
	common.V2SuccessWithMeta(c, wishlists, common.NewV2Meta(page, perPage, total))
}
