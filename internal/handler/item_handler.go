package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// ItemHandler handles wishlist item endpoints
type ItemHandler struct {
	service service.ItemService
}

// NewItemHandler creates a new ItemHandler
func NewItemHandler(service service.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// Create handles POST /api/v2/items (JSON, or multipart with an "image" file)
// @Summary 아이템 생성
// @Tags items
// @Accept json,mpfd
// @Produce json
// @Param request body domain.CreateItemRequest true "item"
// @Success 201 {object} common.V2Response{data=domain.ItemResponse}
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req domain.CreateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	image, closeImage, err := formImage(c, "image_file")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeImage()

	item, err := h.service.Create(c.Request.Context(), userID, &req, image)
	if err != nil {
		respondError(c, err, "Failed to create item")
		return
	}
	common.V2Created(c, item)
}

// ListMine handles GET /api/v2/items
// @Summary 내 아이템 목록
// @Tags items
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.ItemResponse}
// @Security BearerAuth
// @Router /items [get]
func (h *ItemHandler) ListMine(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	page, perPage := ginutil.Pagination(c)

	items, total, err := h.service.ListMine(userID, page, perPage)
	if err != nil {
		respondError(c, err, "Failed to list items")
		return
	}
	common.V2SuccessWithMeta(c, items, common.NewV2Meta(page, perPage, total))
}

// Get handles GET /api/v2/items/:id (owner, or anyone when the item is in a public wishlist)
// @Summary 아이템 조회
// @Tags items
// @Produce json
// @Param id path string true "item id"
// @Success 200 {object} common.V2Response{data=domain.ItemResponse}
// @Failure 404 {object} common.V2Response
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.Get(optionalUser(c), id)
	if err != nil {
		respondError(c, err, "Failed to load item")
		return
	}
	common.V2Success(c, item)
}

// Update handles PUT /api/v2/items/:id
// @Summary 아이템 수정
// @Tags items
// @Accept json,mpfd
// @Produce json
// @Param id path string true "item id"
// @Param request body domain.UpdateItemRequest true "changes"
// @Success 200 {object} common.V2Response{data=domain.ItemResponse}
// @Security BearerAuth
// @Router /items/{id} [put]
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req domain.UpdateItemRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	image, closeImage, err := formImage(c, "image_file")
	if err != nil {
		badRequest(c, err)
		return
	}
	defer closeImage()

	item, err := h.service.Update(c.Request.Context(), userID, id, &req, image)
	if err != nil {
		respondError(c, err, "Failed to update item")
		return
	}
	common.V2Success(c, item)
}

// Delete handles DELETE /api/v2/items/:id
// @Summary 아이템 삭제
// @Tags items
// @Param id path string true "item id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "Failed to delete item")
		return
	}
	common.V2Success(c, MessageResponse{Message: "item deleted"})
}

// Scrape handles POST /api/v2/items/scrape
// @Summary 상품 페이지에서 이름/가격/이미지 추출
// @Tags items
// @Accept json
// @Produce json
// @Param request body domain.ScrapeRequest true "product url"
// @Success 200 {object} common.V2Response{data=scraper.Product}
// @Failure 400 {object} common.V2Response
// @Failure 502 {object} common.V2Response
// @Security BearerAuth
// @Router /items/scrape [post]
func (h *ItemHandler) Scrape(c *gin.Context) {
	var req domain.ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := h.service.Scrape(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err, "Failed to scrape url")
		return
	}
	common.V2Success(c, product)
}
