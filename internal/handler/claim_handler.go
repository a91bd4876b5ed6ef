package handler

import (
	"net/http"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/middleware"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimHandler handles item claim/unclaim. Guests claim by name without logging in;
// a user_id in the body must belong to the bearer token.
type ClaimHandler struct {
	service service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler
func NewClaimHandler(service service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Claim handles POST /api/v2/items/:id/claim
// @Summary 아이템 claim (사용자 또는 게스트)
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "item id"
// @Param request body domain.ClaimRequest true "user_id 또는 guest_name 중 하나"
// @Success 200 {object} common.V2Response{data=domain.ItemResponse}
// @Failure 409 {object} common.V2Response
// @Router /items/{id}/claim [post]
func (h *ClaimHandler) Claim(c *gin.Context) {
	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}
	claimant, ok := bindClaimant(c)
	if !ok {
		return
	}

	item, err := h.service.Claim(itemID, claimant)
	if err != nil {
		respondError(c, err, "Failed to claim item")
		return
	}
	common.V2Success(c, item)
}

// Unclaim handles DELETE /api/v2/items/:id/claim
// @Summary 아이템 claim 해제 (claim한 본인만)
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "item id"
// @Param request body domain.ClaimRequest true "user_id 또는 guest_name 중 하나"
// @Success 200 {object} common.V2Response{data=domain.ItemResponse}
// @Failure 403 {object} common.V2Response
// @Router /items/{id}/claim [delete]
func (h *ClaimHandler) Unclaim(c *gin.Context) {
	itemID, ok := paramID(c, "id")
	if !ok {
		return
	}
	claimant, ok := bindClaimant(c)
	if !ok {
		return
	}

	item, err := h.service.Unclaim(itemID, claimant)
	if err != nil {
		respondError(c, err, "Failed to unclaim item")
		return
	}
	common.V2Success(c, item)
}

func bindClaimant(c *gin.Context) (domain.Claimant, bool) {
	var req domain.ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return domain.Claimant{}, false
	}

	// uuid.Nil counts as absent, as in domain.NewClaimant
	if req.UserID != nil && *req.UserID != uuid.Nil {
		authID, ok := middleware.GetUserID(c)
		if !ok {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Authentication required to claim as a user", nil)
			return domain.Claimant{}, false
		}
		if authID != *req.UserID {
			common.V2ErrorResponse(c, http.StatusForbidden, "user_id does not match the authenticated user", nil)
			return domain.Claimant{}, false
		}
	}

	claimant, err := domain.NewClaimant(req.UserID, req.GuestName)
	if err != nil {
		respondError(c, err, "Invalid claimant")
		return domain.Claimant{}, false
	}
	return claimant, true
}
