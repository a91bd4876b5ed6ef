package handler

import (
	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// FriendHandler handles friend requests, friends list and search
type FriendHandler struct {
	service service.RelationshipService
}

// NewFriendHandler creates a new FriendHandler
func NewFriendHandler(service service.RelationshipService) *FriendHandler {
	return &FriendHandler{service: service}
}

// Search handles GET /api/v2/friends/search?q=
// @Summary 친구 후보 검색
// @Tags friends
// @Produce json
// @Param q query string true "handle or name"
// @Param limit query int false "max results (default 20, max 50)"
// @Success 200 {object} common.V2Response{data=[]domain.UserResponse}
// @Security BearerAuth
// @Router /friends/search [get]
func (h *FriendHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	users, err := h.service.Search(userID, c.Query("q"), ginutil.QueryInt(c, "limit", 0))
	if err != nil {
		respondError(c, err, "Search failed")
		return
	}
	common.V2Success(c, users)
}

// SendRequest handles POST /api/v2/friends/request
// @Summary 친구 요청 보내기
// @Tags friends
// @Accept json
// @Produce json
// @Param request body domain.SendFriendRequest true "target user"
// @Success 201 {object} common.V2Response{data=domain.RelationshipResponse}
// @Failure 409 {object} common.V2Response
// @Security BearerAuth
// @Router /friends/request [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req domain.SendFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	rel, err := h.service.SendRequest(userID, req.FriendID)
	if err != nil {
		respondError(c, err, "Failed to send friend request")
		return
	}
	common.V2Created(c, rel)
}

// Incoming handles GET /api/v2/friends/requests
// @Summary 받은 친구 요청
// @Tags friends
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.RelationshipResponse}
// @Security BearerAuth
// @Router /friends/requests [get]
func (h *FriendHandler) Incoming(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rels, err := h.service.PendingIncoming(userID)
	if err != nil {
		respondError(c, err, "Failed to list friend requests")
		return
	}
	common.V2Success(c, rels)
}

// Outgoing handles GET /api/v2/friends/requests/outgoing
// @Summary 보낸 친구 요청
// @Tags friends
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.RelationshipResponse}
// @Security BearerAuth
// @Router /friends/requests/outgoing [get]
func (h *FriendHandler) Outgoing(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rels, err := h.service.PendingOutgoing(userID)
	if err != nil {
		respondError(c, err, "Failed to list friend requests")
		return
	}
	common.V2Success(c, rels)
}

// Accept handles POST /api/v2/friends/requests/:id/accept
// @Summary 친구 요청 수락
// @Tags friends
// @Param id path string true "relationship id"
// @Success 200 {object} common.V2Response{data=domain.RelationshipResponse}
// @Security BearerAuth
// @Router /friends/requests/{id}/accept [post]
func (h *FriendHandler) Accept(c *gin.Context) {
	h.respond(c, domain.DecisionAccept)
}

// Decline handles POST /api/v2/friends/requests/:id/decline
// @Summary 친구 요청 거절
// @Tags friends
// @Param id path string true "relationship id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /friends/requests/{id}/decline [post]
func (h *FriendHandler) Decline(c *gin.Context) {
	h.respond(c, domain.DecisionDecline)
}

func (h *FriendHandler) respond(c *gin.Context, decision domain.FriendDecision) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	rel, err := h.service.Respond(id, userID, decision)
	if err != nil {
		respondError(c, err, "Failed to respond to friend request")
		return
	}
	common.V2Success(c, rel)
}

// Friends handles GET /api/v2/friends/list
// @Summary 친구 목록
// @Tags friends
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.UserResponse}
// @Security BearerAuth
// @Router /friends/list [get]
func (h *FriendHandler) Friends(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	friends, err := h.service.Friends(userID)
	if err != nil {
		respondError(c, err, "Failed to list friends")
		return
	}
	common.V2Success(c, friends)
}

// Wishlists handles GET /api/v2/friends/wishlists
// @Summary 친구들의 공개 위시리스트
// @Tags friends
// @Produce json
// @Success 200 {object} common.V2Response{data=[]domain.WishlistResponse}
// @Security BearerAuth
// @Router /friends/wishlists [get]
func (h *FriendHandler) Wishlists(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	wishlists, err := h.service.FriendsWishlists(userID)
	if err != nil {
		respondError(c, err, "Failed to list friends' wishlists")
		return
	}
	common.V2Success(c, wishlists)
}

// Relationships handles GET /api/v2/friends/relationships?status=
// @Summary 관계 목록 (상태 필터)
// @Tags friends
// @Produce json
// @Param status query string false "pending | accepted | rejected"
// @Success 200 {object} common.V2Response{data=[]domain.RelationshipResponse}
// @Security BearerAuth
// @Router /friends/relationships [get]
func (h *FriendHandler) Relationships(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	rels, err := h.service.List(userID, domain.RelationshipStatus(c.Query("status")))
	if err != nil {
		respondError(c, err, "Failed to list relationships")
		return
	}
	common.V2Success(c, rels)
}

// Remove handles DELETE /api/v2/friends/relationships/:id
// @Summary 친구 삭제 / 요청 취소
// @Tags friends
// @Param id path string true "relationship id"
// @Success 200 {object} common.V2Response
// @Security BearerAuth
// @Router /friends/relationships/{id} [delete]
func (h *FriendHandler) Remove(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Remove(id, userID); err != nil {
		respondError(c, err, "Failed to remove relationship")
		return
	}
	common.V2Success(c, MessageResponse{Message: "relationship removed"})
}
