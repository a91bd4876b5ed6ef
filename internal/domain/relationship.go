package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RelationshipStatus 친구 관계 상태
type RelationshipStatus string

const (
	RelationshipPending  RelationshipStatus = "pending"
	RelationshipAccepted RelationshipStatus = "accepted"
	// RelationshipRejected is never produced; it only appears on legacy rows
	RelationshipRejected RelationshipStatus = "rejected"
)

// Valid reports whether s is a known status
func (s RelationshipStatus) Valid() bool {
	switch s {
	case RelationshipPending, RelationshipAccepted, RelationshipRejected:
		return true
	}
	return false
}

// FriendDecision answer to a pending request
type FriendDecision string

const (
	DecisionAccept  FriendDecision = "accept"
	DecisionDecline FriendDecision = "decline"
)

// Relationship 친구 요청/관계
//
// (PairLow, PairHigh) is the sorted pair of both parties. Its unique index allows a single
// row per unordered pair whichever side sent the request.
type Relationship struct {
	ID          uuid.UUID          `gorm:"type:char(36);primaryKey" json:"id"`
	RequesterID uuid.UUID          `gorm:"column:requester_id;type:char(36);not null;index" json:"requester_id"`
	RecipientID uuid.UUID          `gorm:"column:recipient_id;type:char(36);not null;index" json:"recipient_id"`
	PairLow     uuid.UUID          `gorm:"column:pair_low;type:char(36);not null;uniqueIndex:idx_relationship_pair" json:"-"`
	PairHigh    uuid.UUID          `gorm:"column:pair_high;type:char(36);not null;uniqueIndex:idx_relationship_pair" json:"-"`
	Status      RelationshipStatus `gorm:"column:status;size:20;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Requester *User `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Relationship) TableName() string {
	return "user_relationships"
}

// CanonicalPair orders two ids so that (a,b) and (b,a) map to the same key
func CanonicalPair(a, b uuid.UUID) (low, high uuid.UUID) {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return a, b
	}
	return b, a
}

// NewFriendRequest builds a pending relationship from requester to recipient
func NewFriendRequest(requesterID, recipientID uuid.UUID) *Relationship {
	low, high := CanonicalPair(requesterID, recipientID)
	return &Relationship{
		RequesterID: requesterID,
		RecipientID: recipientID,
		PairLow:     low,
		PairHigh:    high,
		Status:      RelationshipPending,
	}
}

// BeforeCreate fills the id and the canonical pair
func (r *Relationship) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.PairLow, r.PairHigh = CanonicalPair(r.RequesterID, r.RecipientID)
	if r.Status == "" {
		r.Status = RelationshipPending
	}
	return nil
}

// Involves reports whether userID is one of the two parties
func (r *Relationship) Involves(userID uuid.UUID) bool {
	return r.RequesterID == userID || r.RecipientID == userID
}

// OtherParty returns the party that is not userID
func (r *Relationship) OtherParty(userID uuid.UUID) uuid.UUID {
	if r.RequesterID == userID {
		return r.RecipientID
	}
	return r.RequesterID
}

// CanRespond reports whether responderID may accept or decline: pending and addressed to them
func (r *Relationship) CanRespond(responderID uuid.UUID) bool {
	return r.Status == RelationshipPending && r.RecipientID == responderID
}

// SendFriendRequest 친구 요청 바디
type SendFriendRequest struct {
	FriendID uuid.UUID `json:"friend_id" binding:"required"`
}

// RelationshipResponse 관계 응답 (조회자 기준 상대방 정보 포함)
type RelationshipResponse struct {
	ID          uuid.UUID          `json:"id"`
	RequesterID uuid.UUID          `json:"requester_id"`
	RecipientID uuid.UUID          `json:"recipient_id"`
	Status      RelationshipStatus `json:"status"`
	Direction   string             `json:"direction"` // outgoing | incoming
	Friend      *UserResponse      `json:"friend,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ToResponse builds the response from viewerID's perspective; friend is the other party
func (r *Relationship) ToResponse(viewerID uuid.UUID, friend *User) *RelationshipResponse {
	resp := &RelationshipResponse{
		ID:          r.ID,
		RequesterID: r.RequesterID,
		RecipientID: r.RecipientID,
		Status:      r.Status,
		Direction:   "incoming",
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.RequesterID == viewerID {
		resp.Direction = "outgoing"
	}
	if friend != nil {
		resp.Friend = friend.ToPublicResponse()
	}
	return resp
}
