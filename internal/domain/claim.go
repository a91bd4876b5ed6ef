package domain

import (
	"fmt"
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/google/uuid"
)

// ClaimKind identifies which variant a ClaimState holds
type ClaimKind string

const (
	ClaimKindNone  ClaimKind = "unclaimed"
	ClaimKindUser  ClaimKind = "user"
	ClaimKindGuest ClaimKind = "guest"
)

// ClaimState is exactly one of Unclaimed, ClaimedByUser or ClaimedByGuest.
// The zero value is Unclaimed.
type ClaimState struct {
	kind      ClaimKind
	userID    uuid.UUID
	guestName string
	at        time.Time
}

// Unclaimed returns the unclaimed state
func Unclaimed() ClaimState {
	return ClaimState{kind: ClaimKindNone}
}

// ClaimedByUser returns a state claimed by a registered user
func ClaimedByUser(userID uuid.UUID, at time.Time) ClaimState {
	return ClaimState{kind: ClaimKindUser, userID: userID, at: at}
}

// ClaimedByGuest returns a state claimed by a guest display name
func ClaimedByGuest(name string, at time.Time) ClaimState {
	return ClaimState{kind: ClaimKindGuest, guestName: name, at: at}
}

// Kind returns the variant
func (s ClaimState) Kind() ClaimKind {
	if s.kind == "" {
		return ClaimKindNone
	}
	return s.kind
}

// IsClaimed reports whether the state is one of the claimed variants
func (s ClaimState) IsClaimed() bool {
	return s.Kind() != ClaimKindNone
}

// UserID returns the claiming user for ClaimedByUser
func (s ClaimState) UserID() (uuid.UUID, bool) {
	return s.userID, s.Kind() == ClaimKindUser
}

// GuestName returns the guest display name for ClaimedByGuest
func (s ClaimState) GuestName() (string, bool) {
	return s.guestName, s.Kind() == ClaimKindGuest
}

// ClaimedAt returns the claim timestamp, nil when unclaimed
func (s ClaimState) ClaimedAt() *time.Time {
	if !s.IsClaimed() {
		return nil
	}
	at := s.at
	return &at
}

// Claimant is the identity claiming or unclaiming an item: a user id or a guest name, never both
type Claimant struct {
	userID    uuid.UUID
	guestName string
	isUser    bool
}

// UserClaimant builds a registered-user claimant
func UserClaimant(userID uuid.UUID) Claimant {
	return Claimant{userID: userID, isUser: true}
}

// NewClaimant builds a claimant from optional request fields.
// The guest name is normalised; a blank name counts as absent.
// Supplying neither or both yields ErrInvalidOperation.
func NewClaimant(userID *uuid.UUID, guestName *string) (Claimant, error) {
	var name string
	if guestName != nil {
		name = common.NormalizeGuestName(*guestName)
	}
	hasUser := userID != nil && *userID != uuid.Nil

	switch {
	case hasUser && name != "":
		return Claimant{}, fmt.Errorf("%w: provide either user_id or guest_name, not both", common.ErrInvalidOperation)
	case hasUser:
		return UserClaimant(*userID), nil
	case name != "":
		return Claimant{guestName: name}, nil
	default:
		return Claimant{}, fmt.Errorf("%w: either user_id or guest_name must be provided", common.ErrInvalidOperation)
	}
}

// IsUser reports whether the claimant is a registered user
func (c Claimant) IsUser() bool { return c.isUser }

// UserID returns the user id of a registered claimant
func (c Claimant) UserID() uuid.UUID { return c.userID }

// GuestName returns the normalised guest name
func (c Claimant) GuestName() string { return c.guestName }

// Matches reports whether c is exactly the identity holding the claim.
// Guest names compare by exact string equality; anyone knowing the name matches.
func (s ClaimState) Matches(c Claimant) bool {
	switch s.Kind() {
	case ClaimKindUser:
		return c.isUser && s.userID == c.userID
	case ClaimKindGuest:
		return !c.isUser && c.guestName != "" && s.guestName == c.guestName
	default:
		return false
	}
}

// Claim transitions Unclaimed to the claimant's claimed variant
func (s ClaimState) Claim(c Claimant, now time.Time) (ClaimState, error) {
	if s.IsClaimed() {
		return s, fmt.Errorf("%w: item already claimed", common.ErrConflict)
	}
	if c.isUser {
		return ClaimedByUser(c.userID, now), nil
	}
	if c.guestName == "" {
		return s, fmt.Errorf("%w: either user_id or guest_name must be provided", common.ErrInvalidOperation)
	}
	return ClaimedByGuest(c.guestName, now), nil
}

// Unclaim returns to Unclaimed when c matches the current claim identity
func (s ClaimState) Unclaim(c Claimant) (ClaimState, error) {
	if !s.Matches(c) {
		return s, fmt.Errorf("%w: you did not claim this item", common.ErrForbidden)
	}
	return Unclaimed(), nil
}

// Columns returns every claim column for the state.
// Both identity columns are always written so a stale value never survives a transition.
func (s ClaimState) Columns() map[string]interface{} {
	cols := map[string]interface{}{
		"claimed_by_user_id": nil,
		"claimed_by_name":    nil,
		"claimed_at":         nil,
	}
	switch s.Kind() {
	case ClaimKindUser:
		cols["claimed_by_user_id"] = s.userID
		cols["claimed_at"] = s.at
	case ClaimKindGuest:
		cols["claimed_by_name"] = s.guestName
		cols["claimed_at"] = s.at
	}
	return cols
}
