package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPair_Symmetric(t *testing.T) {
	for i := 0; i < 50; i++ {
		a, b := uuid.New(), uuid.New()
		l1, h1 := CanonicalPair(a, b)
		l2, h2 := CanonicalPair(b, a)
		if l1 != l2 || h1 != h2 {
			t.Fatalf("pair (%v,%v) not canonical", a, b)
		}
		if l1.String() > h1.String() {
			t.Fatalf("low %v sorts after high %v", l1, h1)
		}
	}
}

func TestNewFriendRequest(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")

	r := NewFriendRequest(b, a)
	if r.RequesterID != b || r.RecipientID != a {
		t.Errorf("direction must be kept: %+v", r)
	}
	if r.PairLow != a || r.PairHigh != b {
		t.Errorf("expected pair (%v,%v), got (%v,%v)", a, b, r.PairLow, r.PairHigh)
	}
	if r.Status != RelationshipPending {
		t.Errorf("expected pending, got %s", r.Status)
	}
}

func TestRelationshipParties(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	r := NewFriendRequest(a, b)

	if !r.Involves(a) || !r.Involves(b) || r.Involves(c) {
		t.Error("Involves mismatch")
	}
	if r.OtherParty(a) != b || r.OtherParty(b) != a {
		t.Error("OtherParty mismatch")
	}

	if r.CanRespond(a) {
		t.Error("requester must not respond to own request")
	}
	if !r.CanRespond(b) {
		t.Error("recipient should be able to respond")
	}
	if r.CanRespond(c) {
		t.Error("outsider must not respond")
	}

	r.Status = RelationshipAccepted
	if r.CanRespond(b) {
		t.Error("accepted relationship is no longer answerable")
	}
}

func TestRelationshipToResponse_Direction(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	r := NewFriendRequest(a, b)
	friend := &User{ID: b, Username: "bee", Email: "bee@example.com"}

	resp := r.ToResponse(a, friend)
	if resp.Direction != "outgoing" {
		t.Errorf("expected outgoing, got %s", resp.Direction)
	}
	if resp.Friend == nil || resp.Friend.Email != "" {
		t.Errorf("friend must be public (no email): %+v", resp.Friend)
	}
	if r.ToResponse(b, nil).Direction != "incoming" {
		t.Error("expected incoming for recipient")
	}
}

func TestRelationshipStatusValid(t *testing.T) {
	for _, s := range []RelationshipStatus{RelationshipPending, RelationshipAccepted, RelationshipRejected} {
		if !s.Valid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if RelationshipStatus("blocked").Valid() {
		t.Error("unknown status should be invalid")
	}
}
