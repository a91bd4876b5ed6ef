package service

import (
	"sync"
	"testing"
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClaimService(r repos, now time.Time) ClaimService {
	svc := NewClaimService(r.items, r.users).(*claimService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestClaimService_UserClaimAndUnclaim(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "Owner")
	buyer := newUser(t, r, "buyer", "Bea Buyer")
	item := newItem(t, r, owner, nil)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := newClaimService(r, at)

	resp, err := svc.Claim(item.ID, domain.UserClaimant(buyer.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimKindUser, resp.ClaimStatus)
	require.NotNil(t, resp.ClaimedByUserID)
	assert.Equal(t, buyer.ID, *resp.ClaimedByUserID)
	require.NotNil(t, resp.ClaimedByDisplayName)
	assert.Equal(t, "Bea Buyer", *resp.ClaimedByDisplayName)
	require.NotNil(t, resp.ClaimedAt)
	assert.True(t, at.Equal(*resp.ClaimedAt))

	_, err = svc.Claim(item.ID, domain.UserClaimant(owner.ID))
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.Unclaim(item.ID, domain.UserClaimant(owner.ID))
	assert.ErrorIs(t, err, common.ErrForbidden)

	resp, err = svc.Unclaim(item.ID, domain.UserClaimant(buyer.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimKindNone, resp.ClaimStatus)
	assert.Nil(t, resp.ClaimedByUserID)
	assert.Nil(t, resp.ClaimedAt)
}

func TestClaimService_GuestClaim(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "")
	item := newItem(t, r, owner, nil)
	svc := NewClaimService(r.items, r.users)

	alice, err := domain.NewClaimant(nil, strPtr("  Alice "))
	require.NoError(t, err)

	resp, err := svc.Claim(item.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimKindGuest, resp.ClaimStatus)
	require.NotNil(t, resp.ClaimedByName)
	assert.Equal(t, "Alice", *resp.ClaimedByName)

	// a registered user cannot release a guest claim
	_, err = svc.Unclaim(item.ID, domain.UserClaimant(owner.ID))
	assert.ErrorIs(t, err, common.ErrForbidden)

	bob, err := domain.NewClaimant(nil, strPtr("Bob"))
	require.NoError(t, err)
	_, err = svc.Unclaim(item.ID, bob)
	assert.ErrorIs(t, err, common.ErrForbidden)

	resp, err = svc.Unclaim(item.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimKindNone, resp.ClaimStatus)
}

// Claims only require the item to exist. Wishlist visibility gates reads, not claims:
// whoever holds an item id (e.g. from a shared link) may claim it.
func TestClaimService_IgnoresWishlistVisibility(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "")
	private := newWishlist(t, r, owner, false)
	svc := NewClaimService(r.items, r.users)

	for _, item := range []*domain.Item{newItem(t, r, owner, private), newItem(t, r, owner, nil)} {
		guest, err := domain.NewClaimant(nil, strPtr("Alice"))
		require.NoError(t, err)

		resp, err := svc.Claim(item.ID, guest)
		require.NoError(t, err)
		assert.Equal(t, domain.ClaimKindGuest, resp.ClaimStatus)
	}
}

func TestClaimService_MissingItem(t *testing.T) {
	r := setupRepos(t)
	svc := NewClaimService(r.items, r.users)

	_, err := svc.Claim(uuid.New(), domain.UserClaimant(uuid.New()))
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Unclaim(uuid.New(), domain.UserClaimant(uuid.New()))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestClaimService_UnclaimWhenUnclaimed(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "")
	item := newItem(t, r, owner, nil)
	svc := NewClaimService(r.items, r.users)

	_, err := svc.Unclaim(item.ID, domain.UserClaimant(owner.ID))
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestClaimService_ConcurrentClaimsHaveOneWinner(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "")
	item := newItem(t, r, owner, nil)
	svc := NewClaimService(r.items, r.users)

	const n = 6
	claimants := make([]*domain.User, n)
	for i := range claimants {
		claimants[i] = newUser(t, r, "buyer"+string(rune('a'+i)), "")
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		wins      int
		conflicts int
	)
	for _, u := range claimants {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, err := svc.Claim(item.ID, domain.UserClaimant(id))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, common.ErrConflict):
				conflicts++
			}
		}(u.ID)
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, conflicts)
}
