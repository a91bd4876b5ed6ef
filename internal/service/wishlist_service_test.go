package service

import (
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWishlistService_CRUD(t *testing.T) {
	r := setupRepos(t)
	svc := NewWishlistService(r.wishlists, r.items, r.users)
	owner := newUser(t, r, "owner", "")
	other := newUser(t, r, "other", "")

	created, err := svc.Create(owner.ID, &domain.CreateWishlistRequest{Title: "Holidays", Color: strPtr("#ff0000")})
	require.NoError(t, err)
	assert.False(t, created.IsPublic)

	_, err = svc.Create(owner.ID, &domain.CreateWishlistRequest{Title: "<i></i>"})
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Get(other.ID, created.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	public := true
	updated, err := svc.Update(owner.ID, created.ID, &domain.UpdateWishlistRequest{IsPublic: &public, Title: strPtr("Winter")})
	require.NoError(t, err)
	assert.True(t, updated.IsPublic)
	assert.Equal(t, "Winter", updated.Title)

	_, err = svc.Update(other.ID, created.ID, &domain.UpdateWishlistRequest{IsPublic: &public})
	assert.ErrorIs(t, err, common.ErrForbidden)

	mine, total, err := svc.ListMine(owner.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, mine, 1)

	assert.ErrorIs(t, svc.Delete(other.ID, created.ID), common.ErrForbidden)
	require.NoError(t, svc.Delete(owner.ID, created.ID))
	_, err = svc.Get(owner.ID, created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestWishlistService_PublicViews(t *testing.T) {
	r := setupRepos(t)
	svc := NewWishlistService(r.wishlists, r.items, r.users)
	owner := newUser(t, r, "owner", "")
	buyer := newUser(t, r, "buyer", "Buyer")
	public := newWishlist(t, r, owner, true)
	private := newWishlist(t, r, owner, false)
	item := newItem(t, r, owner, public)

	_, err := NewClaimService(r.items, r.users).Claim(item.ID, domain.UserClaimant(buyer.ID))
	require.NoError(t, err)

	got, err := svc.GetPublic(public.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.ItemCount)

	_, err = svc.GetPublic(private.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	items, err := svc.PublicItems(public.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.ClaimKindUser, items[0].ClaimStatus)
	assert.Equal(t, "Buyer", *items[0].ClaimedByDisplayName)

	_, err = svc.PublicItems(private.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	lists, total, err := svc.ListPublicByUser(owner.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, lists, 1)
}

func TestSavedWishlistService(t *testing.T) {
	r := setupRepos(t)
	svc := NewSavedWishlistService(r.saved, r.wishlists)
	owner := newUser(t, r, "owner", "")
	fan := newUser(t, r, "fan", "")
	public := newWishlist(t, r, owner, true)
	private := newWishlist(t, r, owner, false)

	saved, err := svc.Save(fan.ID, public.ID)
	require.NoError(t, err)
	assert.Equal(t, public.ID, saved.WishlistID)

	_, err = svc.Save(fan.ID, public.ID)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = svc.Save(fan.ID, private.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = svc.Save(owner.ID, public.ID)
	assert.ErrorIs(t, err, common.ErrInvalidOperation)

	list, total, err := svc.List(fan.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, public.Title, list[0].Wishlist.Title)

	require.NoError(t, svc.Unsave(fan.ID, public.ID))
	assert.ErrorIs(t, svc.Unsave(fan.ID, public.ID), common.ErrNotFound)
}
