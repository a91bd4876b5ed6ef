package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/scraper"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newItemService(r repos, store FileStorage, sc ProductScraper) ItemService {
	return NewItemService(r.items, r.wishlists, r.users, store, sc)
}

func TestItemService_CreateAndGet(t *testing.T) {
	r := setupRepos(t)
	svc := newItemService(r, nil, nil)
	owner := newUser(t, r, "owner", "")
	other := newUser(t, r, "other", "")
	private := newWishlist(t, r, owner, false)
	public := newWishlist(t, r, owner, true)

	wid := private.ID.String()
	item, err := svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{
		Name:       "<script>x</script>Lamp",
		URL:        strPtr("https://shop.example.com/lamp"),
		WishlistID: &wid,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", item.Name)
	assert.Equal(t, domain.ClaimKindNone, item.ClaimStatus)

	// items in private lists are only visible to the owner
	_, err = svc.Get(&other.ID, item.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.Get(nil, item.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = svc.Get(&owner.ID, item.ID)
	assert.NoError(t, err)

	pid := public.ID.String()
	_, err = svc.Update(context.Background(), owner.ID, item.ID, &domain.UpdateItemRequest{WishlistID: &pid}, nil)
	require.NoError(t, err)
	_, err = svc.Get(nil, item.ID)
	assert.NoError(t, err)
}

func TestItemService_CreateValidation(t *testing.T) {
	r := setupRepos(t)
	svc := newItemService(r, nil, nil)
	owner := newUser(t, r, "owner", "")
	other := newUser(t, r, "other", "")
	foreign := newWishlist(t, r, other, true)

	_, err := svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{Name: "  "}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{Name: "x", URL: strPtr("javascript:alert(1)")}, nil)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	fid := foreign.ID.String()
	_, err = svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{Name: "x", WishlistID: &fid}, nil)
	assert.ErrorIs(t, err, common.ErrForbidden)

	missing := uuid.NewString()
	_, err = svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{Name: "x", WishlistID: &missing}, nil)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestItemService_OwnerOnlyEdits(t *testing.T) {
	r := setupRepos(t)
	svc := newItemService(r, nil, nil)
	owner := newUser(t, r, "owner", "")
	other := newUser(t, r, "other", "")
	item := newItem(t, r, owner, nil)

	_, err := svc.Update(context.Background(), other.ID, item.ID, &domain.UpdateItemRequest{Name: strPtr("mine")}, nil)
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), other.ID, item.ID), common.ErrForbidden)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, item.ID))
	_, err = svc.Get(&owner.ID, item.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestItemService_UpdateKeepsClaim(t *testing.T) {
	r := setupRepos(t)
	svc := newItemService(r, nil, nil)
	owner := newUser(t, r, "owner", "")
	buyer := newUser(t, r, "buyer", "")
	item := newItem(t, r, owner, nil)

	_, err := NewClaimService(r.items, r.users).Claim(item.ID, domain.UserClaimant(buyer.ID))
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), owner.ID, item.ID, &domain.UpdateItemRequest{Name: strPtr("Better Headphones")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Better Headphones", resp.Name)
	assert.Equal(t, domain.ClaimKindUser, resp.ClaimStatus)
}

func TestItemService_ImageUpload(t *testing.T) {
	r := setupRepos(t)
	owner := newUser(t, r, "owner", "")

	store := new(mockStorage)
	store.On("Put", mock.MatchedBy(func(key string) bool { return strings.HasPrefix(key, "item_images/") }), "image/webp").
		Return("https://cdn.example.com/item_images/1.webp", nil).Once()
	store.On("Put", mock.Anything, "image/webp").Return("https://cdn.example.com/item_images/2.webp", nil).Once()
	store.On("Delete", "https://cdn.example.com/item_images/1.webp").Return(true).Once()
	store.On("Delete", "https://cdn.example.com/item_images/2.webp").Return(true).Once()

	svc := newItemService(r, store, nil)
	upload := func() *Upload {
		return &Upload{Filename: "p.webp", ContentType: "image/webp", Body: strings.NewReader("img")}
	}

	item, err := svc.Create(context.Background(), owner.ID, &domain.CreateItemRequest{Name: "Plant"}, upload())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/item_images/1.webp", *item.Image)

	updated, err := svc.Update(context.Background(), owner.ID, item.ID, &domain.UpdateItemRequest{}, upload())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/item_images/2.webp", *updated.Image)

	require.NoError(t, svc.Delete(context.Background(), owner.ID, item.ID))
	store.AssertExpectations(t)
}

func TestItemService_ListByWishlist(t *testing.T) {
	r := setupRepos(t)
	svc := newItemService(r, nil, nil)
	owner := newUser(t, r, "owner", "")
	other := newUser(t, r, "other", "")
	w := newWishlist(t, r, owner, true)
	newItem(t, r, owner, w)
	newItem(t, r, owner, nil)

	items, err := svc.ListByWishlist(owner.ID, w.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListByWishlist(other.ID, w.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)

	mine, total, err := svc.ListMine(owner.ID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 2)
}

func TestItemService_Scrape(t *testing.T) {
	r := setupRepos(t)
	price := 19.99
	sc := new(mockScraper)
	sc.On("Scrape", "https://shop.example.com/mug").
		Return(&scraper.Product{Name: "Mug &amp; Saucer", Price: &price, URL: "https://shop.example.com/mug"}, nil)
	sc.On("Scrape", "https://shop.example.com/blocked").Return(nil, scraper.ErrNoDetails)
	sc.On("Scrape", "https://down.example.com/").Return(nil, fmt.Errorf("%w: timeout", scraper.ErrFetch))

	svc := newItemService(r, nil, sc)

	p, err := svc.Scrape(context.Background(), "https://shop.example.com/mug")
	require.NoError(t, err)
	assert.Equal(t, "Mug & Saucer", p.Name)
	assert.InDelta(t, 19.99, *p.Price, 0.001)

	_, err = svc.Scrape(context.Background(), "https://shop.example.com/blocked")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Scrape(context.Background(), "https://down.example.com/")
	assert.ErrorIs(t, err, scraper.ErrFetch)

	_, err = svc.Scrape(context.Background(), "ftp://files.example.com/x")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	sc.AssertNotCalled(t, "Scrape", "ftp://files.example.com/x")
}
