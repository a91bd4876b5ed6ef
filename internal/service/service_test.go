package service

import (
	"context"
	"io"
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/migration"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/scraper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- Mock FileStorage ---

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	args := m.Called(key, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, objectURL string) bool {
	return m.Called(objectURL).Bool(0)
}

// --- Mock ProductScraper ---

type mockScraper struct {
	mock.Mock
}

func (m *mockScraper) Scrape(ctx context.Context, rawURL string) (*scraper.Product, error) {
	args := m.Called(rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scraper.Product), args.Error(1)
}

type repos struct {
	users         repository.UserRepository
	wishlists     repository.WishlistRepository
	items         repository.ItemRepository
	relationships repository.RelationshipRepository
	saved         repository.SavedWishlistRepository
}

func setupRepos(t *testing.T) repos {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, migration.Run(db))

	return repos{
		users:         repository.NewUserRepository(db),
		wishlists:     repository.NewWishlistRepository(db),
		items:         repository.NewItemRepository(db),
		relationships: repository.NewRelationshipRepository(db),
		saved:         repository.NewSavedWishlistRepository(db),
	}
}

func newUser(t *testing.T, r repos, username, name string) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Email: username + "@example.com", Password: "digest", Name: name, IsActive: true}
	require.NoError(t, r.users.Create(u))
	return u
}

func newWishlist(t *testing.T, r repos, owner *domain.User, public bool) *domain.Wishlist {
	t.Helper()
	w := &domain.Wishlist{UserID: owner.ID, Title: "Birthday", IsPublic: public}
	require.NoError(t, r.wishlists.Create(w))
	return w
}

func newItem(t *testing.T, r repos, owner *domain.User, wishlist *domain.Wishlist) *domain.Item {
	t.Helper()
	item := &domain.Item{UserID: owner.ID, Name: "Headphones"}
	if wishlist != nil {
		item.WishlistID = &wishlist.ID
	}
	require.NoError(t, r.items.Create(item))
	return item
}

func strPtr(s string) *string { return &s }
