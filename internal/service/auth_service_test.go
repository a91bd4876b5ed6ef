package service

import (
	"context"
	"strings"
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(r repos, store FileStorage) (AuthService, *jwt.Manager) {
	manager := jwt.NewManager("test-secret", 900, 3600)
	return NewAuthService(r.users, manager, store), manager
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupRepos(t)
	svc, manager := newAuthService(r, nil)

	tokens, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    " Alice@Example.com ",
		Username: "alice",
		Password: "correct horse",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.Equal(t, 900, tokens.ExpiresIn)
	assert.Equal(t, "alice@example.com", tokens.User.Email)
	assert.Equal(t, "alice", tokens.User.Name, "name defaults to username")

	claims, err := manager.VerifyToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID.String(), claims.UserID)

	stored, err := r.users.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", stored.Password)

	t.Run("login", func(t *testing.T) {
		got, err := svc.Login(&domain.LoginRequest{Email: "ALICE@example.com", Password: "correct horse"})
		require.NoError(t, err)
		assert.Equal(t, tokens.User.ID, got.User.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&domain.LoginRequest{Email: "alice@example.com", Password: "nope"})
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&domain.LoginRequest{Email: "ghost@example.com", Password: "correct horse"})
		assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Email: "alice@example.com", Username: "alice2", Password: "12345678",
		}, nil)
		assert.ErrorIs(t, err, common.ErrConflict)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			Email: "other@example.com", Username: "alice", Password: "12345678",
		}, nil)
		assert.ErrorIs(t, err, common.ErrConflict)
	})
}

func TestLogin_InactiveAccount(t *testing.T) {
	r := setupRepos(t)
	svc, _ := newAuthService(r, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email: "bob@example.com", Username: "bob", Password: "12345678",
	}, nil)
	require.NoError(t, err)

	u, err := r.users.FindByUsername("bob")
	require.NoError(t, err)
	u.IsActive = false
	require.NoError(t, r.users.Update(u))

	_, err = svc.Login(&domain.LoginRequest{Email: "bob@example.com", Password: "12345678"})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRefresh(t *testing.T) {
	r := setupRepos(t)
	svc, _ := newAuthService(r, nil)

	tokens, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email: "carol@example.com", Username: "carol", Password: "12345678",
	}, nil)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, tokens.User.ID, refreshed.User.ID)

	// access tokens are not accepted as refresh tokens
	_, err = svc.Refresh(tokens.AccessToken)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = svc.Refresh("garbage")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRegister_WithAvatar(t *testing.T) {
	r := setupRepos(t)
	store := new(mockStorage)
	store.On("Put", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "profile_pictures/") && strings.HasSuffix(key, ".png")
	}), "image/png").Return("https://cdn.example.com/profile_pictures/a.png", nil)

	svc, _ := newAuthService(r, store)
	tokens, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email: "dan@example.com", Username: "dan", Password: "12345678",
	}, &Upload{Filename: "me.png", ContentType: "image/png", Body: strings.NewReader("png")})
	require.NoError(t, err)
	require.NotNil(t, tokens.User.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/profile_pictures/a.png", *tokens.User.AvatarURL)
	store.AssertExpectations(t)
}

func TestRegister_AvatarWithoutStorage(t *testing.T) {
	r := setupRepos(t)
	svc, _ := newAuthService(r, nil)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email: "eve@example.com", Username: "eve", Password: "12345678",
	}, &Upload{Filename: "me.png", ContentType: "image/png", Body: strings.NewReader("png")})
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)

	_, err = r.users.FindByUsername("eve")
	assert.Error(t, err, "no account is created when the upload fails")
}

func TestMe(t *testing.T) {
	r := setupRepos(t)
	svc, _ := newAuthService(r, nil)
	u := newUser(t, r, "frank", "Frank")

	me, err := svc.Me(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank@example.com", me.Email)

	_, err = svc.Me(uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}
