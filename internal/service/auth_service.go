package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService registration, login and token refresh
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest, avatar *Upload) (*domain.TokenResponse, error)
	Login(req *domain.LoginRequest) (*domain.TokenResponse, error)
	Refresh(refreshToken string) (*domain.TokenResponse, error)
	Me(userID uuid.UUID) (*domain.UserResponse, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtManager *jwt.Manager
	storage    FileStorage
}

// NewAuthService creates a new AuthService; storage may be nil
func NewAuthService(userRepo repository.UserRepository, jwtManager *jwt.Manager, storage FileStorage) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		storage:    storage,
	}
}

// Register creates an account and signs the user in
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest, avatar *Upload) (*domain.TokenResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if err := ensureUnique(s.userRepo, uuid.Nil, email, username); err != nil {
		return nil, err
	}

	digest, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: digest,
		Name:     common.SanitizeText(req.Name),
		IsActive: true,
	}
	if user.Name == "" {
		user.Name = username
	}

	if avatar != nil {
		url, err := uploadImage(ctx, s.storage, folderAvatars, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Create(user); err != nil {
		deleteImage(ctx, s.storage, user.AvatarURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: email or username already registered", common.ErrConflict)
		}
		return nil, err
	}

	return s.issueTokens(user)
}

// Login verifies email + password
func (s *authService) Login(req *domain.LoginRequest) (*domain.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifyPassword(req.Password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is inactive", common.ErrForbidden)
	}

	return s.issueTokens(user)
}

// Refresh validates a refresh token and issues a new token pair
func (s *authService) Refresh(refreshToken string) (*domain.TokenResponse, error) {
	claims, err := s.jwtManager.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil || !user.IsActive {
		return nil, common.ErrUnauthorized
	}

	return s.issueTokens(user)
}

// Me returns the authenticated user's profile
func (s *authService) Me(userID uuid.UUID) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user.ToResponse(), nil
}

func (s *authService) issueTokens(user *domain.User) (*domain.TokenResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID.String(), user.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.jwtManager.AccessTTL().Seconds()),
		User:         user.ToResponse(),
	}, nil
}

// ensureUnique checks email/username against other accounts (selfID is skipped)
func ensureUnique(repo repository.UserRepository, selfID uuid.UUID, email, username string) error {
	if email != "" {
		existing, err := repo.FindByEmail(email)
		switch {
		case err == nil && existing.ID != selfID:
			return fmt.Errorf("%w: email already registered", common.ErrConflict)
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	if username != "" {
		existing, err := repo.FindByUsername(username)
		switch {
		case err == nil && existing.ID != selfID:
			return fmt.Errorf("%w: username already taken", common.ErrConflict)
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}
	}
	return nil
}

func hashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func verifyPassword(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
