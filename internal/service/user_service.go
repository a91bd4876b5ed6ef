package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/domain"
	"github.com/cardinal-wishlist/wishlist-backend/internal/repository"
	"github.com/google/uuid"
)

// UserService profile management
type UserService interface {
	List(page, perPage int) ([]*domain.UserResponse, int64, error)
	Get(id uuid.UUID) (*domain.UserResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req *domain.UpdateUserRequest, avatar *Upload) (*domain.UserResponse, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
}

type userService struct {
	userRepo repository.UserRepository
	storage  FileStorage
}

// NewUserService creates a new UserService; storage may be nil
func NewUserService(userRepo repository.UserRepository, storage FileStorage) UserService {
	return &userService{userRepo: userRepo, storage: storage}
}

func (s *userService) List(page, perPage int) ([]*domain.UserResponse, int64, error) {
	users, total, err := s.userRepo.FindAll(page, perPage)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*domain.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToPublicResponse()
	}
	return responses, total, nil
}

func (s *userService) Get(id uuid.UUID) (*domain.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user.ToPublicResponse(), nil
}

// Update edits the caller's own profile; a new avatar replaces (and deletes) the old one
func (s *userService) Update(ctx context.Context, actorID, id uuid.UUID, req *domain.UpdateUserRequest, avatar *Upload) (*domain.UserResponse, error) {
	if actorID != id {
		return nil, fmt.Errorf("%w: not authorized to update this user", common.ErrForbidden)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, notFound(err, "user")
	}

	var email, username string
	if req.Email != nil {
		email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Username != nil {
		username = strings.TrimSpace(*req.Username)
	}
	if err := ensureUnique(s.userRepo, user.ID, email, username); err != nil {
		return nil, err
	}

	if email != "" {
		user.Email = email
	}
	if username != "" {
		user.Username = username
	}
	if req.Name != nil {
		user.Name = common.SanitizeText(*req.Name)
	}
	if req.Password != nil {
		digest, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = digest
	}

	oldAvatar := user.AvatarURL
	if avatar != nil {
		url, err := uploadImage(ctx, s.storage, folderAvatars, avatar)
		if err != nil {
			return nil, err
		}
		user.AvatarURL = &url
	}

	if err := s.userRepo.Update(user); err != nil {
		if avatar != nil {
			deleteImage(ctx, s.storage, user.AvatarURL)
		}
		return nil, err
	}

	if avatar != nil {
		deleteImage(ctx, s.storage, oldAvatar)
	}
	return user.ToResponse(), nil
}

// Delete removes the caller's own account and avatar
func (s *userService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	if actorID != id {
		return fmt.Errorf("%w: not authorized to delete this user", common.ErrForbidden)
	}

	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return notFound(err, "user")
	}

	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	deleteImage(ctx, s.storage, user.AvatarURL)
	return nil
}
