package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/storage"
)

// FileStorage object storage for avatars and item images
type FileStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string) bool
}

// Upload an uploaded file taken from a multipart request
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

const (
	folderAvatars = "profile_pictures"
	folderItems   = "item_images"
)

var allowedImageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// uploadImage stores f under folder and returns its URL
func uploadImage(ctx context.Context, store FileStorage, folder string, f *Upload) (string, error) {
	if store == nil {
		return "", common.ErrStorageUnavailable
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	if !slices.Contains(allowedImageExts, ext) {
		return "", fmt.Errorf("%w: unsupported image type %q", common.ErrInvalidInput, ext)
	}
	contentType := f.ContentType
	if contentType == "" || !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: file must be an image", common.ErrInvalidInput)
	}

	url, err := store.Put(ctx, storage.GenerateKey(folder, f.Filename), f.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	return url, nil
}

// deleteImage removes a previously uploaded object; failures are logged only
func deleteImage(ctx context.Context, store FileStorage, url *string) {
	if store == nil || url == nil || *url == "" {
		return
	}
	if !store.Delete(ctx, *url) {
		pkglogger.GetLogger().Warn().Str("url", *url).Msg("failed to delete stored image")
	}
}
