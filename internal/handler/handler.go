package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/internal/middleware"
	"github.com/cardinal-wishlist/wishlist-backend/internal/service"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/ginutil"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/scraper"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidOperation), errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, scraper.ErrFetch):
		return http.StatusBadGateway
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the v2 error envelope. Internal errors get the generic message
// and are attached to the gin context for the request logger.
func respondError(c *gin.Context, err error, message string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		common.V2ErrorResponse(c, status, message, nil)
		return
	}
	common.V2ErrorResponse(c, status, err.Error(), nil)
}

func badRequest(c *gin.Context, err error) {
	common.V2ErrorResponse(c, http.StatusBadRequest, "Invalid request", err)
}

// currentUser returns the authenticated user id; routes behind JWTAuth always have one
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		common.V2ErrorResponse(c, http.StatusUnauthorized, "Authentication required", nil)
	}
	return id, ok
}

// optionalUser returns the authenticated user id or nil
func optionalUser(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.GetUserID(c); ok {
		return &id
	}
	return nil
}

func paramID(c *gin.Context, key string) (uuid.UUID, bool) {
	id, err := ginutil.ParamUUID(c, key)
	if err != nil {
		common.V2ErrorResponse(c, http.StatusBadRequest, "Invalid "+key, err)
		return uuid.Nil, false
	}
	return id, true
}

// formImage reads an optional image part. The returned close func is never nil.
func formImage(c *gin.Context, field string) (*service.Upload, func(), error) {
	noop := func() {}

	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	return openUpload(fh)
}

func openUpload(fh *multipart.FileHeader) (*service.Upload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &service.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// MessageResponse simple message payload
type MessageResponse struct {
	Message string `json:"message"`
}
