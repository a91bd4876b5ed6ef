package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/cardinal-wishlist/wishlist-backend/internal/common"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ctxUserID   = "userID"
	ctxUsername = "username"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Missing authorization header", nil)
			c.Abort()
			return
		}

		// 2. Parse Bearer token
		tokenString, ok := bearerToken(authHeader)
		if !ok {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			c.Abort()
			return
		}

		// 3. Verify token
		claims, err := jwtManager.VerifyToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.V2ErrorResponse(c, http.StatusUnauthorized, "Token expired", err)
			} else {
				common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid token", err)
			}
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			common.V2ErrorResponse(c, http.StatusUnauthorized, "Invalid token subject", nil)
			c.Abort()
			return
		}

		// 4. Store user info in context
		c.Set(ctxUserID, userID)
		c.Set(ctxUsername, claims.Username)

		c.Next()
	}
}

// OptionalJWTAuth 토큰이 있으면 검증하여 사용자 정보를 저장하고, 없거나 잘못되면 익명으로 진행
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if ok {
			if claims, err := jwtManager.VerifyToken(tokenString); err == nil {
				if userID, err := uuid.Parse(claims.UserID); err == nil {
					c.Set(ctxUserID, userID)
					c.Set(ctxUsername, claims.Username)
				}
			}
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// GetUsername extracts username from context
func GetUsername(c *gin.Context) string {
	v, exists := c.Get(ctxUsername)
	if !exists {
		return ""
	}
	if str, ok := v.(string); ok {
		return str
	}
	return ""
}
