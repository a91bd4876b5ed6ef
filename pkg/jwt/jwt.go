package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// Claims JWT 페이로드
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type"`
}

// Manager issues and verifies HS256 tokens
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
	refreshIn time.Duration
	now       func() time.Time
}

// NewManager creates a token manager; expiresIn/refreshIn are in seconds
func NewManager(secret string, expiresIn, refreshIn int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresIn) * time.Second,
		refreshIn: time.Duration(refreshIn) * time.Second,
		now:       time.Now,
	}
}

// AccessTTL returns the access token lifetime
func (m *Manager) AccessTTL() time.Duration {
	return m.expiresIn
}

// GenerateAccessToken issues an access token for the given subject
func (m *Manager) GenerateAccessToken(userID, username string) (string, error) {
	return m.sign(userID, username, tokenTypeAccess, m.expiresIn)
}

// GenerateRefreshToken issues a refresh token for the given subject
func (m *Manager) GenerateRefreshToken(userID string) (string, error) {
	return m.sign(userID, "", tokenTypeRefresh, m.refreshIn)
}

func (m *Manager) sign(userID, username, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:    userID,
		Username:  username,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken verifies an access token
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, tokenTypeAccess)
}

// VerifyRefreshToken verifies a refresh token
func (m *Manager) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return m.verify(tokenString, tokenTypeRefresh)
}

func (m *Manager) verify(tokenString, tokenType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
