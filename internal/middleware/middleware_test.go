package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/pkg/jwt"
	"github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func whoami(c *gin.Context) {
	id, ok := GetUserID(c)
	if !ok {
		c.String(http.StatusOK, "anonymous")
		return
	}
	c.String(http.StatusOK, id.String()+":"+GetUsername(c))
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", 60, 120)
	userID := uuid.New()
	access, err := manager.GenerateAccessToken(userID.String(), "sam")
	require.NoError(t, err)
	refresh, err := manager.GenerateRefreshToken(userID.String())
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", JWTAuth(manager), whoami)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + access, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"refresh token rejected", "Bearer " + refresh, http.StatusUnauthorized},
		{"valid", "Bearer " + access, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := serve(r, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, userID.String()+":sam", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestOptionalJWTAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", 60, 120)
	userID := uuid.New()
	access, err := manager.GenerateAccessToken(userID.String(), "sam")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/claim", OptionalJWTAuth(manager), whoami)

	req := httptest.NewRequest(http.MethodGet, "/claim", nil)
	assert.Equal(t, "anonymous", serve(r, req).Body.String())

	req = httptest.NewRequest(http.MethodGet, "/claim", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "anonymous", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/claim", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	assert.Equal(t, userID.String()+":sam", serve(r, req).Body.String())
}

func TestInputSanitizer(t *testing.T) {
	r := gin.New()
	r.Use(InputSanitizer())
	r.GET("/search", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/search?q=sam", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/search?q=%3CScript%3Ealert(1)", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/upload", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			var maxErr *http.MaxBytesError
			if assert.ErrorAs(t, err, &maxErr) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "PAYLOAD_TOO_LARGE")

	// 청크 전송 (ContentLength 미상)
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(`{"a":"`+strings.Repeat("x", 64)+`"}`))
	req.ContentLength = -1
	w = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	defer unreachable.Close()

	for name, client := range map[string]*redis.Client{"nil client": nil, "unreachable": unreachable} {
		t.Run(name, func(t *testing.T) {
			r := gin.New()
			r.Use(RateLimit(client, DefaultRateLimitConfig()))
			r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
			assert.Equal(t, http.StatusNoContent, w.Code)
			assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		})
	}
}

func TestSecurityHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders(), RequestLogger(), Metrics())
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/items/1", nil)
	req.Header.Set("X-Request-ID", "abc123")
	w := serve(r, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "abc123", w.Header().Get("X-Request-ID"))
}

func TestSecurityHeaders_SwaggerAndCaching(t *testing.T) {
	r := gin.New()
	r.Use(SecurityHeaders())
	r.GET("/api/v2/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/swagger/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v2/items/1", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")

	w = serve(r, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, "SAMEORIGIN", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Content-Security-Policy"))
}

func TestInputSanitizer_PathParams(t *testing.T) {
	r := gin.New()
	r.Use(InputSanitizer())
	r.GET("/wishlists/user/:user_id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/wishlists/user/javascript:alert(1)", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/wishlists/user/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequestLogger_SkipsOperationalPaths(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(io.Discard)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/api/v2/items/:id/claim", func(c *gin.Context) {
		assert.NotEmpty(t, GetRequestID(c))
		c.Status(http.StatusConflict)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Zero(t, buf.Len())

	serve(r, httptest.NewRequest(http.MethodPost, "/api/v2/items/42/claim", nil))
	out := buf.String()
	assert.Contains(t, out, `"route":"/api/v2/items/:id/claim"`)
	assert.Contains(t, out, `"anonymous":true`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestMetrics_RouteTemplateAndStatusClass(t *testing.T) {
	r := gin.New()
	r.Use(Metrics())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.DELETE("/api/v2/items/:id/claim", func(c *gin.Context) { c.Status(http.StatusForbidden) })

	claims := httpRequestsTotal.WithLabelValues(http.MethodDelete, "/api/v2/items/:id/claim", "4xx")
	health := httpRequestsTotal.WithLabelValues(http.MethodGet, "/health", "2xx")
	before := testutil.ToFloat64(claims)

	serve(r, httptest.NewRequest(http.MethodDelete, "/api/v2/items/1/claim", nil))
	serve(r, httptest.NewRequest(http.MethodDelete, "/api/v2/items/2/claim", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(claims))
	assert.Zero(t, testutil.ToFloat64(health))
	assert.Equal(t, "5xx", statusClass(http.StatusServiceUnavailable))
}
