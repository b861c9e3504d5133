package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/lms-backend/internal/model"
	"github.com/stemsi/lms-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func bearer(t *testing.T, tokens *service.TokenService, userID int64, role model.Role) string {
	t.Helper()
	tok, err := tokens.IssueToken(userID, role)
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestRequireJWT(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)

	r := gin.New()
	r.GET("/instructor", RequireJWT(tokens, model.RoleInstructor, model.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, "%d", GetClaims(c).UserID)
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "Token abc", http.StatusUnauthorized},
		{"invalid", "Bearer abc", http.StatusUnauthorized},
		{"wrong role", bearer(t, tokens, 7, model.RoleStudent), http.StatusForbidden},
		{"instructor", bearer(t, tokens, 99, model.RoleInstructor), http.StatusOK},
		{"admin", bearer(t, tokens, 1, model.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/instructor", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequireWSAuth(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)
	tok, err := tokens.IssueToken(5, model.RoleStudent)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/ws", RequireWSAuth(tokens), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+tok, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCanActFor(t *testing.T) {
	student := &service.Claims{UserID: 7, Role: model.RoleStudent}
	admin := &service.Claims{UserID: 1, Role: model.RoleAdmin}

	instructor := &service.Claims{UserID: 7, Role: model.RoleInstructor}

	assert.True(t, CanActFor(student, model.Recipient{UserID: 7, Role: model.RoleStudent}))
	assert.False(t, CanActFor(student, model.Recipient{UserID: 8, Role: model.RoleStudent}))
	assert.False(t, CanActFor(student, model.Recipient{UserID: 7, Role: model.RoleInstructor}))
	assert.False(t, CanActFor(instructor, model.Recipient{UserID: 7, Role: model.RoleStudent}))
	assert.True(t, CanActFor(instructor, model.Recipient{UserID: 7, Role: model.RoleInstructor}))
	assert.True(t, CanActFor(admin, model.Recipient{UserID: 8, Role: model.RoleInstructor}))
	assert.False(t, CanActFor(nil, model.Recipient{UserID: 7, Role: model.RoleStudent}))
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.allow("user:1"))
	assert.True(t, rl.allow("user:1"))
	assert.False(t, rl.allow("user:1"))
	assert.True(t, rl.allow("user:2"))

	now = now.Add(time.Minute)
	assert.True(t, rl.allow("user:1"))
}

func TestRateLimiter_Middleware(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 1, time.Hour)
	r := gin.New()
	r.POST("/tests", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tests", nil))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tests", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "3600", w.Header().Get("Retry-After"))
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("question ", 500)

	r := gin.New()
	r.Use(BrotliWithConfig(BrotliConfig{MinLength: 1024, SkipPaths: []string{"/metrics"}}))
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/metrics", func(c *gin.Context) { c.String(http.StatusOK, large) })

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", "gzip, br")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/large")
	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, large, string(body))

	w = get("/small")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, "ok", w.Body.String())

	w = get("/metrics")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, large, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tokens := service.NewTokenService("secret", time.Hour)

	r := gin.New()
	r.GET("/all", RequireJWT(tokens), RequireRole(model.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/all", nil)
	req.Header.Set("Authorization", bearer(t, tokens, 7, model.RoleStudent))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/all", nil)
	req.Header.Set("Authorization", bearer(t, tokens, 1, model.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
