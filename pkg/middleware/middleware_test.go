package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var errBadToken = errors.New("bad token")

type fakeAuth map[string]*model.User

func (f fakeAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if u, ok := f[token]; ok {
		return u, nil
	}

	return nil, errBadToken
}

func failWith(status int) FailFunc {
	return func(c *gin.Context, err error) {
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(NewRequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("requestID").(string))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Len(t, w.Body.String(), 10)
	assert.Equal(t, w.Body.String(), w.Header().Get(requestIDHeader))
}

func TestAuthMiddleware(t *testing.T) {
	r := gin.New()
	r.GET("/me", NewAuthMiddleware(fakeAuth{"good": {ID: "u1"}}, failWith(http.StatusUnauthorized)), func(c *gin.Context) {
		c.String(http.StatusOK, c.MustGet("userID").(string))
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid", "Bearer good", http.StatusOK, "u1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "u1"},
		{"missing", "", http.StatusUnauthorized, ErrNoBearer.Error()},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ErrNoBearer.Error()},
		{"empty token", "Bearer ", http.StatusUnauthorized, ErrNoBearer.Error()},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, errBadToken.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestBodySizeLimiter(t *testing.T) {
	r := gin.New()
	r.POST("/", BodySizeLimiter(8, failWith(http.StatusRequestEntityTooLarge)), func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if IsBodyTooLarge(err) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}

		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), ErrBodyTooLarge.Error())

	// Unknown length gets past the fast path and fails while reading
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader("far too large")))
	req.ContentLength = -1

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimiter(t *testing.T) {
	l := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, Burst: 2})

	r := gin.New()
	r.GET("/", l.Middleware(failWith(http.StatusTooManyRequests)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4321"

		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:1234"

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
