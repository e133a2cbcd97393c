package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/molliqajbedrush-arch/enerbewwer/internal/model"

	"github.com/gin-gonic/gin"
)

var ErrNoBearer = errors.New("no bearer token")

// Authenticator resolves a raw token to the user it belongs to
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// NewAuthMiddleware requires an "Authorization: Bearer <token>" header. On
// success the caller is stored as userID and user.
func NewAuthMiddleware(a Authenticator, fail FailFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			fail(c, ErrNoBearer)
			c.Abort()
			return
		}

		user, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			fail(c, err)
			c.Abort()
			return
		}

		c.Set("userID", user.ID)
		c.Set("user", user)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
