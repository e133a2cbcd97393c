package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var ErrBodyTooLarge = errors.New("request body too large")

// BodySizeLimiter caps the request body at maxBytes. Handlers reading past the
// cap get an *http.MaxBytesError.
func BodySizeLimiter(maxBytes int64, fail FailFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Fast reject for honest clients
		if c.Request.ContentLength > maxBytes {
			fail(c, ErrBodyTooLarge)
			c.Abort()
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// IsBodyTooLarge reports whether err came from reading past the body cap
func IsBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe) || errors.Is(err, ErrBodyTooLarge)
}
