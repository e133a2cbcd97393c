// Package middleware contains any custom middleware used in the app
package middleware

import (
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/util"

	"github.com/gin-gonic/gin"
)

const requestIDHeader = "X-Request-ID"

// FailFunc answers a request that a middleware rejected. The app passes its
// error mapper so every rejection looks like any other error response.
type FailFunc func(c *gin.Context, err error)

// NewRequestIDMiddleware returns a new middleware function that generates a request ID for
// each incoming request, sets it as requestID and echoes it in a response header
func NewRequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := util.RandStr(10)

		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
