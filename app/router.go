// Package app wires the HTTP layer: middleware, routes and the components
// behind them
package app

import (
	"context"
	"slices"
	"time"

	"github.com/molliqajbedrush-arch/enerbewwer/app/application"
	"github.com/molliqajbedrush-arch/enerbewwer/app/auth"
	"github.com/molliqajbedrush-arch/enerbewwer/app/document"
	"github.com/molliqajbedrush-arch/enerbewwer/app/job"
	"github.com/molliqajbedrush-arch/enerbewwer/app/letter"
	"github.com/molliqajbedrush-arch/enerbewwer/app/resume"
	"github.com/molliqajbedrush-arch/enerbewwer/app/respond"
	"github.com/molliqajbedrush-arch/enerbewwer/app/root"
	"github.com/molliqajbedrush-arch/enerbewwer/internal"
	"github.com/molliqajbedrush-arch/enerbewwer/pkg/middleware"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Slack on top of upload.max_size for the multipart framing
const multipartOverhead = 1 << 20

type RouterOptions struct {
	Origins []string
	// RateLimit is requests per second per client IP, 0 turns it off
	RateLimit int
}

// NewRouter builds the engine serving every route under /api. Background
// work started here stops when ctx is done.
func NewRouter(ctx context.Context, d *internal.Deps, o RouterOptions) *gin.Engine {
	router := gin.New()

	router.Use(
		cors.New(corsConfig(o.Origins)),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	router.MaxMultipartMemory = d.MaxUploadSize + multipartOverhead

	store := persist.NewMemoryStore(time.Minute)
	jwt := middleware.NewAuthMiddleware(d.Accounts, respond.Error)
	uploadLimit := middleware.BodySizeLimiter(d.MaxUploadSize+multipartOverhead, respond.Error)

	m := router.Group("/api")
	if o.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: o.RateLimit,
			Burst:             o.RateLimit * 2,
		})
		go limiter.Run(ctx)

		m.Use(limiter.Middleware(respond.Error))
	}

	{
		// GET /api/				-> Health status
		m.GET("/", cache.CacheByRequestURI(store, 10*time.Second), root.Health)

		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		m.HEAD("/heartbeat", root.Heartbeat)

		// POST /api/analyze-job		-> Scrapes a job posting
		m.POST("/analyze-job", jwt, func(c *gin.Context) { job.Analyze(c, d) })

		// POST /api/analyze-resume		-> Extracts data from an uploaded résumé PDF
		m.POST("/analyze-resume", jwt, uploadLimit, func(c *gin.Context) { resume.Analyze(c, d) })

		// POST /api/generate-cover-letter	-> Drafts a cover letter
		m.POST("/generate-cover-letter", jwt, func(c *gin.Context) { letter.Generate(c, d) })

		// POST /api/generate-pdf		-> Renders a cover letter as PDF
		m.POST("/generate-pdf", jwt, func(c *gin.Context) { document.Generate(c, d) })
	}

	a := m.Group("/auth")
	{
		// POST /api/auth/register	-> Registers a new user and returns a token
		a.POST("/register", func(c *gin.Context) { auth.Register(c, d) })

		// POST /api/auth/login		-> Logs in a user and returns a token
		a.POST("/login", func(c *gin.Context) { auth.Login(c, d) })

		// GET /api/auth/me		-> Returns the current user
		a.GET("/me", jwt, auth.Me)
	}

	apps := m.Group("/applications", jwt)
	{
		// POST /api/applications		-> Saves an application bundle
		apps.POST("", func(c *gin.Context) { application.Create(c, d) })

		// GET /api/applications		-> Lists the newest applications
		apps.GET("", func(c *gin.Context) { application.List(c, d) })

		// GET /api/applications/:id	-> Returns one application
		apps.GET("/:id", func(c *gin.Context) { application.Fetch(c, d) })

		// DELETE /api/applications/:id	-> Deletes an application
		apps.DELETE("/:id", func(c *gin.Context) { application.Delete(c, d) })
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true

	return cfg
}
