package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/internal/middleware"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouterOptions carries the tunables of the global middleware chain.
// Zero values disable rate limiting and the request timeout.
type RouterOptions struct {
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string
}

// NewRouter creates a Gin engine with routes configured.
// It receives a Handler instance with all business logic already injected.
//
// Responsibilities:
//   - Registers global middlewares (RequestID, Logger, Recovery, ErrorHandler, CORS, RateLimiter).
//   - Bounds every request context with opts.RequestTimeout.
//   - Mounts Swagger docs (/swagger/*any).
//   - Configures the dividends routes under /api.
//
// Note:
//   - Health and readiness endpoints (/healthz, /readyz) are registered in app.InitializeApp().
func NewRouter(handler *Handler, opts RouterOptions) *gin.Engine {
	router := gin.New()

	// ─── Middlewares ───────────────────────────────
	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RecoveryMiddleware(),
		middleware.ErrorHandler,
		middleware.CORS(opts.AllowedOrigins),
		middleware.RateLimiter(opts.RateLimitPerMinute, time.Minute),
		middleware.Timeout(opts.RequestTimeout),
	)

	// ─── Swagger ──────────────────────────────────
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ─── API ──────────────────────────────────────
	api := router.Group("/api")
	{
		api.GET("/details/:ticker", handler.GetDetails)
		api.GET("/yearly_dividends/:ticker", handler.GetYearlyDividends)
		api.GET("/monthly_dividends/:ticker", handler.GetMonthlyDividends)
		api.GET("/accumulated_yearly_dividends/:ticker/:years", handler.GetAccumulatedYearly)
		api.GET("/accumulated_monthly_dividends/:ticker/:months", handler.GetAccumulatedMonthly)
	}

	return router
}
