package app

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/b3proventos/config"
	"github.com/guttosm/b3proventos/internal/api"
	"github.com/guttosm/b3proventos/internal/calculator"
	"github.com/guttosm/b3proventos/internal/fetcher"
	"github.com/guttosm/b3proventos/internal/scraper"
	"github.com/guttosm/b3proventos/internal/service"
	"golang.org/x/time/rate"
)

// newProviderFetcher is an indirection for unit testing.
var newProviderFetcher = NewProviderFetcher

// NewProviderFetcher builds the HTTP fetcher for the dividends provider from cfg.
//
// The fetcher shares one token bucket (PROVIDER_RATE_PER_SEC, PROVIDER_BURST)
// across every request it issues, API and batch alike.
func NewProviderFetcher(cfg config.Config) (*fetcher.HTTPFetcher, error) {
	p := cfg.Provider
	if p.BaseURL == "" {
		return nil, errors.New("provider base url is required")
	}
	return fetcher.NewHTTPFetcher(p.BaseURL,
		fetcher.WithTimeout(p.Timeout),
		fetcher.WithUserAgent(p.UserAgent),
		fetcher.WithRateLimiter(rate.NewLimiter(rate.Limit(p.RatePerSec), p.Burst)),
	), nil
}

// NewDividendService wires fetcher, scraper and calculator into the service layer.
func NewDividendService(cfg config.Config, f fetcher.Fetcher) service.DividendService {
	s := scraper.NewFundamentus(f, cfg.Scraper.IgnorableClasses)
	return service.NewDividendService(s, calculator.New())
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router, a cleanup function for graceful shutdown,
// and any error encountered during initialization.
//
// Responsibilities:
//   - Builds the provider fetcher from config.AppConfig.
//   - Initializes the scraper and the dividend service.
//   - Creates the HTTP handler layer and the Gin router with all API routes.
//   - Registers health and readiness probes (readiness pings the provider).
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
//   - func(): cleanup function to be executed on shutdown.
//   - error: any initialization error that occurred.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	f, err := newProviderFetcher(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize provider fetcher: %w", err)
	}

	svc := NewDividendService(cfg, f)
	handler := api.NewHandler(svc)

	router := api.NewRouter(handler, api.RouterOptions{
		RequestTimeout:     cfg.Server.RequestTimeout,
		RateLimitPerMinute: cfg.Server.RateLimitPerMinute,
		AllowedOrigins:     cfg.Server.AllowedOrigins,
	})

	healthHandler := api.NewHealthHandler(f.Probe)
	healthHandler.Register(router)

	// idle keep-alive connections to the provider
	cleanup := func() {
		f.CloseIdleConnections()
	}

	return router, cleanup, nil
}
