package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings and the upstream data provider.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	PROVIDER_BASE_URL=http://fundamentus.com.br/
//	PROVIDER_TIMEOUT=10s
//	PROVIDER_RATE_PER_SEC=2
//	SCRAPER_IGNORABLE_CLASSES=nivel1,nivel2,oscil
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Provider ProviderConfig // Upstream site (Fundamentus) settings
	Scraper  ScraperConfig  // HTML extraction settings
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8080").
//   - RequestTimeout: deadline applied to every inbound request context.
//   - RateLimitPerMinute: requests allowed per client IP per minute.
//   - AllowedOrigins: CORS origins allowed to call the API (front-end).
type ServerConfig struct {
	Port               string
	RequestTimeout     time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string
}

// ProviderConfig defines how the provider pages are fetched.
//
// Fields:
//   - BaseURL: root of the provider site; page paths are appended to it.
//   - Timeout: per-attempt HTTP timeout.
//   - UserAgent: browser-like identification sent by default.
//   - RatePerSec / Burst: outbound request budget shared by all requests.
type ProviderConfig struct {
	BaseURL    string
	Timeout    time.Duration
	UserAgent  string
	RatePerSec float64
	Burst      int
}

// ScraperConfig holds extraction tunables.
type ScraperConfig struct {
	IgnorableClasses []string // cells carrying any of these classes are skipped in company details
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing, validateConfig() will terminate the app
//     with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("REQUEST_TIMEOUT", "15s")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")

	viper.SetDefault("PROVIDER_BASE_URL", "http://fundamentus.com.br/")
	viper.SetDefault("PROVIDER_TIMEOUT", "10s")
	viper.SetDefault("PROVIDER_USER_AGENT", defaultUserAgent)
	viper.SetDefault("PROVIDER_RATE_PER_SEC", 2.0)
	viper.SetDefault("PROVIDER_BURST", 4)

	viper.SetDefault("SCRAPER_IGNORABLE_CLASSES", "nivel1,nivel2,oscil")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RequestTimeout:     viper.GetDuration("REQUEST_TIMEOUT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
			AllowedOrigins:     splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Provider: ProviderConfig{
			BaseURL:    viper.GetString("PROVIDER_BASE_URL"),
			Timeout:    viper.GetDuration("PROVIDER_TIMEOUT"),
			UserAgent:  viper.GetString("PROVIDER_USER_AGENT"),
			RatePerSec: viper.GetFloat64("PROVIDER_RATE_PER_SEC"),
			Burst:      viper.GetInt("PROVIDER_BURST"),
		},
		Scraper: ScraperConfig{
			IgnorableClasses: splitList(viper.GetString("SCRAPER_IGNORABLE_CLASSES")),
		},
	}

	// The provider expects paths appended directly to the base URL.
	if AppConfig.Provider.BaseURL != "" && !strings.HasSuffix(AppConfig.Provider.BaseURL, "/") {
		AppConfig.Provider.BaseURL += "/"
	}

	// Validate critical fields
	validateConfig()
}

// splitList turns a comma separated env value into a trimmed, non-empty slice.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
//
// Behavior:
//   - Checks each critical field of AppConfig.
//   - Collects missing ones in a slice.
//   - If any are missing, logs them and terminates the app with log.Fatalf().
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Provider.BaseURL == "" {
		missing = append(missing, "PROVIDER_BASE_URL")
	}
	if AppConfig.Provider.Timeout <= 0 {
		missing = append(missing, "PROVIDER_TIMEOUT")
	}
	if AppConfig.Provider.RatePerSec <= 0 {
		missing = append(missing, "PROVIDER_RATE_PER_SEC")
	}
	if AppConfig.Provider.Burst <= 0 {
		missing = append(missing, "PROVIDER_BURST")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v\n", missing)
	}
}
