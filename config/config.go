package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Fetch     FetchConfig
	History   HistoryConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "127.0.0.1"
	Port int    // default: 8888
	Mode string // "debug", "release", "test"; default: "release"

	// OpenBrowser opens the control panel UI in the default browser
	// shortly after startup.
	OpenBrowser bool // default: true
}

// BrowserConfig controls the shared Rod browser used by the stealthy and
// playwright fetchers.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// MaxPages is the page pool capacity (max concurrent tabs).
	MaxPages int // default: 4

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// DefaultProxy is the proxy URL applied to browser traffic.
	DefaultProxy string

	// BlockedResourceTypes lists resource types the browser fetchers block
	// via request hijacking. default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// FetchConfig controls per-request fetch behavior.
type FetchConfig struct {
	// Timeout is the hard deadline for one fetch (network or browser).
	Timeout time.Duration // default: 120s
}

// HistoryConfig controls the in-memory scrape history.
type HistoryConfig struct {
	// DefaultTail is the number of entries returned when the history
	// endpoint is called without a limit parameter.
	DefaultTail int // default: 50
}

// RateLimitConfig controls per-IP rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client IP.
	RequestsPerSecond float64 // default: 25

	// Burst is the maximum burst size per client IP.
	Burst int // default: 50
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        envOr("SCRAPEBOARD_HOST", "127.0.0.1"),
			Port:        envIntOr("SCRAPEBOARD_PORT", 8888),
			Mode:        envOr("SCRAPEBOARD_MODE", "release"),
			OpenBrowser: envBoolOr("SCRAPEBOARD_OPEN_BROWSER", true),
		},
		Browser: BrowserConfig{
			Headless:     envBoolOr("SCRAPEBOARD_HEADLESS", true),
			MaxPages:     envIntOr("SCRAPEBOARD_MAX_PAGES", 4),
			NoSandbox:    envBoolOr("SCRAPEBOARD_NO_SANDBOX", false),
			BrowserBin:   os.Getenv("SCRAPEBOARD_BROWSER_BIN"),
			DefaultProxy: os.Getenv("SCRAPEBOARD_PROXY"),
			BlockedResourceTypes: envSliceOr("SCRAPEBOARD_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Fetch: FetchConfig{
			Timeout: envDurationOr("SCRAPEBOARD_FETCH_TIMEOUT", 120*time.Second),
		},
		History: HistoryConfig{
			DefaultTail: envIntOr("SCRAPEBOARD_HISTORY_TAIL", 50),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SCRAPEBOARD_RATE_RPS", 25.0),
			Burst:             envIntOr("SCRAPEBOARD_RATE_BURST", 50),
		},
		Log: LogConfig{
			Level:  envOr("SCRAPEBOARD_LOG_LEVEL", "info"),
			Format: envOr("SCRAPEBOARD_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
