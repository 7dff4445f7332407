package webcore

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by webcore APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Cache   CacheConfig
	Routes  RouteConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by webcore APIs.
//
// APIConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type APIConfig struct {
	// BaseURL is the backend gateway root all service paths are joined to,
	// e.g. "https://api.cryptopilot.io".
	BaseURL string

	// RequestTimeout bounds a single round-trip. Zero disables the timeout;
	// the default configuration enables one.
	RequestTimeout time.Duration

	// MaxResponseBytes caps how much of a response body is read.
	MaxResponseBytes int64
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by webcore APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	// CookieName is the logged-in marker cookie. Its value is an opaque
	// marker, never the token itself.
	CookieName string

	CookiePath   string
	CookieSecure bool
}

/*
====================================
CACHE CONFIG
====================================
*/

// CacheConfig defines a public type used by webcore APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	// KeyPrefix namespaces all cache keys in the backing store.
	KeyPrefix string

	// ReferenceTTL applies to list/catalog reference data (exchanges,
	// operators, indicators, intervals, periods, pricing plans,
	// notifications, devices). The user-profile mirror is stored without
	// an expiry and invalidated manually.
	ReferenceTTL time.Duration
}

/*
====================================
ROUTE CONFIG
====================================
*/

// RouteConfig defines a public type used by webcore APIs.
//
// RouteConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RouteConfig struct {
	Locales       []string
	DefaultLocale string

	// AuthPrefixes are locale-stripped path prefixes of the authentication
	// section (login, register, reset-password). First match wins.
	AuthPrefixes []string

	LoginPath     string
	DashboardPath string

	// SkipPrefixes are excluded from guard evaluation entirely, alongside
	// any path containing a dot (static assets).
	SkipPrefixes []string
}

/*
====================================
AUDIT / METRICS CONFIG
====================================
*/

// AuditConfig defines a public type used by webcore APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by webcore APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig may return an error when input validation, dependency calls, or security checks fail.
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			RequestTimeout:   30 * time.Second,
			MaxResponseBytes: 4 << 20,
		},
		Session: SessionConfig{
			CookieName:   "loggedIn",
			CookiePath:   "/",
			CookieSecure: true,
		},
		Cache: CacheConfig{
			KeyPrefix:    "wc",
			ReferenceTTL: 5 * time.Minute,
		},
		Routes: RouteConfig{
			Locales: []string{
				"ar", "zh", "cs", "en", "et", "fr", "de",
				"ja", "ko", "pt", "ro", "ru", "es", "tr",
			},
			DefaultLocale: "en",
			AuthPrefixes:  []string{"/auth/"},
			LoginPath:     "/auth/login",
			DashboardPath: "/dashboard",
			SkipPrefixes:  []string{"/api", "/_internal"},
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Routes.Locales = append([]string(nil), cfg.Routes.Locales...)
	out.Routes.AuthPrefixes = append([]string(nil), cfg.Routes.AuthPrefixes...)
	out.Routes.SkipPrefixes = append([]string(nil), cfg.Routes.SkipPrefixes...)
	return out
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API BaseURL required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	if c.API.RequestTimeout < 0 {
		return errors.New("invalid RequestTimeout")
	}
	if c.API.MaxResponseBytes <= 0 {
		return errors.New("invalid MaxResponseBytes")
	}

	if strings.TrimSpace(c.Session.CookieName) == "" {
		return errors.New("session CookieName required")
	}
	if c.Session.CookiePath == "" {
		return errors.New("session CookiePath required")
	}

	if c.Cache.ReferenceTTL <= 0 {
		return errors.New("cache ReferenceTTL must be positive")
	}

	if len(c.Routes.Locales) == 0 {
		return errors.New("at least one locale required")
	}
	defaultSupported := false
	for _, locale := range c.Routes.Locales {
		if locale == "" {
			return errors.New("locale list contains empty entry")
		}
		if locale == c.Routes.DefaultLocale {
			defaultSupported = true
		}
	}
	if !defaultSupported {
		return errors.New("DefaultLocale is not present in Locales")
	}
	if len(c.Routes.AuthPrefixes) == 0 {
		return errors.New("at least one auth prefix required")
	}
	for _, p := range c.Routes.AuthPrefixes {
		if !strings.HasPrefix(p, "/") {
			return errors.New("auth prefixes must start with /")
		}
	}
	if !strings.HasPrefix(c.Routes.LoginPath, "/") {
		return errors.New("LoginPath must start with /")
	}
	if !strings.HasPrefix(c.Routes.DashboardPath, "/") {
		return errors.New("DashboardPath must start with /")
	}

	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit BufferSize must be positive")
	}

	return nil
}
