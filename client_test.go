package webcore

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return client, func() {
		_ = client.Close()
		mr.Close()
	}
}

func mintTestToken(t *testing.T, userID, firstName string, exp time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":       userID,
		"firstName": firstName,
		"exp":       exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

type testClientOptions struct {
	signOut   SignOutHandler
	auditSink AuditSink
	ttl       time.Duration
}

func newTestClient(t *testing.T, handler http.Handler, opts testClientOptions) (*Client, func()) {
	t.Helper()

	rdb, closeRedis := newTestRedis(t)
	backend := httptest.NewServer(handler)

	cfg := defaultConfig()
	cfg.API.BaseURL = backend.URL
	cfg.Session.CookieSecure = false
	cfg.Metrics.Enabled = true
	cfg.Metrics.EnableLatencyHistograms = true
	if opts.ttl > 0 {
		cfg.Cache.ReferenceTTL = opts.ttl
	}
	if opts.auditSink != nil {
		cfg.Audit.Enabled = true
	}

	builder := New().
		WithConfig(cfg).
		WithRedis(rdb).
		WithSignOutHandler(opts.signOut)
	if opts.auditSink != nil {
		builder = builder.WithAuditSink(opts.auditSink)
	}

	client, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	return client, func() {
		client.Close()
		backend.Close()
		closeRedis()
	}
}

func establishSession(t *testing.T, c *Client) {
	t.Helper()

	token := mintTestToken(t, "user-1", "Alice", time.Now().Add(time.Hour))
	if _, err := c.session.Start(token); err != nil {
		t.Fatalf("session start failed: %v", err)
	}
	c.invalidated.Store(false)
}

func TestBuilderRequiresStorage(t *testing.T) {
	cfg := defaultConfig()
	cfg.API.BaseURL = "http://localhost:9"

	if _, err := New().WithConfig(cfg).Build(); err == nil {
		t.Fatal("expected error without storage or redis")
	}
}

func TestBuilderRejectsSecondBuild(t *testing.T) {
	rdb, done := newTestRedis(t)
	defer done()

	cfg := defaultConfig()
	cfg.API.BaseURL = "http://localhost:9"

	b := New().WithConfig(cfg).WithRedis(rdb)
	client, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer client.Close()

	if _, err := b.Build(); err == nil {
		t.Fatal("expected error on second Build")
	}
}

func TestBuilderValidatesConfig(t *testing.T) {
	rdb, done := newTestRedis(t)
	defer done()

	cfg := defaultConfig() // BaseURL missing

	if _, err := New().WithConfig(cfg).WithRedis(rdb).Build(); err == nil {
		t.Fatal("expected validation error for missing BaseURL")
	}
}

func TestConfigValidate(t *testing.T) {
	base := defaultConfig()
	base.API.BaseURL = "https://api.example.com"

	if err := base.Validate(); err != nil {
		t.Fatalf("expected default config with BaseURL to validate, got %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }},
		{"empty cookie name", func(c *Config) { c.Session.CookieName = " " }},
		{"zero reference ttl", func(c *Config) { c.Cache.ReferenceTTL = 0 }},
		{"no locales", func(c *Config) { c.Routes.Locales = nil }},
		{"default locale unsupported", func(c *Config) { c.Routes.DefaultLocale = "xx" }},
		{"auth prefix missing slash", func(c *Config) { c.Routes.AuthPrefixes = []string{"auth/"} }},
		{"negative response cap", func(c *Config) { c.API.MaxResponseBytes = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := cloneConfig(base)
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
