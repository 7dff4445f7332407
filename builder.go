package webcore

import (
	"errors"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/cryptopilot/webcore/cache"
	"github.com/cryptopilot/webcore/session"
)

// Builder defines a public type used by webcore APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	storage    cache.Storage
	httpClient *http.Client
	auditSink  AuditSink
	signOut    SignOutHandler

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithStorage describes the withstorage operation and its observable behavior.
//
// WithStorage may return an error when input validation, dependency calls, or security checks fail.
// WithStorage does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithStorage(s cache.Storage) *Builder {
	b.storage = s
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(hc *http.Client) *Builder {
	b.httpClient = hc
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithSignOutHandler describes the withsignouthandler operation and its observable behavior.
//
// WithSignOutHandler may return an error when input validation, dependency calls, or security checks fail.
// WithSignOutHandler does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithSignOutHandler(h SignOutHandler) *Builder {
	b.signOut = h
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- CACHE STORAGE --------
	storage := b.storage
	if storage == nil {
		if b.redis == nil {
			return nil, errors.New("cache storage or redis client required")
		}
		storage = cache.NewRedisStorage(b.redis, cfg.Cache.KeyPrefix)
	}

	hc := b.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.API.RequestTimeout}
	}

	client := &Client{
		config:     cfg,
		httpClient: hc,
		baseURL:    strings.TrimRight(cfg.API.BaseURL, "/"),
		signOut:    b.signOut,
	}

	client.session = session.NewManager(session.Config{
		CookieName: cfg.Session.CookieName,
		CookiePath: cfg.Session.CookiePath,
		Secure:     cfg.Session.CookieSecure,
	})
	client.cache = cache.New(storage)
	client.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	client.metrics = NewMetrics(cfg.Metrics)

	b.built = true

	return client, nil
}
