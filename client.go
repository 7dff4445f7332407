package webcore

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/cryptopilot/webcore/cache"
	"github.com/cryptopilot/webcore/middleware"
	"github.com/cryptopilot/webcore/session"
)

// SignOutHandler defines a public type used by webcore APIs.
//
// SignOutHandler receives the expired marker cookie after a forced logout so
// the hosting layer can clear it and steer the user to the login screen.
type SignOutHandler func(cookie *http.Cookie)

// Cache keys for backend reference data. The user profile mirror is stored
// without an expiry envelope; everything else uses the reference TTL.
const (
	cacheKeyExchanges           = "EXCHANGES"
	cacheKeyOperators           = "OPERATORS"
	cacheKeyIndicators          = "INDICATORS"
	cacheKeyIntervals           = "INTERVALS"
	cacheKeyPeriods             = "PERIODS"
	cacheKeyUnreadNotifications = "UNREAD_NOTIFICATIONS_COUNT"
	cacheKeyUserNotifications   = "USER_NOTIFICATIONS"
	cacheKeyUserDevices         = "USER_NOTIFICATION_DEVICES"
	cacheKeyPricingPlans        = "PRICING_PLANS"
	cacheKeyUserProfile         = "user"
)

// Client defines a public type used by webcore APIs.
//
// Client instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
// A Client owns one session, one cache, and one dispatcher; all service
// callers hang off it. Construct one through [Builder.Build].
type Client struct {
	config     Config
	httpClient *http.Client
	baseURL    string

	session *session.Manager
	cache   *cache.Cache

	audit   *auditDispatcher
	metrics *Metrics

	signOut SignOutHandler

	// invalidated flips exactly once per session generation when the backend
	// answers 401; startSession resets it.
	invalidated atomic.Bool
}

// Session describes the session operation and its observable behavior.
//
// Session may return an error when input validation, dependency calls, or security checks fail.
// Session does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Session() *session.Manager {
	return c.session
}

// Cache describes the cache operation and its observable behavior.
//
// Cache may return an error when input validation, dependency calls, or security checks fail.
// Cache does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// GuardConfig describes the guardconfig operation and its observable behavior.
//
// GuardConfig may return an error when input validation, dependency calls, or security checks fail.
// GuardConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) GuardConfig() middleware.Config {
	return middleware.Config{
		CookieName:    c.config.Session.CookieName,
		Locales:       c.config.Routes.Locales,
		DefaultLocale: c.config.Routes.DefaultLocale,
		AuthPrefixes:  c.config.Routes.AuthPrefixes,
		LoginPath:     c.config.Routes.LoginPath,
		DashboardPath: c.config.Routes.DashboardPath,
		SkipPrefixes:  c.config.Routes.SkipPrefixes,
		OnDecision: func(d middleware.Decision) {
			switch d {
			case middleware.DecisionRedirectLogin:
				c.metrics.Inc(MetricGuardRedirectLogin)
			case middleware.DecisionRedirectDashboard:
				c.metrics.Inc(MetricGuardRedirectDashboard)
			default:
				c.metrics.Inc(MetricGuardPassThrough)
			}
		},
	}
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) AuditDropped() uint64 {
	return c.audit.Dropped()
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Client) Close() {
	c.audit.Close()
}

func (c *Client) emitAudit(ctx context.Context, event AuditEvent) {
	if c.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	c.audit.Emit(ctx, event)
}

// startSession installs the full token and opens a fresh session generation
// so the next 401 can force a logout again.
func (c *Client) startSession(ctx context.Context, token string) (*http.Cookie, error) {
	cookie, err := c.session.Start(token)
	if err != nil {
		return nil, err
	}
	c.invalidated.Store(false)
	return cookie, nil
}

// forceLogout tears the session down in response to a backend 401. Only the
// first caller per session generation wins; concurrent losers return without
// side effects.
func (c *Client) forceLogout(ctx context.Context, requestID string) {
	if !c.invalidated.CompareAndSwap(false, true) {
		return
	}

	cookie := c.session.End()
	c.metrics.Inc(MetricForcedLogout)
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventForcedLogout,
		RequestID: requestID,
		Success:   true,
	})

	if c.signOut != nil {
		c.signOut(cookie)
	}
}

// serviceError is the shared failure path of the domain callers: record the
// failure on the audit stream, then hand the caller a message resolved
// through [Message].
func (c *Client) serviceError(ctx context.Context, err error, fallback string) error {
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventServiceError,
		Success:   false,
		Error:     Message(err, fallback),
	})
	return err
}

// cachedGet serves out through the reference cache: a fresh cached value
// short-circuits the network, otherwise the fetched value is stored under ttl
// before being returned. A degraded cache never fails the read; the fetch
// result is returned and the incident lands on the audit stream.
func cachedGet[T any](ctx context.Context, c *Client, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	var cached T
	hit, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventStorageDegraded,
			Success:   false,
			Error:     err.Error(),
			Metadata:  map[string]string{"key": key},
		})
	}
	if hit {
		c.metrics.Inc(MetricCacheHit)
		return cached, nil
	}
	c.metrics.Inc(MetricCacheMiss)

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	if err := c.cache.Put(ctx, key, value, ttl); err != nil {
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventStorageDegraded,
			Success:   false,
			Error:     err.Error(),
			Metadata:  map[string]string{"key": key},
		})
	}

	return value, nil
}
