package internaldefs

import (
	webcore "github.com/cryptopilot/webcore"
)

// CounterDef defines a public type used by webcore APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   webcore.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by webcore APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   webcore.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the web client core.
var CounterDefs = []CounterDef{
	{ID: webcore.MetricLoginSuccess, Name: "webcore_login_success_total", Help: "Successful login attempts."},
	{ID: webcore.MetricLoginFailure, Name: "webcore_login_failure_total", Help: "Failed login attempts."},
	{ID: webcore.MetricLogin2FARequired, Name: "webcore_login_2fa_required_total", Help: "Login flows requiring a second factor."},
	{ID: webcore.MetricLogin2FASuccess, Name: "webcore_login_2fa_success_total", Help: "Successful two-factor confirmations."},
	{ID: webcore.MetricLogin2FAFailure, Name: "webcore_login_2fa_failure_total", Help: "Failed two-factor confirmations."},
	{ID: webcore.MetricLogout, Name: "webcore_logout_total", Help: "Voluntary logout operations."},
	{ID: webcore.MetricForcedLogout, Name: "webcore_forced_logout_total", Help: "Sessions torn down after a backend 401."},
	{ID: webcore.MetricRequestSuccess, Name: "webcore_request_success_total", Help: "Backend requests completed with a success status."},
	{ID: webcore.MetricRequestFailure, Name: "webcore_request_failure_total", Help: "Backend requests that failed in transport or returned an error status."},
	{ID: webcore.MetricRequestUnauthorized, Name: "webcore_request_unauthorized_total", Help: "Backend requests answered with 401."},
	{ID: webcore.MetricCacheHit, Name: "webcore_cache_hit_total", Help: "Reads served from the reference cache."},
	{ID: webcore.MetricCacheMiss, Name: "webcore_cache_miss_total", Help: "Reads that fell through to the backend."},
	{ID: webcore.MetricGuardPassThrough, Name: "webcore_guard_pass_total", Help: "Guard evaluations that passed the request through."},
	{ID: webcore.MetricGuardRedirectLogin, Name: "webcore_guard_redirect_login_total", Help: "Guard evaluations redirected to login."},
	{ID: webcore.MetricGuardRedirectDashboard, Name: "webcore_guard_redirect_dashboard_total", Help: "Guard evaluations redirected to the dashboard."},
}

// HistogramDefs is an exported constant or variable used by the web client core.
var HistogramDefs = []HistogramDef{
	{ID: webcore.MetricRequestLatency, Name: "webcore_request_latency_seconds", Help: "Backend request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the web client core.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the web client core.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
