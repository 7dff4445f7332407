package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	webcore "github.com/cryptopilot/webcore"
)

type fakeSource struct {
	mu       sync.RWMutex
	snapshot webcore.MetricsSnapshot
	dropped  uint64
}

func (f *fakeSource) MetricsSnapshot() webcore.MetricsSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := webcore.MetricsSnapshot{
		Counters:   make(map[webcore.MetricID]uint64, len(f.snapshot.Counters)),
		Histograms: make(map[webcore.MetricID][]uint64, len(f.snapshot.Histograms)),
	}
	for k, v := range f.snapshot.Counters {
		out.Counters[k] = v
	}
	for k, buckets := range f.snapshot.Histograms {
		next := make([]uint64, len(buckets))
		copy(next, buckets)
		out.Histograms[k] = next
	}
	return out
}

func (f *fakeSource) AuditDropped() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dropped
}

func TestRenderCountersAndHistogram(t *testing.T) {
	src := &fakeSource{
		snapshot: webcore.MetricsSnapshot{
			Counters: map[webcore.MetricID]uint64{
				webcore.MetricLoginSuccess: 3,
				webcore.MetricForcedLogout: 1,
			},
			Histograms: map[webcore.MetricID][]uint64{
				webcore.MetricRequestLatency: {2, 1, 0, 0, 0, 0, 0, 1},
			},
		},
		dropped: 5,
	}

	out := NewPrometheusExporterFromSource(src).Render()

	if !strings.Contains(out, "webcore_login_success_total 3") {
		t.Fatalf("missing login counter in output:\n%s", out)
	}
	if !strings.Contains(out, "webcore_forced_logout_total 1") {
		t.Fatalf("missing forced logout counter in output:\n%s", out)
	}
	if !strings.Contains(out, "webcore_audit_dropped_total 5") {
		t.Fatalf("missing audit dropped counter in output:\n%s", out)
	}
	if !strings.Contains(out, `webcore_request_latency_seconds_bucket{le="0.005"} 2`) {
		t.Fatalf("missing first cumulative bucket in output:\n%s", out)
	}
	if !strings.Contains(out, `webcore_request_latency_seconds_bucket{le="+Inf"} 4`) {
		t.Fatalf("missing +Inf cumulative bucket in output:\n%s", out)
	}
	if !strings.Contains(out, "webcore_request_latency_seconds_count 4") {
		t.Fatalf("missing histogram count in output:\n%s", out)
	}
	if !strings.Contains(out, "# TYPE webcore_request_latency_seconds histogram") {
		t.Fatalf("missing histogram TYPE line in output:\n%s", out)
	}
}

func TestRenderEmptySource(t *testing.T) {
	src := &fakeSource{
		snapshot: webcore.MetricsSnapshot{
			Counters:   map[webcore.MetricID]uint64{},
			Histograms: map[webcore.MetricID][]uint64{},
		},
	}

	if out := NewPrometheusExporterFromSource(src).Render(); out != "" {
		t.Fatalf("expected empty render, got:\n%s", out)
	}
}

func TestHandlerServesExposition(t *testing.T) {
	src := &fakeSource{
		snapshot: webcore.MetricsSnapshot{
			Counters: map[webcore.MetricID]uint64{
				webcore.MetricCacheHit: 7,
			},
			Histograms: map[webcore.MetricID][]uint64{},
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	NewPrometheusExporterFromSource(src).Handler().ServeHTTP(w, r)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(w.Body.String(), "webcore_cache_hit_total 7") {
		t.Fatalf("missing counter in body:\n%s", w.Body.String())
	}
}
