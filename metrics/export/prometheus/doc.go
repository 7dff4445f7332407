// Package prometheus provides Prometheus collectors for webcore metrics.
//
// [NewPrometheusExporter] accepts a [webcore.Client] and exposes an [http.Handler]
// that renders all webcore counters and histograms in Prometheus text exposition
// format. Counter names are prefixed webcore_*_total; the single histogram is
// webcore_request_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate client state.
package prometheus
