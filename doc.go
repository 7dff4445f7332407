// Package webcore provides the client-side request pipeline for the cryptopilot
// trading front-end: an authenticated HTTP dispatcher with bearer-token
// injection and forced-logout-on-401 handling, a TTL cache over persistent
// storage for small reference datasets, session/cookie lifecycle management,
// and domain service callers for the user, exchange, and subscription backends.
//
// The package is designed for concurrent server workloads: Client methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// webcore is the public surface. It exposes [Client], [Builder], [Config], and
// value types (LoginResult, Page, MetricsSnapshot, etc.). The cache envelope
// lives in cache/, session state and cookie handling in session/, and the
// locale/auth route guard in middleware/.
//
// # What this package must NOT do
//
//   - Perform navigation. On forced logout the Client emits an audit event and
//     invokes the host's sign-out handler; the hosting web layer decides how to
//     redirect.
//   - Retry failed requests. Transport and domain errors are surfaced to the
//     caller unchanged, exactly once.
//   - Verify token signatures. The backend is the verifier; webcore only reads
//     the expiration claim to derive cookie lifetimes.
package webcore
