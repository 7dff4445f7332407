// Package cache provides a time-to-live key/value cache over pluggable
// persistent storage, used for small reference datasets (exchange lists,
// indicator/operator catalogs, pricing plans, notification state).
//
// # Envelope
//
// Values are stored as a JSON envelope {value, expiresAt} where expiresAt is
// absolute epoch milliseconds; zero means no expiry. Expired entries are
// deleted lazily on read — there is no background sweep, no size bound, and no
// LRU. The key set is small and fixed by the domain services.
//
// # Architecture boundaries
//
// This package owns the envelope and expiry semantics. It does NOT decide
// which keys exist, what their TTLs are, or when mutations invalidate them —
// those responsibilities belong to the Client's domain service callers.
//
// # What this package must NOT do
//
//   - Import webcore or any sibling package.
//   - Surface corrupt entries as errors (they are misses).
//   - Evict anything except on expiry or explicit Delete.
package cache
