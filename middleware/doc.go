// Package middleware exposes the route guard: HTTP middleware that combines
// locale resolution with a logged-in-marker check to decide, per navigable
// request, whether to pass through or redirect to login or the dashboard.
//
// # Decision order
//
//  1. Static assets (any path containing a dot) and configured skip prefixes
//     bypass evaluation entirely.
//  2. The locale segment is resolved; a path without one is evaluated as if
//     the locale redirect had already happened.
//  3. Auth-section paths: marker present redirects to the dashboard,
//     otherwise pass through.
//  4. Everything else: no marker redirects to login; the bare root redirects
//     to the dashboard; otherwise pass through.
//
// The auth-section check always precedes the root check.
//
// # Architecture boundaries
//
// This package reads the marker cookie and the request path — nothing else.
// It does NOT read the access token, call the backend, or hold state across
// requests.
package middleware
