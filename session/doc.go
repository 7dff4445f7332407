// Package session holds the client-side session fragments (access token,
// identity, two-factor pending state) and manages the logged-in marker
// cookie whose lifetime is derived from the token's expiration claim.
//
// # Marker cookie
//
// The cookie value is an opaque marker, never the token. It is HttpOnly,
// Secure, SameSite=Lax, and expires exactly when the token does, so
// server-side routing logic can gate access without seeing the credential.
//
// # Architecture boundaries
//
// This package owns session state and the cookie shape. It does NOT perform
// HTTP calls, decide redirects, or verify token signatures — the backend is
// the verifier; only the expiration and identity claims are read here.
//
// # What this package must NOT do
//
//   - Import webcore or any sibling package.
//   - Put the access token into the cookie.
//   - Persist the two-factor pending state anywhere (it is in-memory only;
//     abandoning the flow orphans it without ever establishing a session).
package session
