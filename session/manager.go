package session

import (
	"net/http"
	"sync"
	"time"
)

// Config defines the marker cookie shape.
type Config struct {
	CookieName string
	CookiePath string
	Secure     bool
}

// Manager holds the session fragments for one client instance. All methods
// are safe for concurrent use; callers must treat reads as potentially stale
// immediately after any suspension point, since a forced logout can clear the
// state between a read and its use.
type Manager struct {
	cfg Config

	mu        sync.RWMutex
	token     string
	userID    string
	firstName string

	pendingToken  string
	pendingUserID string
}

// NewManager creates a [Manager]. Zero-value config fields fall back to the
// cookie name "loggedIn" and path "/".
func NewManager(cfg Config) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = "loggedIn"
	}
	if cfg.CookiePath == "" {
		cfg.CookiePath = "/"
	}
	return &Manager{cfg: cfg}
}

// CookieName reports the marker cookie name.
func (m *Manager) CookieName() string {
	return m.cfg.CookieName
}

// Start establishes the session from a full access token: the token and
// identity fragments are held for header injection, any pending two-factor
// state is cleared, and the marker cookie is returned with its expiry set to
// the token's expiration claim. A token without that claim fails with
// [ErrTokenInvalid] and leaves the session untouched.
func (m *Manager) Start(token string) (*http.Cookie, error) {
	claims, expiresAt, err := decodeToken(token)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.token = token
	m.userID = claims.Subject
	m.firstName = claims.FirstName
	m.pendingToken = ""
	m.pendingUserID = ""
	m.mu.Unlock()

	return m.markerCookie(expiresAt), nil
}

// End clears all session fragments, pending state included, and returns an
// expired marker cookie for the host to set. End is idempotent.
func (m *Manager) End() *http.Cookie {
	m.mu.Lock()
	m.token = ""
	m.userID = ""
	m.firstName = ""
	m.pendingToken = ""
	m.pendingUserID = ""
	m.mu.Unlock()

	cookie := m.markerCookie(time.Unix(0, 0))
	cookie.Value = ""
	cookie.MaxAge = -1
	return cookie
}

// Token returns the held access token for header injection. The second
// return reports whether a token is held.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != ""
}

// Identity returns the held user id and first name fragments.
func (m *Manager) Identity() (userID, firstName string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userID, m.firstName
}

// HoldPending stores the two-factor intermediate token/user pair. The marker
// cookie is not touched: no session exists until [Manager.Start] runs with
// the final token.
func (m *Manager) HoldPending(token, userID string) {
	m.mu.Lock()
	m.pendingToken = token
	m.pendingUserID = userID
	m.mu.Unlock()
}

// Pending returns the two-factor intermediate state, if any.
func (m *Manager) Pending() (token, userID string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pendingToken, m.pendingUserID, m.pendingToken != ""
}

// MarkerPresent reports whether the request carries the logged-in marker
// cookie. It reads only the request, so it is usable from server-side
// execution contexts that never see the client-held token.
func (m *Manager) MarkerPresent(r *http.Request) bool {
	cookie, err := r.Cookie(m.cfg.CookieName)
	return err == nil && cookie.Value != ""
}

func (m *Manager) markerCookie(expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    "true",
		Path:     m.cfg.CookiePath,
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
