package session

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func mintToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func newTestManager() *Manager {
	return NewManager(Config{CookieName: "loggedIn", CookiePath: "/", Secure: true})
}

func TestStartDerivesCookieExpiryFromToken(t *testing.T) {
	m := newTestManager()

	exp := time.Now().Add(45 * time.Minute).Truncate(time.Second)
	token := mintToken(t, jwt.MapClaims{
		"sub":       "user-1",
		"firstName": "Alice",
		"exp":       exp.Unix(),
	})

	cookie, err := m.Start(token)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if cookie.Name != "loggedIn" || cookie.Value != "true" {
		t.Fatalf("unexpected marker cookie %q=%q", cookie.Name, cookie.Value)
	}
	if !cookie.Expires.Equal(exp) {
		t.Fatalf("expected cookie expiry %v, got %v", exp, cookie.Expires)
	}
	if !cookie.HttpOnly || !cookie.Secure || cookie.SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	if cookie.Path != "/" {
		t.Fatalf("expected cookie path /, got %q", cookie.Path)
	}

	held, ok := m.Token()
	if !ok || held != token {
		t.Fatal("expected token to be held after Start")
	}
	userID, firstName := m.Identity()
	if userID != "user-1" || firstName != "Alice" {
		t.Fatalf("unexpected identity %q/%q", userID, firstName)
	}
}

func TestStartRejectsTokenWithoutExpiry(t *testing.T) {
	m := newTestManager()

	token := mintToken(t, jwt.MapClaims{"sub": "user-1"})

	if _, err := m.Start(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
	if _, ok := m.Token(); ok {
		t.Fatal("expected no session after rejected token")
	}
}

func TestStartRejectsGarbageToken(t *testing.T) {
	m := newTestManager()

	if _, err := m.Start("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestEndClearsEverythingAndExpiresCookie(t *testing.T) {
	m := newTestManager()

	token := mintToken(t, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := m.Start(token); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	cookie := m.End()
	if cookie.Value != "" || cookie.MaxAge != -1 {
		t.Fatalf("expected expired cookie, got %+v", cookie)
	}
	if cookie.Name != "loggedIn" {
		t.Fatalf("expected marker cookie name, got %q", cookie.Name)
	}

	if _, ok := m.Token(); ok {
		t.Fatal("expected no token after End")
	}
	userID, firstName := m.Identity()
	if userID != "" || firstName != "" {
		t.Fatal("expected identity cleared after End")
	}
	if _, _, ok := m.Pending(); ok {
		t.Fatal("expected pending state cleared after End")
	}

	// End is idempotent.
	second := m.End()
	if second.MaxAge != -1 {
		t.Fatal("expected second End to return expired cookie")
	}
}

func TestPendingHeldUntilStart(t *testing.T) {
	m := newTestManager()

	m.HoldPending("pre-auth-token", "user-7")

	token, userID, ok := m.Pending()
	if !ok || token != "pre-auth-token" || userID != "user-7" {
		t.Fatalf("unexpected pending state %q/%q/%v", token, userID, ok)
	}
	if _, held := m.Token(); held {
		t.Fatal("pending state must not establish a session")
	}

	full := mintToken(t, jwt.MapClaims{
		"sub": "user-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	if _, err := m.Start(full); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, _, ok := m.Pending(); ok {
		t.Fatal("expected pending state consumed by Start")
	}
}

func TestMarkerPresent(t *testing.T) {
	m := newTestManager()

	r := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
	if m.MarkerPresent(r) {
		t.Fatal("expected no marker on bare request")
	}

	r.AddCookie(&http.Cookie{Name: "loggedIn", Value: "true"})
	if !m.MarkerPresent(r) {
		t.Fatal("expected marker to be detected")
	}

	empty := httptest.NewRequest(http.MethodGet, "/en/dashboard", nil)
	empty.AddCookie(&http.Cookie{Name: "loggedIn", Value: ""})
	if m.MarkerPresent(empty) {
		t.Fatal("expected empty marker value to count as absent")
	}
}

func TestManagerDefaults(t *testing.T) {
	m := NewManager(Config{})
	if m.CookieName() != "loggedIn" {
		t.Fatalf("expected default cookie name loggedIn, got %q", m.CookieName())
	}
}
