package webcore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"
)

type authBackend struct {
	t            *testing.T
	twoFactor    bool
	wantPasscode string

	loginCalls  int
	login2FACed bool
	got2FABody  login2FARequest
}

func (b *authBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /user-service/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.loginCalls++
		var body loginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]string{
					{"errorCode": "AUTH_001", "errorMessage": "invalid credentials"},
				},
			})
			return
		}

		if b.twoFactor {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"accessToken":                    "pre-auth-opaque",
				"userId":                         "user-1",
				"twoFactorAuthenticationEnabled": true,
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": mintTestToken(b.t, "user-1", "Alice", time.Now().Add(time.Hour)),
			"userId":      "user-1",
			"firstName":   "Alice",
		})
	})

	mux.HandleFunc("POST /user-service/v1/auth/login2FA", func(w http.ResponseWriter, r *http.Request) {
		b.login2FACed = true
		_ = json.NewDecoder(r.Body).Decode(&b.got2FABody)
		if b.got2FABody.Passcode != b.wantPasscode {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"errors": []map[string]string{
					{"errorCode": "AUTH_2FA", "errorMessage": "invalid passcode"},
				},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": mintTestToken(b.t, "user-1", "Alice", time.Now().Add(time.Hour)),
			"userId":      "user-1",
			"firstName":   "Alice",
		})
	})

	mux.HandleFunc("GET /user-service/v1/social/auth/google-callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("code") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accessToken": mintTestToken(b.t, "user-9", "Grace", time.Now().Add(time.Hour)),
			"userId":      "user-9",
			"firstName":   "Grace",
		})
	})

	mux.HandleFunc("POST /user-service/v1/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("POST /user-service/v1/auth/register", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	return mux
}

func TestLoginWithoutTwoFactorEstablishesSession(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	result, err := c.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if result.Cookie == nil || result.Cookie.Value != "true" {
		t.Fatal("expected marker cookie on direct login")
	}
	if _, ok := c.session.Token(); !ok {
		t.Fatal("expected token held after login")
	}
	userID, firstName := c.session.Identity()
	if userID != "user-1" || firstName != "Alice" {
		t.Fatalf("unexpected identity %q/%q", userID, firstName)
	}
	if got := c.metrics.Value(MetricLoginSuccess); got != 1 {
		t.Fatalf("expected login success metric 1, got %d", got)
	}
}

func TestLoginFailurePropagatesBackendMessage(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	if err == nil {
		t.Fatal("expected login error")
	}
	if got := Message(err, "login failed"); got != "AUTH_001: invalid credentials" {
		t.Fatalf("unexpected message %q", got)
	}
	if _, ok := c.session.Token(); ok {
		t.Fatal("expected no session after failed login")
	}
}

func TestTwoFactorLoginFlow(t *testing.T) {
	backend := &authBackend{t: t, twoFactor: true, wantPasscode: "123456"}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	result, err := c.Login(context.Background(), "alice@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !result.TwoFactorAuthenticationEnabled {
		t.Fatal("expected two-factor pending result")
	}
	if result.Cookie != nil {
		t.Fatal("expected no cookie while second factor pending")
	}
	if _, ok := c.session.Token(); ok {
		t.Fatal("expected no session while second factor pending")
	}

	confirmed, err := c.ConfirmLogin2FA(context.Background(), "123456")
	if err != nil {
		t.Fatalf("ConfirmLogin2FA failed: %v", err)
	}
	if confirmed.Cookie == nil {
		t.Fatal("expected marker cookie after confirmation")
	}
	if _, ok := c.session.Token(); !ok {
		t.Fatal("expected session after confirmation")
	}

	if backend.got2FABody.UserID != "user-1" || backend.got2FABody.Token != "pre-auth-opaque" {
		t.Fatalf("unexpected 2FA request body %+v", backend.got2FABody)
	}
	if _, _, ok := c.session.Pending(); ok {
		t.Fatal("expected pending state consumed")
	}
}

func TestConfirmLogin2FAWithoutPendingState(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	if _, err := c.ConfirmLogin2FA(context.Background(), "123456"); !errors.Is(err, ErrTwoFactorNotPending) {
		t.Fatalf("expected ErrTwoFactorNotPending, got %v", err)
	}
	if backend.login2FACed {
		t.Fatal("expected no backend call without pending state")
	}
}

func TestLoginWithGoogle(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	result, err := c.LoginWithGoogle(context.Background(), "oauth-code")
	if err != nil {
		t.Fatalf("LoginWithGoogle failed: %v", err)
	}
	if result.Cookie == nil {
		t.Fatal("expected marker cookie")
	}
	userID, _ := c.session.Identity()
	if userID != "user-9" {
		t.Fatalf("unexpected identity %q", userID)
	}
}

func TestLogoutClearsSessionAndReturnsExpiredCookie(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	if _, err := c.Login(context.Background(), "alice@example.com", "correct-horse"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	cookie := c.Logout(context.Background())
	if cookie.MaxAge != -1 || cookie.Value != "" {
		t.Fatalf("expected expired marker cookie, got %+v", cookie)
	}
	if _, ok := c.session.Token(); ok {
		t.Fatal("expected session cleared after logout")
	}
	if got := c.metrics.Value(MetricLogout); got != 1 {
		t.Fatalf("expected logout metric 1, got %d", got)
	}
}

func TestLogoutWorksWithBackendDown(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})

	if _, err := c.Login(context.Background(), "alice@example.com", "correct-horse"); err != nil {
		done()
		t.Fatalf("Login failed: %v", err)
	}
	done() // backend and redis gone

	cookie := c.Logout(context.Background())
	if cookie.MaxAge != -1 {
		t.Fatal("expected expired cookie despite unreachable backend")
	}
	if _, ok := c.session.Token(); ok {
		t.Fatal("expected session cleared despite unreachable backend")
	}
}

func TestRegisterAndPasswordReset(t *testing.T) {
	backend := &authBackend{t: t}
	c, done := newTestClient(t, backend.handler(), testClientOptions{})
	defer done()

	err := c.Register(context.Background(), RegisterRequest{
		FirstName: "Alice",
		LastName:  "Doe",
		Username:  "alice@example.com",
		Password:  "correct-horse",
		Terms:     true,
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Reset endpoint is absent from the stub; the error must surface.
	if err := c.RequestPasswordReset(context.Background(), "alice@example.com"); err == nil {
		t.Fatal("expected error from missing reset endpoint")
	}
}

func TestRequestPasswordResetAuditsFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	sink := newCaptureSink(16)
	c, done := newTestClient(t, handler, testClientOptions{auditSink: sink})
	defer done()

	if err := c.RequestPasswordReset(context.Background(), "alice@example.com"); err == nil {
		t.Fatal("expected error from failing reset endpoint")
	}

	ev := waitForEvent(t, sink, auditEventPasswordReset)
	if ev.Success {
		t.Fatal("expected failure event")
	}
	if ev.Error == "" {
		t.Fatal("expected resolved error message on the event")
	}
}
