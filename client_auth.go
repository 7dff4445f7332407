package webcore

import (
	"context"
	"net/http"
	"net/url"
)

const (
	pathLogin          = "/user-service/v1/auth/login"
	pathLogin2FA       = "/user-service/v1/auth/login2FA"
	pathGoogleCallback = "/user-service/v1/social/auth/google-callback"
	pathRegister       = "/user-service/v1/auth/register"
	pathForgotPassword = "/user-service/v1/auth/forgot-password"
	pathLogout         = "/user-service/v1/auth/logout"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type login2FARequest struct {
	UserID   string `json:"userId"`
	Token    string `json:"token"`
	Passcode string `json:"passcode"`
}

// Login authenticates with username and password. Without a second factor
// the session is established immediately and the result carries the marker
// cookie. With two-factor enabled the returned token is only a pre-auth
// token: it is held in memory for [Client.ConfirmLogin2FA] and no session
// exists until the passcode is confirmed.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var result LoginResult
	err := c.post(ctx, pathLogin, loginRequest{Username: username, Password: password}, &result)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventLoginFailure,
			Success:   false,
			Error:     Message(err, "login failed"),
		})
		return nil, err
	}

	if result.TwoFactorAuthenticationEnabled {
		c.session.HoldPending(result.AccessToken, result.UserID)
		c.metrics.Inc(MetricLogin2FARequired)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventLogin2FARequired,
			UserID:    result.UserID,
			Success:   true,
		})
		return &result, nil
	}

	cookie, err := c.startSession(ctx, result.AccessToken)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventLoginFailure,
			UserID:    result.UserID,
			Success:   false,
			Error:     err.Error(),
		})
		return nil, err
	}
	result.Cookie = cookie

	c.metrics.Inc(MetricLoginSuccess)
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventLoginSuccess,
		UserID:    result.UserID,
		Success:   true,
	})
	return &result, nil
}

// ConfirmLogin2FA completes a pending two-factor login with the TOTP
// passcode. Fails with [ErrTwoFactorNotPending] when no login is awaiting a
// second factor. On success the pending state is consumed and the session is
// established from the final token.
func (c *Client) ConfirmLogin2FA(ctx context.Context, passcode string) (*LoginResult, error) {
	token, userID, ok := c.session.Pending()
	if !ok {
		return nil, ErrTwoFactorNotPending
	}

	var result LoginResult
	err := c.post(ctx, pathLogin2FA, login2FARequest{
		UserID:   userID,
		Token:    token,
		Passcode: passcode,
	}, &result)
	if err != nil {
		c.metrics.Inc(MetricLogin2FAFailure)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventLogin2FAFailure,
			UserID:    userID,
			Success:   false,
			Error:     Message(err, "two-factor confirmation failed"),
		})
		return nil, err
	}

	cookie, err := c.startSession(ctx, result.AccessToken)
	if err != nil {
		c.metrics.Inc(MetricLogin2FAFailure)
		return nil, err
	}
	result.Cookie = cookie

	c.metrics.Inc(MetricLogin2FASuccess)
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventLogin2FASuccess,
		UserID:    result.UserID,
		Success:   true,
	})
	return &result, nil
}

// LoginWithGoogle exchanges an OAuth authorization code for a session. The
// backend performs the code exchange; the client only establishes the
// resulting session.
func (c *Client) LoginWithGoogle(ctx context.Context, code string) (*LoginResult, error) {
	query := url.Values{}
	query.Set("code", code)

	var result LoginResult
	if err := c.get(ctx, pathGoogleCallback, query, &result); err != nil {
		c.metrics.Inc(MetricLoginFailure)
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventLoginFailure,
			Success:   false,
			Error:     Message(err, "google login failed"),
			Metadata:  map[string]string{"provider": "google"},
		})
		return nil, err
	}

	cookie, err := c.startSession(ctx, result.AccessToken)
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return nil, err
	}
	result.Cookie = cookie

	c.metrics.Inc(MetricLoginSuccess)
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventLoginSuccess,
		UserID:    result.UserID,
		Success:   true,
		Metadata:  map[string]string{"provider": "google"},
	})
	return &result, nil
}

// Register creates a new account. No session is established; the user logs
// in afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := c.post(ctx, pathRegister, req, nil); err != nil {
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventRegisterFailure,
			Success:   false,
			Error:     Message(err, "registration failed"),
		})
		return err
	}
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventRegisterSuccess,
		Success:   true,
	})
	return nil
}

// RequestPasswordReset asks the backend to mail a reset link. The response
// is identical whether or not the address exists.
func (c *Client) RequestPasswordReset(ctx context.Context, username string) error {
	err := c.post(ctx, pathForgotPassword, map[string]string{"username": username}, nil)
	if err != nil {
		c.emitAudit(ctx, AuditEvent{
			EventType: auditEventPasswordReset,
			Success:   false,
			Error:     Message(err, "password reset request failed"),
		})
		return err
	}
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventPasswordReset,
		Success:   true,
	})
	return nil
}

// Logout ends the session voluntarily. The backend call is best-effort: the
// local session is cleared and the expired marker cookie returned even when
// the backend rejects or cannot be reached.
func (c *Client) Logout(ctx context.Context) *http.Cookie {
	userID, _ := c.session.Identity()

	// Close the generation first so a 401 on the logout call itself cannot
	// trigger the forced-logout path.
	c.invalidated.Store(true)

	if _, ok := c.session.Token(); ok {
		_ = c.post(ctx, pathLogout, nil, nil)
	}

	cookie := c.session.End()

	c.metrics.Inc(MetricLogout)
	c.emitAudit(ctx, AuditEvent{
		EventType: auditEventLogout,
		UserID:    userID,
		Success:   true,
	})
	return cookie
}
