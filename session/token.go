package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid is returned by [Manager.Start] when the token cannot be
// parsed or does not carry an expiration claim. A session must never be
// established from such a token.
var ErrTokenInvalid = errors.New("token does not contain an expiration time")

type tokenClaims struct {
	FirstName string `json:"firstName"`
	UserName  string `json:"userName"`
	jwt.RegisteredClaims
}

// decodeToken reads the expiration and identity claims without verifying the
// signature. The backend signed and will verify the token; the client only
// needs the claims to derive the cookie lifetime and display identity.
func decodeToken(token string) (*tokenClaims, time.Time, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if claims.ExpiresAt == nil {
		return nil, time.Time{}, ErrTokenInvalid
	}
	return claims, claims.ExpiresAt.Time, nil
}
