// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package sec provides cryptographic primitives and identity-token handling.
//
// # Architecture
//
// This package isolates security-sensitive code (bearer parsing, JWT
// verification) from the domain logic. The concrete [TokenService] stands in
// for the external identity provider: it verifies opaque token strings into
// [IdentityClaims], and in development and test environments it can also mint
// them.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ymiyake/kaede/pkg/uuidv7"
)

// Verifier failure categories. These mirror the diagnostics an external
// identity provider reports and are terminal per request — never retried.
const (
	VerifyCodeInvalid = "token_invalid"
	VerifyCodeExpired = "token_expired"
	VerifyCodeRevoked = "token_revoked"
)

// VerifyError is the typed authentication failure produced by token
// verification. It carries the provider's diagnostic code and message.
type VerifyError struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *VerifyError) Error() string { return e.Message }

// Unwrap allows [errors.Is] to reach the underlying jwt parse error.
func (e *VerifyError) Unwrap() error { return e.Cause }

// NewRevokedError returns the VerifyError reported for tokens that were
// invalidated by an explicit logout.
func NewRevokedError() *VerifyError {
	return &VerifyError{Code: VerifyCodeRevoked, Message: "Token has been revoked"}
}

// IdentityClaims is the payload embedded inside an identity token.
//
// The subject (uid), email, and display name travel inside the token so the
// resolver can synthesize a brand-new account on first login without a second
// round-trip to the identity provider.
type IdentityClaims struct {
	jwt.RegisteredClaims

	Email string `json:"email"`
	Name  string `json:"name"`
}

// TokenService verifies (and, for development, issues) HS256 identity tokens.
type TokenService struct {
	secret []byte
	issuer string
}

// NewTokenService creates a TokenService with the given signing secret.
func NewTokenService(secret, issuer string) *TokenService {
	return &TokenService{secret: []byte(secret), issuer: issuer}
}

// Issue creates a signed identity token for the given subject.
//
// # Scope
//
// Production deployments receive tokens minted by the external identity
// provider; Issue exists for local development and for the test suite.
func (service *TokenService) Issue(subject, email, name string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuidv7.New(),
			Subject:   subject,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email: email,
		Name:  name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and validity of an identity token string.
//
// # Returns
//   - *IdentityClaims on success.
//   - *VerifyError classifying the failure as expired or invalid. Revocation
//     is layered on top by the composite verifier in the auth domain, which
//     consults the revocation list after signature verification.
func (service *TokenService) Verify(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer), jwt.WithLeeway(60*time.Second))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, &VerifyError{Code: VerifyCodeExpired, Message: "Token has expired", Cause: err}
		}
		return nil, &VerifyError{Code: VerifyCodeInvalid, Message: "Invalid token", Cause: err}
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, &VerifyError{Code: VerifyCodeInvalid, Message: "Invalid token"}
	}

	return claims, nil
}

// RemainingLife returns how long the claims stay valid from now.
// It reports zero for already-expired or unbounded tokens.
func (claims *IdentityClaims) RemainingLife() time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}
