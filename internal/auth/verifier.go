// Copyright (c) 2026 Kaede CMS. All rights reserved.

package auth

import (
	"context"

	"github.com/ymiyake/kaede/internal/platform/sec"
)

// TokenVerifier layers revocation checking on top of signature verification.
//
// # Flow
//
//  1. [sec.TokenService.Verify] checks signature, issuer, and expiry. Its
//     failures (token_invalid, token_expired) pass through unchanged.
//  2. The revocation list is consulted with the token's JTI. A hit yields
//     the token_revoked diagnostic.
//
// The middleware sees a single [middleware.Verifier]; it never learns which
// layer rejected the token.
type TokenVerifier struct {
	tokens      *sec.TokenService
	revocations RevocationList
}

// NewTokenVerifier constructs the composite verifier.
func NewTokenVerifier(tokens *sec.TokenService, revocations RevocationList) *TokenVerifier {
	return &TokenVerifier{tokens: tokens, revocations: revocations}
}

// VerifyToken verifies a raw bearer token string into identity claims.
func (verifier *TokenVerifier) VerifyToken(ctx context.Context, tokenString string) (*sec.IdentityClaims, error) {
	claims, err := verifier.tokens.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	revoked, err := verifier.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		// Fail closed: if the revocation list is unreachable we cannot prove
		// the token is still live.
		return nil, &sec.VerifyError{Code: sec.VerifyCodeInvalid, Message: "Invalid token", Cause: err}
	}
	if revoked {
		return nil, sec.NewRevokedError()
	}

	return claims, nil
}
