// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Services in this package orchestrate domain entities and interact with
// repositories through interfaces. They are technology-agnostic and know
// nothing about HTTP or SQL.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ymiyake/kaede/internal/platform/apperr"
	"github.com/ymiyake/kaede/internal/platform/sec"
)

// Service implements the account lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any change to token handling or
// account resolution must be reviewed by the security team.
type Service struct {
	accounts    AccountRepository
	revocations RevocationList
	verifier    *TokenVerifier
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accounts AccountRepository, revocations RevocationList, verifier *TokenVerifier) *Service {
	return &Service{
		accounts:    accounts,
		revocations: revocations,
		verifier:    verifier,
	}
}

// Login verifies an identity token and establishes the account session.
//
// # Parameters
//   - ctx: Context for storage operations.
//   - idToken: The raw identity token presented by the client.
//
// # Returns
//   - The stored [*UserAccount], freshly created on first login.
//   - [apperr.AuthenticationFailed] carrying the verifier's diagnostic if
//     the token is rejected.
//
// # Business Rules
//   - First login creates the account lazily: role is always 'user',
//     isActive is true, createdAt and lastLoginAt are both "now".
//   - Subsequent logins only bump lastLoginAt.
func (service *Service) Login(ctx context.Context, idToken string) (*UserAccount, error) {
	// ── 1. Token Verification ─────────────────────────────────────────────

	claims, err := service.verifier.VerifyToken(ctx, idToken)
	if err != nil {
		return nil, asAuthFailure(err)
	}

	currentTime := time.Now()

	// ── 2. Existing Account: Login Bump ───────────────────────────────────

	account, err := service.accounts.FindByID(ctx, claims.Subject)
	if err == nil {
		if bumpErr := service.accounts.BumpLastLogin(ctx, account.ID, currentTime); bumpErr != nil {
			return nil, bumpErr
		}
		account.LastLoginAt = currentTime
		return account, nil
	}

	if !isNotFound(err) {
		return nil, err
	}

	// ── 3. First Login: Lazy Account Creation ─────────────────────────────

	// The display name falls back to the email when the provider sends none.
	name := claims.Name
	if name == "" {
		name = claims.Email
	}

	account = &UserAccount{
		ID:          claims.Subject,
		Email:       claims.Email,
		Name:        name,
		Role:        sec.RoleUser,
		IsActive:    true,
		LastLoginAt: currentTime,
		CreatedAt:   currentTime,
	}

	if err := service.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Logout records the logout time and revokes the presented token.
//
// # Flow
//
//  1. The account must exist; logging out an unknown subject is a 404.
//  2. lastLogoutAt is bumped.
//  3. The token's JTI goes on the revocation list with a TTL equal to the
//     token's remaining life, so it is rejected from now until it would
//     have expired on its own.
func (service *Service) Logout(ctx context.Context, claims *sec.IdentityClaims) error {
	if _, err := service.accounts.FindByID(ctx, claims.Subject); err != nil {
		return err
	}

	if err := service.accounts.BumpLastLogout(ctx, claims.Subject, time.Now()); err != nil {
		return err
	}

	if err := service.revocations.Revoke(ctx, claims.ID, claims.RemainingLife()); err != nil {
		return fmt.Errorf("auth_service_revoke_failed: %w", err)
	}

	return nil
}

// CurrentUser returns the stored account for an authenticated subject.
//
// It never bumps lastLoginAt: reading the profile is not a login.
//
// # Returns
//   - [apperr.NotFound] if no account exists for the subject.
//   - [apperr.DataIntegrity] if the stored record is missing the name or
//     carries an unknown role; downstream policy decisions cannot safely
//     run on such a record.
func (service *Service) CurrentUser(ctx context.Context, subject string) (*UserAccount, error) {
	account, err := service.accounts.FindByID(ctx, subject)
	if err != nil {
		return nil, err
	}

	if account.Name == "" || !account.Role.IsValid() {
		return nil, apperr.DataIntegrity("ユーザーデータが不正です")
	}

	return account, nil
}

// Resolve turns verified token claims into the caller [Principal].
//
// # Flow
//
// The stored account is authoritative for the role. A subject with no
// account yet (first authenticated request arrives before any login call)
// is synthesized and persisted with role 'user', without a login bump.
func (service *Service) Resolve(ctx context.Context, claims *sec.IdentityClaims) (Principal, error) {
	account, err := service.accounts.FindByID(ctx, claims.Subject)

	if err != nil {
		if !isNotFound(err) {
			return Principal{}, err
		}

		name := claims.Name
		if name == "" {
			name = claims.Email
		}

		account = &UserAccount{
			ID:       claims.Subject,
			Email:    claims.Email,
			Name:     name,
			Role:     sec.RoleUser,
			IsActive: true,
		}

		if err := service.accounts.Create(ctx, account); err != nil {
			return Principal{}, err
		}
	}

	return Principal{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
		Role:  account.Role,
	}, nil
}

// SessionProfile returns the profile the admin dashboard bootstraps from.
//
// The dashboard treats every authenticated session as an administrator and
// never consults the stored role. Kept as-is for compatibility with the
// existing frontend; [Resolve] is the authoritative path for policy checks.
func (service *Service) SessionProfile(ctx context.Context, claims *sec.IdentityClaims) Principal {
	name := claims.Name
	if name == "" {
		name = claims.Email
	}

	return Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  name,
		Role:  sec.RoleAdmin,
	}
}

// asAuthFailure converts a verifier rejection into the 401 application
// error, passing the diagnostic message through to the client.
func asAuthFailure(err error) error {
	var verifyErr *sec.VerifyError
	if errors.As(err, &verifyErr) {
		failure := apperr.AuthenticationFailed(verifyErr.Message)
		failure.Cause = verifyErr
		return failure
	}
	return apperr.AuthenticationFailed("認証が必要です")
}

// isNotFound reports whether err is the 404 application error.
func isNotFound(err error) bool {
	appErr := apperr.As(err)
	return appErr != nil && appErr.Code == apperr.CodeNotFound
}
