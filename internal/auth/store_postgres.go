// Copyright (c) 2026 Kaede CMS. All rights reserved.

// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via [dberr.Wrap] so no storage detail leaks to the
// client.

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ymiyake/kaede/internal/platform/database/schema"
	"github.com/ymiyake/kaede/internal/platform/dberr"
)

// Client-facing messages for account storage failures.
const (
	msgUserNotFound   = "ユーザーが見つかりません"
	msgUserStoreError = "ユーザー情報取得中にエラーが発生しました"
)

// PostgresAccountRepository implements [AccountRepository] using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates the PostgreSQL implementation of the
// AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// FindByID retrieves an account by its identity-provider subject.
//
// # Returns
//
// Returns [*UserAccount] if found, or [apperr.NotFound] if no account exists.
func (repository *PostgresAccountRepository) FindByID(ctx context.Context, id string) (*UserAccount, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UserAccount.Columns(), ", "), schema.UserAccount.Table, schema.UserAccount.ID,
	)

	account := &UserAccount{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&account.ID,
		&account.Email,
		&account.Name,
		&account.Role,
		&account.IsActive,
		&account.LastLoginAt,
		&account.LastLogoutAt,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, msgUserNotFound, msgUserStoreError)
	}

	return account, nil
}

// Create persists a new account record into the users.account table.
func (repository *PostgresAccountRepository) Create(ctx context.Context, account *UserAccount) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Email, schema.UserAccount.Name,
		schema.UserAccount.Role, schema.UserAccount.IsActive, schema.UserAccount.LastLoginAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	if account.LastLoginAt.IsZero() {
		account.LastLoginAt = now
	}
	account.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		account.ID,
		account.Email,
		account.Name,
		account.Role,
		account.IsActive,
		account.LastLoginAt,
		account.CreatedAt,
		account.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, msgUserNotFound, msgUserStoreError)
	}

	return nil
}

// BumpLastLogin sets lastLoginAt on an existing account.
func (repository *PostgresAccountRepository) BumpLastLogin(ctx context.Context, id string, at time.Time) error {
	return repository.touch(ctx, id, schema.UserAccount.LastLoginAt, at)
}

// BumpLastLogout sets lastLogoutAt on an existing account.
func (repository *PostgresAccountRepository) BumpLastLogout(ctx context.Context, id string, at time.Time) error {
	return repository.touch(ctx, id, schema.UserAccount.LastLogoutAt, at)
}

// touch updates a single timestamp column on an account row.
//
// The column name always comes from the schema constants, never caller
// input, so direct interpolation is safe.
func (repository *PostgresAccountRepository) touch(ctx context.Context, id, column string, at time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = $2 WHERE %s = $3`,
		schema.UserAccount.Table, column, schema.UserAccount.UpdatedAt, schema.UserAccount.ID,
	)

	tag, err := repository.pool.Exec(ctx, query, at, time.Now(), id)
	if err != nil {
		return dberr.Wrap(err, msgUserNotFound, msgUserStoreError)
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, msgUserNotFound, msgUserStoreError)
	}

	return nil
}
