// Copyright (c) 2026 Kaede CMS. All rights reserved.

// Package migration applies the SQL schema migrations at startup.
//
// The server refuses to take traffic on a schema it does not understand, so
// [RunUp] is called from main before the HTTP listener starts. Migrations
// are plain up/down .sql pairs under data/migrations, executed through
// golang-migrate.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers the "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// file source reads .sql files from disk.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending UP migration from migrationsPath against the
// database at dsn. It is idempotent: a schema that is already current is not
// an error.
//
// A dirty schema (a previous migration died halfway) aborts startup; that
// state needs a human, not a retry loop.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	migrator.Log = &migrateLogger{logger: logger}

	defer func() {
		if sourceErr, dbErr := migrator.Close(); sourceErr != nil || dbErr != nil {
			logger.Error("migration_close_failed",
				slog.Any("source_error", sourceErr),
				slog.Any("db_error", dbErr),
			)
		}
	}()

	version, dirty, err := migrator.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("migration_starting_from_empty_schema")
	case err != nil:
		return fmt.Errorf("migration: failed to read schema version: %w", err)
	case dirty:
		return fmt.Errorf("migration: schema is dirty at version %d, resolve manually before restarting", version)
	default:
		logger.Info("migration_starting", slog.Uint64("schema_version", uint64(version)))
	}

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_schema_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	if applied, _, err := migrator.Version(); err == nil {
		logger.Info("migration_applied", slog.Uint64("schema_version", uint64(applied)))
	}

	return nil
}

// pgx5URL rewrites a postgres:// or postgresql:// DSN onto the pgx5://
// scheme golang-migrate's pgx/v5 driver registers. Other DSNs pass through.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if rest, found := strings.CutPrefix(dsn, scheme); found {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog. Migration
// chatter goes to debug; real failures surface as returned errors.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool { return false }
