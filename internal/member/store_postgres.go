// Copyright (c) 2026 Kaede CMS. All rights reserved.

package member

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/ymiyake/kaede/internal/platform/database/schema"
	"github.com/ymiyake/kaede/internal/platform/dberr"
)

// Client-facing messages for member storage failures.
const (
	msgMemberNotFound   = "メンバーが見つかりません"
	msgMemberStoreError = "メンバー取得中にエラーが発生しました"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of the
// member Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildFilter renders the filter into a WHERE clause and its arguments.
func buildFilter(filter Filter) (string, []any) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, schema.CoreMember.Category+" = $"+strconv.Itoa(len(args)))
	}

	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conditions = append(conditions, schema.CoreMember.IsActive+" = $"+strconv.Itoa(len(args)))
	}

	return strings.Join(conditions, " AND "), args
}

// List returns one page of members plus the total count under the same
// filter. Page and count queries run concurrently.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Member, int, error) {
	whereClause, args := buildFilter(filter)

	pageQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(schema.CoreMember.Columns(), ", "), schema.CoreMember.Table,
		whereClause, schema.CoreMember.CreatedAt, len(args)+1, len(args)+2,
	)
	pageArgs := append(append([]any{}, args...), limit, offset)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CoreMember.Table, whereClause)

	var (
		members []*Member
		total   int
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		rows, err := repository.pool.Query(groupCtx, pageQuery, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			person := &Member{}
			if err := rows.Scan(
				&person.ID, &person.Name, &person.Category, &person.Position,
				&person.Description, &person.ProfileImageURL, &person.IsActive,
				&person.CreatedAt, &person.UpdatedAt,
			); err != nil {
				return err
			}
			members = append(members, person)
		}
		return rows.Err()
	})

	group.Go(func() error {
		return repository.pool.QueryRow(groupCtx, countQuery, args...).Scan(&total)
	})

	if err := group.Wait(); err != nil {
		return nil, 0, dberr.Wrap(err, msgMemberNotFound, "メンバー一覧取得中にエラーが発生しました")
	}

	return members, total, nil
}

// FindByID retrieves a single member.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreMember.Columns(), ", "), schema.CoreMember.Table, schema.CoreMember.ID,
	)

	person := &Member{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&person.ID, &person.Name, &person.Category, &person.Position,
		&person.Description, &person.ProfileImageURL, &person.IsActive,
		&person.CreatedAt, &person.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, msgMemberNotFound, msgMemberStoreError)
	}

	return person, nil
}

// Create persists a new member into the core.member table.
func (repository *PostgresRepository) Create(ctx context.Context, person *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.CoreMember.Table, strings.Join(schema.CoreMember.Columns(), ", "),
	)

	now := time.Now()
	if person.CreatedAt.IsZero() {
		person.CreatedAt = now
	}
	person.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		person.ID, person.Name, person.Category, person.Position,
		person.Description, person.ProfileImageURL, person.IsActive,
		person.CreatedAt, person.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, msgMemberNotFound, "メンバー作成中にエラーが発生しました")
	}

	return nil
}

// Update persists the mutable fields of an existing member.
func (repository *PostgresRepository) Update(ctx context.Context, person *Member) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7
		WHERE %s = $8`,
		schema.CoreMember.Table,
		schema.CoreMember.Name, schema.CoreMember.Category, schema.CoreMember.Position,
		schema.CoreMember.Description, schema.CoreMember.ProfileImageURL,
		schema.CoreMember.IsActive, schema.CoreMember.UpdatedAt, schema.CoreMember.ID,
	)

	person.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		person.Name, person.Category, person.Position, person.Description,
		person.ProfileImageURL, person.IsActive, person.UpdatedAt, person.ID,
	)

	if err != nil {
		return dberr.Wrap(err, msgMemberNotFound, "メンバー更新中にエラーが発生しました")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, msgMemberNotFound, "メンバー更新中にエラーが発生しました")
	}

	return nil
}

// Delete removes a member permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreMember.Table, schema.CoreMember.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, msgMemberNotFound, "メンバー削除中にエラーが発生しました")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, msgMemberNotFound, "メンバー削除中にエラーが発生しました")
	}

	return nil
}
