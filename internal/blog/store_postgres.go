// Copyright (c) 2026 Kaede CMS. All rights reserved.

package blog

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

// Client-facing messages for blog storage failures.
const (
	msgBlogNotFound   = "ブログが見つかりません"
	msgBlogStoreError = "ブログ取得中にエラーが発生しました"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of the
// blog Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// buildFilter renders the filter into a WHERE clause and its arguments.
// Placeholders are numbered from 1; the caller appends its own.
func buildFilter(filter Filter) (string, []any) {
	conditions := []string{"TRUE"}
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, schema.CoreBlog.Status+" = $"+strconv.Itoa(len(args)))
	}

	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, schema.CoreBlog.AuthorID+" = $"+strconv.Itoa(len(args)))
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		placeholder := "$" + strconv.Itoa(len(args))
		conditions = append(conditions, "("+schema.CoreBlog.Title+" ILIKE "+placeholder+
			" OR "+schema.CoreBlog.Content+" ILIKE "+placeholder+")")
	}

	return strings.Join(conditions, " AND "), args
}

// List returns one page of posts matching the filter, newest first, plus
// the total count under the same filter.
//
// The page and count queries are independent, so they run concurrently on
// separate pool connections.
func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Blog, int, error) {
	whereClause, args := buildFilter(filter)

	pageQuery := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE %s
		ORDER BY %s DESC
		LIMIT $%d OFFSET $%d`,
		strings.Join(schema.CoreBlog.Columns(), ", "), schema.CoreBlog.Table,
		whereClause, schema.CoreBlog.CreatedAt, len(args)+1, len(args)+2,
	)
	pageArgs := append(append([]any{}, args...), limit, offset)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s`, schema.CoreBlog.Table, whereClause)

	var (
		posts []*Blog
		total int
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		rows, err := repository.pool.Query(groupCtx, pageQuery, pageArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			post := &Blog{}
			if err := rows.Scan(
				&post.ID, &post.Slug, &post.Title, &post.Content, &post.Status,
				&post.ImageURL, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
			); err != nil {
				return err
			}
			posts = append(posts, post)
		}
		return rows.Err()
	})

	group.Go(func() error {
		return repository.pool.QueryRow(groupCtx, countQuery, args...).Scan(&total)
	})

	if err := group.Wait(); err != nil {
		return nil, 0, dberr.Wrap(err, msgBlogNotFound, "ブログ一覧取得中にエラーが発生しました")
	}

	return posts, total, nil
}

// FindByID retrieves a single post.
func (repository *PostgresRepository) FindByID(ctx context.Context, id string) (*Blog, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreBlog.Columns(), ", "), schema.CoreBlog.Table, schema.CoreBlog.ID,
	)

	post := &Blog{}
	err := repository.pool.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Slug, &post.Title, &post.Content, &post.Status,
		&post.ImageURL, &post.AuthorID, &post.CreatedAt, &post.UpdatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, msgBlogNotFound, msgBlogStoreError)
	}

	return post, nil
}

// Create persists a new post into the core.blog table.
func (repository *PostgresRepository) Create(ctx context.Context, post *Blog) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.CoreBlog.Table, strings.Join(schema.CoreBlog.Columns(), ", "),
	)

	now := time.Now()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		post.ID, post.Slug, post.Title, post.Content, post.Status,
		post.ImageURL, post.AuthorID, post.CreatedAt, post.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, msgBlogNotFound, "ブログ作成中にエラーが発生しました")
	}

	return nil
}

// Update persists the mutable fields of an existing post.
//
// Writes are last-write-wins: two concurrent updates do not conflict, the
// later commit simply overwrites the earlier one.
func (repository *PostgresRepository) Update(ctx context.Context, post *Blog) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $6`,
		schema.CoreBlog.Table,
		schema.CoreBlog.Title, schema.CoreBlog.Content, schema.CoreBlog.Status,
		schema.CoreBlog.ImageURL, schema.CoreBlog.UpdatedAt, schema.CoreBlog.ID,
	)

	post.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		post.Title, post.Content, post.Status, post.ImageURL, post.UpdatedAt, post.ID,
	)

	if err != nil {
		return dberr.Wrap(err, msgBlogNotFound, "ブログ更新中にエラーが発生しました")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, msgBlogNotFound, "ブログ更新中にエラーが発生しました")
	}

	return nil
}

// Delete removes a post permanently.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreBlog.Table, schema.CoreBlog.ID)

	tag, err := repository.pool.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, msgBlogNotFound, "ブログ削除中にエラーが発生しました")
	}

	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, msgBlogNotFound, "ブログ削除中にエラーが発生しました")
	}

	return nil
}
