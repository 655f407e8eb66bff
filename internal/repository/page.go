package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type PageRepository struct {
	db *pgxpool.Pool
}

func NewPageRepository(db *pgxpool.Pool) *PageRepository {
	return &PageRepository{db: db}
}

const pageColumns = `
	id, kind, title, body, media_url, display_order, published, created_at, updated_at
`

func scanPage(row pgx.Row) (*model.Page, error) {
	var p model.Page

	err := row.Scan(
		&p.ID,
		&p.Kind,
		&p.Title,
		&p.Body,
		&p.MediaURL,
		&p.DisplayOrder,
		&p.Published,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PageRepository) Create(ctx context.Context, ext RepoExtension, page *model.Page) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO content.pages (id, kind, title, body, media_url, display_order,
		                           published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	now := time.Now()

	err := ext.QueryRow(ctx, query,
		page.ID,
		page.Kind,
		page.Title,
		page.Body,
		page.MediaURL,
		page.DisplayOrder,
		page.Published,
		now,
		now,
	).Scan(&page.CreatedAt, &page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	return nil
}

func (r *PageRepository) GetByID(ctx context.Context, ext RepoExtension, id uuid.UUID) (*model.Page, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT ` + pageColumns + `
		FROM content.pages
		WHERE id = $1 AND deleted_at IS NULL
	`

	page, err := scanPage(ext.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPageNotFound
		}

		return nil, fmt.Errorf("failed to get page by id: %w", err)
	}

	return page, nil
}

func (r *PageRepository) Update(ctx context.Context, ext RepoExtension, id uuid.UUID, upd *model.PageUpdateRequest) (*model.Page, error) {
	if ext == nil {
		ext = r.db
	}

	query := "UPDATE content.pages SET updated_at = $1"
	args := []interface{}{time.Now()}
	argIndex := 2

	if upd.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIndex)
		args = append(args, *upd.Title)
		argIndex++
	}

	if upd.Body != nil {
		query += fmt.Sprintf(", body = $%d", argIndex)
		args = append(args, *upd.Body)
		argIndex++
	}

	if upd.MediaURL != nil {
		query += fmt.Sprintf(", media_url = $%d", argIndex)
		args = append(args, *upd.MediaURL)
		argIndex++
	}

	if upd.DisplayOrder != nil {
		query += fmt.Sprintf(", display_order = $%d", argIndex)
		args = append(args, *upd.DisplayOrder)
		argIndex++
	}

	if upd.Published != nil {
		query += fmt.Sprintf(", published = $%d", argIndex)
		args = append(args, *upd.Published)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL RETURNING "+pageColumns, argIndex)
	args = append(args, id)

	page, err := scanPage(ext.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPageNotFound
		}

		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	return page, nil
}

func (r *PageRepository) List(ctx context.Context, ext RepoExtension, params model.PageQueryParams) ([]model.Page, int, error) {
	if ext == nil {
		ext = r.db
	}

	where := " WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if params.Kind != "" {
		where += fmt.Sprintf(" AND kind = $%d", argIndex)
		args = append(args, params.Kind)
		argIndex++
	}

	if params.PublishedOnly {
		where += " AND published = TRUE"
	}

	var total int
	if err := ext.QueryRow(ctx, "SELECT COUNT(*) FROM content.pages"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count pages: %w", err)
	}

	query := "SELECT " + pageColumns + " FROM content.pages" + where + " ORDER BY display_order ASC, created_at DESC"

	rows, err := ext.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pages: %w", err)
	}
	defer rows.Close()

	var pages []model.Page

	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan page: %w", err)
		}

		pages = append(pages, *page)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating page rows: %w", err)
	}

	return pages, total, nil
}

func (r *PageRepository) Delete(ctx context.Context, ext RepoExtension, id uuid.UUID) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE content.pages
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := ext.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrPageNotFound
	}

	return nil
}
