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

type NoticeRepository struct {
	db *pgxpool.Pool
}

func NewNoticeRepository(db *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) Pool() *pgxpool.Pool {
	return r.db
}

const noticeColumns = `
	id, title, body, pinned, view_count, created_at, updated_at
`

func scanNotice(row pgx.Row) (*model.Notice, error) {
	var n model.Notice

	err := row.Scan(
		&n.ID,
		&n.Title,
		&n.Body,
		&n.Pinned,
		&n.ViewCount,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

func (r *NoticeRepository) Create(ctx context.Context, ext RepoExtension, notice *model.Notice) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO content.notices (id, title, body, pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING created_at, updated_at
	`

	err := ext.QueryRow(ctx, query,
		notice.ID,
		notice.Title,
		notice.Body,
		notice.Pinned,
		time.Now(),
	).Scan(&notice.CreatedAt, &notice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create notice: %w", err)
	}

	return nil
}

// GetByID возвращает объявление и попутно инкрементирует счётчик просмотров.
func (r *NoticeRepository) GetByID(ctx context.Context, ext RepoExtension, id uuid.UUID, countView bool) (*model.Notice, error) {
	if ext == nil {
		ext = r.db
	}

	var query string

	if countView {
		query = `
			UPDATE content.notices
			SET view_count = view_count + 1
			WHERE id = $1 AND deleted_at IS NULL
			RETURNING ` + noticeColumns
	} else {
		query = `
			SELECT ` + noticeColumns + `
			FROM content.notices
			WHERE id = $1 AND deleted_at IS NULL
		`
	}

	notice, err := scanNotice(ext.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}

		return nil, fmt.Errorf("failed to get notice by id: %w", err)
	}

	return notice, nil
}

func (r *NoticeRepository) Update(ctx context.Context, ext RepoExtension, id uuid.UUID, upd *model.NoticeUpdateRequest) (*model.Notice, error) {
	if ext == nil {
		ext = r.db
	}

	query := "UPDATE content.notices SET updated_at = $1"
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

	if upd.Pinned != nil {
		query += fmt.Sprintf(", pinned = $%d", argIndex)
		args = append(args, *upd.Pinned)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL RETURNING "+noticeColumns, argIndex)
	args = append(args, id)

	notice, err := scanNotice(ext.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNoticeNotFound
		}

		return nil, fmt.Errorf("failed to update notice: %w", err)
	}

	return notice, nil
}

// List: закреплённые объявления всегда идут первыми.
func (r *NoticeRepository) List(ctx context.Context, ext RepoExtension, limit, offset int) ([]model.Notice, int, error) {
	if ext == nil {
		ext = r.db
	}

	var total int
	if err := ext.QueryRow(ctx, "SELECT COUNT(*) FROM content.notices WHERE deleted_at IS NULL").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notices: %w", err)
	}

	const query = `
		SELECT ` + noticeColumns + `
		FROM content.notices
		WHERE deleted_at IS NULL
		ORDER BY pinned DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ext.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var notices []model.Notice

	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notice: %w", err)
		}

		notices = append(notices, *notice)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating notice rows: %w", err)
	}

	return notices, total, nil
}

func (r *NoticeRepository) Delete(ctx context.Context, ext RepoExtension, id uuid.UUID) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE content.notices
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := ext.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNoticeNotFound
	}

	return nil
}

func (r *NoticeRepository) InsertAttachment(ctx context.Context, ext RepoExtension, att *model.Attachment) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO content.attachments (id, notice_id, file_name, content_type, size, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err := ext.QueryRow(ctx, query,
		att.ID,
		att.NoticeID,
		att.FileName,
		att.ContentType,
		att.Size,
		att.StorageKey,
		time.Now(),
	).Scan(&att.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", err)
	}

	return nil
}

func (r *NoticeRepository) SelectAttachment(ctx context.Context, ext RepoExtension, id uuid.UUID) (*model.Attachment, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT id, notice_id, file_name, content_type, size, storage_key, created_at
		FROM content.attachments
		WHERE id = $1
	`

	var att model.Attachment

	err := ext.QueryRow(ctx, query, id).Scan(
		&att.ID,
		&att.NoticeID,
		&att.FileName,
		&att.ContentType,
		&att.Size,
		&att.StorageKey,
		&att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttachmentNotFound
		}

		return nil, fmt.Errorf("failed to select attachment: %w", err)
	}

	return &att, nil
}

func (r *NoticeRepository) SelectAttachmentsByNotice(ctx context.Context, ext RepoExtension, noticeID uuid.UUID) ([]model.Attachment, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT id, notice_id, file_name, content_type, size, storage_key, created_at
		FROM content.attachments
		WHERE notice_id = $1
		ORDER BY created_at
	`

	rows, err := ext.Query(ctx, query, noticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	var attachments []model.Attachment

	for rows.Next() {
		var att model.Attachment

		err := rows.Scan(
			&att.ID,
			&att.NoticeID,
			&att.FileName,
			&att.ContentType,
			&att.Size,
			&att.StorageKey,
			&att.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}

		attachments = append(attachments, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachment rows: %w", err)
	}

	return attachments, nil
}

func (r *NoticeRepository) DeleteAttachment(ctx context.Context, ext RepoExtension, id uuid.UUID) error {
	if ext == nil {
		ext = r.db
	}

	result, err := ext.Exec(ctx, "DELETE FROM content.attachments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrAttachmentNotFound
	}

	return nil
}
