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

type InquiryRepository struct {
	db *pgxpool.Pool
}

func NewInquiryRepository(db *pgxpool.Pool) *InquiryRepository {
	return &InquiryRepository{db: db}
}

const inquiryColumns = `
	id, title, content, author, email_ciphertext, is_secret, password_hash,
	is_answered, answer, answered_at, created_at, updated_at
`

func scanInquiry(row pgx.Row) (*model.Inquiry, error) {
	var inq model.Inquiry

	err := row.Scan(
		&inq.ID,
		&inq.Title,
		&inq.Content,
		&inq.Author,
		&inq.EmailCiphertext,
		&inq.IsSecret,
		&inq.PasswordHash,
		&inq.IsAnswered,
		&inq.Answer,
		&inq.AnsweredAt,
		&inq.CreatedAt,
		&inq.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &inq, nil
}

func (r *InquiryRepository) Create(ctx context.Context, ext RepoExtension, inq *model.Inquiry) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		INSERT INTO board.inquiries (id, title, content, author, email_ciphertext,
		                             is_secret, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	now := time.Now()

	err := ext.QueryRow(ctx, query,
		inq.ID,
		inq.Title,
		inq.Content,
		inq.Author,
		inq.EmailCiphertext,
		inq.IsSecret,
		inq.PasswordHash,
		now,
		now,
	).Scan(&inq.CreatedAt, &inq.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create inquiry: %w", err)
	}

	return nil
}

func (r *InquiryRepository) GetByID(ctx context.Context, ext RepoExtension, id uuid.UUID) (*model.Inquiry, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		SELECT ` + inquiryColumns + `
		FROM board.inquiries
		WHERE id = $1 AND deleted_at IS NULL
	`

	inq, err := scanInquiry(ext.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInquiryNotFound
		}

		return nil, fmt.Errorf("failed to get inquiry by id: %w", err)
	}

	return inq, nil
}

// Update - частичное обновление. Email и пароль приходят сюда уже в виде
// шифртекста/хэша, nil означает "оставить как есть".
func (r *InquiryRepository) Update(ctx context.Context, ext RepoExtension, id uuid.UUID, patch *model.InquiryPatch) (*model.Inquiry, error) {
	if ext == nil {
		ext = r.db
	}

	query := "UPDATE board.inquiries SET updated_at = $1"
	args := []interface{}{time.Now()}
	argIndex := 2

	if patch.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIndex)
		args = append(args, *patch.Title)
		argIndex++
	}

	if patch.Content != nil {
		query += fmt.Sprintf(", content = $%d", argIndex)
		args = append(args, *patch.Content)
		argIndex++
	}

	if patch.Author != nil {
		query += fmt.Sprintf(", author = $%d", argIndex)
		args = append(args, *patch.Author)
		argIndex++
	}

	if patch.EmailCiphertext != nil {
		query += fmt.Sprintf(", email_ciphertext = $%d", argIndex)
		args = append(args, *patch.EmailCiphertext)
		argIndex++
	}

	if patch.IsSecret != nil {
		query += fmt.Sprintf(", is_secret = $%d", argIndex)
		args = append(args, *patch.IsSecret)
		argIndex++
	}

	if patch.PasswordHash != nil {
		query += fmt.Sprintf(", password_hash = $%d", argIndex)
		args = append(args, patch.PasswordHash)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND deleted_at IS NULL RETURNING "+inquiryColumns, argIndex)
	args = append(args, id)

	inq, err := scanInquiry(ext.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInquiryNotFound
		}

		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}

	return inq, nil
}

// SetAnswer записывает ответ одним условным UPDATE: answered_at проставляется
// только при первом ответе (COALESCE), повторный ответ меняет лишь текст.
// Гонка двух "первых" ответов решается на стороне БД, без блокировок в сервисе.
func (r *InquiryRepository) SetAnswer(ctx context.Context, ext RepoExtension, id uuid.UUID, answer string) (*model.Inquiry, error) {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE board.inquiries
		SET answer      = $1,
		    is_answered = TRUE,
		    answered_at = COALESCE(answered_at, NOW()),
		    updated_at  = NOW()
		WHERE id = $2 AND deleted_at IS NULL
		RETURNING ` + inquiryColumns

	inq, err := scanInquiry(ext.QueryRow(ctx, query, answer, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInquiryNotFound
		}

		return nil, fmt.Errorf("failed to set answer: %w", err)
	}

	return inq, nil
}

func (r *InquiryRepository) List(ctx context.Context, ext RepoExtension, params model.InquiryQueryParams) ([]model.Inquiry, int, error) {
	if ext == nil {
		ext = r.db
	}

	where := " WHERE deleted_at IS NULL"
	args := []interface{}{}
	argIndex := 1

	if params.Answered != nil {
		where += fmt.Sprintf(" AND is_answered = $%d", argIndex)
		args = append(args, *params.Answered)
		argIndex++
	}

	var total int
	if err := ext.QueryRow(ctx, "SELECT COUNT(*) FROM board.inquiries"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inquiries: %w", err)
	}

	query := "SELECT " + inquiryColumns + " FROM board.inquiries" + where + " ORDER BY created_at DESC"

	if params.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, params.Limit)
		argIndex++
	}

	if params.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, params.Offset)
	}

	rows, err := ext.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []model.Inquiry

	for rows.Next() {
		var inq model.Inquiry

		err := rows.Scan(
			&inq.ID,
			&inq.Title,
			&inq.Content,
			&inq.Author,
			&inq.EmailCiphertext,
			&inq.IsSecret,
			&inq.PasswordHash,
			&inq.IsAnswered,
			&inq.Answer,
			&inq.AnsweredAt,
			&inq.CreatedAt,
			&inq.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan inquiry: %w", err)
		}

		inquiries = append(inquiries, inq)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating inquiry rows: %w", err)
	}

	return inquiries, total, nil
}

func (r *InquiryRepository) Delete(ctx context.Context, ext RepoExtension, id uuid.UUID) error {
	if ext == nil {
		ext = r.db
	}

	const query = `
		UPDATE board.inquiries
		SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := ext.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete inquiry: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrInquiryNotFound
	}

	return nil
}
