package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
	"corpsite-back/pkg/blobstore"
)

const (
	noticeDefaultLimit = 20
	noticeMaxLimit     = 100

	attachmentKeyPrefix = "notices"
)

type NoticeRepository interface {
	Pool() *pgxpool.Pool

	Create(ctx context.Context, ext repository.RepoExtension, notice *model.Notice) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, countView bool) (*model.Notice, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, upd *model.NoticeUpdateRequest) (*model.Notice, error)
	List(ctx context.Context, ext repository.RepoExtension, limit, offset int) ([]model.Notice, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error

	InsertAttachment(ctx context.Context, ext repository.RepoExtension, att *model.Attachment) error
	SelectAttachment(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Attachment, error)
	SelectAttachmentsByNotice(ctx context.Context, ext repository.RepoExtension, noticeID uuid.UUID) ([]model.Attachment, error)
	DeleteAttachment(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

type NoticeService struct {
	log     *zap.Logger
	repo    NoticeRepository
	blobs   blobstore.BlobStore
	indexer SearchIndexer
}

func NewNoticeService(log *zap.Logger, repo NoticeRepository, blobs blobstore.BlobStore, indexer SearchIndexer) *NoticeService {
	return &NoticeService{
		log:     log,
		repo:    repo,
		blobs:   blobs,
		indexer: indexer,
	}
}

func (s *NoticeService) Create(ctx context.Context, req *model.NoticeCreateRequest) (*model.Notice, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
	}

	notice := &model.Notice{
		ID:     uuid.New(),
		Title:  strings.TrimSpace(req.Title),
		Body:   req.Body,
		Pinned: req.Pinned,
	}

	if err := s.repo.Create(ctx, nil, notice); err != nil {
		return nil, fmt.Errorf("failed to create notice: %w", err)
	}

	s.mirror(ctx, notice)

	return notice, nil
}

func (s *NoticeService) GetByID(ctx context.Context, id uuid.UUID, countView bool) (*model.Notice, error) {
	notice, err := s.repo.GetByID(ctx, nil, id, countView)
	if err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}

	attachments, err := s.repo.SelectAttachmentsByNotice(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	notice.Attachments = attachments

	return notice, nil
}

func (s *NoticeService) List(ctx context.Context, params model.NoticeQueryParams) (*model.NoticeListResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = noticeDefaultLimit
	}

	if limit > noticeMaxLimit {
		limit = noticeMaxLimit
	}

	page := params.Page
	if page < 1 {
		page = 1
	}

	notices, total, err := s.repo.List(ctx, nil, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}

	return &model.NoticeListResponse{
		Notices: notices,
		Total:   total,
		Page:    page,
		Limit:   limit,
	}, nil
}

func (s *NoticeService) Update(ctx context.Context, id uuid.UUID, req *model.NoticeUpdateRequest) (*model.Notice, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
	}

	notice, err := s.repo.Update(ctx, nil, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update notice: %w", err)
	}

	s.mirror(ctx, notice)

	return notice, nil
}

func (s *NoticeService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete notice: %w", err)
	}

	if err := s.indexer.Delete(ctx, id.String()); err != nil {
		s.log.Warn("Failed to remove notice from search index",
			zap.String("notice_id", id.String()),
			zap.Error(err),
		)
	}

	return nil
}

// AddAttachment кладёт файл в объектное хранилище и записывает метаданные
// в одной транзакции с проверкой существования объявления.
func (s *NoticeService) AddAttachment(ctx context.Context, noticeID uuid.UUID, fileName, contentType string, data []byte) (att *model.Attachment, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file", apperrors.ErrEmptyField)
	}

	tx, err := s.repo.Pool().Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rErr := tx.Rollback(ctx); rErr != nil {
				err = fmt.Errorf("%w, failed to rollback transaction: %w", err, rErr)
			}
		}
	}()

	if _, err := s.repo.GetByID(ctx, tx, noticeID, false); err != nil {
		return nil, fmt.Errorf("failed to get notice: %w", err)
	}

	att = &model.Attachment{
		ID:          uuid.New(),
		NoticeID:    noticeID,
		FileName:    fileName,
		ContentType: contentType,
		Size:        int64(len(data)),
		StorageKey:  blobstore.NewStorageKey(attachmentKeyPrefix),
	}

	if err := s.repo.InsertAttachment(ctx, tx, att); err != nil {
		return nil, fmt.Errorf("failed to insert attachment: %w", err)
	}

	if err := s.blobs.Upload(ctx, att.StorageKey, contentType, data); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return att, nil
}

func (s *NoticeService) AttachmentURL(ctx context.Context, id uuid.UUID) (string, error) {
	att, err := s.repo.SelectAttachment(ctx, nil, id)
	if err != nil {
		return "", fmt.Errorf("failed to get attachment: %w", err)
	}

	url, err := s.blobs.PresignedGetURL(ctx, att.StorageKey)
	if err != nil {
		return "", fmt.Errorf("failed to presign attachment url: %w", err)
	}

	return url, nil
}

func (s *NoticeService) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	att, err := s.repo.SelectAttachment(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("failed to get attachment: %w", err)
	}

	if err := s.repo.DeleteAttachment(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}

	if err := s.blobs.Delete(ctx, att.StorageKey); err != nil {
		s.log.Warn("Failed to delete attachment blob",
			zap.String("attachment_id", id.String()),
			zap.Error(err),
		)
	}

	return nil
}

func (s *NoticeService) mirror(ctx context.Context, notice *model.Notice) {
	doc := &model.SearchDocument{
		ID:        notice.ID,
		Kind:      model.SearchKindNotice,
		Title:     notice.Title,
		Body:      notice.Body,
		CreatedAt: notice.CreatedAt,
	}

	if err := s.indexer.Index(ctx, doc); err != nil {
		s.log.Warn("Failed to index notice",
			zap.String("notice_id", notice.ID.String()),
			zap.Error(err),
		)
	}
}
