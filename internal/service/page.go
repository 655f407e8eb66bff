package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

type PageRepository interface {
	Create(ctx context.Context, ext repository.RepoExtension, page *model.Page) error
	GetByID(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) (*model.Page, error)
	Update(ctx context.Context, ext repository.RepoExtension, id uuid.UUID, upd *model.PageUpdateRequest) (*model.Page, error)
	List(ctx context.Context, ext repository.RepoExtension, params model.PageQueryParams) ([]model.Page, int, error)
	Delete(ctx context.Context, ext repository.RepoExtension, id uuid.UUID) error
}

// SearchIndexer зеркалирует контент в поисковый индекс.
type SearchIndexer interface {
	Index(ctx context.Context, doc *model.SearchDocument) error
	Delete(ctx context.Context, id string) error
}

type PageService struct {
	log     *zap.Logger
	repo    PageRepository
	indexer SearchIndexer
}

func NewPageService(log *zap.Logger, repo PageRepository, indexer SearchIndexer) *PageService {
	return &PageService{
		log:     log,
		repo:    repo,
		indexer: indexer,
	}
}

func (s *PageService) Create(ctx context.Context, req *model.PageCreateRequest) (*model.Page, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
	}

	page := &model.Page{
		ID:           uuid.New(),
		Kind:         req.Kind,
		Title:        strings.TrimSpace(req.Title),
		Body:         req.Body,
		MediaURL:     req.MediaURL,
		DisplayOrder: req.DisplayOrder,
		Published:    req.Published,
	}

	if err := s.repo.Create(ctx, nil, page); err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	s.mirror(ctx, page)

	return page, nil
}

func (s *PageService) GetByID(ctx context.Context, id uuid.UUID, publishedOnly bool) (*model.Page, error) {
	page, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	if publishedOnly && !page.Published {
		return nil, apperrors.ErrPageNotFound
	}

	return page, nil
}

func (s *PageService) List(ctx context.Context, params model.PageQueryParams) (*model.PageListResponse, error) {
	pages, total, err := s.repo.List(ctx, nil, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	return &model.PageListResponse{
		Pages: pages,
		Total: total,
	}, nil
}

func (s *PageService) Update(ctx context.Context, id uuid.UUID, req *model.PageUpdateRequest) (*model.Page, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, fmt.Errorf("%w: title", apperrors.ErrEmptyField)
	}

	page, err := s.repo.Update(ctx, nil, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}

	s.mirror(ctx, page)

	return page, nil
}

func (s *PageService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}

	if err := s.indexer.Delete(ctx, id.String()); err != nil {
		s.log.Warn("Failed to remove page from search index",
			zap.String("page_id", id.String()),
			zap.Error(err),
		)
	}

	return nil
}

// mirror наилучшим образом синхронизирует индекс: ошибка индексации не валит запись,
// поиск догонит контент при следующем изменении.
func (s *PageService) mirror(ctx context.Context, page *model.Page) {
	if !page.Published {
		if err := s.indexer.Delete(ctx, page.ID.String()); err != nil {
			s.log.Warn("Failed to remove unpublished page from search index",
				zap.String("page_id", page.ID.String()),
				zap.Error(err),
			)
		}

		return
	}

	doc := &model.SearchDocument{
		ID:        page.ID,
		Kind:      model.SearchKindPage,
		Title:     page.Title,
		Body:      page.Body,
		CreatedAt: page.CreatedAt,
	}

	if err := s.indexer.Index(ctx, doc); err != nil {
		s.log.Warn("Failed to index page",
			zap.String("page_id", page.ID.String()),
			zap.Error(err),
		)
	}
}
