package service

import (
	"context"
	"fmt"
	"strings"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

const searchDefaultSize = 10

type SearchRepository interface {
	EnsureIndex(ctx context.Context) error
	Index(ctx context.Context, doc *model.SearchDocument) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, params model.SearchParams) ([]model.SearchResult, int, error)
}

type SearchService struct {
	repo SearchRepository
}

func NewSearchService(repo SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

func (s *SearchService) Search(ctx context.Context, query string) (*model.SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: q", apperrors.ErrEmptyField)
	}

	results, total, err := s.repo.Search(ctx, model.SearchParams{
		Q:    query,
		Size: searchDefaultSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	return &model.SearchResponse{
		Results: results,
		Total:   total,
	}, nil
}
