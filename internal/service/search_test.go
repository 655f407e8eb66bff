package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
)

type fakeSearchRepo struct {
	gotParams model.SearchParams
	results   []model.SearchResult
	total     int
}

func (f *fakeSearchRepo) EnsureIndex(_ context.Context) error                  { return nil }
func (f *fakeSearchRepo) Index(_ context.Context, _ *model.SearchDocument) error { return nil }
func (f *fakeSearchRepo) Delete(_ context.Context, _ string) error             { return nil }

func (f *fakeSearchRepo) Search(_ context.Context, params model.SearchParams) ([]model.SearchResult, int, error) {
	f.gotParams = params

	return f.results, f.total, nil
}

func TestSearchService_RejectsEmptyQuery(t *testing.T) {
	svc := NewSearchService(&fakeSearchRepo{})

	_, err := svc.Search(context.Background(), "   ")

	require.ErrorIs(t, err, apperrors.ErrEmptyField)
}

func TestSearchService_Search(t *testing.T) {
	repo := &fakeSearchRepo{
		results: []model.SearchResult{{Score: 1.5}},
		total:   1,
	}
	svc := NewSearchService(repo)

	resp, err := svc.Search(context.Background(), "продукт")
	require.NoError(t, err)

	assert.Equal(t, "продукт", repo.gotParams.Q)
	assert.Equal(t, searchDefaultSize, repo.gotParams.Size)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Results, 1)
}
