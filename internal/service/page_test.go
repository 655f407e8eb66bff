package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

type fakePageRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]*model.Page
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{records: make(map[uuid.UUID]*model.Page)}
}

func (f *fakePageRepo) Create(_ context.Context, _ repository.RepoExtension, page *model.Page) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	page.CreatedAt = now
	page.UpdatedAt = now

	clone := *page
	f.records[page.ID] = &clone

	return nil
}

func (f *fakePageRepo) GetByID(_ context.Context, _ repository.RepoExtension, id uuid.UUID) (*model.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrPageNotFound
	}

	clone := *page

	return &clone, nil
}

func (f *fakePageRepo) Update(_ context.Context, _ repository.RepoExtension, id uuid.UUID, upd *model.PageUpdateRequest) (*model.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrPageNotFound
	}

	if upd.Title != nil {
		page.Title = *upd.Title
	}
	if upd.Body != nil {
		page.Body = *upd.Body
	}
	if upd.MediaURL != nil {
		page.MediaURL = *upd.MediaURL
	}
	if upd.DisplayOrder != nil {
		page.DisplayOrder = *upd.DisplayOrder
	}
	if upd.Published != nil {
		page.Published = *upd.Published
	}
	page.UpdatedAt = time.Now()

	clone := *page

	return &clone, nil
}

func (f *fakePageRepo) List(_ context.Context, _ repository.RepoExtension, params model.PageQueryParams) ([]model.Page, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var pages []model.Page
	for _, page := range f.records {
		if params.Kind != "" && page.Kind != params.Kind {
			continue
		}
		if params.PublishedOnly && !page.Published {
			continue
		}
		pages = append(pages, *page)
	}

	return pages, len(pages), nil
}

func (f *fakePageRepo) Delete(_ context.Context, _ repository.RepoExtension, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return apperrors.ErrPageNotFound
	}

	delete(f.records, id)

	return nil
}

// fakeIndexer запоминает документы и позволяет симулировать отказ индекса.
type fakeIndexer struct {
	mu   sync.Mutex
	docs map[string]*model.SearchDocument
	fail bool
}

func newFakeIndexer() *fakeIndexer {
	return &fakeIndexer{docs: make(map[string]*model.SearchDocument)}
}

func (f *fakeIndexer) Index(_ context.Context, doc *model.SearchDocument) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("index unavailable")
	}

	clone := *doc
	f.docs[doc.ID.String()] = &clone

	return nil
}

func (f *fakeIndexer) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return errors.New("index unavailable")
	}

	delete(f.docs, id)

	return nil
}

func (f *fakeIndexer) has(id uuid.UUID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.docs[id.String()]

	return ok
}

func newPageService(t *testing.T) (*PageService, *fakePageRepo, *fakeIndexer) {
	t.Helper()

	repo := newFakePageRepo()
	indexer := newFakeIndexer()

	return NewPageService(zap.NewNop(), repo, indexer), repo, indexer
}

func TestPageService_CreateValidatesTitle(t *testing.T) {
	svc, _, _ := newPageService(t)

	_, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:  model.PageKindProduct,
		Title: "   ",
	})

	require.ErrorIs(t, err, apperrors.ErrEmptyField)
}

func TestPageService_CreateMirrorsPublished(t *testing.T) {
	svc, _, indexer := newPageService(t)

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:      model.PageKindProduct,
		Title:     "  Наш продукт  ",
		Body:      "Описание",
		Published: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "Наш продукт", page.Title)
	assert.True(t, indexer.has(page.ID))
}

func TestPageService_CreateUnpublishedNotIndexed(t *testing.T) {
	svc, _, indexer := newPageService(t)

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:  model.PageKindBanner,
		Title: "Черновик",
	})
	require.NoError(t, err)

	assert.False(t, indexer.has(page.ID))
}

func TestPageService_IndexFailureDoesNotFailWrite(t *testing.T) {
	svc, repo, indexer := newPageService(t)
	indexer.fail = true

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:      model.PageKindSolution,
		Title:     "Решение",
		Published: true,
	})
	require.NoError(t, err)

	_, ok := repo.records[page.ID]
	assert.True(t, ok)
}

func TestPageService_GetByIDPublishedOnly(t *testing.T) {
	svc, _, _ := newPageService(t)

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:  model.PageKindHistory,
		Title: "История",
	})
	require.NoError(t, err)

	// Публичный запрос не видит неопубликованную страницу
	_, err = svc.GetByID(context.Background(), page.ID, true)
	require.ErrorIs(t, err, apperrors.ErrPageNotFound)

	got, err := svc.GetByID(context.Background(), page.ID, false)
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID)
}

func TestPageService_UnpublishRemovesFromIndex(t *testing.T) {
	svc, _, indexer := newPageService(t)

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:      model.PageKindVideo,
		Title:     "Видео",
		Published: true,
	})
	require.NoError(t, err)
	require.True(t, indexer.has(page.ID))

	published := false
	_, err = svc.Update(context.Background(), page.ID, &model.PageUpdateRequest{Published: &published})
	require.NoError(t, err)

	assert.False(t, indexer.has(page.ID))
}

func TestPageService_UpdateValidatesTitle(t *testing.T) {
	svc, _, _ := newPageService(t)

	empty := " "
	_, err := svc.Update(context.Background(), uuid.New(), &model.PageUpdateRequest{Title: &empty})

	require.ErrorIs(t, err, apperrors.ErrEmptyField)
}

func TestPageService_DeleteRemovesFromIndex(t *testing.T) {
	svc, _, indexer := newPageService(t)

	page, err := svc.Create(context.Background(), &model.PageCreateRequest{
		Kind:      model.PageKindProduct,
		Title:     "Продукт",
		Published: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), page.ID))

	assert.False(t, indexer.has(page.ID))

	_, err = svc.GetByID(context.Background(), page.ID, false)
	assert.ErrorIs(t, err, apperrors.ErrPageNotFound)
}
