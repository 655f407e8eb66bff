package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

type fakeNoticeRepo struct {
	mu          sync.Mutex
	records     map[uuid.UUID]*model.Notice
	attachments map[uuid.UUID]*model.Attachment
}

func newFakeNoticeRepo() *fakeNoticeRepo {
	return &fakeNoticeRepo{
		records:     make(map[uuid.UUID]*model.Notice),
		attachments: make(map[uuid.UUID]*model.Attachment),
	}
}

func (f *fakeNoticeRepo) Pool() *pgxpool.Pool { return nil }

func (f *fakeNoticeRepo) Create(_ context.Context, _ repository.RepoExtension, notice *model.Notice) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	notice.CreatedAt = now
	notice.UpdatedAt = now

	clone := *notice
	f.records[notice.ID] = &clone

	return nil
}

func (f *fakeNoticeRepo) GetByID(_ context.Context, _ repository.RepoExtension, id uuid.UUID, countView bool) (*model.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	notice, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNoticeNotFound
	}

	if countView {
		notice.ViewCount++
	}

	clone := *notice

	return &clone, nil
}

func (f *fakeNoticeRepo) Update(_ context.Context, _ repository.RepoExtension, id uuid.UUID, upd *model.NoticeUpdateRequest) (*model.Notice, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	notice, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrNoticeNotFound
	}

	if upd.Title != nil {
		notice.Title = *upd.Title
	}
	if upd.Body != nil {
		notice.Body = *upd.Body
	}
	if upd.Pinned != nil {
		notice.Pinned = *upd.Pinned
	}
	notice.UpdatedAt = time.Now()

	clone := *notice

	return &clone, nil
}

func (f *fakeNoticeRepo) List(_ context.Context, _ repository.RepoExtension, limit, offset int) ([]model.Notice, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var notices []model.Notice
	for _, notice := range f.records {
		notices = append(notices, *notice)
	}

	total := len(notices)

	if offset >= len(notices) {
		return nil, total, nil
	}

	notices = notices[offset:]
	if len(notices) > limit {
		notices = notices[:limit]
	}

	return notices, total, nil
}

func (f *fakeNoticeRepo) Delete(_ context.Context, _ repository.RepoExtension, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.records[id]; !ok {
		return apperrors.ErrNoticeNotFound
	}

	delete(f.records, id)

	return nil
}

func (f *fakeNoticeRepo) InsertAttachment(_ context.Context, _ repository.RepoExtension, att *model.Attachment) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	att.CreatedAt = time.Now()

	clone := *att
	f.attachments[att.ID] = &clone

	return nil
}

func (f *fakeNoticeRepo) SelectAttachment(_ context.Context, _ repository.RepoExtension, id uuid.UUID) (*model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	att, ok := f.attachments[id]
	if !ok {
		return nil, apperrors.ErrAttachmentNotFound
	}

	clone := *att

	return &clone, nil
}

func (f *fakeNoticeRepo) SelectAttachmentsByNotice(_ context.Context, _ repository.RepoExtension, noticeID uuid.UUID) ([]model.Attachment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var atts []model.Attachment
	for _, att := range f.attachments {
		if att.NoticeID == noticeID {
			atts = append(atts, *att)
		}
	}

	return atts, nil
}

func (f *fakeNoticeRepo) DeleteAttachment(_ context.Context, _ repository.RepoExtension, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.attachments[id]; !ok {
		return apperrors.ErrAttachmentNotFound
	}

	delete(f.attachments, id)

	return nil
}

// fakeBlobStore хранит блобы в памяти и умеет отказывать на Delete.
type fakeBlobStore struct {
	mu         sync.Mutex
	blobs      map[string][]byte
	failDelete bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (f *fakeBlobStore) Upload(_ context.Context, key, _ string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.blobs[key] = data

	return nil
}

func (f *fakeBlobStore) PresignedGetURL(_ context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.blobs[key]; !ok {
		return "", errors.New("no such key")
	}

	return "https://blobs.local/" + key, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failDelete {
		return errors.New("storage unavailable")
	}

	delete(f.blobs, key)

	return nil
}

func newNoticeService(t *testing.T) (*NoticeService, *fakeNoticeRepo, *fakeBlobStore, *fakeIndexer) {
	t.Helper()

	repo := newFakeNoticeRepo()
	blobs := newFakeBlobStore()
	indexer := newFakeIndexer()

	return NewNoticeService(zap.NewNop(), repo, blobs, indexer), repo, blobs, indexer
}

func TestNoticeService_CreateValidatesTitle(t *testing.T) {
	svc, _, _, _ := newNoticeService(t)

	_, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "  "})

	require.ErrorIs(t, err, apperrors.ErrEmptyField)
}

func TestNoticeService_CreateMirrorsToIndex(t *testing.T) {
	svc, _, _, indexer := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{
		Title: "Объявление",
		Body:  "Текст",
	})
	require.NoError(t, err)

	assert.True(t, indexer.has(notice.ID))
}

func TestNoticeService_GetByIDLoadsAttachments(t *testing.T) {
	svc, repo, _, _ := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "С вложением"})
	require.NoError(t, err)

	att := &model.Attachment{
		ID:          uuid.New(),
		NoticeID:    notice.ID,
		FileName:    "report.pdf",
		ContentType: "application/pdf",
		Size:        3,
		StorageKey:  "notices/2026/08/29/" + uuid.NewString(),
	}
	require.NoError(t, repo.InsertAttachment(context.Background(), nil, att))

	got, err := svc.GetByID(context.Background(), notice.ID, false)
	require.NoError(t, err)
	require.Len(t, got.Attachments, 1)
	assert.Equal(t, "report.pdf", got.Attachments[0].FileName)
}

func TestNoticeService_GetByIDCountsViews(t *testing.T) {
	svc, _, _, _ := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "Просмотры"})
	require.NoError(t, err)

	// Публичный просмотр увеличивает счётчик, админский - нет
	got, err := svc.GetByID(context.Background(), notice.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)

	got, err = svc.GetByID(context.Background(), notice.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
}

func TestNoticeService_ListNormalizesPagination(t *testing.T) {
	svc, _, _, _ := newNoticeService(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "Объявление"})
		require.NoError(t, err)
	}

	resp, err := svc.List(context.Background(), model.NoticeQueryParams{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, noticeDefaultLimit, resp.Limit)
	assert.Equal(t, 3, resp.Total)

	resp, err = svc.List(context.Background(), model.NoticeQueryParams{Page: 1, Limit: noticeMaxLimit + 1})
	require.NoError(t, err)
	assert.Equal(t, noticeMaxLimit, resp.Limit)
}

func TestNoticeService_AttachmentURL(t *testing.T) {
	svc, repo, blobs, _ := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "Файл"})
	require.NoError(t, err)

	att := &model.Attachment{
		ID:         uuid.New(),
		NoticeID:   notice.ID,
		FileName:   "doc.txt",
		StorageKey: "notices/key",
	}
	require.NoError(t, repo.InsertAttachment(context.Background(), nil, att))
	require.NoError(t, blobs.Upload(context.Background(), att.StorageKey, "text/plain", []byte("hi")))

	url, err := svc.AttachmentURL(context.Background(), att.ID)
	require.NoError(t, err)
	assert.Contains(t, url, att.StorageKey)

	_, err = svc.AttachmentURL(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestNoticeService_DeleteAttachmentSurvivesBlobFailure(t *testing.T) {
	svc, repo, blobs, _ := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "Файл"})
	require.NoError(t, err)

	att := &model.Attachment{
		ID:         uuid.New(),
		NoticeID:   notice.ID,
		FileName:   "doc.txt",
		StorageKey: "notices/key",
	}
	require.NoError(t, repo.InsertAttachment(context.Background(), nil, att))

	blobs.failDelete = true

	// Недоступное хранилище не мешает удалить метаданные
	require.NoError(t, svc.DeleteAttachment(context.Background(), att.ID))

	_, err = repo.SelectAttachment(context.Background(), nil, att.ID)
	assert.ErrorIs(t, err, apperrors.ErrAttachmentNotFound)
}

func TestNoticeService_DeleteRemovesFromIndex(t *testing.T) {
	svc, _, _, indexer := newNoticeService(t)

	notice, err := svc.Create(context.Background(), &model.NoticeCreateRequest{Title: "Удаляемое"})
	require.NoError(t, err)
	require.True(t, indexer.has(notice.ID))

	require.NoError(t, svc.Delete(context.Background(), notice.ID))

	assert.False(t, indexer.has(notice.ID))
}
