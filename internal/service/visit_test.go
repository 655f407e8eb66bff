package service

import (
	"context"
	"encoding/json"
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

type fakeOutboxRepo struct {
	mu       sync.Mutex
	messages []model.OutboxMessage
}

func (f *fakeOutboxRepo) InsertMessage(_ context.Context, _ repository.RepoExtension, message model.OutboxMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.messages = append(f.messages, message)

	return nil
}

func (f *fakeOutboxRepo) UpdateAsSent(_ context.Context, _ repository.RepoExtension, _ uuid.UUID) error {
	return nil
}

func (f *fakeOutboxRepo) SelectUnsentBatch(_ context.Context, _ repository.RepoExtension, _ int) ([]model.OutboxMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]model.OutboxMessage(nil), f.messages...), nil
}

type fakeVisitRepo struct {
	days []model.VisitDayStats
	snap model.VisitSnapshot

	gotFrom time.Time
	gotTo   time.Time
}

func (f *fakeVisitRepo) SelectDayStats(_ context.Context, _ repository.RepoExtension, from, to time.Time) ([]model.VisitDayStats, error) {
	f.gotFrom = from
	f.gotTo = to

	return f.days, nil
}

func (f *fakeVisitRepo) SelectSnapshot(_ context.Context, _ repository.RepoExtension) (*model.VisitSnapshot, error) {
	snap := f.snap

	return &snap, nil
}

func TestVisitService_RecordVisitGoesThroughOutbox(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	svc := NewVisitService(zap.NewNop(), &fakeVisitRepo{}, outbox)

	event := model.VisitEvent{
		Path:      "/api/pages",
		IP:        "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		Timestamp: time.Now(),
	}

	require.NoError(t, svc.RecordVisit(context.Background(), event))

	require.Len(t, outbox.messages, 1)
	msg := outbox.messages[0]
	assert.Equal(t, VisitTopic, msg.Topic)

	var decoded model.VisitEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, event.Path, decoded.Path)
	assert.Equal(t, event.IP, decoded.IP)
}

func TestVisitService_StatsSumsDays(t *testing.T) {
	repo := &fakeVisitRepo{
		days: []model.VisitDayStats{
			{Total: 10, Bots: 2},
			{Total: 5, Bots: 1},
		},
	}
	svc := NewVisitService(zap.NewNop(), repo, &fakeOutboxRepo{})

	resp, err := svc.Stats(context.Background(), model.VisitStatsQueryParams{
		From: "2026-08-01",
		To:   "2026-08-28",
	})
	require.NoError(t, err)

	assert.Equal(t, 15, resp.Total)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), resp.From)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), resp.To)
}

func TestVisitService_StatsSwapsInvertedRange(t *testing.T) {
	repo := &fakeVisitRepo{}
	svc := NewVisitService(zap.NewNop(), repo, &fakeOutboxRepo{})

	_, err := svc.Stats(context.Background(), model.VisitStatsQueryParams{
		From: "2026-08-28",
		To:   "2026-08-01",
	})
	require.NoError(t, err)

	assert.True(t, repo.gotFrom.Before(repo.gotTo))
}

func TestVisitService_StatsRejectsBadDates(t *testing.T) {
	svc := NewVisitService(zap.NewNop(), &fakeVisitRepo{}, &fakeOutboxRepo{})

	_, err := svc.Stats(context.Background(), model.VisitStatsQueryParams{From: "28.08.2026"})
	require.ErrorIs(t, err, apperrors.ErrInvalidDate)

	_, err = svc.Stats(context.Background(), model.VisitStatsQueryParams{To: "tomorrow"})
	require.ErrorIs(t, err, apperrors.ErrInvalidDate)
}

func TestVisitService_StatsDefaultRange(t *testing.T) {
	repo := &fakeVisitRepo{}
	svc := NewVisitService(zap.NewNop(), repo, &fakeOutboxRepo{})

	_, err := svc.Stats(context.Background(), model.VisitStatsQueryParams{})
	require.NoError(t, err)

	assert.Equal(t, statsDefaultRangeDays, int(repo.gotTo.Sub(repo.gotFrom).Hours()/24))
}

func TestVisitService_Snapshot(t *testing.T) {
	repo := &fakeVisitRepo{snap: model.VisitSnapshot{Today: 7, Bots: 2, Total: 100}}
	svc := NewVisitService(zap.NewNop(), repo, &fakeOutboxRepo{})

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 7, snap.Today)
	assert.Equal(t, 100, snap.Total)
}
