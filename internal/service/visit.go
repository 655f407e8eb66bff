package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

const (
	VisitTopic = "site-visits"

	statsDefaultRangeDays = 30
	statsDateLayout       = "2006-01-02"
)

type VisitRepository interface {
	SelectDayStats(ctx context.Context, ext repository.RepoExtension, from, to time.Time) ([]model.VisitDayStats, error)
	SelectSnapshot(ctx context.Context, ext repository.RepoExtension) (*model.VisitSnapshot, error)
}

type OutboxRepository interface {
	InsertMessage(ctx context.Context, ext repository.RepoExtension, message model.OutboxMessage) error
	UpdateAsSent(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) error
	SelectUnsentBatch(ctx context.Context, ext repository.RepoExtension, batchSize int) ([]model.OutboxMessage, error)
}

type VisitService struct {
	log        *zap.Logger
	visitRepo  VisitRepository
	outboxRepo OutboxRepository
}

func NewVisitService(log *zap.Logger, visitRepo VisitRepository, outboxRepo OutboxRepository) *VisitService {
	return &VisitService{
		log:        log,
		visitRepo:  visitRepo,
		outboxRepo: outboxRepo,
	}
}

// RecordVisit кладёт событие посещения в outbox. Публикацией в Kafka и
// обогащением занимается фоновый конвейер, запрос посетителя не ждёт.
func (s *VisitService) RecordVisit(ctx context.Context, event model.VisitEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal visit event: %w", err)
	}

	message := model.OutboxMessage{
		ID:      uuid.New(),
		Topic:   VisitTopic,
		Payload: payload,
	}

	if err := s.outboxRepo.InsertMessage(ctx, nil, message); err != nil {
		return fmt.Errorf("failed to insert outbox message: %w", err)
	}

	return nil
}

func (s *VisitService) Stats(ctx context.Context, params model.VisitStatsQueryParams) (*model.VisitStatsResponse, error) {
	to := time.Now().Truncate(24 * time.Hour)
	from := to.AddDate(0, 0, -statsDefaultRangeDays)

	if params.From != "" {
		parsed, err := time.Parse(statsDateLayout, params.From)
		if err != nil {
			return nil, fmt.Errorf("%w: from", apperrors.ErrInvalidDate)
		}

		from = parsed
	}

	if params.To != "" {
		parsed, err := time.Parse(statsDateLayout, params.To)
		if err != nil {
			return nil, fmt.Errorf("%w: to", apperrors.ErrInvalidDate)
		}

		to = parsed
	}

	if from.After(to) {
		from, to = to, from
	}

	days, err := s.visitRepo.SelectDayStats(ctx, nil, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select day stats: %w", err)
	}

	total := 0
	for _, d := range days {
		total += d.Total
	}

	return &model.VisitStatsResponse{
		From:  from,
		To:    to,
		Days:  days,
		Total: total,
	}, nil
}

func (s *VisitService) Snapshot(ctx context.Context) (*model.VisitSnapshot, error) {
	snap, err := s.visitRepo.SelectSnapshot(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to select snapshot: %w", err)
	}

	return snap, nil
}
