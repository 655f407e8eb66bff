package inbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"corpsite-back/internal/apperrors"
	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
	"corpsite-back/pkg/geoip"
	"corpsite-back/pkg/kafka"
)

const messagePipeBuffer = 1000

// botMarkers - подстроки User-Agent, по которым посещение считается ботом.
var botMarkers = []string{
	"bot", "crawler", "spider", "slurp", "curl", "wget", "python-requests", "headless",
}

type InboxRepository interface {
	InsertMessage(ctx context.Context, ext repository.RepoExtension, message model.InboxMessage) error
	UpdateAsProcessed(ctx context.Context, ext repository.RepoExtension, messageID uuid.UUID) error
	SelectUnprocessedBatch(ctx context.Context, ext repository.RepoExtension, batchSize int) ([]model.InboxMessage, error)
}

type VisitRepository interface {
	Pool() *pgxpool.Pool

	InsertVisit(ctx context.Context, ext repository.RepoExtension, visit *model.Visit) error
	BumpDayStats(ctx context.Context, ext repository.RepoExtension, day time.Time, isBot bool) error
}

type GeoIPDB interface {
	Lookup(ip net.IP) geoip.GeoInfo
}

type Config struct {
	Name        string
	WorkerCount int
	BatchSize   int
	Topic       string
}

type Subscriber struct {
	l         *zap.Logger
	cfg       Config
	consumer  kafka.ConsumerGroupRunner
	inboxRepo InboxRepository
	visitRepo VisitRepository
	geo       GeoIPDB
}

func NewSubscriber(l *zap.Logger, cfg Config, consumer kafka.ConsumerGroupRunner, inboxRepo InboxRepository, visitRepo VisitRepository, geo GeoIPDB) *Subscriber {
	return &Subscriber{
		l:         l,
		cfg:       cfg,
		consumer:  consumer,
		inboxRepo: inboxRepo,
		visitRepo: visitRepo,
		geo:       geo,
	}
}

func (s *Subscriber) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		s.consumer.Run()
	}()

	messagePipe := make(chan *kafka.MessageWithMarkFunc, messagePipeBuffer)

	for i := 0; i < s.cfg.WorkerCount; i++ {
		go s.worker(ctx, i, messagePipe)
	}

	for {
		select {
		case <-ctx.Done():
			s.l.Info("Context canceled, stopping inbox")

			close(messagePipe)

			return
		case msg, ok := <-s.consumer.Messages():
			if !ok {
				s.l.Info("Consumer messages channel closed")

				close(messagePipe)

				return
			}

			messagePipe <- msg
		}
	}
}

func (s *Subscriber) worker(ctx context.Context, id int, messagePipe <-chan *kafka.MessageWithMarkFunc) {
	s.l.Info("Inbox Worker started", zap.Int("worker_id", id))

	for {
		select {
		case <-ctx.Done():
			s.l.Info("Worker stopping", zap.Int("worker_id", id))

			return
		case msg, ok := <-messagePipe:
			if !ok {
				s.l.Info("Message channel closed", zap.Int("worker_id", id))

				return
			}

			messageID, err := uuid.FromBytes(msg.Message.Key)
			if err != nil {
				s.l.Error("Error parsing message id", zap.Int("worker_id", id), zap.Error(err))

				continue
			}

			switch err := s.process(ctx, msg); {
			case err == nil:
				s.l.Info("Visit event processed",
					zap.String("message_id", messageID.String()),
				)

				msg.Mark()
			case errors.Is(err, apperrors.ErrDuplicateMessage):
				s.l.Debug("Visit event already processed",
					zap.String("message_id", messageID.String()),
				)

				msg.Mark()
			default:
				// Офсет не двигаем: событие доедет с повторной доставкой.
				s.l.Error("Error processing message", zap.Int("worker_id", id), zap.Error(err))
			}
		}
	}
}

// process обогащает событие и пишет визит, агрегат и строку inbox в одной
// транзакции: повторная доставка с тем же message id упирается в PK inbox и
// не задваивает статистику.
func (s *Subscriber) process(ctx context.Context, message *kafka.MessageWithMarkFunc) (err error) {
	messageID, err := uuid.FromBytes(message.Message.Key)
	if err != nil {
		return fmt.Errorf("failed to parse message id: %w", err)
	}

	messageInbox := model.InboxMessage{
		ID:      messageID,
		Topic:   s.cfg.Topic,
		Payload: message.Message.Value,
	}

	var event model.VisitEvent
	if err := json.Unmarshal(message.Message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal visit event: %w", err)
	}

	visit := &model.Visit{
		ID:        uuid.New(),
		Path:      event.Path,
		IP:        event.IP,
		UserAgent: event.UserAgent,
		Referer:   event.Referer,
		IsBot:     IsBot(event.UserAgent),
		VisitedAt: event.Timestamp,
	}

	if ip := net.ParseIP(event.IP); ip != nil {
		gi := s.geo.Lookup(ip)
		visit.CountryCode = gi.CC
		visit.ASN = gi.ASN
	}

	tx, err := s.visitRepo.Pool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("error begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rErr := tx.Rollback(ctx); rErr != nil {
				err = fmt.Errorf("%w, failed to rollback transaction: %w", err, rErr)
			}
		}
	}()

	if err := s.inboxRepo.InsertMessage(ctx, tx, messageInbox); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}

	if err := s.visitRepo.InsertVisit(ctx, tx, visit); err != nil {
		return fmt.Errorf("failed to insert visit: %w", err)
	}

	day := visit.VisitedAt.UTC().Truncate(24 * time.Hour)
	if err := s.visitRepo.BumpDayStats(ctx, tx, day, visit.IsBot); err != nil {
		return fmt.Errorf("failed to bump day stats: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func IsBot(userAgent string) bool {
	ua := strings.ToLower(userAgent)

	if ua == "" {
		return true
	}

	for _, marker := range botMarkers {
		if strings.Contains(ua, marker) {
			return true
		}
	}

	return false
}
