package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"corpsite-back/internal/model"
	"corpsite-back/internal/repository"
)

type fakeProducer struct {
	pushErr error
	pushed  int
}

func (p *fakeProducer) PushMessage(_ context.Context, _, _ []byte, _ string) (int32, int64, error) {
	if p.pushErr != nil {
		return 0, 0, p.pushErr
	}

	p.pushed++

	return 0, int64(p.pushed), nil
}

func (p *fakeProducer) Close() error { return nil }

type fakeOutboxRepo struct {
	sent []uuid.UUID
}

func (r *fakeOutboxRepo) UpdateAsSent(_ context.Context, _ repository.RepoExtension, messageID uuid.UUID) error {
	r.sent = append(r.sent, messageID)

	return nil
}

func (r *fakeOutboxRepo) SelectUnsentBatch(_ context.Context, _ repository.RepoExtension, _ int) ([]model.OutboxMessage, error) {
	return nil, nil
}

func runWorker(producer *fakeProducer, repo *fakeOutboxRepo, msg model.OutboxMessage) *observer.ObservedLogs {
	core, logs := observer.New(zap.DebugLevel)

	p := NewPublisher(zap.New(core), Config{Name: "test"}, producer, repo)

	pipe := make(chan model.OutboxMessage, 1)
	pipe <- msg
	close(pipe)

	p.worker(context.Background(), 0, pipe)

	return logs
}

func TestWorkerSendsAndMarks(t *testing.T) {
	producer := &fakeProducer{}
	repo := &fakeOutboxRepo{}
	msg := model.OutboxMessage{ID: uuid.New(), Topic: "site-visits", Payload: []byte(`{}`)}

	logs := runWorker(producer, repo, msg)

	require.Equal(t, 1, producer.pushed)
	require.Equal(t, []uuid.UUID{msg.ID}, repo.sent)
	require.Equal(t, 1, logs.FilterMessage("Message sent").Len())
}

// Ошибка отправки не должна помечать сообщение и давать запись об успехе.
func TestWorkerKeepsUnsentOnPushFailure(t *testing.T) {
	producer := &fakeProducer{pushErr: errors.New("broker is down")}
	repo := &fakeOutboxRepo{}
	msg := model.OutboxMessage{ID: uuid.New(), Topic: "site-visits", Payload: []byte(`{}`)}

	logs := runWorker(producer, repo, msg)

	require.Empty(t, repo.sent)
	require.Equal(t, 0, logs.FilterMessage("Message sent").Len())
	require.Equal(t, 1, logs.FilterMessage("Failed to send message").Len())
}
