package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
)

type BalanceStrategy int

const (
	RoundrobinBalanceStrategy BalanceStrategy = iota
	RangeBalanceStrategy
	StickyBalanceStrategy
)

// MessageWithMarkFunc несёт сообщение вместе с функцией подтверждения offset'а.
type MessageWithMarkFunc struct {
	Message *sarama.ConsumerMessage
	Mark    func()
}

type ConsumerGroupRunner interface {
	Run()
	Messages() <-chan *MessageWithMarkFunc
	Info() <-chan string
	Close() error
}

type ConsumerOption func(*sarama.Config)

type consumerGroupRunner struct {
	group    sarama.ConsumerGroup
	topics   []string
	messages chan *MessageWithMarkFunc
	info     chan string
}

func NewConsumerGroupRunner(brokers []string, groupID string, topics []string, bufferSize int, opts ...ConsumerOption) (ConsumerGroupRunner, error) {
	cfg := sarama.NewConfig()
	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Return.Errors = true

	for _, opt := range opts {
		opt(cfg)
	}

	group, err := sarama.NewConsumerGroup(brokers, groupID, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &consumerGroupRunner{
		group:    group,
		topics:   topics,
		messages: make(chan *MessageWithMarkFunc, bufferSize),
		info:     make(chan string, 1),
	}, nil
}

func WithBalancerConsumer(strategy BalanceStrategy) ConsumerOption {
	return func(cfg *sarama.Config) {
		switch strategy {
		case RoundrobinBalanceStrategy:
			cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
		case RangeBalanceStrategy:
			cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRange()}
		case StickyBalanceStrategy:
			cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategySticky()}
		}
	}
}

func (r *consumerGroupRunner) Run() {
	ctx := context.Background()

	handler := &groupHandler{
		messages: r.messages,
		info:     r.info,
	}

	// Consume нужно вызывать в цикле: после каждого ребаланса сессия завершается.
	for {
		if err := r.group.Consume(ctx, r.topics, handler); err != nil {
			if err == sarama.ErrClosedConsumerGroup {
				close(r.messages)

				return
			}
		}
	}
}

func (r *consumerGroupRunner) Messages() <-chan *MessageWithMarkFunc {
	return r.messages
}

func (r *consumerGroupRunner) Info() <-chan string {
	return r.info
}

func (r *consumerGroupRunner) Close() error {
	return r.group.Close()
}

type groupHandler struct {
	messages chan<- *MessageWithMarkFunc
	info     chan<- string
}

func (h *groupHandler) Setup(session sarama.ConsumerGroupSession) error {
	select {
	case h.info <- fmt.Sprintf("Consumer group up and running, claims: %v", session.Claims()):
	default:
	}

	return nil
}

func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}

			h.messages <- &MessageWithMarkFunc{
				Message: msg,
				Mark: func() {
					session.MarkMessage(msg, "")
				},
			}
		case <-session.Context().Done():
			return nil
		}
	}
}
