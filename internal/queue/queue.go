package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

// EventPublisher delivers staking events to downstream consumers.
type EventPublisher interface {
	PushStakingEvent(ctx context.Context, ev *types.StakingEvent) error
	Shutdown()
}

// QueueManager publishes staking events to a durable topic exchange, routed
// by event type.
type QueueManager struct {
	cfg    *config.QueueConfig
	logger *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig, logger *zap.Logger) (*QueueManager, error) {
	qm := &QueueManager{
		cfg:    cfg,
		logger: logger.With(zap.String("exchange", cfg.Exchange)),
	}
	if err := qm.connect(); err != nil {
		return nil, err
	}
	return qm, nil
}

func (qm *QueueManager) connect() error {
	amqpCfg := amqp.Config{}
	if qm.cfg.User != "" {
		amqpCfg.SASL = []amqp.Authentication{&amqp.PlainAuth{
			Username: qm.cfg.User,
			Password: qm.cfg.Password,
		}}
	}

	conn, err := amqp.DialConfig(qm.cfg.Url, amqpCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(qm.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.Exchange, err)
	}

	qm.conn = conn
	qm.ch = ch
	qm.logger.Info("connected to queue")
	return nil
}

// PushStakingEvent publishes ev, reconnecting and retrying on failure.
func (qm *QueueManager) PushStakingEvent(ctx context.Context, ev *types.StakingEvent) error {
	msg, err := newPublishing(ev)
	if err != nil {
		return err
	}

	qm.mu.Lock()
	defer qm.mu.Unlock()

	err = retry.Do(
		func() error {
			if qm.ch == nil || qm.ch.IsClosed() {
				if err := qm.reconnect(); err != nil {
					return err
				}
			}
			return qm.ch.PublishWithContext(ctx, qm.cfg.Exchange, string(ev.EventType), false, false, msg)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.MaxRetryTimes),
		retry.Delay(qm.cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			qm.logger.Warn("failed to publish event, retrying",
				zap.Uint("attempt", n+1), zap.String("eventId", ev.EventID), zap.Error(err))
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish %s event: %w", ev.EventType, err)
	}
	return nil
}

func (qm *QueueManager) reconnect() error {
	if qm.conn != nil && !qm.conn.IsClosed() {
		qm.conn.Close()
	}
	return qm.connect()
}

func newPublishing(ev *types.StakingEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         string(ev.EventType),
		Body:         body,
	}, nil
}

// Shutdown gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Shutdown() {
	log.Info().Msg("Shutting down queue manager")

	qm.mu.Lock()
	defer qm.mu.Unlock()
	if qm.conn != nil && !qm.conn.IsClosed() {
		if err := qm.conn.Close(); err != nil {
			qm.logger.Error("failed to close queue connection", zap.Error(err))
		}
	}
}

// NoopPublisher drops every event. It is used when no queue is configured.
type NoopPublisher struct{}

func (NoopPublisher) PushStakingEvent(ctx context.Context, ev *types.StakingEvent) error {
	log.Ctx(ctx).Debug().
		Str("eventType", string(ev.EventType)).
		Str("eventId", ev.EventID).
		Msg("Queue disabled, dropping event")
	return nil
}

func (NoopPublisher) Shutdown() {}
