package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/collection"
	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/db"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/queue"
	"github.com/gelato-nft/gelato-staker/internal/staking"
	"github.com/gelato-nft/gelato-staker/internal/token"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

// Service hosts the collection, the reward token and the staker. Every
// operation runs under one lock, so operations are applied in a single
// global order and none observes a partial effect of another.
type Service struct {
	cfg   *config.Config
	db    db.DbInterface
	queue queue.EventPublisher
	clock utils.Clock

	mu         sync.Mutex
	collection *collection.Collection
	ledger     *token.Ledger
	engine     *staking.Engine
	// id of the last mission announced as ended
	endedMission uint64
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	qm queue.EventPublisher,
	clock utils.Clock,
) *Service {
	return &Service{
		cfg:   cfg,
		db:    db,
		queue: qm,
		clock: clock,
	}
}

func (s *Service) Config() *config.Config {
	return s.cfg
}

// run executes one operation under the service lock and records its
// duration under the name of the calling method. Failures the caller can
// act on are returned as they are, anything else is wrapped as an internal
// error.
func (s *Service) run(ctx context.Context, f func() error) error {
	operation := utils.GetFunctionName(1)

	s.mu.Lock()
	defer s.mu.Unlock()

	startTime := time.Now()
	err := f()
	metrics.RecordOperationDuration(time.Since(startTime), operation, err != nil)
	if err == nil {
		return nil
	}

	var typedErr *types.Error
	if !errors.As(err, &typedErr) {
		err = types.NewInternalServiceError(err)
	}
	log.Ctx(ctx).Debug().Err(err).Str("operation", operation).Msg("Operation failed")
	return err
}

// persistFailed reports a write that failed after the in-memory state had
// already changed. The change stays applied and the error is surfaced so the
// caller knows the stored copy is behind.
func persistFailed(ctx context.Context, what string, err error) error {
	log.Ctx(ctx).Error().Err(err).Str("document", what).Msg("Failed to persist state change")
	return types.NewInternalServiceError(err)
}

func (s *Service) publish(ctx context.Context, ev *types.StakingEvent) {
	if err := s.queue.PushStakingEvent(ctx, ev); err != nil {
		log.Ctx(ctx).Error().Err(err).
			Str("eventType", ev.EventType.String()).
			Str("eventId", ev.EventID).
			Msg("Failed to publish event")
	}
}

func (s *Service) now() int64 {
	return s.clock.Now().Unix()
}
