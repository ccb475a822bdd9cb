package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

// IncreaseTime moves the service clock forward, the way a local development
// node lets tests fast forward block time. It only works with an offset
// clock.
func (s *Service) IncreaseTime(ctx context.Context, d time.Duration) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clock, ok := s.clock.(*utils.OffsetClock)
	if !ok {
		return time.Time{}, types.Errorf(types.NotFound, "clock cannot be moved")
	}
	if d <= 0 {
		return time.Time{}, types.Errorf(types.BadRequest, "duration must be positive")
	}

	clock.Advance(d)
	now := clock.Now()
	log.Ctx(ctx).Warn().
		Dur("increase", d).
		Dur("offset", clock.Offset()).
		Time("now", now).
		Msg("Clock moved forward")
	return now, nil
}

func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Ping reports whether the database is reachable.
func (s *Service) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return types.NewError(types.InternalServiceError, fmt.Errorf("database unreachable: %w", err))
	}
	return nil
}
