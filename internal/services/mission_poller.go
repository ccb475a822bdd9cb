package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils/poller"
)

// StartMissionPoller announces the end of the current mission once its end
// time has passed.
func (s *Service) StartMissionPoller(ctx context.Context) *poller.Poller {
	missionPoller := poller.NewPoller(
		"mission-check",
		s.cfg.Poller.MissionCheckInterval,
		metrics.RecordPollerDuration("mission-check", s.checkMissionEnded),
	)
	go missionPoller.Start(ctx)
	return missionPoller
}

func (s *Service) checkMissionEnded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.engine.CurrentMission()
	if !ok || current.ID == s.endedMission {
		return nil
	}
	if current.IsActive(s.now()) {
		return nil
	}

	s.endedMission = current.ID
	log.Ctx(ctx).Info().
		Uint64("missionId", current.ID).
		Int64("endTime", current.EndTime()).
		Msg("Mission ended")

	ev := types.NewStakingEvent(types.EventMissionEnded, current.EndTime())
	ev.MissionID = current.ID
	s.publish(ctx, ev)
	return nil
}
