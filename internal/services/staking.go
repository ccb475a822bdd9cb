package services

import (
	"context"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/staking"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

func (s *Service) StartMission(ctx context.Context, caller common.Address, durationHours uint64) (staking.Mission, error) {
	var mission staking.Mission
	err := s.run(ctx, func() error {
		var err error
		mission, err = s.engine.StartMission(caller, durationHours)
		if err != nil {
			return err
		}
		metrics.RecordCurrentMissionEnd(mission.EndTime())
		log.Ctx(ctx).Info().
			Uint64("missionId", mission.ID).
			Int64("startTime", mission.StartTime).
			Int64("endTime", mission.EndTime()).
			Msg("Mission started")

		if err := s.db.SaveNewMission(ctx, model.FromMission(mission)); err != nil {
			return persistFailed(ctx, "mission", err)
		}

		ev := types.NewStakingEvent(types.EventMissionStarted, mission.StartTime)
		ev.MissionID = mission.ID
		s.publish(ctx, ev)
		return nil
	})
	return mission, err
}

func (s *Service) Stake(ctx context.Context, caller common.Address, assetID uint64) (staking.StakeRecord, error) {
	var record staking.StakeRecord
	err := s.run(ctx, func() error {
		var err error
		record, err = s.engine.Stake(caller, assetID)
		if err != nil {
			return err
		}
		metrics.RecordStakedAssetsCount(s.engine.StakedCount())

		if err := s.db.SaveNewStake(ctx, model.FromStakeRecord(record)); err != nil {
			return persistFailed(ctx, "stake", err)
		}
		if err := s.persistNftTokens(ctx, assetID); err != nil {
			return persistFailed(ctx, "nft token", err)
		}

		ev := types.NewStakingEvent(types.EventStaked, record.StakedAt)
		ev.Holder = caller.Hex()
		ev.AssetIDs = []uint64{assetID}
		s.publish(ctx, ev)
		return nil
	})
	return record, err
}

// Unstake returns the asset to caller and reports the reward credited for
// the stake.
func (s *Service) Unstake(ctx context.Context, caller common.Address, assetID uint64) (sdkmath.Int, error) {
	var reward sdkmath.Int
	err := s.run(ctx, func() error {
		var err error
		reward, err = s.engine.Unstake(caller, assetID)
		if err != nil {
			return err
		}
		metrics.RecordStakedAssetsCount(s.engine.StakedCount())

		if err := s.db.DeleteStake(ctx, assetID); err != nil {
			return persistFailed(ctx, "stake", err)
		}
		if err := s.persistNftTokens(ctx, assetID); err != nil {
			return persistFailed(ctx, "nft token", err)
		}
		accrued := model.NewRewardDocument(caller, s.engine.GetRewardToClaim(caller))
		if err := s.db.UpsertReward(ctx, accrued); err != nil {
			return persistFailed(ctx, "reward", err)
		}

		ev := types.NewStakingEvent(types.EventUnstaked, s.now())
		ev.Holder = caller.Hex()
		ev.AssetIDs = []uint64{assetID}
		ev.Amount = reward.String()
		s.publish(ctx, ev)
		return nil
	})
	return reward, err
}

// ClaimReward pays out caller's accrued reward. Claiming nothing succeeds
// with a zero amount and changes nothing.
func (s *Service) ClaimReward(ctx context.Context, caller common.Address) (sdkmath.Int, error) {
	var amount sdkmath.Int
	err := s.run(ctx, func() error {
		var err error
		amount, err = s.engine.ClaimReward(caller)
		if err != nil || amount.IsZero() {
			return err
		}
		metrics.RecordRewardsClaimed(s.wholeTokens(amount))

		if err := s.db.UpsertReward(ctx, model.NewRewardDocument(caller, sdkmath.ZeroInt())); err != nil {
			return persistFailed(ctx, "reward", err)
		}
		if err := s.persistTokenBalances(ctx, s.engine.Address(), caller); err != nil {
			return persistFailed(ctx, "token balance", err)
		}

		ev := types.NewStakingEvent(types.EventRewardClaimed, s.now())
		ev.Holder = caller.Hex()
		ev.Amount = amount.String()
		s.publish(ctx, ev)
		return nil
	})
	return amount, err
}

func (s *Service) Missions() []staking.Mission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Missions()
}

type HolderReward struct {
	// Claimable is what ClaimReward would pay out now.
	Claimable sdkmath.Int
	// Pending adds what unstaking every staked asset now would credit.
	Pending sdkmath.Int
}

func (s *Service) Reward(holder common.Address) HolderReward {
	s.mu.Lock()
	defer s.mu.Unlock()
	return HolderReward{
		Claimable: s.engine.GetRewardToClaim(holder),
		Pending:   s.engine.PendingReward(holder),
	}
}

func (s *Service) StakedTokens(holder common.Address) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.GetStakedTokens(holder)
}

// wholeTokens converts base units to whole tokens for metrics only.
func (s *Service) wholeTokens(amount sdkmath.Int) float64 {
	f, _ := new(big.Float).Quo(
		new(big.Float).SetInt(amount.BigInt()),
		new(big.Float).SetInt(s.ledger.Unit().BigInt()),
	).Float64()
	return f
}
