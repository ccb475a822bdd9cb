package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/collection"
	"github.com/gelato-nft/gelato-staker/internal/db"
	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/deploy"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
	"github.com/gelato-nft/gelato-staker/internal/staking"
	"github.com/gelato-nft/gelato-staker/internal/token"
)

// Bootstrap restores the contracts from the database. On an empty database
// the contracts are deployed and the deployment is persisted.
func (s *Service) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := log.Ctx(ctx)

	stakerDoc, err := s.db.GetStakerContract(ctx, deploy.StakerContractName)
	if db.IsNotFoundError(err) {
		log.Info().Msg("No deployment found, deploying contracts")
		return s.deploy(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to get staker contract: %w", err)
	}

	if err := s.restore(ctx, stakerDoc); err != nil {
		return err
	}
	log.Info().
		Str("staker", s.engine.Address().Hex()).
		Int("missions", len(s.engine.Missions())).
		Int("staked", s.engine.StakedCount()).
		Msg("Contracts restored from database")
	return nil
}

func (s *Service) deploy(ctx context.Context) error {
	contracts, err := deploy.Deploy(s.cfg, s.clock)
	if err != nil {
		return err
	}
	s.collection = contracts.Collection
	s.ledger = contracts.Token
	s.engine = contracts.Staker

	if err := s.persistAll(ctx); err != nil {
		return fmt.Errorf("failed to persist deployment: %w", err)
	}
	s.recordGauges()
	return nil
}

func (s *Service) persistAll(ctx context.Context) error {
	nftDoc, nftTokens := model.FromCollectionState(deploy.CollectionContractName, s.collection.Snapshot())
	if err := s.db.UpsertNftTokens(ctx, nftTokens...); err != nil {
		return err
	}
	if err := s.db.UpsertNftContract(ctx, nftDoc); err != nil {
		return err
	}

	tokenDoc, balances := model.FromLedgerState(deploy.TokenContractName, s.ledger.Snapshot())
	if err := s.db.UpsertTokenBalances(ctx, balances...); err != nil {
		return err
	}
	if err := s.db.UpsertTokenContract(ctx, tokenDoc); err != nil {
		return err
	}

	stakerDoc, missions, stakes, rewards := model.FromEngineState(deploy.StakerContractName, s.engine.Snapshot())
	for _, m := range missions {
		if err := s.db.SaveNewMission(ctx, m); err != nil {
			return err
		}
	}
	for _, st := range stakes {
		if err := s.db.SaveNewStake(ctx, st); err != nil {
			return err
		}
	}
	for _, r := range rewards {
		if err := s.db.UpsertReward(ctx, r); err != nil {
			return err
		}
	}
	// written last: its presence marks a complete deployment
	return s.db.UpsertStakerContract(ctx, stakerDoc)
}

func (s *Service) restore(ctx context.Context, stakerDoc *model.StakerContractDocument) error {
	nftDoc, err := s.db.GetNftContract(ctx, deploy.CollectionContractName)
	if err != nil {
		return fmt.Errorf("failed to get nft contract: %w", err)
	}
	nftTokens, err := s.db.GetNftTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to get nft tokens: %w", err)
	}
	collectionState, err := model.ToCollectionState(nftDoc, nftTokens)
	if err != nil {
		return fmt.Errorf("invalid nft contract document: %w", err)
	}

	tokenDoc, err := s.db.GetTokenContract(ctx, deploy.TokenContractName)
	if err != nil {
		return fmt.Errorf("failed to get token contract: %w", err)
	}
	balances, err := s.db.GetTokenBalances(ctx)
	if err != nil {
		return fmt.Errorf("failed to get token balances: %w", err)
	}
	ledgerState, err := model.ToLedgerState(tokenDoc, balances)
	if err != nil {
		return fmt.Errorf("invalid token contract document: %w", err)
	}

	missions, err := s.db.GetMissions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get missions: %w", err)
	}
	stakes, err := s.db.GetStakes(ctx)
	if err != nil {
		return fmt.Errorf("failed to get stakes: %w", err)
	}
	rewards, err := s.db.GetRewards(ctx)
	if err != nil {
		return fmt.Errorf("failed to get rewards: %w", err)
	}
	engineState, err := model.ToEngineState(stakerDoc, missions, stakes, rewards)
	if err != nil {
		return fmt.Errorf("invalid staker contract document: %w", err)
	}

	s.collection = collection.Restore(collectionState)
	s.ledger = token.Restore(ledgerState)

	var ledger staking.RewardLedger
	if engineState.LedgerAddress == s.ledger.Address() {
		ledger = s.ledger
	}
	rate := staking.RewardRate(s.cfg.Staking.RewardTokensPerDay, s.ledger.Decimals())
	s.engine = staking.Restore(engineState, s.collection, ledger, rate, s.clock)

	if current, ok := s.engine.CurrentMission(); ok && !current.IsActive(s.now()) {
		s.endedMission = current.ID
	}
	s.recordGauges()
	return nil
}

func (s *Service) recordGauges() {
	metrics.RecordStakedAssetsCount(s.engine.StakedCount())
	if current, ok := s.engine.CurrentMission(); ok {
		metrics.RecordCurrentMissionEnd(current.EndTime())
	}
}
