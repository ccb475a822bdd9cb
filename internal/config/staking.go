package config

import "errors"

// DefaultRewardTokensPerDay is the whole-token reward every staked asset
// earns per day of overlap with a mission.
const DefaultRewardTokensPerDay = 5

type StakingConfig struct {
	RewardTokensPerDay uint64 `mapstructure:"reward-tokens-per-day"`
}

func (cfg *StakingConfig) Validate() error {
	if cfg.RewardTokensPerDay == 0 {
		return errors.New("reward-tokens-per-day must be positive")
	}

	return nil
}
