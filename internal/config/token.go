package config

import "errors"

const (
	DefaultTokenName     = "GelatoTokenName"
	DefaultTokenSymbol   = "GelatoTokenSymbol"
	DefaultTokenDecimals = 18
	// whole tokens allocated at deployment
	DefaultStakerAllocation = 73_000_000
	DefaultTeamAllocation   = 149_000_000
)

type TokenConfig struct {
	Name             string `mapstructure:"name"`
	Symbol           string `mapstructure:"symbol"`
	Decimals         uint8  `mapstructure:"decimals"`
	StakerAllocation uint64 `mapstructure:"staker-allocation"`
	TeamAllocation   uint64 `mapstructure:"team-allocation"`
}

func (cfg *TokenConfig) Validate() error {
	if cfg.Name == "" || cfg.Symbol == "" {
		return errors.New("name and symbol are required")
	}
	if cfg.Decimals > 36 {
		return errors.New("decimals must not exceed 36")
	}
	if cfg.StakerAllocation == 0 {
		return errors.New("staker-allocation must be positive")
	}

	return nil
}
