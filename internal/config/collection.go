package config

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const (
	DefaultCollectionName   = "Gelato NFT"
	DefaultCollectionSymbol = "GLN"
	DefaultMaxSupply        = 3333
	// ids 1..332 go to the team wallet at deployment
	DefaultTeamReserve  = 332
	DefaultMaxPerWallet = 5
)

type CollectionConfig struct {
	Name         string   `mapstructure:"name"`
	Symbol       string   `mapstructure:"symbol"`
	MaxSupply    uint64   `mapstructure:"max-supply"`
	TeamReserve  uint64   `mapstructure:"team-reserve"`
	MaxPerWallet uint64   `mapstructure:"max-per-wallet"`
	Whitelist    []string `mapstructure:"whitelist"`
}

func (cfg *CollectionConfig) Validate() error {
	if cfg.Name == "" || cfg.Symbol == "" {
		return errors.New("name and symbol are required")
	}
	if cfg.MaxSupply == 0 {
		return errors.New("max-supply must be positive")
	}
	if cfg.TeamReserve > cfg.MaxSupply {
		return errors.New("team-reserve must not exceed max-supply")
	}
	if cfg.MaxPerWallet == 0 {
		return errors.New("max-per-wallet must be positive")
	}
	for _, addr := range cfg.Whitelist {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid whitelist address %q", addr)
		}
	}

	return nil
}

func (cfg *CollectionConfig) WhitelistAddresses() []common.Address {
	addrs := make([]common.Address, 0, len(cfg.Whitelist))
	for _, addr := range cfg.Whitelist {
		addrs = append(addrs, common.HexToAddress(addr))
	}
	return addrs
}
