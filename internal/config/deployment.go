package config

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultArtifactsDir = "contractsData"
	// first account of the local development node
	DefaultDeployer   = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	DefaultTeamWallet = "0x90F79bf6EB2c4f870365E785982E1f101E93b906"
)

type DeploymentConfig struct {
	// Deployer is the account contract addresses are derived from.
	Deployer string `mapstructure:"deployer"`
	// TeamWallet owns the staker after deployment and receives the team
	// token allocation and NFT reserve.
	TeamWallet   string `mapstructure:"team-wallet"`
	ArtifactsDir string `mapstructure:"artifacts-dir"`
}

func (cfg *DeploymentConfig) Validate() error {
	if !common.IsHexAddress(cfg.Deployer) {
		return fmt.Errorf("invalid deployer address %q", cfg.Deployer)
	}
	if !common.IsHexAddress(cfg.TeamWallet) {
		return fmt.Errorf("invalid team-wallet address %q", cfg.TeamWallet)
	}
	if cfg.ArtifactsDir == "" {
		return errors.New("artifacts-dir is required")
	}

	return nil
}

func (cfg *DeploymentConfig) DeployerAddress() common.Address {
	return common.HexToAddress(cfg.Deployer)
}

func (cfg *DeploymentConfig) TeamWalletAddress() common.Address {
	return common.HexToAddress(cfg.TeamWallet)
}
