package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/deploy"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

// DeployCmd deploys fresh contracts in memory and writes their artifacts,
// without touching the database.
// Usage: ./gelato-staker deploy --config config.yml [--out <dir>]
func DeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the NFT, token and staker and write their artifacts",
		Args:  cobra.ExactArgs(0),
		RunE:  deployContracts,
	}

	cmd.Flags().String("out", "", "Directory the artifact files are written to (default deployment.artifacts-dir)")

	return cmd
}

func deployContracts(cmd *cobra.Command, _ []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if out == "" {
		out = cfg.Deployment.ArtifactsDir
	}

	contracts, err := deploy.Deploy(cfg, utils.SystemClock{})
	if err != nil {
		return fmt.Errorf("failed to deploy: %w", err)
	}

	artifacts := contracts.Artifacts()
	if err := deploy.SaveArtifacts(out, artifacts); err != nil {
		return fmt.Errorf("failed to save artifacts: %w", err)
	}

	for _, artifact := range artifacts {
		log.Info().
			Str("contract", artifact.ContractName).
			Str("address", artifact.Address.Hex()).
			Str("dir", out).
			Msg("Artifact saved")
	}
	return nil
}
