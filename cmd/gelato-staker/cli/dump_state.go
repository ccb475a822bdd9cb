package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/db"
	"github.com/gelato-nft/gelato-staker/internal/deploy"
)

// DumpStateCmd prints every persisted document, for inspecting a deployment
// without going through the api.
func DumpStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump-state",
		Short: "Print the persisted contract state",
		Args:  cobra.ExactArgs(0),
		RunE:  dumpState,
	}

	cmd.Flags().String("holder", "", "Only print the stakes of this holder")

	return cmd
}

func dumpState(cmd *cobra.Command, _ []string) error {
	holder, err := cmd.Flags().GetString("holder")
	if err != nil {
		return err
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dbClient, err := db.New(cmd.Context(), cfg.Db)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer dbClient.Close(context.Background())

	return DumpState(cmd.Context(), dbClient, holder, os.Stdout)
}

func DumpState(ctx context.Context, dbClient db.DbInterface, holder string, w io.Writer) error {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}

	if holder != "" {
		stakes, err := dbClient.GetStakesByHolder(ctx, holder)
		if err != nil {
			return err
		}
		cfg.Fdump(w, stakes)
		return nil
	}

	staker, err := dbClient.GetStakerContract(ctx, deploy.StakerContractName)
	if err != nil {
		return fmt.Errorf("failed to load staker contract: %w", err)
	}
	tokenContract, err := dbClient.GetTokenContract(ctx, deploy.TokenContractName)
	if err != nil {
		return fmt.Errorf("failed to load token contract: %w", err)
	}
	nftContract, err := dbClient.GetNftContract(ctx, deploy.CollectionContractName)
	if err != nil {
		return fmt.Errorf("failed to load nft contract: %w", err)
	}
	missions, err := dbClient.GetMissions(ctx)
	if err != nil {
		return err
	}
	stakes, err := dbClient.GetStakes(ctx)
	if err != nil {
		return err
	}
	rewards, err := dbClient.GetRewards(ctx)
	if err != nil {
		return err
	}
	balances, err := dbClient.GetTokenBalances(ctx)
	if err != nil {
		return err
	}

	for _, section := range []struct {
		title string
		value any
	}{
		{"staker", staker},
		{"token", tokenContract},
		{"nft", nftContract},
		{"missions", missions},
		{"stakes", stakes},
		{"rewards", rewards},
		{"balances", balances},
	} {
		fmt.Fprintf(w, "== %s ==\n", section.title)
		cfg.Fdump(w, section.value)
	}
	return nil
}
