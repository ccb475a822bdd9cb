package deploy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/rs/zerolog/log"

	"github.com/gelato-nft/gelato-staker/internal/collection"
	"github.com/gelato-nft/gelato-staker/internal/config"
	"github.com/gelato-nft/gelato-staker/internal/staking"
	"github.com/gelato-nft/gelato-staker/internal/token"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

// Deployer nonces the three contracts are created with, in deployment order.
const (
	collectionNonce uint64 = iota
	stakerNonce
	tokenNonce
)

const (
	CollectionContractName = "NFT"
	TokenContractName      = "Token"
	StakerContractName     = "NFTStaker"
)

type Contracts struct {
	Collection *collection.Collection
	Token      *token.Ledger
	Staker     *staking.Engine
}

// Deploy creates the collection, the staker and the token from the
// deployer account, allocates the initial token supply to the staker and the
// team wallet and hands the staker over to the team wallet.
func Deploy(cfg *config.Config, clock utils.Clock) (*Contracts, error) {
	deployer := cfg.Deployment.DeployerAddress()
	teamWallet := cfg.Deployment.TeamWalletAddress()
	log.Info().Str("deployer", deployer.Hex()).Msg("Deploying contracts")

	whitelist := append([]common.Address{teamWallet}, cfg.Collection.WhitelistAddresses()...)
	nft, err := collection.New(
		crypto.CreateAddress(deployer, collectionNonce),
		collection.Config{
			Name:         cfg.Collection.Name,
			Symbol:       cfg.Collection.Symbol,
			MaxSupply:    cfg.Collection.MaxSupply,
			TeamReserve:  cfg.Collection.TeamReserve,
			MaxPerWallet: cfg.Collection.MaxPerWallet,
		},
		deployer, teamWallet, whitelist,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", CollectionContractName, err)
	}
	log.Info().Str("address", nft.Address().Hex()).Msgf("%s contract deployed", CollectionContractName)

	rate := staking.RewardRate(cfg.Staking.RewardTokensPerDay, cfg.Token.Decimals)
	staker := staking.NewEngine(crypto.CreateAddress(deployer, stakerNonce), deployer, nft, rate, clock)
	log.Info().Str("address", staker.Address().Hex()).Msgf("%s contract deployed", StakerContractName)

	ledger := token.New(crypto.CreateAddress(deployer, tokenNonce), cfg.Token.Name, cfg.Token.Symbol, cfg.Token.Decimals)
	err = ledger.ClaimInitialSupply(
		[]common.Address{staker.Address(), teamWallet},
		[]uint64{cfg.Token.StakerAllocation, cfg.Token.TeamAllocation},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate %s supply: %w", TokenContractName, err)
	}
	log.Info().Str("address", ledger.Address().Hex()).Msgf("%s contract deployed", TokenContractName)

	if err := staker.SetOwnerAndTokenAddress(deployer, teamWallet, ledger); err != nil {
		return nil, fmt.Errorf("failed to link %s: %w", StakerContractName, err)
	}
	log.Info().Str("owner", teamWallet.Hex()).Msg("setOwnerAndTokenAddress call done")

	return &Contracts{
		Collection: nft,
		Token:      ledger,
		Staker:     staker,
	}, nil
}
