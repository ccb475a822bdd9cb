package db

import (
	"context"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	// contracts
	UpsertStakerContract(ctx context.Context, doc *model.StakerContractDocument) error
	GetStakerContract(ctx context.Context, name string) (*model.StakerContractDocument, error)
	UpsertTokenContract(ctx context.Context, doc *model.TokenContractDocument) error
	GetTokenContract(ctx context.Context, name string) (*model.TokenContractDocument, error)
	UpsertNftContract(ctx context.Context, doc *model.NftContractDocument) error
	GetNftContract(ctx context.Context, name string) (*model.NftContractDocument, error)
	// staking
	SaveNewMission(ctx context.Context, doc *model.MissionDocument) error
	GetMissions(ctx context.Context) ([]model.MissionDocument, error)
	SaveNewStake(ctx context.Context, doc *model.StakeDocument) error
	DeleteStake(ctx context.Context, assetID uint64) error
	GetStakes(ctx context.Context) ([]model.StakeDocument, error)
	GetStakesByHolder(ctx context.Context, holder string) ([]model.StakeDocument, error)
	UpsertReward(ctx context.Context, doc *model.RewardDocument) error
	GetRewards(ctx context.Context) ([]model.RewardDocument, error)
	// token
	UpsertTokenBalances(ctx context.Context, docs ...*model.TokenBalanceDocument) error
	GetTokenBalances(ctx context.Context) ([]model.TokenBalanceDocument, error)
	// nft
	UpsertNftTokens(ctx context.Context, docs ...*model.NftTokenDocument) error
	GetNftTokens(ctx context.Context) ([]model.NftTokenDocument, error)
	GetNftTokensByOwner(ctx context.Context, owner string) ([]model.NftTokenDocument, error)
}
