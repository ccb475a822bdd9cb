package db

import (
	"context"
	"time"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) UpsertStakerContract(ctx context.Context, doc *model.StakerContractDocument) error {
	return d.run("UpsertStakerContract", func() error {
		return d.db.UpsertStakerContract(ctx, doc)
	})
}

func (d *DbWithMetrics) GetStakerContract(ctx context.Context, name string) (result *model.StakerContractDocument, err error) {
	//nolint:errcheck
	d.run("GetStakerContract", func() error {
		result, err = d.db.GetStakerContract(ctx, name)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertTokenContract(ctx context.Context, doc *model.TokenContractDocument) error {
	return d.run("UpsertTokenContract", func() error {
		return d.db.UpsertTokenContract(ctx, doc)
	})
}

func (d *DbWithMetrics) GetTokenContract(ctx context.Context, name string) (result *model.TokenContractDocument, err error) {
	//nolint:errcheck
	d.run("GetTokenContract", func() error {
		result, err = d.db.GetTokenContract(ctx, name)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertNftContract(ctx context.Context, doc *model.NftContractDocument) error {
	return d.run("UpsertNftContract", func() error {
		return d.db.UpsertNftContract(ctx, doc)
	})
}

func (d *DbWithMetrics) GetNftContract(ctx context.Context, name string) (result *model.NftContractDocument, err error) {
	//nolint:errcheck
	d.run("GetNftContract", func() error {
		result, err = d.db.GetNftContract(ctx, name)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewMission(ctx context.Context, doc *model.MissionDocument) error {
	return d.run("SaveNewMission", func() error {
		return d.db.SaveNewMission(ctx, doc)
	})
}

func (d *DbWithMetrics) GetMissions(ctx context.Context) (result []model.MissionDocument, err error) {
	//nolint:errcheck
	d.run("GetMissions", func() error {
		result, err = d.db.GetMissions(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) SaveNewStake(ctx context.Context, doc *model.StakeDocument) error {
	return d.run("SaveNewStake", func() error {
		return d.db.SaveNewStake(ctx, doc)
	})
}

func (d *DbWithMetrics) DeleteStake(ctx context.Context, assetID uint64) error {
	return d.run("DeleteStake", func() error {
		return d.db.DeleteStake(ctx, assetID)
	})
}

func (d *DbWithMetrics) GetStakes(ctx context.Context) (result []model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakes", func() error {
		result, err = d.db.GetStakes(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakesByHolder(ctx context.Context, holder string) (result []model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakesByHolder", func() error {
		result, err = d.db.GetStakesByHolder(ctx, holder)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertReward(ctx context.Context, doc *model.RewardDocument) error {
	return d.run("UpsertReward", func() error {
		return d.db.UpsertReward(ctx, doc)
	})
}

func (d *DbWithMetrics) GetRewards(ctx context.Context) (result []model.RewardDocument, err error) {
	//nolint:errcheck
	d.run("GetRewards", func() error {
		result, err = d.db.GetRewards(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertTokenBalances(ctx context.Context, docs ...*model.TokenBalanceDocument) error {
	return d.run("UpsertTokenBalances", func() error {
		return d.db.UpsertTokenBalances(ctx, docs...)
	})
}

func (d *DbWithMetrics) GetTokenBalances(ctx context.Context) (result []model.TokenBalanceDocument, err error) {
	//nolint:errcheck
	d.run("GetTokenBalances", func() error {
		result, err = d.db.GetTokenBalances(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) UpsertNftTokens(ctx context.Context, docs ...*model.NftTokenDocument) error {
	return d.run("UpsertNftTokens", func() error {
		return d.db.UpsertNftTokens(ctx, docs...)
	})
}

func (d *DbWithMetrics) GetNftTokens(ctx context.Context) (result []model.NftTokenDocument, err error) {
	//nolint:errcheck
	d.run("GetNftTokens", func() error {
		result, err = d.db.GetNftTokens(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetNftTokensByOwner(ctx context.Context, owner string) (result []model.NftTokenDocument, err error) {
	//nolint:errcheck
	d.run("GetNftTokensByOwner", func() error {
		result, err = d.db.GetNftTokensByOwner(ctx, owner)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
