package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

// DbInterface is a mock of db.DbInterface.
type DbInterface struct {
	mock.Mock
}

// NewDbInterface creates a DbInterface mock whose expectations are asserted
// when the test finishes.
func NewDbInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *DbInterface {
	m := &DbInterface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *DbInterface) Ping(ctx context.Context) error {
	ret := m.Called(ctx)
	return ret.Error(0)
}

func (m *DbInterface) UpsertStakerContract(ctx context.Context, doc *model.StakerContractDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) GetStakerContract(ctx context.Context, name string) (*model.StakerContractDocument, error) {
	ret := m.Called(ctx, name)

	var r0 *model.StakerContractDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.StakerContractDocument); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.StakerContractDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) UpsertTokenContract(ctx context.Context, doc *model.TokenContractDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) GetTokenContract(ctx context.Context, name string) (*model.TokenContractDocument, error) {
	ret := m.Called(ctx, name)

	var r0 *model.TokenContractDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.TokenContractDocument); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.TokenContractDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) UpsertNftContract(ctx context.Context, doc *model.NftContractDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) GetNftContract(ctx context.Context, name string) (*model.NftContractDocument, error) {
	ret := m.Called(ctx, name)

	var r0 *model.NftContractDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) *model.NftContractDocument); ok {
		r0 = rf(ctx, name)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(*model.NftContractDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) SaveNewMission(ctx context.Context, doc *model.MissionDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) GetMissions(ctx context.Context) ([]model.MissionDocument, error) {
	ret := m.Called(ctx)

	var r0 []model.MissionDocument
	if rf, ok := ret.Get(0).(func(context.Context) []model.MissionDocument); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.MissionDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) SaveNewStake(ctx context.Context, doc *model.StakeDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) DeleteStake(ctx context.Context, assetID uint64) error {
	ret := m.Called(ctx, assetID)
	return ret.Error(0)
}

func (m *DbInterface) GetStakes(ctx context.Context) ([]model.StakeDocument, error) {
	ret := m.Called(ctx)

	var r0 []model.StakeDocument
	if rf, ok := ret.Get(0).(func(context.Context) []model.StakeDocument); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.StakeDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) GetStakesByHolder(ctx context.Context, holder string) ([]model.StakeDocument, error) {
	ret := m.Called(ctx, holder)

	var r0 []model.StakeDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.StakeDocument); ok {
		r0 = rf(ctx, holder)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.StakeDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) UpsertReward(ctx context.Context, doc *model.RewardDocument) error {
	ret := m.Called(ctx, doc)
	return ret.Error(0)
}

func (m *DbInterface) GetRewards(ctx context.Context) ([]model.RewardDocument, error) {
	ret := m.Called(ctx)

	var r0 []model.RewardDocument
	if rf, ok := ret.Get(0).(func(context.Context) []model.RewardDocument); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.RewardDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) UpsertTokenBalances(ctx context.Context, docs ...*model.TokenBalanceDocument) error {
	ret := m.Called(ctx, docs)
	return ret.Error(0)
}

func (m *DbInterface) GetTokenBalances(ctx context.Context) ([]model.TokenBalanceDocument, error) {
	ret := m.Called(ctx)

	var r0 []model.TokenBalanceDocument
	if rf, ok := ret.Get(0).(func(context.Context) []model.TokenBalanceDocument); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.TokenBalanceDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) UpsertNftTokens(ctx context.Context, docs ...*model.NftTokenDocument) error {
	ret := m.Called(ctx, docs)
	return ret.Error(0)
}

func (m *DbInterface) GetNftTokens(ctx context.Context) ([]model.NftTokenDocument, error) {
	ret := m.Called(ctx)

	var r0 []model.NftTokenDocument
	if rf, ok := ret.Get(0).(func(context.Context) []model.NftTokenDocument); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.NftTokenDocument)
	}
	return r0, ret.Error(1)
}

func (m *DbInterface) GetNftTokensByOwner(ctx context.Context, owner string) ([]model.NftTokenDocument, error) {
	ret := m.Called(ctx, owner)

	var r0 []model.NftTokenDocument
	if rf, ok := ret.Get(0).(func(context.Context, string) []model.NftTokenDocument); ok {
		r0 = rf(ctx, owner)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.NftTokenDocument)
	}
	return r0, ret.Error(1)
}
