package staking

import (
	"math"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelato-nft/gelato-staker/internal/collection"
	"github.com/gelato-nft/gelato-staker/internal/token"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils"
	"github.com/gelato-nft/gelato-staker/testutil"
)

var (
	collectionAddress = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	engineAddress     = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	tokenAddress      = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	deployer          = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	teamWallet        = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

type fixture struct {
	clock      *utils.FixedClock
	collection *collection.Collection
	ledger     *token.Ledger
	engine     *Engine
}

// newFixture deploys a collection, an engine and a ledger holding the
// staker allocation, and hands the engine to the team wallet.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := utils.NewFixedClock(time.Unix(1_700_000_000, 0))
	c, err := collection.New(collectionAddress, collection.Config{
		Name:         "Gelato NFT",
		Symbol:       "GLN",
		MaxSupply:    3333,
		TeamReserve:  332,
		MaxPerWallet: 5,
	}, deployer, teamWallet, nil)
	require.NoError(t, err)
	require.NoError(t, c.StartPublicSale(deployer))

	ledger := token.New(tokenAddress, "GelatoTokenName", "GelatoTokenSymbol", 18)
	require.NoError(t, ledger.ClaimInitialSupply(
		[]common.Address{engineAddress, teamWallet}, []uint64{73_000_000, 149_000_000},
	))

	engine := NewEngine(engineAddress, deployer, c, RewardRate(5, 18), clock)
	require.NoError(t, engine.SetOwnerAndTokenAddress(deployer, teamWallet, ledger))

	return &fixture{clock: clock, collection: c, ledger: ledger, engine: engine}
}

func (f *fixture) advance(d time.Duration) {
	f.clock.Set(f.clock.Now().Add(d))
}

// mintApproved mints one asset to holder and approves the engine for it.
func (f *fixture) mintApproved(t *testing.T, holder common.Address) uint64 {
	t.Helper()

	ids, err := f.collection.Mint(holder, 1)
	require.NoError(t, err)
	require.NoError(t, f.collection.SetApprovalForAll(holder, engineAddress, true))
	return ids[0]
}

func TestRewardRate(t *testing.T) {
	assert.Equal(t, "57870370370370", RewardRate(5, 18).String())
	assert.Equal(t, "0", RewardRate(5, 0).String())
}

func TestStartMission(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.StartMission(deployer, 24)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	_, err = f.engine.StartMission(teamWallet, 0)
	require.ErrorIs(t, err, types.ErrBadRequest)

	_, ok := f.engine.CurrentMission()
	assert.False(t, ok)

	first, err := f.engine.StartMission(teamWallet, 240)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.ID)
	assert.Equal(t, f.clock.Now().Unix(), first.StartTime)
	assert.Equal(t, int64(240*3600), first.DurationSeconds)

	f.advance(time.Hour)
	second, err := f.engine.StartMission(teamWallet, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.ID)

	current, ok := f.engine.CurrentMission()
	require.True(t, ok)
	assert.Equal(t, second, current)
	assert.Equal(t, []Mission{first, second}, f.engine.Missions())
}

// Durations whose end time would not fit an int64 are rejected and leave
// the current mission in place.
func TestStartMissionBoundaries(t *testing.T) {
	now := int64(1_700_000_000)
	maxHours := uint64(math.MaxInt64-now) / 3600

	tests := []struct {
		name  string
		hours uint64
		err   error
	}{
		{"longest mission", maxHours, nil},
		{"one hour too long", maxHours + 1, types.ErrBadRequest},
		{"duration wrapping to zero seconds", 1 << 62, types.ErrBadRequest},
		{"largest uint64", math.MaxUint64, types.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			previous, err := f.engine.StartMission(teamWallet, 24)
			require.NoError(t, err)

			mission, err := f.engine.StartMission(teamWallet, tt.hours)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				current, ok := f.engine.CurrentMission()
				require.True(t, ok)
				assert.Equal(t, previous, current)
				assert.Len(t, f.engine.Missions(), 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(tt.hours)*3600, mission.DurationSeconds)
			assert.Greater(t, mission.EndTime(), mission.StartTime)
		})
	}

	t.Run("a day staked in a long mission earns a day", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, maxHours)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)

		f.advance(24 * time.Hour)
		reward, err := f.engine.Unstake(holder, id)
		require.NoError(t, err)
		assert.Equal(t, RewardRate(5, 18).MulRaw(day).String(), reward.String())
	})
}

func TestStake(t *testing.T) {
	t.Run("no mission started", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)

		_, err := f.engine.Stake(holder, id)
		require.ErrorIs(t, err, types.ErrNoActiveMission)

		owner, err := f.collection.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, holder, owner)
	})
	t.Run("takes custody of the asset", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 24)
		require.NoError(t, err)

		record, err := f.engine.Stake(holder, id)
		require.NoError(t, err)
		assert.Equal(t, StakeRecord{Holder: holder, AssetID: id, StakedAt: f.clock.Now().Unix()}, record)

		owner, err := f.collection.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, engineAddress, owner)
		assert.Equal(t, []uint64{id}, f.engine.GetStakedTokens(holder))
		assert.Equal(t, 1, f.engine.StakedCount())
	})
	t.Run("staked twice", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)

		_, err = f.engine.Stake(holder, id)
		require.ErrorIs(t, err, types.ErrAlreadyStaked)
	})
	t.Run("registry rejects the transfer", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		ids, err := f.collection.Mint(holder, 1)
		require.NoError(t, err)
		_, err = f.engine.StartMission(teamWallet, 24)
		require.NoError(t, err)

		_, err = f.engine.Stake(holder, ids[0])
		require.ErrorIs(t, err, types.ErrNotOwnerNorApproved)
		assert.Empty(t, f.engine.GetStakedTokens(holder))

		stranger := testutil.RandomAddress()
		require.NoError(t, f.collection.SetApprovalForAll(stranger, engineAddress, true))
		_, err = f.engine.Stake(stranger, ids[0])
		require.ErrorIs(t, err, types.ErrTransferFromIncorrectOwner)
		assert.Equal(t, 0, f.engine.StakedCount())
	})
}

func TestUnstake(t *testing.T) {
	t.Run("only the holder can unstake", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)

		_, err = f.engine.Unstake(testutil.RandomAddress(), id)
		require.ErrorIs(t, err, types.ErrNotOwnerOrNotStaked)
		_, err = f.engine.Unstake(holder, id+1)
		require.ErrorIs(t, err, types.ErrNotOwnerOrNotStaked)
		assert.Equal(t, []uint64{id}, f.engine.GetStakedTokens(holder))
	})
	t.Run("returns the asset and credits the overlap", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 10*24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)

		f.advance(20 * 24 * time.Hour)
		reward, err := f.engine.Unstake(holder, id)
		require.NoError(t, err)

		expected := RewardRate(5, 18).MulRaw(10 * day)
		assert.Equal(t, expected.String(), reward.String())
		assert.Equal(t, expected.String(), f.engine.GetRewardToClaim(holder).String())
		assert.Empty(t, f.engine.GetStakedTokens(holder))

		owner, err := f.collection.OwnerOf(id)
		require.NoError(t, err)
		assert.Equal(t, holder, owner)
	})
	t.Run("stake outside every mission earns nothing", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 1)
		require.NoError(t, err)
		f.advance(2 * time.Hour)

		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)
		f.advance(5 * 24 * time.Hour)

		reward, err := f.engine.Unstake(holder, id)
		require.NoError(t, err)
		assert.True(t, reward.IsZero())
		assert.True(t, f.engine.GetRewardToClaim(holder).IsZero())
	})
	t.Run("accrues across two missions with a gap", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 10*24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)

		f.advance(15 * 24 * time.Hour)
		_, err = f.engine.StartMission(teamWallet, 5*24)
		require.NoError(t, err)
		f.advance(10 * 24 * time.Hour)

		reward, err := f.engine.Unstake(holder, id)
		require.NoError(t, err)
		assert.Equal(t, RewardRate(5, 18).MulRaw(15*day).String(), reward.String())
	})
	t.Run("restaking accumulates", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 10*24)
		require.NoError(t, err)

		for range 2 {
			_, err = f.engine.Stake(holder, id)
			require.NoError(t, err)
			f.advance(24 * time.Hour)
			_, err = f.engine.Unstake(holder, id)
			require.NoError(t, err)
		}

		assert.Equal(t, RewardRate(5, 18).MulRaw(2*day).String(), f.engine.GetRewardToClaim(holder).String())
	})
}

func TestPendingReward(t *testing.T) {
	f := newFixture(t)
	holder := testutil.RandomAddress()
	first := f.mintApproved(t, holder)
	second := f.mintApproved(t, holder)
	_, err := f.engine.StartMission(teamWallet, 10*24)
	require.NoError(t, err)

	_, err = f.engine.Stake(holder, first)
	require.NoError(t, err)
	f.advance(24 * time.Hour)
	_, err = f.engine.Stake(holder, second)
	require.NoError(t, err)
	f.advance(24 * time.Hour)

	_, err = f.engine.Unstake(holder, first)
	require.NoError(t, err)

	rate := RewardRate(5, 18)
	assert.Equal(t, rate.MulRaw(2*day).String(), f.engine.GetRewardToClaim(holder).String())
	assert.Equal(t, rate.MulRaw(3*day).String(), f.engine.PendingReward(holder).String())
	assert.True(t, f.engine.PendingReward(testutil.RandomAddress()).IsZero())
}

func TestClaimReward(t *testing.T) {
	t.Run("pays out the accrued reward once", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)
		_, err := f.engine.StartMission(teamWallet, 10*24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)
		f.advance(20 * 24 * time.Hour)
		_, err = f.engine.Unstake(holder, id)
		require.NoError(t, err)

		engineBalance := f.ledger.BalanceOf(engineAddress)
		amount, err := f.engine.ClaimReward(holder)
		require.NoError(t, err)

		expected := RewardRate(5, 18).MulRaw(10 * day)
		assert.Equal(t, expected.String(), amount.String())
		assert.Equal(t, expected.String(), f.ledger.BalanceOf(holder).String())
		assert.Equal(t, engineBalance.Sub(expected).String(), f.ledger.BalanceOf(engineAddress).String())
		assert.True(t, f.engine.GetRewardToClaim(holder).IsZero())

		amount, err = f.engine.ClaimReward(holder)
		require.NoError(t, err)
		assert.True(t, amount.IsZero())
		assert.Equal(t, expected.String(), f.ledger.BalanceOf(holder).String())
	})
	t.Run("nothing accrued", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()

		amount, err := f.engine.ClaimReward(holder)
		require.NoError(t, err)
		assert.True(t, amount.IsZero())
		assert.True(t, f.ledger.BalanceOf(holder).IsZero())
	})
	t.Run("ledger not linked", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)

		engine := NewEngine(engineAddress, teamWallet, f.collection, RewardRate(5, 18), f.clock)
		_, err := engine.StartMission(teamWallet, 24)
		require.NoError(t, err)
		_, err = engine.Stake(holder, id)
		require.NoError(t, err)
		f.advance(time.Hour)
		_, err = engine.Unstake(holder, id)
		require.NoError(t, err)

		accrued := engine.GetRewardToClaim(holder)
		_, err = engine.ClaimReward(holder)
		require.ErrorIs(t, err, types.ErrLedgerNotLinked)
		assert.Equal(t, accrued.String(), engine.GetRewardToClaim(holder).String())
	})
	t.Run("insufficient engine balance leaves the reward in place", func(t *testing.T) {
		f := newFixture(t)
		holder := testutil.RandomAddress()
		id := f.mintApproved(t, holder)

		empty := token.New(tokenAddress, "GelatoTokenName", "GelatoTokenSymbol", 18)
		require.NoError(t, f.engine.SetOwnerAndTokenAddress(teamWallet, teamWallet, empty))
		_, err := f.engine.StartMission(teamWallet, 24)
		require.NoError(t, err)
		_, err = f.engine.Stake(holder, id)
		require.NoError(t, err)
		f.advance(time.Hour)
		_, err = f.engine.Unstake(holder, id)
		require.NoError(t, err)

		accrued := f.engine.GetRewardToClaim(holder)
		_, err = f.engine.ClaimReward(holder)
		require.ErrorIs(t, err, types.ErrInsufficientBalance)
		assert.Equal(t, accrued.String(), f.engine.GetRewardToClaim(holder).String())
		assert.True(t, empty.BalanceOf(holder).IsZero())
	})
}

func TestTotalPayoutBoundedByAllocation(t *testing.T) {
	f := newFixture(t)
	allocation := f.ledger.BalanceOf(engineAddress)
	holders := testutil.RandomAddresses(3)

	_, err := f.engine.StartMission(teamWallet, 30*24)
	require.NoError(t, err)
	for _, holder := range holders {
		_, err = f.engine.Stake(holder, f.mintApproved(t, holder))
		require.NoError(t, err)
	}
	f.advance(30 * 24 * time.Hour)

	paid := sdkmath.ZeroInt()
	for _, holder := range holders {
		for _, id := range f.engine.GetStakedTokens(holder) {
			_, err = f.engine.Unstake(holder, id)
			require.NoError(t, err)
		}
		amount, err := f.engine.ClaimReward(holder)
		require.NoError(t, err)
		paid = paid.Add(amount)
	}

	assert.Equal(t, RewardRate(5, 18).MulRaw(3*30*day).String(), paid.String())
	assert.True(t, paid.LTE(allocation))
	assert.Equal(t, allocation.Sub(paid).String(), f.ledger.BalanceOf(engineAddress).String())
}

func TestSetOwnerAndTokenAddress(t *testing.T) {
	f := newFixture(t)

	err := f.engine.SetOwnerAndTokenAddress(deployer, deployer, f.ledger)
	require.ErrorIs(t, err, types.ErrUnauthorized)

	err = f.engine.SetOwnerAndTokenAddress(teamWallet, common.Address{}, f.ledger)
	require.ErrorIs(t, err, types.ErrZeroAddress)

	newOwner := testutil.RandomAddress()
	require.NoError(t, f.engine.SetOwnerAndTokenAddress(teamWallet, newOwner, f.ledger))
	assert.Equal(t, newOwner, f.engine.Owner())
	assert.Equal(t, tokenAddress, f.engine.LedgerAddress())
}

func TestSnapshotRestore(t *testing.T) {
	f := newFixture(t)
	holder := testutil.RandomAddress()
	first := f.mintApproved(t, holder)
	second := f.mintApproved(t, holder)
	_, err := f.engine.StartMission(teamWallet, 48)
	require.NoError(t, err)
	_, err = f.engine.Stake(holder, second)
	require.NoError(t, err)
	_, err = f.engine.Stake(holder, first)
	require.NoError(t, err)
	f.advance(time.Hour)
	_, err = f.engine.Unstake(holder, second)
	require.NoError(t, err)

	state := f.engine.Snapshot()
	assert.Equal(t, engineAddress, state.Address)
	assert.Equal(t, teamWallet, state.Owner)
	assert.Equal(t, tokenAddress, state.LedgerAddress)
	require.Len(t, state.Stakes, 1)
	assert.Equal(t, first, state.Stakes[0].AssetID)

	restored := Restore(state, f.collection, f.ledger, RewardRate(5, 18), f.clock)
	assert.Equal(t, state, restored.Snapshot())
	assert.Equal(t, f.engine.PendingReward(holder).String(), restored.PendingReward(holder).String())
	assert.Equal(t, []uint64{first}, restored.GetStakedTokens(holder))
}
