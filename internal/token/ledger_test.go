package token

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/testutil"
)

var (
	tokenAddress = common.HexToAddress("0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0")
	staker       = common.HexToAddress("0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512")
	teamWallet   = common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
)

func newAllocatedLedger(t *testing.T) *Ledger {
	t.Helper()

	l := New(tokenAddress, "GelatoTokenName", "GelatoTokenSymbol", 18)
	err := l.ClaimInitialSupply([]common.Address{staker, teamWallet}, []uint64{73_000_000, 149_000_000})
	require.NoError(t, err)
	return l
}

func tokens(n int64) sdkmath.Int {
	return sdkmath.NewIntWithDecimal(n, 18)
}

func sumBalances(l *Ledger) sdkmath.Int {
	sum := sdkmath.ZeroInt()
	for _, balance := range l.Snapshot().Balances {
		sum = sum.Add(balance)
	}
	return sum
}

func TestClaimInitialSupply(t *testing.T) {
	t.Run("allocates the whole supply", func(t *testing.T) {
		l := newAllocatedLedger(t)

		assert.Equal(t, "222000000000000000000000000", l.TotalSupply().String())
		assert.Equal(t, "73000000000000000000000000", l.BalanceOf(staker).String())
		assert.Equal(t, "149000000000000000000000000", l.BalanceOf(teamWallet).String())
		assert.True(t, l.InitialSupplyClaimed())
	})
	t.Run("only once", func(t *testing.T) {
		l := newAllocatedLedger(t)

		err := l.ClaimInitialSupply([]common.Address{staker}, []uint64{1})
		require.ErrorIs(t, err, types.ErrSupplyAlreadyClaimed)
		assert.Equal(t, "Initial supply has already been claimed", err.Error())
		assert.Equal(t, "222000000000000000000000000", l.TotalSupply().String())
	})
	t.Run("length mismatch", func(t *testing.T) {
		l := New(tokenAddress, "n", "s", 18)

		err := l.ClaimInitialSupply([]common.Address{staker, teamWallet}, []uint64{1})
		require.ErrorIs(t, err, types.ErrArrayLengthMismatch)
		assert.False(t, l.InitialSupplyClaimed())
		assert.True(t, l.TotalSupply().IsZero())
	})
	t.Run("zero address minter", func(t *testing.T) {
		l := New(tokenAddress, "n", "s", 18)

		err := l.ClaimInitialSupply([]common.Address{{}}, []uint64{1})
		require.ErrorIs(t, err, types.ErrZeroAddress)
		assert.False(t, l.InitialSupplyClaimed())
	})
}

func TestTransfer(t *testing.T) {
	t.Run("moves balance", func(t *testing.T) {
		l := newAllocatedLedger(t)
		holder := testutil.RandomAddress()

		require.NoError(t, l.Transfer(staker, holder, tokens(5)))
		assert.Equal(t, tokens(5).String(), l.BalanceOf(holder).String())
		assert.Equal(t, tokens(73_000_000-5).String(), l.BalanceOf(staker).String())
		assert.Equal(t, l.TotalSupply().String(), sumBalances(l).String())
	})
	t.Run("insufficient balance leaves state unchanged", func(t *testing.T) {
		l := newAllocatedLedger(t)
		holder := testutil.RandomAddress()

		err := l.Transfer(holder, staker, sdkmath.OneInt())
		require.ErrorIs(t, err, types.ErrInsufficientBalance)
		assert.True(t, l.BalanceOf(holder).IsZero())
		assert.Equal(t, tokens(73_000_000).String(), l.BalanceOf(staker).String())
	})
	t.Run("zero address recipient", func(t *testing.T) {
		l := newAllocatedLedger(t)
		require.ErrorIs(t, l.Transfer(staker, common.Address{}, tokens(1)), types.ErrZeroAddress)
	})
	t.Run("conservation over random transfers", func(t *testing.T) {
		l := newAllocatedLedger(t)
		holders := []common.Address{staker, teamWallet}
		for range 10 {
			holders = append(holders, testutil.RandomAddress())
		}

		for i := range 200 {
			from := holders[i%len(holders)]
			to := holders[(i*7+3)%len(holders)]
			amount := l.BalanceOf(from).QuoRaw(3)
			require.NoError(t, l.Transfer(from, to, amount))
		}
		assert.Equal(t, l.TotalSupply().String(), sumBalances(l).String())
	})
}

func TestTransferFrom(t *testing.T) {
	l := newAllocatedLedger(t)
	spender := testutil.RandomAddress()
	recipient := testutil.RandomAddress()

	err := l.TransferFrom(spender, teamWallet, recipient, tokens(1))
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)

	require.NoError(t, l.Approve(teamWallet, spender, tokens(10)))
	require.NoError(t, l.TransferFrom(spender, teamWallet, recipient, tokens(4)))

	assert.Equal(t, tokens(4).String(), l.BalanceOf(recipient).String())
	assert.Equal(t, tokens(6).String(), l.Allowance(teamWallet, spender).String())

	err = l.TransferFrom(spender, teamWallet, recipient, tokens(7))
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)
	assert.Equal(t, tokens(6).String(), l.Allowance(teamWallet, spender).String())
}

func TestTransferFromBoundaries(t *testing.T) {
	spender := testutil.RandomAddress()
	recipient := testutil.RandomAddress()

	tests := []struct {
		name      string
		allowance sdkmath.Int
		amount    sdkmath.Int
		err       error
	}{
		{"zero amount without allowance", sdkmath.ZeroInt(), sdkmath.ZeroInt(), nil},
		{"zero amount with allowance", tokens(3), sdkmath.ZeroInt(), nil},
		{"more than the balance", tokens(1_000_000_000), tokens(149_000_001), types.ErrInsufficientBalance},
		{"more than the allowance", tokens(3), tokens(4), types.ErrInsufficientAllowance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newAllocatedLedger(t)
			if tt.allowance.IsPositive() {
				require.NoError(t, l.Approve(teamWallet, spender, tt.allowance))
			}

			err := l.TransferFrom(spender, teamWallet, recipient, tt.amount)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				assert.Equal(t, tt.allowance.String(), l.Allowance(teamWallet, spender).String())
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.allowance.Sub(tt.amount).String(), l.Allowance(teamWallet, spender).String())
			}
			assert.Equal(t, tokens(149_000_000).Sub(l.BalanceOf(recipient)).String(), l.BalanceOf(teamWallet).String())
			assert.Equal(t, l.TotalSupply().String(), sumBalances(l).String())
		})
	}
}

func TestSnapshotRestore(t *testing.T) {
	l := newAllocatedLedger(t)
	spender := testutil.RandomAddress()
	require.NoError(t, l.Approve(teamWallet, spender, tokens(3)))

	restored := Restore(l.Snapshot())
	assert.Equal(t, l.TotalSupply().String(), restored.TotalSupply().String())
	assert.Equal(t, l.BalanceOf(staker).String(), restored.BalanceOf(staker).String())
	assert.Equal(t, tokens(3).String(), restored.Allowance(teamWallet, spender).String())
	assert.True(t, restored.InitialSupplyClaimed())

	// restored ledger does not share maps with the original
	require.NoError(t, restored.Transfer(staker, spender, tokens(1)))
	assert.True(t, l.BalanceOf(spender).IsZero())
}
