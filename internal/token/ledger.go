package token

import (
	"maps"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/types"
)

// Ledger is a fixed supply fungible token. The whole supply is allocated
// once by ClaimInitialSupply; nothing is ever minted afterwards, so
// sum(balances) == totalSupply holds after every call.
//
// Ledger is not safe for concurrent use.
type Ledger struct {
	address  common.Address
	name     string
	symbol   string
	decimals uint8

	balances             map[common.Address]sdkmath.Int
	allowances           map[common.Address]map[common.Address]sdkmath.Int
	totalSupply          sdkmath.Int
	initialSupplyClaimed bool
}

func New(address common.Address, name, symbol string, decimals uint8) *Ledger {
	return &Ledger{
		address:     address,
		name:        name,
		symbol:      symbol,
		decimals:    decimals,
		balances:    make(map[common.Address]sdkmath.Int),
		allowances:  make(map[common.Address]map[common.Address]sdkmath.Int),
		totalSupply: sdkmath.ZeroInt(),
	}
}

func (l *Ledger) Address() common.Address { return l.address }
func (l *Ledger) Name() string            { return l.name }
func (l *Ledger) Symbol() string          { return l.symbol }
func (l *Ledger) Decimals() uint8         { return l.decimals }
func (l *Ledger) TotalSupply() sdkmath.Int {
	return l.totalSupply
}

func (l *Ledger) InitialSupplyClaimed() bool {
	return l.initialSupplyClaimed
}

// Unit is 10^decimals, the number of base units in one whole token.
func (l *Ledger) Unit() sdkmath.Int {
	return sdkmath.NewIntWithDecimal(1, int(l.decimals))
}

// ClaimInitialSupply allocates whole-token amounts to minters. It succeeds
// exactly once per ledger.
func (l *Ledger) ClaimInitialSupply(minters []common.Address, amounts []uint64) error {
	if l.initialSupplyClaimed {
		return types.ErrSupplyAlreadyClaimed
	}
	if len(minters) != len(amounts) {
		return types.Errorf(types.ArrayLengthMismatch,
			"minters and amounts length mismatch: %d != %d", len(minters), len(amounts))
	}
	for _, minter := range minters {
		if minter == (common.Address{}) {
			return types.ErrZeroAddress
		}
	}

	unit := l.Unit()
	for i, minter := range minters {
		amount := sdkmath.NewIntFromUint64(amounts[i]).Mul(unit)
		l.balances[minter] = l.BalanceOf(minter).Add(amount)
		l.totalSupply = l.totalSupply.Add(amount)
	}
	l.initialSupplyClaimed = true

	return nil
}

func (l *Ledger) BalanceOf(account common.Address) sdkmath.Int {
	balance, ok := l.balances[account]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return balance
}

func (l *Ledger) Transfer(from, to common.Address, amount sdkmath.Int) error {
	if to == (common.Address{}) {
		return types.ErrZeroAddress
	}
	if amount.IsNegative() {
		return types.Errorf(types.BadRequest, "negative transfer amount %s", amount)
	}

	fromBalance := l.BalanceOf(from)
	if fromBalance.LT(amount) {
		return types.Errorf(types.InsufficientBalance,
			"transfer amount %s exceeds balance %s of %s", amount, fromBalance, from.Hex())
	}

	l.balances[from] = fromBalance.Sub(amount)
	l.balances[to] = l.BalanceOf(to).Add(amount)
	return nil
}

func (l *Ledger) Approve(owner, spender common.Address, amount sdkmath.Int) error {
	if spender == (common.Address{}) {
		return types.ErrZeroAddress
	}
	if amount.IsNegative() {
		return types.Errorf(types.BadRequest, "negative allowance %s", amount)
	}

	if l.allowances[owner] == nil {
		l.allowances[owner] = make(map[common.Address]sdkmath.Int)
	}
	l.allowances[owner][spender] = amount
	return nil
}

func (l *Ledger) Allowance(owner, spender common.Address) sdkmath.Int {
	allowance, ok := l.allowances[owner][spender]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return allowance
}

func (l *Ledger) TransferFrom(spender, from, to common.Address, amount sdkmath.Int) error {
	allowance := l.Allowance(from, spender)
	if allowance.LT(amount) {
		return types.Errorf(types.InsufficientAllowance,
			"allowance %s of %s is below %s", allowance, spender.Hex(), amount)
	}
	if err := l.Transfer(from, to, amount); err != nil {
		return err
	}

	if l.allowances[from] == nil {
		l.allowances[from] = make(map[common.Address]sdkmath.Int)
	}
	l.allowances[from][spender] = allowance.Sub(amount)
	return nil
}

// State is a copy of everything the ledger holds, used for persistence.
type State struct {
	Address              common.Address
	Name                 string
	Symbol               string
	Decimals             uint8
	Balances             map[common.Address]sdkmath.Int
	Allowances           map[common.Address]map[common.Address]sdkmath.Int
	TotalSupply          sdkmath.Int
	InitialSupplyClaimed bool
}

func (l *Ledger) Snapshot() State {
	allowances := make(map[common.Address]map[common.Address]sdkmath.Int, len(l.allowances))
	for owner, spenders := range l.allowances {
		allowances[owner] = maps.Clone(spenders)
	}

	return State{
		Address:              l.address,
		Name:                 l.name,
		Symbol:               l.symbol,
		Decimals:             l.decimals,
		Balances:             maps.Clone(l.balances),
		Allowances:           allowances,
		TotalSupply:          l.totalSupply,
		InitialSupplyClaimed: l.initialSupplyClaimed,
	}
}

func Restore(state State) *Ledger {
	l := New(state.Address, state.Name, state.Symbol, state.Decimals)
	maps.Copy(l.balances, state.Balances)
	for owner, spenders := range state.Allowances {
		l.allowances[owner] = maps.Clone(spenders)
	}
	if !state.TotalSupply.IsNil() {
		l.totalSupply = state.TotalSupply
	}
	l.initialSupplyClaimed = state.InitialSupplyClaimed
	return l
}
