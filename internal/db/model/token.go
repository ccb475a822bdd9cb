package model

import (
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/token"
)

type TokenBalanceDocument struct {
	Address string `bson:"_id"`
	Balance string `bson:"balance"`
}

func NewTokenBalanceDocument(address common.Address, balance sdkmath.Int) *TokenBalanceDocument {
	return &TokenBalanceDocument{
		Address: address.Hex(),
		Balance: balance.String(),
	}
}

type TokenAllowance struct {
	Owner   string `bson:"owner"`
	Spender string `bson:"spender"`
	Amount  string `bson:"amount"`
}

type TokenContractDocument struct {
	Name                 string           `bson:"_id"`
	Address              string           `bson:"address"`
	TokenName            string           `bson:"token_name"`
	Symbol               string           `bson:"symbol"`
	Decimals             uint8            `bson:"decimals"`
	TotalSupply          string           `bson:"total_supply"`
	InitialSupplyClaimed bool             `bson:"initial_supply_claimed"`
	Allowances           []TokenAllowance `bson:"allowances"`
}

func FromLedgerState(name string, state token.State) (*TokenContractDocument, []*TokenBalanceDocument) {
	contract := &TokenContractDocument{
		Name:                 name,
		Address:              state.Address.Hex(),
		TokenName:            state.Name,
		Symbol:               state.Symbol,
		Decimals:             state.Decimals,
		TotalSupply:          state.TotalSupply.String(),
		InitialSupplyClaimed: state.InitialSupplyClaimed,
		Allowances:           []TokenAllowance{},
	}
	for owner, spenders := range state.Allowances {
		for spender, amount := range spenders {
			contract.Allowances = append(contract.Allowances, TokenAllowance{
				Owner:   owner.Hex(),
				Spender: spender.Hex(),
				Amount:  amount.String(),
			})
		}
	}

	balances := make([]*TokenBalanceDocument, 0, len(state.Balances))
	for address, balance := range state.Balances {
		balances = append(balances, NewTokenBalanceDocument(address, balance))
	}
	return contract, balances
}

func ToLedgerState(contract *TokenContractDocument, balances []TokenBalanceDocument) (token.State, error) {
	state := token.State{
		Name:                 contract.TokenName,
		Symbol:               contract.Symbol,
		Decimals:             contract.Decimals,
		InitialSupplyClaimed: contract.InitialSupplyClaimed,
		Balances:             make(map[common.Address]sdkmath.Int, len(balances)),
		Allowances:           make(map[common.Address]map[common.Address]sdkmath.Int),
	}

	var err error
	if state.Address, err = parseAddress(contract.Address); err != nil {
		return state, err
	}
	if state.TotalSupply, err = parseAmount(contract.TotalSupply); err != nil {
		return state, err
	}
	for _, a := range contract.Allowances {
		owner, err := parseAddress(a.Owner)
		if err != nil {
			return state, err
		}
		spender, err := parseAddress(a.Spender)
		if err != nil {
			return state, err
		}
		amount, err := parseAmount(a.Amount)
		if err != nil {
			return state, err
		}
		if state.Allowances[owner] == nil {
			state.Allowances[owner] = make(map[common.Address]sdkmath.Int)
		}
		state.Allowances[owner][spender] = amount
	}
	for _, b := range balances {
		address, err := parseAddress(b.Address)
		if err != nil {
			return state, err
		}
		balance, err := parseAmount(b.Balance)
		if err != nil {
			return state, err
		}
		state.Balances[address] = balance
	}
	return state, nil
}
