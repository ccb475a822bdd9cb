package model

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/collection"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

type NftTokenDocument struct {
	TokenID  uint64 `bson:"_id"`
	Owner    string `bson:"owner"`
	Approved string `bson:"approved,omitempty"`
}

func NewNftTokenDocument(id uint64, owner, approved common.Address) *NftTokenDocument {
	doc := &NftTokenDocument{
		TokenID: id,
		Owner:   owner.Hex(),
	}
	if approved != (common.Address{}) {
		doc.Approved = approved.Hex()
	}
	return doc
}

type NftOperator struct {
	Owner    string `bson:"owner"`
	Operator string `bson:"operator"`
	Approved bool   `bson:"approved"`
}

type NftContractDocument struct {
	Name         string            `bson:"_id"`
	Address      string            `bson:"address"`
	Owner        string            `bson:"owner"`
	TeamWallet   string            `bson:"team_wallet"`
	TokenName    string            `bson:"token_name"`
	Symbol       string            `bson:"symbol"`
	MaxSupply    uint64            `bson:"max_supply"`
	TeamReserve  uint64            `bson:"team_reserve"`
	MaxPerWallet uint64            `bson:"max_per_wallet"`
	SaleState    string            `bson:"sale_state"`
	MerkleRoot   string            `bson:"merkle_root"`
	Whitelist    []string          `bson:"whitelist"`
	Operators    []NftOperator     `bson:"operators"`
	Minted       map[string]uint64 `bson:"minted"`
}

func FromCollectionState(name string, state collection.State) (*NftContractDocument, []*NftTokenDocument) {
	contract := &NftContractDocument{
		Name:         name,
		Address:      state.Address.Hex(),
		Owner:        state.Owner.Hex(),
		TeamWallet:   state.TeamWallet.Hex(),
		TokenName:    state.Config.Name,
		Symbol:       state.Config.Symbol,
		MaxSupply:    state.Config.MaxSupply,
		TeamReserve:  state.Config.TeamReserve,
		MaxPerWallet: state.Config.MaxPerWallet,
		SaleState:    state.SaleState.String(),
		MerkleRoot:   state.MerkleRoot.Hex(),
		Whitelist:    make([]string, 0, len(state.Whitelist)),
		Operators:    []NftOperator{},
		Minted:       make(map[string]uint64, len(state.Minted)),
	}
	for _, addr := range state.Whitelist {
		contract.Whitelist = append(contract.Whitelist, addr.Hex())
	}
	for owner, operators := range state.Operators {
		for operator, approved := range operators {
			contract.Operators = append(contract.Operators, NftOperator{
				Owner:    owner.Hex(),
				Operator: operator.Hex(),
				Approved: approved,
			})
		}
	}
	for addr, count := range state.Minted {
		contract.Minted[addr.Hex()] = count
	}

	tokens := make([]*NftTokenDocument, 0, len(state.Owners))
	for id, owner := range state.Owners {
		tokens = append(tokens, NewNftTokenDocument(id, owner, state.TokenApprovals[id]))
	}
	return contract, tokens
}

func ToCollectionState(contract *NftContractDocument, tokens []NftTokenDocument) (collection.State, error) {
	state := collection.State{
		Config: collection.Config{
			Name:         contract.TokenName,
			Symbol:       contract.Symbol,
			MaxSupply:    contract.MaxSupply,
			TeamReserve:  contract.TeamReserve,
			MaxPerWallet: contract.MaxPerWallet,
		},
		MerkleRoot:     common.HexToHash(contract.MerkleRoot),
		Owners:         make(map[uint64]common.Address, len(tokens)),
		TokenApprovals: make(map[uint64]common.Address),
		Operators:      make(map[common.Address]map[common.Address]bool),
		Minted:         make(map[common.Address]uint64, len(contract.Minted)),
	}

	var err error
	if state.Address, err = parseAddress(contract.Address); err != nil {
		return state, err
	}
	if state.Owner, err = parseAddress(contract.Owner); err != nil {
		return state, err
	}
	if state.TeamWallet, err = parseAddress(contract.TeamWallet); err != nil {
		return state, err
	}
	if state.SaleState, err = types.ParseSaleState(contract.SaleState); err != nil {
		return state, err
	}
	for _, s := range contract.Whitelist {
		addr, err := parseAddress(s)
		if err != nil {
			return state, err
		}
		state.Whitelist = append(state.Whitelist, addr)
	}
	for _, op := range contract.Operators {
		owner, err := parseAddress(op.Owner)
		if err != nil {
			return state, err
		}
		operator, err := parseAddress(op.Operator)
		if err != nil {
			return state, err
		}
		if state.Operators[owner] == nil {
			state.Operators[owner] = make(map[common.Address]bool)
		}
		state.Operators[owner][operator] = op.Approved
	}
	for s, count := range contract.Minted {
		addr, err := parseAddress(s)
		if err != nil {
			return state, err
		}
		state.Minted[addr] = count
	}
	for _, t := range tokens {
		owner, err := parseAddress(t.Owner)
		if err != nil {
			return state, err
		}
		state.Owners[t.TokenID] = owner
		if t.Approved != "" {
			approved, err := parseAddress(t.Approved)
			if err != nil {
				return state, err
			}
			state.TokenApprovals[t.TokenID] = approved
		}
	}
	return state, nil
}
