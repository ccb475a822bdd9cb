package types

import "fmt"

// SaleState of the NFT collection. Values match the contract's enum ordering.
type SaleState uint8

const (
	SaleNotActiveState SaleState = iota
	SalePresaleState
	SalePublicState
)

func (s SaleState) String() string {
	switch s {
	case SaleNotActiveState:
		return "NOT_ACTIVE"
	case SalePresaleState:
		return "PRESALE"
	case SalePublicState:
		return "PUBLIC_SALE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", uint8(s))
	}
}

func ParseSaleState(s string) (SaleState, error) {
	switch s {
	case "NOT_ACTIVE":
		return SaleNotActiveState, nil
	case "PRESALE":
		return SalePresaleState, nil
	case "PUBLIC_SALE":
		return SalePublicState, nil
	}
	return 0, fmt.Errorf("unknown sale state %q", s)
}

// StakeState of a single (holder, asset) pair.
type StakeState string

const (
	StateUnstaked StakeState = "UNSTAKED"
	StateStaked   StakeState = "STAKED"
)

func (s StakeState) String() string {
	return string(s)
}
