package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/staking"
)

type MissionDocument struct {
	ID              uint64 `bson:"_id"`
	StartTime       int64  `bson:"start_time"`
	DurationSeconds int64  `bson:"duration_seconds"`
}

func FromMission(m staking.Mission) *MissionDocument {
	return &MissionDocument{
		ID:              m.ID,
		StartTime:       m.StartTime,
		DurationSeconds: m.DurationSeconds,
	}
}

func (d *MissionDocument) ToMission() staking.Mission {
	return staking.Mission{
		ID:              d.ID,
		StartTime:       d.StartTime,
		DurationSeconds: d.DurationSeconds,
	}
}

type StakeDocument struct {
	AssetID  uint64 `bson:"_id"`
	Holder   string `bson:"holder"`
	StakedAt int64  `bson:"staked_at"`
}

func FromStakeRecord(r staking.StakeRecord) *StakeDocument {
	return &StakeDocument{
		AssetID:  r.AssetID,
		Holder:   r.Holder.Hex(),
		StakedAt: r.StakedAt,
	}
}

func (d *StakeDocument) ToStakeRecord() (staking.StakeRecord, error) {
	holder, err := parseAddress(d.Holder)
	if err != nil {
		return staking.StakeRecord{}, err
	}
	return staking.StakeRecord{
		Holder:   holder,
		AssetID:  d.AssetID,
		StakedAt: d.StakedAt,
	}, nil
}

// RewardDocument holds the accrued, unclaimed reward of a holder in base
// units.
type RewardDocument struct {
	Holder string `bson:"_id"`
	Amount string `bson:"amount"`
}

func NewRewardDocument(holder common.Address, amount sdkmath.Int) *RewardDocument {
	return &RewardDocument{
		Holder: holder.Hex(),
		Amount: amount.String(),
	}
}

type StakerContractDocument struct {
	Name          string `bson:"_id"`
	Address       string `bson:"address"`
	Owner         string `bson:"owner"`
	LedgerAddress string `bson:"ledger_address"`
}

// FromEngineState splits an engine snapshot into its contract document and
// the per-entity documents.
func FromEngineState(name string, state staking.State) (
	*StakerContractDocument, []*MissionDocument, []*StakeDocument, []*RewardDocument,
) {
	contract := &StakerContractDocument{
		Name:          name,
		Address:       state.Address.Hex(),
		Owner:         state.Owner.Hex(),
		LedgerAddress: state.LedgerAddress.Hex(),
	}

	missions := make([]*MissionDocument, 0, len(state.Missions))
	for _, m := range state.Missions {
		missions = append(missions, FromMission(m))
	}
	stakes := make([]*StakeDocument, 0, len(state.Stakes))
	for _, r := range state.Stakes {
		stakes = append(stakes, FromStakeRecord(r))
	}
	rewards := make([]*RewardDocument, 0, len(state.Rewards))
	for holder, amount := range state.Rewards {
		rewards = append(rewards, NewRewardDocument(holder, amount))
	}
	return contract, missions, stakes, rewards
}

// ToEngineState is the inverse of FromEngineState.
func ToEngineState(
	contract *StakerContractDocument, missions []MissionDocument, stakes []StakeDocument, rewards []RewardDocument,
) (staking.State, error) {
	var (
		state staking.State
		err   error
	)
	if state.Address, err = parseAddress(contract.Address); err != nil {
		return state, err
	}
	if state.Owner, err = parseAddress(contract.Owner); err != nil {
		return state, err
	}
	if state.LedgerAddress, err = parseAddress(contract.LedgerAddress); err != nil {
		return state, err
	}

	for _, m := range missions {
		state.Missions = append(state.Missions, m.ToMission())
	}
	for _, s := range stakes {
		record, err := s.ToStakeRecord()
		if err != nil {
			return state, err
		}
		state.Stakes = append(state.Stakes, record)
	}
	state.Rewards = make(map[common.Address]sdkmath.Int, len(rewards))
	for _, r := range rewards {
		holder, err := parseAddress(r.Holder)
		if err != nil {
			return state, err
		}
		amount, err := parseAmount(r.Amount)
		if err != nil {
			return state, err
		}
		state.Rewards[holder] = amount
	}
	return state, nil
}

func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

func parseAmount(s string) (sdkmath.Int, error) {
	amount, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
