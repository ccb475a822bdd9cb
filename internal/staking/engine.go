package staking

import (
	"cmp"
	"maps"
	"math"
	"slices"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/internal/utils"
)

const (
	secondsPerDay  = 24 * 60 * 60
	secondsPerHour = 60 * 60
)

// AssetRegistry is the ownership registry staked assets are taken into
// custody through. The registry itself enforces ownership and approval.
type AssetRegistry interface {
	OwnerOf(id uint64) (common.Address, error)
	TransferFrom(operator, from, to common.Address, id uint64) error
}

// RewardLedger is the fungible balance ledger rewards are paid out of.
type RewardLedger interface {
	Address() common.Address
	BalanceOf(account common.Address) sdkmath.Int
	Transfer(from, to common.Address, amount sdkmath.Int) error
}

type StakeRecord struct {
	Holder   common.Address
	AssetID  uint64
	StakedAt int64
}

// Engine accrues reward for staked assets over the time their stake overlaps
// owner-defined missions.
//
// Every operation validates and performs its only fallible external call
// before touching engine state, so a failing call changes nothing. Engine is
// not safe for concurrent use: callers serialise operations.
type Engine struct {
	address  common.Address
	owner    common.Address
	registry AssetRegistry
	ledger   RewardLedger
	rate     sdkmath.Int
	clock    utils.Clock

	missions []Mission
	stakes   map[uint64]StakeRecord
	rewards  map[common.Address]sdkmath.Int
}

// RewardRate converts a whole-token daily reward into base units per second,
// truncating toward zero.
func RewardRate(tokensPerDay uint64, decimals uint8) sdkmath.Int {
	return sdkmath.NewIntFromUint64(tokensPerDay).
		Mul(sdkmath.NewIntWithDecimal(1, int(decimals))).
		QuoRaw(secondsPerDay)
}

func NewEngine(
	address, owner common.Address, registry AssetRegistry, rate sdkmath.Int, clock utils.Clock,
) *Engine {
	return &Engine{
		address:  address,
		owner:    owner,
		registry: registry,
		rate:     rate,
		clock:    clock,
		stakes:   make(map[uint64]StakeRecord),
		rewards:  make(map[common.Address]sdkmath.Int),
	}
}

func (e *Engine) Address() common.Address { return e.address }
func (e *Engine) Owner() common.Address   { return e.owner }
func (e *Engine) RewardRate() sdkmath.Int { return e.rate }

func (e *Engine) now() int64 {
	return e.clock.Now().Unix()
}

// LedgerAddress is the address of the linked reward ledger, zero if none.
func (e *Engine) LedgerAddress() common.Address {
	if e.ledger == nil {
		return common.Address{}
	}
	return e.ledger.Address()
}

// SetOwnerAndTokenAddress hands the engine to newOwner and links the ledger
// rewards are paid from.
func (e *Engine) SetOwnerAndTokenAddress(caller, newOwner common.Address, ledger RewardLedger) error {
	if caller != e.owner {
		return types.ErrUnauthorized
	}
	if newOwner == (common.Address{}) {
		return types.ErrZeroAddress
	}
	if ledger == nil {
		return types.Errorf(types.BadRequest, "ledger is required")
	}

	e.owner = newOwner
	e.ledger = ledger
	return nil
}

// StartMission opens a new mission at the current time, superseding the
// previous one.
func (e *Engine) StartMission(caller common.Address, durationHours uint64) (Mission, error) {
	if caller != e.owner {
		return Mission{}, types.ErrUnauthorized
	}
	if durationHours == 0 {
		return Mission{}, types.Errorf(types.BadRequest, "mission duration must be positive")
	}
	now := e.now()
	// the end time must fit an int64
	maxHours := uint64(math.MaxInt64-now) / secondsPerHour
	if durationHours > maxHours {
		return Mission{}, types.Errorf(types.BadRequest,
			"mission duration must be at most %d hours", maxHours)
	}

	mission := Mission{
		ID:              uint64(len(e.missions)) + 1,
		StartTime:       now,
		DurationSeconds: int64(durationHours) * secondsPerHour,
	}
	e.missions = append(e.missions, mission)
	return mission, nil
}

func (e *Engine) Missions() []Mission {
	return slices.Clone(e.missions)
}

// CurrentMission is the most recently started mission, whether or not it
// has ended.
func (e *Engine) CurrentMission() (Mission, bool) {
	if len(e.missions) == 0 {
		return Mission{}, false
	}
	return e.missions[len(e.missions)-1], true
}

func (e *Engine) Stake(caller common.Address, assetID uint64) (StakeRecord, error) {
	if len(e.missions) == 0 {
		return StakeRecord{}, types.ErrNoActiveMission
	}
	if _, ok := e.stakes[assetID]; ok {
		return StakeRecord{}, types.Errorf(types.AlreadyStaked, "token %d is already staked", assetID)
	}
	if err := e.registry.TransferFrom(e.address, caller, e.address, assetID); err != nil {
		return StakeRecord{}, err
	}

	record := StakeRecord{
		Holder:   caller,
		AssetID:  assetID,
		StakedAt: e.now(),
	}
	e.stakes[assetID] = record
	return record, nil
}

// Unstake returns assetID to its holder and credits the reward earned since
// it was staked. The credited delta is returned.
func (e *Engine) Unstake(caller common.Address, assetID uint64) (sdkmath.Int, error) {
	record, ok := e.stakes[assetID]
	if !ok || record.Holder != caller {
		return sdkmath.Int{}, types.Errorf(types.NotOwnerOrNotStaked,
			"%s has no stake on token %d", caller.Hex(), assetID)
	}

	now := e.now()
	reward := e.rewardFor(record, now)
	if err := e.registry.TransferFrom(e.address, e.address, record.Holder, assetID); err != nil {
		return sdkmath.Int{}, err
	}

	delete(e.stakes, assetID)
	e.rewards[record.Holder] = e.GetRewardToClaim(record.Holder).Add(reward)
	return reward, nil
}

func (e *Engine) rewardFor(record StakeRecord, now int64) sdkmath.Int {
	overlap := OverlapSeconds(e.missions, record.StakedAt, now)
	return e.rate.MulRaw(overlap)
}

// ClaimReward pays out everything caller has accrued. With nothing accrued it
// is a no-op returning zero.
func (e *Engine) ClaimReward(caller common.Address) (sdkmath.Int, error) {
	amount := e.GetRewardToClaim(caller)
	if amount.IsZero() {
		return amount, nil
	}
	if e.ledger == nil {
		return sdkmath.Int{}, types.ErrLedgerNotLinked
	}
	if err := e.ledger.Transfer(e.address, caller, amount); err != nil {
		return sdkmath.Int{}, err
	}

	delete(e.rewards, caller)
	return amount, nil
}

func (e *Engine) GetRewardToClaim(holder common.Address) sdkmath.Int {
	reward, ok := e.rewards[holder]
	if !ok {
		return sdkmath.ZeroInt()
	}
	return reward
}

// GetStakedTokens returns the ids holder has staked in ascending order.
func (e *Engine) GetStakedTokens(holder common.Address) []uint64 {
	ids := []uint64{}
	for id, record := range e.stakes {
		if record.Holder == holder {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) StakeOf(assetID uint64) (StakeRecord, bool) {
	record, ok := e.stakes[assetID]
	return record, ok
}

// PendingReward is what holder could claim after unstaking every asset now.
func (e *Engine) PendingReward(holder common.Address) sdkmath.Int {
	now := e.now()
	pending := e.GetRewardToClaim(holder)
	for _, record := range e.stakes {
		if record.Holder == holder {
			pending = pending.Add(e.rewardFor(record, now))
		}
	}
	return pending
}

func (e *Engine) StakedCount() int {
	return len(e.stakes)
}

// State is a copy of everything the engine holds, used for persistence.
type State struct {
	Address       common.Address
	Owner         common.Address
	LedgerAddress common.Address
	Missions      []Mission
	Stakes        []StakeRecord
	Rewards       map[common.Address]sdkmath.Int
}

func (e *Engine) Snapshot() State {
	stakes := slices.SortedFunc(maps.Values(e.stakes), func(a, b StakeRecord) int {
		return cmp.Compare(a.AssetID, b.AssetID)
	})

	return State{
		Address:       e.address,
		Owner:         e.owner,
		LedgerAddress: e.LedgerAddress(),
		Missions:      slices.Clone(e.missions),
		Stakes:        stakes,
		Rewards:       maps.Clone(e.rewards),
	}
}

// Restore rebuilds an engine from a snapshot. ledger may be nil when the
// snapshot was taken before a ledger was linked.
func Restore(
	state State, registry AssetRegistry, ledger RewardLedger, rate sdkmath.Int, clock utils.Clock,
) *Engine {
	e := NewEngine(state.Address, state.Owner, registry, rate, clock)
	e.ledger = ledger
	e.missions = slices.Clone(state.Missions)
	for _, record := range state.Stakes {
		e.stakes[record.AssetID] = record
	}
	for holder, reward := range state.Rewards {
		if !reward.IsNil() && !reward.IsZero() {
			e.rewards[holder] = reward
		}
	}
	return e
}
