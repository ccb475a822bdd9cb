package types

import "github.com/google/uuid"

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventMissionStarted EventType = "MISSION_STARTED"
	EventMissionEnded   EventType = "MISSION_ENDED"
	EventStaked         EventType = "STAKED"
	EventUnstaked       EventType = "UNSTAKED"
	EventRewardClaimed  EventType = "REWARD_CLAIMED"
	EventNFTMinted      EventType = "NFT_MINTED"
)

// StakingEvent is the message published to the queue after every successful
// state change. Amounts are decimal strings in token base units.
type StakingEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Holder    string    `json:"holder,omitempty"`
	AssetIDs  []uint64  `json:"asset_ids,omitempty"`
	MissionID uint64    `json:"mission_id,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	Timestamp int64     `json:"timestamp"`
}

func NewStakingEvent(eventType EventType, timestamp int64) *StakingEvent {
	return &StakingEvent{
		EventID:   uuid.NewString(),
		EventType: eventType,
		Timestamp: timestamp,
	}
}
