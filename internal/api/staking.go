package api

import (
	"net/http"

	"github.com/gelato-nft/gelato-staker/internal/staking"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

type MissionPublic struct {
	ID              uint64 `json:"id"`
	StartTime       int64  `json:"startTime"`
	EndTime         int64  `json:"endTime"`
	DurationSeconds int64  `json:"durationSeconds"`
	Active          bool   `json:"active"`
}

func newMissionPublic(m staking.Mission, now int64) MissionPublic {
	return MissionPublic{
		ID:              m.ID,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime(),
		DurationSeconds: m.DurationSeconds,
		Active:          m.IsActive(now),
	}
}

type startMissionRequest struct {
	Caller        string `json:"caller"`
	DurationHours uint64 `json:"durationHours"`
}

func (h *Handler) StartMission(r *http.Request) (*Result, *types.Error) {
	var req startMissionRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}

	mission, serviceErr := h.service.StartMission(r.Context(), caller, req.DurationHours)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(newMissionPublic(mission, h.service.Now().Unix())), nil
}

func (h *Handler) GetMissions(r *http.Request) (*Result, *types.Error) {
	now := h.service.Now().Unix()
	missions := h.service.Missions()

	result := make([]MissionPublic, 0, len(missions))
	for _, m := range missions {
		result = append(result, newMissionPublic(m, now))
	}
	return NewResult(result), nil
}

type stakeRequest struct {
	Caller  string `json:"caller"`
	TokenID uint64 `json:"tokenId"`
}

type StakePublic struct {
	Holder   string `json:"holder"`
	TokenID  uint64 `json:"tokenId"`
	StakedAt int64  `json:"stakedAt"`
}

func (h *Handler) Stake(r *http.Request) (*Result, *types.Error) {
	var req stakeRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}

	record, serviceErr := h.service.Stake(r.Context(), caller, req.TokenID)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(StakePublic{
		Holder:   record.Holder.Hex(),
		TokenID:  record.AssetID,
		StakedAt: record.StakedAt,
	}), nil
}

type AmountPublic struct {
	Amount string `json:"amount"`
}

func (h *Handler) Unstake(r *http.Request) (*Result, *types.Error) {
	var req stakeRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}

	reward, serviceErr := h.service.Unstake(r.Context(), caller, req.TokenID)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(AmountPublic{Amount: reward.String()}), nil
}

type claimRequest struct {
	Caller string `json:"caller"`
}

func (h *Handler) ClaimReward(r *http.Request) (*Result, *types.Error) {
	var req claimRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}

	amount, serviceErr := h.service.ClaimReward(r.Context(), caller)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(AmountPublic{Amount: amount.String()}), nil
}

type RewardPublic struct {
	Holder    string `json:"holder"`
	Claimable string `json:"claimable"`
	Pending   string `json:"pending"`
}

func (h *Handler) GetReward(r *http.Request) (*Result, *types.Error) {
	holder, err := urlAddress(r)
	if err != nil {
		return nil, err
	}

	reward := h.service.Reward(holder)
	return NewResult(RewardPublic{
		Holder:    holder.Hex(),
		Claimable: reward.Claimable.String(),
		Pending:   reward.Pending.String(),
	}), nil
}

type StakedTokensPublic struct {
	Holder   string   `json:"holder"`
	TokenIDs []uint64 `json:"tokenIds"`
}

func (h *Handler) GetStakedTokens(r *http.Request) (*Result, *types.Error) {
	holder, err := urlAddress(r)
	if err != nil {
		return nil, err
	}

	return NewResult(StakedTokensPublic{
		Holder:   holder.Hex(),
		TokenIDs: h.service.StakedTokens(holder),
	}), nil
}
