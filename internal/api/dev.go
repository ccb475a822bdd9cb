package api

import (
	"net/http"
	"time"

	"github.com/gelato-nft/gelato-staker/internal/types"
)

type increaseTimeRequest struct {
	Seconds int64 `json:"seconds"`
}

type ClockPublic struct {
	Now int64 `json:"now"`
}

func (h *Handler) IncreaseTime(r *http.Request) (*Result, *types.Error) {
	var req increaseTimeRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}

	now, err := h.service.IncreaseTime(r.Context(), time.Duration(req.Seconds)*time.Second)
	if err != nil {
		return nil, asError(err)
	}
	return NewResult(ClockPublic{Now: now.Unix()}), nil
}
