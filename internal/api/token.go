package api

import (
	"net/http"

	"github.com/gelato-nft/gelato-staker/internal/types"
)

type BalancePublic struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

func (h *Handler) GetTokenBalance(r *http.Request) (*Result, *types.Error) {
	address, err := urlAddress(r)
	if err != nil {
		return nil, err
	}

	return NewResult(BalancePublic{
		Address: address.Hex(),
		Balance: h.service.TokenBalance(address).String(),
	}), nil
}
