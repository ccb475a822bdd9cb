package services

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

func (s *Service) TokenBalance(account common.Address) sdkmath.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.BalanceOf(account)
}

func (s *Service) persistTokenBalances(ctx context.Context, accounts ...common.Address) error {
	docs := make([]*model.TokenBalanceDocument, 0, len(accounts))
	for _, account := range accounts {
		docs = append(docs, model.NewTokenBalanceDocument(account, s.ledger.BalanceOf(account)))
	}
	return s.db.UpsertTokenBalances(ctx, docs...)
}
