//go:build integration

package db_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelato-nft/gelato-staker/internal/db"
	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/testutil"
)

func TestContracts(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("not found", func(t *testing.T) {
		doc, err := testDB.GetStakerContract(ctx, "NFTStaker")
		assert.True(t, db.IsNotFoundError(err))
		assert.Nil(t, doc)
	})
	t.Run("upsert", func(t *testing.T) {
		doc := &model.StakerContractDocument{
			Name:          "NFTStaker",
			Address:       testutil.RandomAddress().Hex(),
			Owner:         testutil.RandomAddress().Hex(),
			LedgerAddress: testutil.RandomAddress().Hex(),
		}
		require.NoError(t, testDB.UpsertStakerContract(ctx, doc))

		doc.Owner = testutil.RandomAddress().Hex()
		require.NoError(t, testDB.UpsertStakerContract(ctx, doc))

		actual, err := testDB.GetStakerContract(ctx, doc.Name)
		require.NoError(t, err)
		assert.Equal(t, doc, actual)
	})
	t.Run("contracts share the collection", func(t *testing.T) {
		token := &model.TokenContractDocument{
			Name:        "Token",
			Address:     testutil.RandomAddress().Hex(),
			TokenName:   "GelatoTokenName",
			Symbol:      "GelatoTokenSymbol",
			Decimals:    18,
			TotalSupply: "222000000000000000000000000",
			Allowances:  []model.TokenAllowance{},
		}
		nft := &model.NftContractDocument{
			Name:      "NFT",
			Address:   testutil.RandomAddress().Hex(),
			SaleState: "PUBLIC_SALE",
			Whitelist: []string{},
			Operators: []model.NftOperator{},
			Minted:    map[string]uint64{testutil.RandomAddress().Hex(): 2},
		}
		require.NoError(t, testDB.UpsertTokenContract(ctx, token))
		require.NoError(t, testDB.UpsertNftContract(ctx, nft))

		actualToken, err := testDB.GetTokenContract(ctx, "Token")
		require.NoError(t, err)
		assert.Equal(t, token, actualToken)

		actualNft, err := testDB.GetNftContract(ctx, "NFT")
		require.NoError(t, err)
		assert.Equal(t, nft, actualNft)
	})
}

func TestTokenBalances(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	addr := testutil.RandomAddress().Hex()
	require.NoError(t, testDB.UpsertTokenBalances(ctx))
	require.NoError(t, testDB.UpsertTokenBalances(ctx,
		&model.TokenBalanceDocument{Address: addr, Balance: "100"},
	))
	require.NoError(t, testDB.UpsertTokenBalances(ctx,
		&model.TokenBalanceDocument{Address: addr, Balance: "40"},
	))

	balances, err := testDB.GetTokenBalances(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.TokenBalanceDocument{{Address: addr, Balance: "40"}}, balances)
}

func TestNftTokens(t *testing.T) {
	ctx := t.Context()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	owner := testutil.RandomAddress()
	approved := testutil.RandomAddress()
	require.NoError(t, testDB.UpsertNftTokens(ctx,
		model.NewNftTokenDocument(1, owner, approved),
		model.NewNftTokenDocument(2, testutil.RandomAddress(), common.Address{}),
	))

	// transfer clears the approval
	require.NoError(t, testDB.UpsertNftTokens(ctx, model.NewNftTokenDocument(1, owner, common.Address{})))

	tokens, err := testDB.GetNftTokensByOwner(ctx, owner.Hex())
	require.NoError(t, err)
	assert.Equal(t, []model.NftTokenDocument{{TokenID: 1, Owner: owner.Hex()}}, tokens)

	all, err := testDB.GetNftTokens(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
