//go:build e2e

package e2etest

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gelato-nft/gelato-staker/internal/api"
	"github.com/gelato-nft/gelato-staker/internal/types"
	"github.com/gelato-nft/gelato-staker/testutil"
)

type (
	missionRequest struct {
		Caller        string `json:"caller"`
		DurationHours uint64 `json:"durationHours"`
	}
	callerRequest struct {
		Caller string `json:"caller"`
	}
	tokenRequest struct {
		Caller  string `json:"caller"`
		TokenID uint64 `json:"tokenId"`
	}
	mintRequest struct {
		Caller   string `json:"caller"`
		Quantity uint64 `json:"quantity"`
	}
	saleStateRequest struct {
		Caller string `json:"caller"`
		State  string `json:"state"`
	}
	approvalRequest struct {
		Owner    string `json:"owner"`
		Operator string `json:"operator"`
		Approved bool   `json:"approved"`
	}
	increaseTimeRequest struct {
		Seconds int64 `json:"seconds"`
	}
)

// TestStakingLifecycle walks one holder through a mission over http: mint,
// stake, restart, unstake and claim. Rewards accrue only inside the mission
// window and every state change is published.
func TestStakingLifecycle(t *testing.T) {
	tm := StartManager(t)
	defer tm.Stop(t)

	team := tm.Config.Deployment.TeamWalletAddress().Hex()
	deployer := tm.Config.Deployment.DeployerAddress()
	staker := crypto.CreateAddress(deployer, 1).Hex()
	holder := testutil.RandomAddress().Hex()

	var mission api.MissionPublic
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/missions", missionRequest{Caller: team, DurationHours: 24}, &mission))
	started := tm.WaitForEvent(t, types.EventMissionStarted)
	assert.Equal(t, mission.ID, started.MissionID)

	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/nft/sale-state",
		saleStateRequest{Caller: deployer.Hex(), State: "PUBLIC_SALE"}, nil))

	var minted api.MintPublic
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/nft/mint", mintRequest{Caller: holder, Quantity: 1}, &minted))
	require.Len(t, minted.TokenIDs, 1)
	tokenID := minted.TokenIDs[0]
	assert.Equal(t, []uint64{tokenID}, tm.WaitForEvent(t, types.EventNFTMinted).AssetIDs)

	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/nft/approval-for-all",
		approvalRequest{Owner: holder, Operator: staker, Approved: true}, nil))
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/stake", tokenRequest{Caller: holder, TokenID: tokenID}, nil))
	assert.Equal(t, []uint64{tokenID}, tm.WaitForEvent(t, types.EventStaked).AssetIDs)

	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/dev/increase-time", increaseTimeRequest{Seconds: 12 * 3600}, nil))

	// state survives a restart
	tm.Restart(t)

	var reward api.RewardPublic
	require.Equal(t, http.StatusOK, tm.Get(t, "/v1/holders/"+holder+"/reward", &reward))
	assert.Equal(t, "2499999999999984000", reward.Pending)

	var owner api.TokenOwnerPublic
	require.Equal(t, http.StatusOK, tm.Get(t, fmt.Sprintf("/v1/nft/%d/owner", tokenID), &owner))
	assert.Equal(t, staker, owner.Owner)
	assert.Equal(t, types.StateStaked.String(), owner.State)

	// past the end of the mission nothing accrues
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/dev/increase-time", increaseTimeRequest{Seconds: 30 * 3600}, nil))
	assert.Equal(t, mission.ID, tm.WaitForEvent(t, types.EventMissionEnded).MissionID)

	var unstaked api.AmountPublic
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/unstake", tokenRequest{Caller: holder, TokenID: tokenID}, &unstaked))
	assert.Equal(t, "4999999999999968000", unstaked.Amount)
	tm.WaitForEvent(t, types.EventUnstaked)

	var claimed api.AmountPublic
	require.Equal(t, http.StatusOK, tm.Post(t, "/v1/claim", callerRequest{Caller: holder}, &claimed))
	assert.Equal(t, "4999999999999968000", claimed.Amount)
	assert.Equal(t, "4999999999999968000", tm.WaitForEvent(t, types.EventRewardClaimed).Amount)

	tm.Restart(t)

	var balance api.BalancePublic
	require.Equal(t, http.StatusOK, tm.Get(t, "/v1/token/balances/"+holder, &balance))
	assert.Equal(t, "4999999999999968000", balance.Balance)

	var staked api.StakedTokensPublic
	require.Equal(t, http.StatusOK, tm.Get(t, "/v1/holders/"+holder+"/staked", &staked))
	assert.Empty(t, staked.TokenIDs)

	// the token is back with the holder and can't be unstaked twice
	require.Equal(t, http.StatusOK, tm.Get(t, fmt.Sprintf("/v1/nft/%d/owner", tokenID), &owner))
	assert.Equal(t, holder, owner.Owner)
	assert.Equal(t, http.StatusForbidden, tm.Post(t, "/v1/unstake", tokenRequest{Caller: holder, TokenID: tokenID}, nil))
}
