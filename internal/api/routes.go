package api

import (
	"github.com/go-chi/chi/v5"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	h := a.handler

	r.Get("/healthcheck", registerHandler(h.HealthCheck))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/missions", registerHandler(h.GetMissions))
		r.Post("/missions", registerHandler(h.StartMission))
		r.Post("/stake", registerHandler(h.Stake))
		r.Post("/unstake", registerHandler(h.Unstake))
		r.Post("/claim", registerHandler(h.ClaimReward))
		r.Get("/holders/{address}/reward", registerHandler(h.GetReward))
		r.Get("/holders/{address}/staked", registerHandler(h.GetStakedTokens))

		r.Post("/nft/mint", registerHandler(h.Mint))
		r.Post("/nft/whitelist-mint", registerHandler(h.WhitelistMint))
		r.Post("/nft/airdrop", registerHandler(h.Airdrop))
		r.Post("/nft/merkle-root", registerHandler(h.SetMerkleRoot))
		r.Post("/nft/approval-for-all", registerHandler(h.SetApprovalForAll))
		r.Post("/nft/sale-state", registerHandler(h.SetSaleState))
		r.Get("/nft/{id}/owner", registerHandler(h.GetTokenOwner))

		r.Get("/token/balances/{address}", registerHandler(h.GetTokenBalance))

		if a.cfg.Server.DevClock {
			r.Post("/dev/increase-time", registerHandler(h.IncreaseTime))
		}
	})
}
