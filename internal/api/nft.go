package api

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/gelato-nft/gelato-staker/internal/types"
)

type mintRequest struct {
	Caller   string `json:"caller"`
	Quantity uint64 `json:"quantity"`
}

type MintPublic struct {
	TokenIDs []uint64 `json:"tokenIds"`
}

func (h *Handler) Mint(r *http.Request) (*Result, *types.Error) {
	var req mintRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}

	ids, serviceErr := h.service.Mint(r.Context(), caller, req.Quantity)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(MintPublic{TokenIDs: ids}), nil
}

type whitelistMintRequest struct {
	Caller    string   `json:"caller"`
	Quantity  uint64   `json:"quantity"`
	Allowance uint64   `json:"allowance"`
	Proof     []string `json:"proof"`
}

func (h *Handler) WhitelistMint(r *http.Request) (*Result, *types.Error) {
	var req whitelistMintRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	proof := make([]common.Hash, 0, len(req.Proof))
	for _, node := range req.Proof {
		hash, err := parseHash("proof", node)
		if err != nil {
			return nil, err
		}
		proof = append(proof, hash)
	}

	ids, serviceErr := h.service.WhitelistMint(r.Context(), caller, req.Quantity, req.Allowance, proof)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(MintPublic{TokenIDs: ids}), nil
}

type airdropRequest struct {
	Caller   string `json:"caller"`
	Quantity uint64 `json:"quantity"`
	To       string `json:"to"`
}

func (h *Handler) Airdrop(r *http.Request) (*Result, *types.Error) {
	var req airdropRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		return nil, err
	}

	ids, serviceErr := h.service.Airdrop(r.Context(), caller, req.Quantity, to)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	return NewResult(MintPublic{TokenIDs: ids}), nil
}

type merkleRootRequest struct {
	Caller string `json:"caller"`
	Root   string `json:"root"`
}

func (h *Handler) SetMerkleRoot(r *http.Request) (*Result, *types.Error) {
	var req merkleRootRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	root, err := parseHash("root", req.Root)
	if err != nil {
		return nil, err
	}

	if err := h.service.SetMerkleRoot(r.Context(), caller, root); err != nil {
		return nil, asError(err)
	}
	return NewResult(req), nil
}

type approvalForAllRequest struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

func (h *Handler) SetApprovalForAll(r *http.Request) (*Result, *types.Error) {
	var req approvalForAllRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		return nil, err
	}
	operator, err := parseAddress("operator", req.Operator)
	if err != nil {
		return nil, err
	}

	if err := h.service.SetApprovalForAll(r.Context(), owner, operator, req.Approved); err != nil {
		return nil, asError(err)
	}
	return NewResult(req), nil
}

type saleStateRequest struct {
	Caller string `json:"caller"`
	State  string `json:"state"`
}

func (h *Handler) SetSaleState(r *http.Request) (*Result, *types.Error) {
	var req saleStateRequest
	if err := decodeBody(r, &req); err != nil {
		return nil, err
	}
	caller, err := parseAddress("caller", req.Caller)
	if err != nil {
		return nil, err
	}
	state, parseErr := types.ParseSaleState(req.State)
	if parseErr != nil {
		return nil, types.NewError(types.BadRequest, parseErr)
	}

	if err := h.service.SetSaleState(r.Context(), caller, state); err != nil {
		return nil, asError(err)
	}
	return NewResult(req), nil
}

type TokenOwnerPublic struct {
	TokenID uint64 `json:"tokenId"`
	Owner   string `json:"owner"`
	Holder  string `json:"holder,omitempty"`
	State   string `json:"state"`
}

func (h *Handler) GetTokenOwner(r *http.Request) (*Result, *types.Error) {
	id, err := parseTokenID(chi.URLParam(r, "id"))
	if err != nil {
		return nil, err
	}

	owner, serviceErr := h.service.OwnerOf(id)
	if serviceErr != nil {
		return nil, asError(serviceErr)
	}
	result := TokenOwnerPublic{
		TokenID: id,
		Owner:   owner.Owner.Hex(),
		State:   owner.State.String(),
	}
	if owner.State == types.StateStaked {
		result.Holder = owner.Holder.Hex()
	}
	return NewResult(result), nil
}
