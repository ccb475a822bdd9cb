package services

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
	"github.com/gelato-nft/gelato-staker/internal/deploy"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

func (s *Service) Mint(ctx context.Context, caller common.Address, quantity uint64) ([]uint64, error) {
	var ids []uint64
	err := s.run(ctx, func() error {
		var err error
		ids, err = s.collection.Mint(caller, quantity)
		if err != nil {
			return err
		}
		return s.minted(ctx, caller, ids)
	})
	return ids, err
}

// WhitelistMint mints during the presale for a caller proving its allowance
// against the merkle root.
func (s *Service) WhitelistMint(
	ctx context.Context, caller common.Address, quantity, allowance uint64, proof []common.Hash,
) ([]uint64, error) {
	var ids []uint64
	err := s.run(ctx, func() error {
		var err error
		ids, err = s.collection.WhitelistMint(caller, quantity, allowance, proof)
		if err != nil {
			return err
		}
		return s.minted(ctx, caller, ids)
	})
	return ids, err
}

func (s *Service) Airdrop(ctx context.Context, caller common.Address, quantity uint64, to common.Address) ([]uint64, error) {
	var ids []uint64
	err := s.run(ctx, func() error {
		var err error
		ids, err = s.collection.Airdrop(caller, quantity, to)
		if err != nil {
			return err
		}
		return s.minted(ctx, to, ids)
	})
	return ids, err
}

// minted persists freshly minted tokens and announces them.
func (s *Service) minted(ctx context.Context, to common.Address, ids []uint64) error {
	if err := s.persistNftTokens(ctx, ids...); err != nil {
		return persistFailed(ctx, "nft token", err)
	}
	if err := s.persistNftContract(ctx); err != nil {
		return persistFailed(ctx, "nft contract", err)
	}

	ev := types.NewStakingEvent(types.EventNFTMinted, s.now())
	ev.Holder = to.Hex()
	ev.AssetIDs = ids
	s.publish(ctx, ev)
	return nil
}

func (s *Service) SetMerkleRoot(ctx context.Context, caller common.Address, root common.Hash) error {
	return s.run(ctx, func() error {
		if err := s.collection.SetMerkleRoot(caller, root); err != nil {
			return err
		}
		if err := s.persistNftContract(ctx); err != nil {
			return persistFailed(ctx, "nft contract", err)
		}
		return nil
	})
}

func (s *Service) SetApprovalForAll(ctx context.Context, owner, operator common.Address, approved bool) error {
	return s.run(ctx, func() error {
		if err := s.collection.SetApprovalForAll(owner, operator, approved); err != nil {
			return err
		}
		if err := s.persistNftContract(ctx); err != nil {
			return persistFailed(ctx, "nft contract", err)
		}
		return nil
	})
}

func (s *Service) SetSaleState(ctx context.Context, caller common.Address, state types.SaleState) error {
	return s.run(ctx, func() error {
		var err error
		switch state {
		case types.SalePresaleState:
			err = s.collection.StartPresale(caller)
		case types.SalePublicState:
			err = s.collection.StartPublicSale(caller)
		default:
			err = s.collection.StopSale(caller)
		}
		if err != nil {
			return err
		}
		if err := s.persistNftContract(ctx); err != nil {
			return persistFailed(ctx, "nft contract", err)
		}
		return nil
	})
}

type TokenOwner struct {
	Owner common.Address
	// Holder is who staked the token; zero unless State is staked.
	Holder common.Address
	State  types.StakeState
}

func (s *Service) OwnerOf(id uint64) (TokenOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, err := s.collection.OwnerOf(id)
	if err != nil {
		return TokenOwner{}, err
	}
	result := TokenOwner{Owner: owner, State: types.StateUnstaked}
	if record, ok := s.engine.StakeOf(id); ok {
		result.Holder = record.Holder
		result.State = types.StateStaked
	}
	return result, nil
}

func (s *Service) persistNftTokens(ctx context.Context, ids ...uint64) error {
	docs := make([]*model.NftTokenDocument, 0, len(ids))
	for _, id := range ids {
		owner, err := s.collection.OwnerOf(id)
		if err != nil {
			return err
		}
		approved, err := s.collection.GetApproved(id)
		if err != nil {
			return err
		}
		docs = append(docs, model.NewNftTokenDocument(id, owner, approved))
	}
	return s.db.UpsertNftTokens(ctx, docs...)
}

func (s *Service) persistNftContract(ctx context.Context) error {
	doc, _ := model.FromCollectionState(deploy.CollectionContractName, s.collection.Snapshot())
	return s.db.UpsertNftContract(ctx, doc)
}
