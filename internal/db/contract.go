package db

import (
	"context"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

func (db *Database) UpsertStakerContract(ctx context.Context, doc *model.StakerContractDocument) error {
	return db.upsertByID(ctx, model.ContractCollection, doc.Name, doc)
}

func (db *Database) GetStakerContract(ctx context.Context, name string) (*model.StakerContractDocument, error) {
	return findOneByID[model.StakerContractDocument](ctx, db, model.ContractCollection, name)
}

func (db *Database) UpsertTokenContract(ctx context.Context, doc *model.TokenContractDocument) error {
	return db.upsertByID(ctx, model.ContractCollection, doc.Name, doc)
}

func (db *Database) GetTokenContract(ctx context.Context, name string) (*model.TokenContractDocument, error) {
	return findOneByID[model.TokenContractDocument](ctx, db, model.ContractCollection, name)
}

func (db *Database) UpsertNftContract(ctx context.Context, doc *model.NftContractDocument) error {
	return db.upsertByID(ctx, model.ContractCollection, doc.Name, doc)
}

func (db *Database) GetNftContract(ctx context.Context, name string) (*model.NftContractDocument, error) {
	return findOneByID[model.NftContractDocument](ctx, db, model.ContractCollection, name)
}
