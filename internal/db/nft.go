package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

// UpsertNftTokens replaces the ownership documents of the given tokens. An
// absent approval is cleared.
func (db *Database) UpsertNftTokens(ctx context.Context, docs ...*model.NftTokenDocument) error {
	if len(docs) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": doc.TokenID}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	_, err := db.collection(model.NftTokenCollection).BulkWrite(ctx, writes)
	return err
}

func (db *Database) GetNftTokens(ctx context.Context) ([]model.NftTokenDocument, error) {
	return findAll[model.NftTokenDocument](ctx, db, model.NftTokenCollection, bson.M{})
}

func (db *Database) GetNftTokensByOwner(ctx context.Context, owner string) ([]model.NftTokenDocument, error) {
	return findAll[model.NftTokenDocument](ctx, db, model.NftTokenCollection, bson.M{"owner": owner})
}
