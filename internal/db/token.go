package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

func (db *Database) UpsertTokenBalances(ctx context.Context, docs ...*model.TokenBalanceDocument) error {
	if len(docs) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": doc.Address}).
			SetUpdate(bson.M{"$set": doc}).
			SetUpsert(true))
	}
	_, err := db.collection(model.TokenBalanceCollection).BulkWrite(ctx, writes)
	return err
}

func (db *Database) GetTokenBalances(ctx context.Context) ([]model.TokenBalanceDocument, error) {
	return findAll[model.TokenBalanceDocument](ctx, db, model.TokenBalanceCollection, bson.M{})
}
