package db

import (
	"context"
	"fmt"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/gelato-nft/gelato-staker/internal/db/model"
)

func (db *Database) SaveNewMission(ctx context.Context, doc *model.MissionDocument) error {
	return db.insertOne(ctx, model.MissionCollection, strconv.FormatUint(doc.ID, 10), doc)
}

// GetMissions returns every mission ordered by id.
func (db *Database) GetMissions(ctx context.Context) ([]model.MissionDocument, error) {
	return findAll[model.MissionDocument](ctx, db, model.MissionCollection, bson.M{})
}

func (db *Database) SaveNewStake(ctx context.Context, doc *model.StakeDocument) error {
	return db.insertOne(ctx, model.StakeCollection, strconv.FormatUint(doc.AssetID, 10), doc)
}

func (db *Database) DeleteStake(ctx context.Context, assetID uint64) error {
	result, err := db.collection(model.StakeCollection).DeleteOne(ctx, bson.M{"_id": assetID})
	if err != nil {
		return fmt.Errorf("failed to delete stake of token %d: %w", assetID, err)
	}
	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     strconv.FormatUint(assetID, 10),
			Message: "stake not found",
		}
	}
	return nil
}

func (db *Database) GetStakes(ctx context.Context) ([]model.StakeDocument, error) {
	return findAll[model.StakeDocument](ctx, db, model.StakeCollection, bson.M{})
}

func (db *Database) GetStakesByHolder(ctx context.Context, holder string) ([]model.StakeDocument, error) {
	return findAll[model.StakeDocument](ctx, db, model.StakeCollection, bson.M{"holder": holder})
}

// UpsertReward stores the accrued reward of a holder. A zero amount removes
// the document.
func (db *Database) UpsertReward(ctx context.Context, doc *model.RewardDocument) error {
	if doc.Amount == "0" {
		_, err := db.collection(model.RewardCollection).DeleteOne(ctx, bson.M{"_id": doc.Holder})
		return err
	}
	return db.upsertByID(ctx, model.RewardCollection, doc.Holder, doc)
}

func (db *Database) GetRewards(ctx context.Context) ([]model.RewardDocument, error) {
	return findAll[model.RewardDocument](ctx, db, model.RewardCollection, bson.M{})
}
