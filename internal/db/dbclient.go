package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gelato-nft/gelato-staker/internal/config"
)

type Database struct {
	dbName string
	client *mongo.Client
}

// New connects to MongoDB, retrying the initial ping the configured number of
// times.
func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)

	client, err := retry.DoWithData(
		func() (*mongo.Client, error) {
			client, err := mongo.Connect(ctx, clientOps)
			if err != nil {
				return nil, err
			}
			if err := client.Ping(ctx, nil); err != nil {
				_ = client.Disconnect(ctx)
				return nil, err
			}
			return client, nil
		},
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Uint("attempt", n+1).Msg("Failed to connect to MongoDB, retrying")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return &Database{
		dbName: cfg.DbName,
		client: client,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

func (db *Database) upsertByID(ctx context.Context, collection string, id, doc any) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": doc}

	_, err := db.collection(collection).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func (db *Database) insertOne(ctx context.Context, collection string, key string, doc any) error {
	_, err := db.collection(collection).InsertOne(ctx, doc)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     key,
						Message: fmt.Sprintf("%s %s already exists", collection, key),
					}
				}
			}
		}
		return err
	}
	return nil
}

func findOneByID[T any](ctx context.Context, db *Database, collection string, id any) (*T, error) {
	var doc T
	err := db.collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     fmt.Sprint(id),
				Message: fmt.Sprintf("%s %v not found", collection, id),
			}
		}
		return nil, err
	}
	return &doc, nil
}

func findAll[T any](ctx context.Context, db *Database, collection string, filter bson.M) ([]T, error) {
	opts := options.Find().SetSort(bson.M{"_id": 1})
	cursor, err := db.collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []T
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
