package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. The unique
// sparse index on reservation_id backs the reservation-block idempotency
// under concurrent event deliveries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("accommodations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "host_id", Value: 1}}},
		{Keys: bson.D{{Key: "location", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(rulesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "accommodation_id", Value: 1}, {Key: "start_date", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = db.Collection(blocksCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "accommodation_id", Value: 1}, {Key: "start_date", Value: 1}}},
		{
			Keys:    bson.D{{Key: "reservation_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err
}
