package db

import (
	"context"
	"time"

	"gif-translate-bot/internal/config"
	"gif-translate-bot/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
	Users    *mongo.Collection
}

func Connect(cfg *config.Config) (*DB, error) {
	clientOpts := options.Client().ApplyURI(cfg.MongoDBURI)
	client, err := mongo.Connect(clientOpts)
	if err != nil {
		return nil, err
	}

	db := client.Database(cfg.DatabaseName)

	d := &DB{
		Client:   client,
		Database: db,
		Users:    db.Collection("users"),
	}

	if err := d.createIndexes(); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *DB) createIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := d.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "query_count", Value: -1}},
	})

	if err != nil {
		return err
	}

	return nil
}

// RecordQuery upserts the user document and bumps its query counter.
func (d *DB) RecordQuery(ctx context.Context, userID int64, username, firstName string) error {
	opts := options.UpdateOne().SetUpsert(true)
	filter := bson.M{"_id": userID}
	update := bson.M{
		"$set": bson.M{
			"username":   username,
			"first_name": firstName,
		},
		"$setOnInsert": bson.M{"first_seen": time.Now()},
		"$inc":         bson.M{"query_count": 1},
	}
	_, err := d.Users.UpdateOne(ctx, filter, update, opts)
	return err
}

func (d *DB) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := d.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Totals returns the user and query counts across the whole collection.
func (d *DB) Totals(ctx context.Context) (*models.Totals, error) {
	users, err := d.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "queries", Value: bson.D{{Key: "$sum", Value: "$query_count"}}},
		}}},
	}

	cursor, err := d.Users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var rows []models.Totals
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	totals := &models.Totals{Users: users}
	if len(rows) > 0 {
		totals.Queries = rows[0].Queries
	}

	return totals, nil
}

// TopUsers returns the heaviest users ordered by query count.
func (d *DB) TopUsers(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "query_count", Value: -1}}).
		SetLimit(limit)

	cursor, err := d.Users.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	return users, nil
}
