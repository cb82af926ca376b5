// Package mongo is the document-store backend, selected with
// STORE_DRIVER=mongo. Uniqueness is enforced with unique indexes; the
// reference and in-use rules that Postgres gets from foreign keys are
// checked explicitly by the repositories.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

const (
	collAdmins       = "admins"
	collClients      = "clients"
	collStatuses     = "statuses"
	collTransactions = "transactions"
	collHistory      = "transaction_history"
	collCounters     = "counters"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// DefaultStatuses seeds the status lookup on first start.
var DefaultStatuses = []domain.Status{
	{ID: 1, Name: "Pending"},
	{ID: 2, Name: "Processing"},
	{ID: 3, Name: "In Transit"},
	{ID: 4, Name: "Delivered"},
	{ID: 5, Name: "Cancelled"},
}

// EnsureIndexes creates the unique and lookup indexes and seeds statuses.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	unique := options.Index().SetUnique(true)
	specs := map[string][]mongo.IndexModel{
		collAdmins: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique},
		},
		collClients: {
			{Keys: bson.D{{Key: "client_name", Value: 1}, {Key: "email", Value: 1}}, Options: unique},
		},
		collTransactions: {
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
		},
		collHistory: {
			{Keys: bson.D{{Key: "tracking_id", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}

	statuses := db.Collection(collStatuses)
	for _, s := range DefaultStatuses {
		_, err := statuses.UpdateOne(ctx,
			bson.M{"_id": s.ID},
			bson.M{"$setOnInsert": bson.M{"status_name": s.Name}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed statuses: %w", err)
		}
	}
	return nil
}

// nextID allocates the next integer identifier for a collection.
func nextID(ctx context.Context, db *mongo.Database, name string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next %s id: %w", name, err)
	}
	return doc.Seq, nil
}

func exists(ctx context.Context, coll *mongo.Collection, filter any) (bool, error) {
	n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func findOptions(limit, offset int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
}
