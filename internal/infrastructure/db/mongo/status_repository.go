package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.StatusRepository = (*StatusRepository)(nil)

type StatusRepository struct {
	coll *mongo.Collection
}

func NewStatusRepository(db *mongo.Database) *StatusRepository {
	return &StatusRepository{coll: db.Collection(collStatuses)}
}

type statusDoc struct {
	ID   int    `bson:"_id"`
	Name string `bson:"status_name"`
}

func (r *StatusRepository) List(ctx context.Context) ([]domain.Status, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	var docs []statusDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	statuses := make([]domain.Status, 0, len(docs))
	for _, d := range docs {
		statuses = append(statuses, domain.Status{ID: d.ID, Name: d.Name})
	}
	return statuses, nil
}
