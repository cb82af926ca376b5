package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.HistoryRepository = (*HistoryRepository)(nil)

type HistoryRepository struct {
	coll *mongo.Collection
}

func NewHistoryRepository(db *mongo.Database) *HistoryRepository {
	return &HistoryRepository{coll: db.Collection(collHistory)}
}

type historyDoc struct {
	ID          int64     `bson:"_id"`
	TrackingID  string    `bson:"tracking_id"`
	ClientID    int64     `bson:"client_id"`
	Message     string    `bson:"tracking_message"`
	Description *string   `bson:"description,omitempty"`
	StatusID    int       `bson:"status_id"`
	CreatedAt   time.Time `bson:"created_at"`
	ChangedAt   time.Time `bson:"changed_at"`
}

type historyView struct {
	historyDoc `bson:",inline"`
	Client     clientDoc `bson:"client"`
	Status     statusDoc `bson:"status"`
}

func (v historyView) toDomain() *domain.HistoryEntry {
	return &domain.HistoryEntry{
		ID:          v.ID,
		TrackingID:  v.TrackingID,
		ClientID:    v.ClientID,
		ClientName:  v.Client.Name,
		Message:     v.Message,
		Description: v.Description,
		StatusID:    v.StatusID,
		StatusName:  v.Status.Name,
		CreatedAt:   v.CreatedAt.UTC(),
		ChangedAt:   v.ChangedAt.UTC(),
	}
}

func (r *HistoryRepository) List(ctx context.Context, filter ports.HistoryFilter) ([]*domain.HistoryEntry, int64, error) {
	data, count := historyPipelines(filter)

	entries, err := r.aggregate(ctx, data)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}

	cur, err := r.coll.Aggregate(ctx, count)
	if err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}
	var counted []struct {
		Total int64 `bson:"total"`
	}
	if err := cur.All(ctx, &counted); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}
	var total int64
	if len(counted) > 0 {
		total = counted[0].Total
	}
	return entries, total, nil
}

func (r *HistoryRepository) ListByTrackingID(ctx context.Context, trackingID string) ([]*domain.HistoryEntry, error) {
	p := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "tracking_id", Value: trackingID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	p = append(p, lookupOne(collClients, "client_id", "client")...)
	p = append(p, lookupOne(collStatuses, "status_id", "status")...)

	entries, err := r.aggregate(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

func (r *HistoryRepository) CountByTrackingID(ctx context.Context, trackingID string) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"tracking_id": trackingID}, options.Count())
	if err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

func (r *HistoryRepository) DeleteByTrackingID(ctx context.Context, trackingID string) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"tracking_id": trackingID})
	if err != nil {
		return 0, fmt.Errorf("delete history: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *HistoryRepository) aggregate(ctx context.Context, p mongo.Pipeline) ([]*domain.HistoryEntry, error) {
	cur, err := r.coll.Aggregate(ctx, p)
	if err != nil {
		return nil, err
	}
	var views []historyView
	if err := cur.All(ctx, &views); err != nil {
		return nil, err
	}
	entries := make([]*domain.HistoryEntry, 0, len(views))
	for _, v := range views {
		entries = append(entries, v.toDomain())
	}
	return entries, nil
}
