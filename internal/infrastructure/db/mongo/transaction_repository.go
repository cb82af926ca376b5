package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	db       *mongo.Database
	coll     *mongo.Collection
	history  *mongo.Collection
	clients  *mongo.Collection
	statuses *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{
		db:       db,
		coll:     db.Collection(collTransactions),
		history:  db.Collection(collHistory),
		clients:  db.Collection(collClients),
		statuses: db.Collection(collStatuses),
	}
}

type transactionDoc struct {
	TrackingID  string    `bson:"_id"`
	ClientID    int64     `bson:"client_id"`
	Message     string    `bson:"tracking_message"`
	StatusID    int       `bson:"status_id"`
	Description *string   `bson:"description,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
}

type transactionView struct {
	transactionDoc `bson:",inline"`
	Client         clientDoc `bson:"client"`
	Status         statusDoc `bson:"status"`
}

func (v transactionView) toDomain() *domain.Transaction {
	return &domain.Transaction{
		TrackingID:  v.TrackingID,
		ClientID:    v.ClientID,
		ClientName:  v.Client.Name,
		Message:     v.Message,
		StatusID:    v.StatusID,
		StatusName:  v.Status.Name,
		Description: v.Description,
		CreatedAt:   v.CreatedAt.UTC(),
	}
}

// Create inserts the transaction, then its first history entry. The history
// insert is compensated by removing the transaction if it fails.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	clientName, statusName, err := r.resolveReferences(ctx, tx.ClientID, tx.StatusID)
	if err != nil {
		return err
	}

	doc := transactionDoc{
		TrackingID:  tx.TrackingID,
		ClientID:    tx.ClientID,
		Message:     tx.Message,
		StatusID:    tx.StatusID,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrTrackingIDTaken
		}
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := r.appendHistory(ctx, tx); err != nil {
		if _, delErr := r.coll.DeleteOne(ctx, bson.M{"_id": tx.TrackingID}); delErr != nil {
			err = errors.Join(err, delErr)
		}
		return fmt.Errorf("insert transaction history: %w", err)
	}

	tx.ClientName, tx.StatusName = clientName, statusName
	return nil
}

func (r *TransactionRepository) FindByTrackingID(ctx context.Context, trackingID string) (*domain.Transaction, error) {
	cur, err := r.coll.Aggregate(ctx, transactionPipeline(bson.D{{Key: "_id", Value: trackingID}}, nil))
	if err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	var views []transactionView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("find transaction: %w", err)
	}
	if len(views) == 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return views[0].toDomain(), nil
}

func (r *TransactionRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Transaction, int64, error) {
	cur, err := r.coll.Aggregate(ctx, transactionPipeline(nil, &page))
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	var views []transactionView
	if err := cur.All(ctx, &views); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	txs := make([]*domain.Transaction, 0, len(views))
	for _, v := range views {
		txs = append(txs, v.toDomain())
	}
	return txs, total, nil
}

// Update replaces the mutable fields, then appends a history entry. If the
// history insert fails the previous document is written back.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	clientName, statusName, err := r.resolveReferences(ctx, tx.ClientID, tx.StatusID)
	if err != nil {
		return err
	}

	var prev transactionDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": tx.TrackingID},
		bson.M{"$set": bson.M{
			"client_id":        tx.ClientID,
			"tracking_message": tx.Message,
			"status_id":        tx.StatusID,
			"description":      tx.Description,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.Before),
	).Decode(&prev)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrTransactionNotFound
		}
		return fmt.Errorf("update transaction: %w", err)
	}

	tx.CreatedAt = prev.CreatedAt
	if err := r.appendHistory(ctx, tx); err != nil {
		if _, restoreErr := r.coll.ReplaceOne(ctx, bson.M{"_id": prev.TrackingID}, prev); restoreErr != nil {
			err = errors.Join(err, restoreErr)
		}
		return fmt.Errorf("insert transaction history: %w", err)
	}

	tx.ClientName, tx.StatusName = clientName, statusName
	return nil
}

// Delete removes the transaction and every history entry for it.
func (r *TransactionRepository) Delete(ctx context.Context, trackingID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": trackingID})
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTransactionNotFound
	}
	if _, err := r.history.DeleteMany(ctx, bson.M{"tracking_id": trackingID}); err != nil {
		return fmt.Errorf("delete transaction history: %w", err)
	}
	return nil
}

// resolveReferences returns domain.ErrInvalidReference when the client or
// status does not exist.
func (r *TransactionRepository) resolveReferences(ctx context.Context, clientID int64, statusID int) (string, string, error) {
	var c clientDoc
	if err := r.clients.FindOne(ctx, bson.M{"_id": clientID}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", "", domain.ErrInvalidReference
		}
		return "", "", fmt.Errorf("find client: %w", err)
	}
	var s statusDoc
	if err := r.statuses.FindOne(ctx, bson.M{"_id": statusID}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", "", domain.ErrInvalidReference
		}
		return "", "", fmt.Errorf("find status: %w", err)
	}
	return c.Name, s.Name, nil
}

func (r *TransactionRepository) appendHistory(ctx context.Context, tx *domain.Transaction) error {
	id, err := nextID(ctx, r.db, collHistory)
	if err != nil {
		return err
	}
	_, err = r.history.InsertOne(ctx, historyDoc{
		ID:          id,
		TrackingID:  tx.TrackingID,
		ClientID:    tx.ClientID,
		Message:     tx.Message,
		Description: tx.Description,
		StatusID:    tx.StatusID,
		CreatedAt:   tx.CreatedAt,
		ChangedAt:   time.Now().UTC(),
	})
	return err
}
