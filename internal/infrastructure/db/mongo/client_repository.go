package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/uscl/transaction-tracker/internal/core/domain"
	"github.com/uscl/transaction-tracker/internal/core/ports"
)

var _ ports.ClientRepository = (*ClientRepository)(nil)

type ClientRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{db: db, coll: db.Collection(collClients)}
}

type clientDoc struct {
	ID        int64     `bson:"_id"`
	Name      string    `bson:"client_name"`
	Email     string    `bson:"email"`
	IsActive  bool      `bson:"is_active"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d clientDoc) toDomain() *domain.Client {
	return &domain.Client{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

func (r *ClientRepository) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	id, err := nextID(ctx, r.db, collClients)
	if err != nil {
		return nil, err
	}
	doc := clientDoc{ID: id, Name: c.Name, Email: c.Email, IsActive: c.IsActive, CreatedAt: c.CreatedAt}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClientExists
		}
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) FindByID(ctx context.Context, id int64) (*domain.Client, error) {
	var doc clientDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ClientRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Client, int64, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, findOptions(page.Limit, page.Offset()))
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	var docs []clientDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	clients := make([]*domain.Client, 0, len(docs))
	for _, d := range docs {
		clients = append(clients, d.toDomain())
	}
	return clients, total, nil
}

func (r *ClientRepository) Update(ctx context.Context, c *domain.Client) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": c.ID},
		bson.M{"$set": bson.M{"client_name": c.Name, "email": c.Email, "is_active": c.IsActive}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrClientExists
		}
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

// Delete refuses while any transaction or history entry references the client.
func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	for _, coll := range []string{collTransactions, collHistory} {
		inUse, err := exists(ctx, r.db.Collection(coll), bson.M{"client_id": id})
		if err != nil {
			return fmt.Errorf("check client references: %w", err)
		}
		if inUse {
			return domain.ErrClientInUse
		}
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}
