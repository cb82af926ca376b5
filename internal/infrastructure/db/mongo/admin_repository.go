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

var _ ports.AdminRepository = (*AdminRepository)(nil)

type AdminRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewAdminRepository(db *mongo.Database) *AdminRepository {
	return &AdminRepository{db: db, coll: db.Collection(collAdmins)}
}

type adminDoc struct {
	ID           int64     `bson:"_id"`
	Username     string    `bson:"username"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

func (d adminDoc) toDomain() *domain.Admin {
	return &domain.Admin{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func (r *AdminRepository) Create(ctx context.Context, a *domain.Admin) (*domain.Admin, error) {
	id, err := nextID(ctx, r.db, collAdmins)
	if err != nil {
		return nil, err
	}
	doc := adminDoc{
		ID:           id,
		Username:     a.Username,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Role:         string(a.Role),
		CreatedAt:    a.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) FindByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *AdminRepository) findOne(ctx context.Context, filter bson.M) (*domain.Admin, error) {
	var doc adminDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AdminRepository) UsernameTaken(ctx context.Context, username string, excludeID int64) (bool, error) {
	taken, err := exists(ctx, r.coll, bson.M{"username": username, "_id": bson.M{"$ne": excludeID}})
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return taken, nil
}

func (r *AdminRepository) List(ctx context.Context, page ports.PageRequest) ([]*domain.Admin, int64, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, findOptions(page.Limit, page.Offset()))
	if err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}
	var docs []adminDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("list admins: %w", err)
	}
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count admins: %w", err)
	}

	admins := make([]*domain.Admin, 0, len(docs))
	for _, d := range docs {
		admins = append(admins, d.toDomain())
	}
	return admins, total, nil
}

func (r *AdminRepository) Update(ctx context.Context, id int64, username, email string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"username": username, "email": email}},
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("update admin: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAdminNotFound
	}
	return nil
}
