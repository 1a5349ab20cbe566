package ownerProfileRepo

import (
	"context"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OwnerProfileRepository defines methods for owner business profiles.
type OwnerProfileRepository interface {
	Get(ctx context.Context, userID string) (*models.OwnerProfile, error)
	Upsert(ctx context.Context, p *models.OwnerProfile) error
}

type MongoOwnerProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoOwnerProfileRepo(db *mongo.Database) OwnerProfileRepository {
	return &MongoOwnerProfileRepo{coll: db.Collection("owner_profiles")}
}

func (r *MongoOwnerProfileRepo) Get(ctx context.Context, userID string) (*models.OwnerProfile, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var p models.OwnerProfile
	if err := r.coll.FindOne(ctx, bson.M{"userId": userID}).Decode(&p); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &p, nil
}

func (r *MongoOwnerProfileRepo) Upsert(ctx context.Context, p *models.OwnerProfile) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	p.UpdatedAt = time.Now()
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"userId": p.UserID}, p, opts); err != nil {
		return fmt.Errorf("failed to save owner profile: %w", err)
	}
	return nil
}
