package facilityRepo

import (
	"context"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *MongoFacilityRepo) Create(ctx context.Context, f *models.Facility) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, f); err != nil {
		return fmt.Errorf("failed to create facility: %w", err)
	}
	return nil
}

func (r *MongoFacilityRepo) UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update facility %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoFacilityRepo) AddPhoto(ctx context.Context, id, url string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"photos": url},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to add photo to facility %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoFacilityRepo) SetRating(ctx context.Context, id string, rating float64, count int) error {
	return r.UpdateSetDocument(ctx, id, bson.M{"rating": rating, "reviewCount": count})
}
