package reviewRepo

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

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Upsert stores the user's review of a facility, replacing an earlier one.
	Upsert(ctx context.Context, rv *models.Review) error
	ListByFacility(ctx context.Context, facilityID string) ([]models.Review, error)
	// Summary returns the average rating and review count of a facility.
	Summary(ctx context.Context, facilityID string) (float64, int, error)
}

type MongoReviewRepo struct {
	coll *mongo.Collection
}

func NewMongoReviewRepo(db *mongo.Database) ReviewRepository {
	return &MongoReviewRepo{coll: db.Collection("reviews")}
}

func (r *MongoReviewRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "facilityId", Value: 1}, {Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create review indexes: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) Upsert(ctx context.Context, rv *models.Review) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	rv.CreatedAt = time.Now()
	filter := bson.M{"facilityId": rv.FacilityID, "userId": rv.UserID}
	update := bson.M{
		"$set": bson.M{
			"rating":    rv.Rating,
			"comment":   rv.Comment,
			"userName":  rv.UserName,
			"createdAt": rv.CreatedAt,
		},
		"$setOnInsert": bson.M{"id": rv.ID},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func (r *MongoReviewRepo) ListByFacility(ctx context.Context, facilityID string) ([]models.Review, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(100)
	cursor, err := r.coll.Find(ctx, bson.M{"facilityId": facilityID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer cursor.Close(ctx)

	reviews := []models.Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

func (r *MongoReviewRepo) Summary(ctx context.Context, facilityID string) (float64, int, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"facilityId": facilityID}},
		{"$group": bson.M{"_id": nil, "avg": bson.M{"$avg": "$rating"}, "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Avg   float64 `bson:"avg"`
		Count int     `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, 0, fmt.Errorf("failed to decode review summary: %w", err)
	}
	if len(rows) == 0 {
		return 0, 0, nil
	}
	return rows[0].Avg, rows[0].Count, nil
}
