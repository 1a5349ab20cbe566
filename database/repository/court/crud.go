package courtRepo

import (
	"context"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoCourtRepo) Create(ctx context.Context, c *models.Court) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}
	return nil
}

func (r *MongoCourtRepo) GetByID(ctx context.Context, id string) (*models.Court, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var c models.Court
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &c, nil
}

func (r *MongoCourtRepo) UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	updateDoc["updatedAt"] = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": updateDoc})
	if err != nil {
		return fmt.Errorf("failed to update court %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *MongoCourtRepo) ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]models.Court, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"facilityId": facilityID}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list courts: %w", err)
	}
	defer cursor.Close(ctx)

	courts := []models.Court{}
	if err := cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}
	return courts, nil
}

func (r *MongoCourtRepo) CountByFacilities(ctx context.Context, facilityIDs []string) (int64, error) {
	if len(facilityIDs) == 0 {
		return 0, nil
	}
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"facilityId": bson.M{"$in": facilityIDs}, "isActive": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count courts: %w", err)
	}
	return n, nil
}
