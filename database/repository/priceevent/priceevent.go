package priceEventRepo

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

// PriceEventRepository is an append-only log of price changes.
type PriceEventRepository interface {
	Record(ctx context.Context, e *models.PriceEvent) error
	ListByCourt(ctx context.Context, courtID string) ([]models.PriceEvent, error)
}

type MongoPriceEventRepo struct {
	coll *mongo.Collection
}

func NewMongoPriceEventRepo(db *mongo.Database) PriceEventRepository {
	return &MongoPriceEventRepo{coll: db.Collection("price_events")}
}

func (r *MongoPriceEventRepo) Record(ctx context.Context, e *models.PriceEvent) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	e.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to record price event: %w", err)
	}
	return nil
}

func (r *MongoPriceEventRepo) ListByCourt(ctx context.Context, courtID string) ([]models.PriceEvent, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}).SetLimit(50)
	cursor, err := r.coll.Find(ctx, bson.M{"courtId": courtID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list price events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.PriceEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode price events: %w", err)
	}
	return events, nil
}
