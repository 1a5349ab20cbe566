package offerRepo

import (
	"context"
	"fmt"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoOfferRepo) find(ctx context.Context, filter bson.M) ([]models.Offer, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	defer cursor.Close(ctx)

	offers := []models.Offer{}
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("failed to decode offers: %w", err)
	}
	return offers, nil
}

func (r *MongoOfferRepo) ListByUser(ctx context.Context, userID string) ([]models.Offer, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoOfferRepo) ListByFacility(ctx context.Context, facilityID string) ([]models.Offer, error) {
	return r.find(ctx, bson.M{"facilityId": facilityID})
}

// Stats counts a facility's offers per status and averages the discount
// (originalPrice - offeredPrice) over all of them.
func (r *MongoOfferRepo) Stats(ctx context.Context, facilityID string) (*models.OfferStats, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"facilityId": facilityID}},
		{"$group": bson.M{
			"_id":      "$status",
			"count":    bson.M{"$sum": 1},
			"discount": bson.M{"$sum": bson.M{"$subtract": bson.A{"$originalPrice", "$offeredPrice"}}},
		}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate offers: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status   models.OfferStatus `bson:"_id"`
		Count    int64              `bson:"count"`
		Discount float64            `bson:"discount"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode offer stats: %w", err)
	}

	stats := &models.OfferStats{ByStatus: map[models.OfferStatus]int64{}}
	var discount float64
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
		discount += row.Discount
	}
	if stats.Total > 0 {
		stats.AverageDiscount = discount / float64(stats.Total)
	}
	return stats, nil
}
