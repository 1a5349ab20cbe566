// File: database/repository/booking/aggregates.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

// AggregateByStatus groups the matching bookings by status, summing price.
func (r *MongoBookingRepo) AggregateByStatus(ctx context.Context, f models.BookingFilter) ([]models.BookingAggregate, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": buildFilter(f)},
		{"$group": bson.M{
			"_id":    "$status",
			"count":  bson.M{"$sum": 1},
			"amount": bson.M{"$sum": "$price"},
		}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.BookingAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking aggregates: %w", err)
	}
	return rows, nil
}

// DailyRevenue sums confirmed and completed booking prices per booking date.
func (r *MongoBookingRepo) DailyRevenue(ctx context.Context, facilityIDs []string, since time.Time) ([]models.DailyAmount, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"facilityId": bson.M{"$in": facilityIDs},
			"status":     bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}},
			"date":       bson.M{"$gte": since.Format(models.DateLayout)},
		}},
		{"$group": bson.M{
			"_id":    "$date",
			"amount": bson.M{"$sum": "$price"},
			"count":  bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate revenue: %w", err)
	}
	defer cursor.Close(ctx)

	rows := []models.DailyAmount{}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode revenue: %w", err)
	}
	return rows, nil
}

// CountBySport joins bookings to their court to group by sport.
func (r *MongoBookingRepo) CountBySport(ctx context.Context) (map[string]int64, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$lookup": bson.M{
			"from":         "courts",
			"localField":   "courtId",
			"foreignField": "id",
			"as":           "court",
		}},
		{"$unwind": "$court"},
		{"$group": bson.M{"_id": "$court.sport", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings by sport: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Sport string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sport counts: %w", err)
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Sport] = row.Count
	}
	return out, nil
}
