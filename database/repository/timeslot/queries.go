// File: database/repository/timeslot/queries.go
package timeslotRepo

import (
	"context"
	"fmt"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoTimeSlotRepo) GetByKey(ctx context.Context, key models.SlotKey) (*models.TimeSlot, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var slot models.TimeSlot
	if err := r.coll.FindOne(ctx, keyFilter(key)).Decode(&slot); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &slot, nil
}

func (r *mongoTimeSlotRepo) ListByCourtAndDate(ctx context.Context, courtID, date string) ([]models.TimeSlot, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"courtId": courtID, "date": date}
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch timeslots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []models.TimeSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding timeslots: %w", err)
	}
	return slots, nil
}
