// File: database/repository/timeslot/interface.go
package timeslotRepo

import (
	"context"
	"errors"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrSlotTaken is returned when a reserve or block finds the slot already
// booked (or blocked, for reserve).
var ErrSlotTaken = errors.New("slot already booked or blocked")

type TimeSlotRepository interface {
	EnsureIndexes(ctx context.Context) error
	GetByKey(ctx context.Context, key models.SlotKey) (*models.TimeSlot, error)
	ListByCourtAndDate(ctx context.Context, courtID, date string) ([]models.TimeSlot, error)
	Reserve(ctx context.Context, slot models.TimeSlot) error
	Release(ctx context.Context, key models.SlotKey) error
	// ReleaseHeldBy frees the slot only while bookingID still holds it.
	ReleaseHeldBy(ctx context.Context, key models.SlotKey, bookingID string) error
	SetBlocked(ctx context.Context, slot models.TimeSlot, blocked bool) error
}

type mongoTimeSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeSlotRepo constructs a new MongoDB TimeSlotRepository.
func NewMongoTimeSlotRepo(db *mongo.Database) TimeSlotRepository {
	return &mongoTimeSlotRepo{
		coll: db.Collection("timeslots"),
	}
}

func keyFilter(key models.SlotKey) bson.M {
	return bson.M{
		"courtId": key.CourtID,
		"date":    key.Date,
		"start":   key.Start,
		"end":     key.End,
	}
}
