// File: database/repository/timeslot/crud.go
package timeslotRepo

import (
	"context"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Reserve flips a free slot to booked in a single write. The filter only
// matches an unbooked, unblocked row; when a booked or blocked row exists the
// upsert tries to insert a second row for the same key and the unique index
// rejects it, so the loser of a race always gets ErrSlotTaken.
func (r *mongoTimeSlotRepo) Reserve(ctx context.Context, slot models.TimeSlot) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	filter := keyFilter(models.SlotKey{CourtID: slot.CourtID, Date: slot.Date, Start: slot.Start, End: slot.End})
	filter["isBooked"] = false
	filter["isBlocked"] = false

	update := bson.M{
		"$set": bson.M{
			"isBooked":      true,
			"priceSnapshot": slot.PriceSnapshot,
			"bookingId":     slot.BookingID,
			"facilityId":    slot.FacilityID,
			"updatedAt":     now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.New().String(),
			"createdAt": now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to reserve timeslot: %w", err)
	}
	return nil
}

// Release clears the booked flag, creating the row if it never existed.
func (r *mongoTimeSlotRepo) Release(ctx context.Context, key models.SlotKey) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"isBooked":  false,
			"updatedAt": now,
		},
		"$unset": bson.M{"bookingId": ""},
		"$setOnInsert": bson.M{
			"id":            uuid.New().String(),
			"isBlocked":     false,
			"priceSnapshot": 0,
			"createdAt":     now,
		},
	}

	_, err := r.coll.UpdateOne(ctx, keyFilter(key), update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to release timeslot: %w", err)
	}
	return nil
}

func (r *mongoTimeSlotRepo) ReleaseHeldBy(ctx context.Context, key models.SlotKey, bookingID string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := keyFilter(key)
	filter["bookingId"] = bookingID
	filter["isBooked"] = true
	update := bson.M{
		"$set":   bson.M{"isBooked": false, "updatedAt": time.Now()},
		"$unset": bson.M{"bookingId": ""},
	}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to release timeslot held by %s: %w", bookingID, err)
	}
	return nil
}

// SetBlocked blocks or unblocks a slot. Blocking only matches unbooked rows,
// so blocking a booked slot fails with ErrSlotTaken like Reserve does.
func (r *mongoTimeSlotRepo) SetBlocked(ctx context.Context, slot models.TimeSlot, blocked bool) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	filter := keyFilter(models.SlotKey{CourtID: slot.CourtID, Date: slot.Date, Start: slot.Start, End: slot.End})
	set := bson.M{
		"isBlocked":  blocked,
		"facilityId": slot.FacilityID,
		"updatedAt":  now,
	}
	onInsert := bson.M{
		"id":        uuid.New().String(),
		"createdAt": now,
	}
	if blocked {
		filter["isBooked"] = false
		set["priceSnapshot"] = slot.PriceSnapshot
	} else {
		onInsert["priceSnapshot"] = slot.PriceSnapshot
		onInsert["isBooked"] = false
	}

	update := bson.M{"$set": set, "$setOnInsert": onInsert}
	_, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to set block state for timeslot: %w", err)
	}
	return nil
}
