// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"time"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Transition applies set only when the booking is currently in one of
	// from, returning the updated document or repository.ErrConflict.
	Transition(ctx context.Context, id string, from []models.BookingStatus, set bson.M) (*models.Booking, error)
	SetPrice(ctx context.Context, id string, price float64) error
	// FindActiveOverlap returns pending/confirmed bookings on the court and date
	// whose [startTime, endTime) intersects [start, end).
	FindActiveOverlap(ctx context.Context, courtID, date, start, end, excludeID string) ([]models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, error)
	HasBookingAtFacility(ctx context.Context, userID, facilityID string, statuses []models.BookingStatus) (bool, error)
	AggregateByStatus(ctx context.Context, filter models.BookingFilter) ([]models.BookingAggregate, error)
	DailyRevenue(ctx context.Context, facilityIDs []string, since time.Time) ([]models.DailyAmount, error)
	CountBySport(ctx context.Context) (map[string]int64, error)
}

type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{coll: db.Collection("bookings")}
}
