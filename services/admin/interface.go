package admin

import (
	"context"

	bookingRepo "quickcourt/database/repository/booking"
	"quickcourt/models"
	"quickcourt/services/facility"
	"quickcourt/services/user"
)

// AdminService backs the /api/admin console. Every mutating call carries the
// acting admin's id so moderation is auditable in the logs.
type AdminService interface {
	ListFacilities(ctx context.Context, status models.FacilityStatus, page, limit int) (*models.Page[models.Facility], error)
	ApproveFacility(ctx context.Context, adminID, facilityID string) (*models.Facility, error)
	RejectFacility(ctx context.Context, adminID, facilityID, reason string) (*models.Facility, error)

	ListUsers(ctx context.Context, filter models.UserFilter) (*models.Page[models.User], error)
	SetBanned(ctx context.Context, adminID, userID string, banned bool) (*models.User, error)
	UserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

type DefaultAdminService struct {
	Facilities facility.FacilityService
	Users      user.UserService
	Bookings   bookingRepo.BookingRepository
}
