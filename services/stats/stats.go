package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/database/repository"
	bookingRepo "quickcourt/database/repository/booking"
	courtRepo "quickcourt/database/repository/court"
	facilityRepo "quickcourt/database/repository/facility"
	userRepo "quickcourt/database/repository/user"
	"quickcourt/models"
	"quickcourt/utils"
)

// RevenueWindow is how far back the owner revenue series reaches.
const RevenueWindow = 30 * 24 * time.Hour

var ErrUserNotFound = utils.NotFound("user not found")

type StatsService interface {
	ForUser(ctx context.Context, userID string) (*models.UserStats, error)
	ForOwner(ctx context.Context, ownerID string) (*models.OwnerStats, error)
	ForAdmin(ctx context.Context) (*models.AdminStats, error)
}

type DefaultStatsService struct {
	Users      userRepo.UserRepository
	Facilities facilityRepo.FacilityRepository
	Courts     courtRepo.CourtRepository
	Bookings   bookingRepo.BookingRepository
	Now        func() time.Time
}

func (s *DefaultStatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultStatsService) ForUser(ctx context.Context, userID string) (*models.UserStats, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	rows, err := s.Bookings.AggregateByStatus(ctx, models.BookingFilter{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user bookings: %w", err)
	}
	total, byStatus, spent := fold(rows)
	return &models.UserStats{
		TotalBookings:    total,
		ByStatus:         byStatus,
		TotalSpent:       spent,
		ReliabilityScore: u.Score(),
		Cancellations:    u.Cancellations,
	}, nil
}

func (s *DefaultStatsService) ForOwner(ctx context.Context, ownerID string) (*models.OwnerStats, error) {
	ids, err := s.Facilities.ListIDsByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner facilities: %w", err)
	}
	out := &models.OwnerStats{
		Facilities:   int64(len(ids)),
		ByStatus:     map[models.BookingStatus]int64{},
		DailyRevenue: []models.DailyAmount{},
	}
	if len(ids) == 0 {
		return out, nil
	}
	if out.Courts, err = s.Courts.CountByFacilities(ctx, ids); err != nil {
		return nil, fmt.Errorf("failed to count courts: %w", err)
	}
	rows, err := s.Bookings.AggregateByStatus(ctx, models.BookingFilter{FacilityIDs: ids})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate owner bookings: %w", err)
	}
	out.TotalBookings, out.ByStatus, out.Revenue = fold(rows)
	if out.DailyRevenue, err = s.Bookings.DailyRevenue(ctx, ids, s.now().Add(-RevenueWindow)); err != nil {
		return nil, fmt.Errorf("failed to build revenue series: %w", err)
	}
	return out, nil
}

func (s *DefaultStatsService) ForAdmin(ctx context.Context) (*models.AdminStats, error) {
	var (
		out    models.AdminStats
		err    error
		banned = true
	)
	if out.Users, err = s.Users.Count(ctx, models.UserFilter{Role: models.RoleUser}); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if out.Owners, err = s.Users.Count(ctx, models.UserFilter{Role: models.RoleOwner}); err != nil {
		return nil, fmt.Errorf("failed to count owners: %w", err)
	}
	if out.BannedUsers, err = s.Users.Count(ctx, models.UserFilter{Banned: &banned}); err != nil {
		return nil, fmt.Errorf("failed to count banned users: %w", err)
	}
	if out.Facilities, err = s.Facilities.CountByStatus(ctx); err != nil {
		return nil, fmt.Errorf("failed to count facilities: %w", err)
	}
	rows, err := s.Bookings.AggregateByStatus(ctx, models.BookingFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings: %w", err)
	}
	out.TotalBookings, _, out.ConfirmedRevenue = fold(rows)
	if out.BookingsBySport, err = s.Bookings.CountBySport(ctx); err != nil {
		return nil, fmt.Errorf("failed to count bookings by sport: %w", err)
	}
	return &out, nil
}

// fold totals aggregate rows. Only confirmed and completed bookings count
// towards the amount.
func fold(rows []models.BookingAggregate) (total int64, byStatus map[models.BookingStatus]int64, amount float64) {
	byStatus = map[models.BookingStatus]int64{}
	for _, r := range rows {
		total += r.Count
		byStatus[r.Status] = r.Count
		if r.Status == models.BookingConfirmed || r.Status == models.BookingCompleted {
			amount += r.Amount
		}
	}
	return total, byStatus, amount
}
