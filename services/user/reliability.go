package user

import (
	"context"
	"errors"
	"fmt"

	"quickcourt/database/repository"
	"quickcourt/models"
)

// Reliability score deltas per booking outcome.
const (
	completedDelta = 2
	cancelledDelta = -10
)

// AdjustReliability returns the next score after event, starting from the
// default when current is unset and clamping to [0, 100].
func AdjustReliability(current *int, event models.ReliabilityEvent) int {
	score := models.DefaultReliabilityScore
	if current != nil {
		score = *current
	}
	switch event {
	case models.ReliabilityCompleted:
		score += completedDelta
	case models.ReliabilityCancelled:
		score += cancelledDelta
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// RecordOutcome applies a booking outcome to the user's score; cancellations
// also bump the cancellation counter.
func (s *DefaultUserService) RecordOutcome(ctx context.Context, userID string, event models.ReliabilityEvent) error {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user for reliability update: %w", err)
	}

	delta := 0
	if event == models.ReliabilityCancelled {
		delta = 1
	}
	if err := s.Repo.SetReliability(ctx, userID, AdjustReliability(u.ReliabilityScore, event), delta); err != nil {
		return err
	}
	s.Cache.Evict(ctx, userID)
	return nil
}
