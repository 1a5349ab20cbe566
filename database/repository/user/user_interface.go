package userRepo

import (
	"context"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	EnsureIndexes(ctx context.Context) error
	// Create inserts a new user record. A taken email yields repository.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its (lower-cased) email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateSetDocument applies a $set of the given fields.
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	// SetReliability stores a new score and bumps the cancellation counter.
	SetReliability(ctx context.Context, id string, score int, cancellationsDelta int) error
	// List returns one page of users matching filter plus the total match count.
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int64, error)
	// Count returns the number of users matching filter (pagination ignored).
	Count(ctx context.Context, filter models.UserFilter) (int64, error)
}
