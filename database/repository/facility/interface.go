package facilityRepo

import (
	"context"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FacilityRepository defines methods for facility data access.
type FacilityRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, f *models.Facility) error
	GetByID(ctx context.Context, id string) (*models.Facility, error)
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	AddPhoto(ctx context.Context, id, url string) error
	SetRating(ctx context.Context, id string, rating float64, count int) error
	List(ctx context.Context, filter models.FacilityFilter) ([]models.Facility, int64, error)
	ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	CountByStatus(ctx context.Context) (map[models.FacilityStatus]int64, error)
}

type MongoFacilityRepo struct {
	coll *mongo.Collection
}

func NewMongoFacilityRepo(db *mongo.Database) FacilityRepository {
	return &MongoFacilityRepo{coll: db.Collection("facilities")}
}
