package courtRepo

import (
	"context"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourtRepository defines methods for court data access.
type CourtRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, c *models.Court) error
	GetByID(ctx context.Context, id string) (*models.Court, error)
	UpdateSetDocument(ctx context.Context, id string, updateDoc bson.M) error
	ListByFacility(ctx context.Context, facilityID string, activeOnly bool) ([]models.Court, error)
	CountByFacilities(ctx context.Context, facilityIDs []string) (int64, error)
}

type MongoCourtRepo struct {
	coll *mongo.Collection
}

func NewMongoCourtRepo(db *mongo.Database) CourtRepository {
	return &MongoCourtRepo{coll: db.Collection("courts")}
}
