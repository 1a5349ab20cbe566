package offerRepo

import (
	"context"

	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// OfferRepository defines methods for offer data access.
type OfferRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, o *models.Offer) error
	GetByID(ctx context.Context, id string) (*models.Offer, error)
	// Transition applies set only if the offer is still in status from.
	Transition(ctx context.Context, id string, from models.OfferStatus, set bson.M) (*models.Offer, error)
	ListByUser(ctx context.Context, userID string) ([]models.Offer, error)
	ListByFacility(ctx context.Context, facilityID string) ([]models.Offer, error)
	Stats(ctx context.Context, facilityID string) (*models.OfferStats, error)
}

type MongoOfferRepo struct {
	coll *mongo.Collection
}

func NewMongoOfferRepo(db *mongo.Database) OfferRepository {
	return &MongoOfferRepo{coll: db.Collection("offers")}
}
