package offerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoOfferRepo) Create(ctx context.Context, o *models.Offer) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	return nil
}

func (r *MongoOfferRepo) GetByID(ctx context.Context, id string) (*models.Offer, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var o models.Offer
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&o); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &o, nil
}

func (r *MongoOfferRepo) Transition(ctx context.Context, id string, from models.OfferStatus, set bson.M) (*models.Offer, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	set["updatedAt"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Offer
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id, "status": from}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("failed to update offer %s: %w", id, err)
	}
	return &updated, nil
}
