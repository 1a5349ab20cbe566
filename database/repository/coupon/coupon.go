package couponRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CouponRepository defines methods for coupon data access.
type CouponRepository interface {
	EnsureIndexes(ctx context.Context) error
	Create(ctx context.Context, c *models.Coupon) error
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Coupon, error)
	Deactivate(ctx context.Context, ownerID, id string) error
}

type MongoCouponRepo struct {
	coll *mongo.Collection
}

func NewMongoCouponRepo(db *mongo.Database) CouponRepository {
	return &MongoCouponRepo{coll: db.Collection("coupons")}
}

// NormalizeCode is the stored form of a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func (r *MongoCouponRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create coupon indexes: %w", err)
	}
	return nil
}

func (r *MongoCouponRepo) Create(ctx context.Context, c *models.Coupon) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	c.Code = NormalizeCode(c.Code)
	c.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		if translated := repository.TranslateError(err); translated == repository.ErrDuplicate {
			return translated
		}
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *MongoCouponRepo) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var c models.Coupon
	if err := r.coll.FindOne(ctx, bson.M{"code": NormalizeCode(code)}).Decode(&c); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &c, nil
}

func (r *MongoCouponRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Coupon, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer cursor.Close(ctx)

	coupons := []models.Coupon{}
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

func (r *MongoCouponRepo) Deactivate(ctx context.Context, ownerID, id string) error {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "ownerId": ownerID}, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return fmt.Errorf("failed to deactivate coupon: %w", err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
