package facilityRepo

import (
	"context"
	"fmt"
	"regexp"

	"quickcourt/database/repository"
	"quickcourt/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoFacilityRepo) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	var f models.Facility
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&f); err != nil {
		return nil, repository.TranslateError(err)
	}
	return &f, nil
}

func buildFilter(f models.FacilityFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.OwnerID != "" {
		filter["ownerId"] = f.OwnerID
	}
	if f.Sport != "" {
		filter["sports"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.Sport) + "$", Options: "i"}
	}
	if f.City != "" {
		filter["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(f.City) + "$", Options: "i"}
	}
	if f.Query != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Query), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"address": pattern},
			bson.M{"city": pattern},
		}
	}
	return filter
}

// List returns a page of facilities, newest first, and the total match count.
func (r *MongoFacilityRepo) List(ctx context.Context, f models.FacilityFilter) ([]models.Facility, int64, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	filter := buildFilter(f)
	skip, _, limit := repository.Paginate(f.Page, f.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer cursor.Close(ctx)

	facilities := []models.Facility{}
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, 0, fmt.Errorf("failed to decode facilities: %w", err)
	}
	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count facilities: %w", err)
	}
	return facilities, total, nil
}

func (r *MongoFacilityRepo) ListIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"id": 1})
	cursor, err := r.coll.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list owner facilities: %w", err)
	}
	defer cursor.Close(ctx)

	ids := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode facility id: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	return ids, cursor.Err()
}

func (r *MongoFacilityRepo) CountByStatus(ctx context.Context) (map[models.FacilityStatus]int64, error) {
	ctx, cancel := repository.WithTimeout(ctx)
	defer cancel()

	pipeline := []bson.M{
		{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate facilities: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status models.FacilityStatus `bson:"_id"`
		Count  int64                 `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode facility counts: %w", err)
	}
	out := make(map[models.FacilityStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}
