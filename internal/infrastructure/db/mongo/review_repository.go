package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/csemotors/dealership/internal/core/domain"
)

const reviewCollection = "reviews"

// MongoReviewRepository persists vehicle reviews.
type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	VehicleID primitive.ObjectID `bson:"vehicle_id"`
	AccountID primitive.ObjectID `bson:"account_id"`
	Text      string             `bson:"text"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	vehicleID, err := primitive.ObjectIDFromHex(review.VehicleID)
	if err != nil {
		return domain.ErrVehicleNotFound
	}
	accountID, err := primitive.ObjectIDFromHex(review.AccountID)
	if err != nil {
		return domain.ErrAccountNotFound
	}

	doc := mongoReview{
		VehicleID: vehicleID,
		AccountID: accountID,
		Text:      review.Text,
		CreatedAt: review.CreatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByVehicle returns reviews for a vehicle, newest first.
func (r *MongoReviewRepository) ListByVehicle(ctx context.Context, vehicleID string) ([]domain.Review, error) {
	oid, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"vehicle_id": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Review
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		out = append(out, domain.Review{
			ID:        mr.ID.Hex(),
			VehicleID: mr.VehicleID.Hex(),
			AccountID: mr.AccountID.Hex(),
			Text:      mr.Text,
			CreatedAt: unixToTime(mr.CreatedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return out, nil
}
