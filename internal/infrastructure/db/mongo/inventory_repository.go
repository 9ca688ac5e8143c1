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

const (
	classificationCollection = "classifications"
	vehicleCollection        = "vehicles"
)

// MongoInventoryRepository persists classifications and vehicles. The
// classifications collection carries a unique index on name.
type MongoInventoryRepository struct {
	classifications *mongo.Collection
	vehicles        *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *MongoInventoryRepository {
	return &MongoInventoryRepository{
		classifications: db.Collection(classificationCollection),
		vehicles:        db.Collection(vehicleCollection),
	}
}

type mongoClassification struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

type mongoVehicle struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	ClassificationID primitive.ObjectID `bson:"classification_id"`
	Make             string             `bson:"make"`
	Model            string             `bson:"model"`
	Description      string             `bson:"description"`
	Image            string             `bson:"image"`
	Thumbnail        string             `bson:"thumbnail"`
	Price            float64            `bson:"price"`
	Year             int                `bson:"year"`
	Miles            int                `bson:"miles"`
	Color            string             `bson:"color"`
}

func (r *MongoInventoryRepository) Classifications(ctx context.Context) ([]domain.Classification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.classifications.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Classification
	for cur.Next(ctx) {
		var mc mongoClassification
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode classification: %w", err)
		}
		out = append(out, domain.Classification{ID: mc.ID.Hex(), Name: mc.Name})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate classifications: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) ClassificationExists(ctx context.Context, name string) (bool, error) {
	n, err := r.classifications.CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("count classifications: %w", err)
	}
	return n > 0, nil
}

func (r *MongoInventoryRepository) CreateClassification(ctx context.Context, name string) (*domain.Classification, error) {
	res, err := r.classifications.InsertOne(ctx, mongoClassification{Name: name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrClassificationExists
		}
		return nil, fmt.Errorf("insert classification: %w", err)
	}

	created := domain.Classification{Name: name}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoInventoryRepository) VehiclesByClassification(ctx context.Context, classificationID string) ([]domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(classificationID)
	if err != nil {
		return nil, domain.ErrClassificationNotFound
	}

	cur, err := r.vehicles.Find(ctx, bson.M{"classification_id": oid})
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("decode vehicle: %w", err)
		}
		out = append(out, toDomainVehicle(mv))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate vehicles: %w", err)
	}
	return out, nil
}

func (r *MongoInventoryRepository) VehicleByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	v := toDomainVehicle(mv)
	return &v, nil
}

func (r *MongoInventoryRepository) CreateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	classID, err := primitive.ObjectIDFromHex(vehicle.ClassificationID)
	if err != nil {
		return nil, domain.ErrClassificationNotFound
	}

	doc := mongoVehicle{
		ClassificationID: classID,
		Make:             vehicle.Make,
		Model:            vehicle.Model,
		Description:      vehicle.Description,
		Image:            vehicle.Image,
		Thumbnail:        vehicle.Thumbnail,
		Price:            vehicle.Price,
		Year:             vehicle.Year,
		Miles:            vehicle.Miles,
		Color:            vehicle.Color,
	}

	res, err := r.vehicles.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}

	created := *vehicle
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *MongoInventoryRepository) UpdateVehicle(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(vehicle.ID)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}
	classID, err := primitive.ObjectIDFromHex(vehicle.ClassificationID)
	if err != nil {
		return nil, domain.ErrClassificationNotFound
	}

	update := bson.M{"$set": bson.M{
		"classification_id": classID,
		"make":              vehicle.Make,
		"model":             vehicle.Model,
		"description":       vehicle.Description,
		"image":             vehicle.Image,
		"thumbnail":         vehicle.Thumbnail,
		"price":             vehicle.Price,
		"year":              vehicle.Year,
		"miles":             vehicle.Miles,
		"color":             vehicle.Color,
	}}

	res, err := r.vehicles.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return vehicle, nil
}

func (r *MongoInventoryRepository) DeleteVehicle(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	res, err := r.vehicles.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func toDomainVehicle(mv mongoVehicle) domain.Vehicle {
	return domain.Vehicle{
		ID:               mv.ID.Hex(),
		ClassificationID: mv.ClassificationID.Hex(),
		Make:             mv.Make,
		Model:            mv.Model,
		Description:      mv.Description,
		Image:            mv.Image,
		Thumbnail:        mv.Thumbnail,
		Price:            mv.Price,
		Year:             mv.Year,
		Miles:            mv.Miles,
		Color:            mv.Color,
	}
}
