package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

type RequirementRepository interface {
	Create(ctx context.Context, requirement *models.Requirement) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error)
	ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Requirement, error)
	ListByCategories(ctx context.Context, categories []models.Category) ([]*models.Requirement, error)
	CloseOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Requirement, error)
	EnsureIndexes(ctx context.Context) error
}

type requirementRepo struct {
	collection *mongo.Collection
}

func NewRequirementRepository(db *DB) RequirementRepository {
	return &requirementRepo{
		collection: db.Database.Collection("userrequirements"),
	}
}

func (r *requirementRepo) Create(ctx context.Context, requirement *models.Requirement) error {
	requirement.ID = primitive.NewObjectID()
	requirement.Status = models.RequirementStatusOpen
	requirement.CreatedAt = time.Now()
	requirement.UpdatedAt = requirement.CreatedAt

	_, err := r.collection.InsertOne(ctx, requirement)
	if err != nil {
		return fmt.Errorf("failed to create requirement: %w", err)
	}
	return nil
}

func (r *requirementRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error) {
	var requirement models.Requirement
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&requirement)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get requirement: %w", err)
	}
	return &requirement, nil
}

func (r *requirementRepo) ListByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]*models.Requirement, error) {
	return r.list(ctx, bson.M{"user": ownerID})
}

func (r *requirementRepo) ListByCategories(ctx context.Context, categories []models.Category) ([]*models.Requirement, error) {
	// Callers must short-circuit on an empty matched set; reject it here as
	// well so a bug upstream cannot turn into an unconstrained scan.
	if len(categories) == 0 {
		return nil, nil
	}
	return r.list(ctx, bson.M{"categories": bson.M{"$in": categories}})
}

func (r *requirementRepo) list(ctx context.Context, filter bson.M) ([]*models.Requirement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list requirements: %w", err)
	}
	defer cursor.Close(ctx)

	var requirements []*models.Requirement
	for cursor.Next(ctx) {
		var requirement models.Requirement
		if err := cursor.Decode(&requirement); err != nil {
			return nil, fmt.Errorf("failed to decode requirement: %w", err)
		}
		requirements = append(requirements, &requirement)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return requirements, nil
}

// CloseOwned flips the requirement to closed, scoped by (id, owner). A
// non-owner caller matches zero documents and gets (nil, nil) back rather
// than an error; the endpoint deliberately reports that as success.
func (r *requirementRepo) CloseOwned(ctx context.Context, id, ownerID primitive.ObjectID) (*models.Requirement, error) {
	filter := bson.M{"_id": id, "user": ownerID}
	update := bson.M{"$set": bson.M{
		"status":    models.RequirementStatusClosed,
		"updatedAt": time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Requirement
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to close requirement: %w", err)
	}
	return &updated, nil
}

func (r *requirementRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "categories", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create requirement indexes: %w", err)
	}
	return nil
}
