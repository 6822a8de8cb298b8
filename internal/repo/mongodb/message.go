package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	// ListBetween returns every message exchanged between exactly the two
	// given users for a requirement, ascending by creation time.
	ListBetween(ctx context.Context, requirementID, userA, userB primitive.ObjectID) ([]*models.Message, error)
	// ListForUser returns every message for a requirement where the user is
	// sender or receiver, ascending by creation time.
	ListForUser(ctx context.Context, requirementID, userID primitive.ObjectID) ([]*models.Message, error)
	EnsureIndexes(ctx context.Context) error
}

type messageRepo struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *DB) MessageRepository {
	return &messageRepo{
		collection: db.Database.Collection("messages"),
	}
}

func (r *messageRepo) Create(ctx context.Context, message *models.Message) error {
	message.ID = primitive.NewObjectID()
	message.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepo) ListBetween(ctx context.Context, requirementID, userA, userB primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{
		"requirementId": requirementID,
		"$or": []bson.M{
			{"sender": userA, "receiver": userB},
			{"sender": userB, "receiver": userA},
		},
	}
	return r.list(ctx, filter)
}

func (r *messageRepo) ListForUser(ctx context.Context, requirementID, userID primitive.ObjectID) ([]*models.Message, error) {
	filter := bson.M{
		"requirementId": requirementID,
		"$or": []bson.M{
			{"sender": userID},
			{"receiver": userID},
		},
	}
	return r.list(ctx, filter)
}

func (r *messageRepo) list(ctx context.Context, filter bson.M) ([]*models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []*models.Message
	for cursor.Next(ctx) {
		var message models.Message
		if err := cursor.Decode(&message); err != nil {
			return nil, fmt.Errorf("failed to decode message: %w", err)
		}
		messages = append(messages, &message)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return messages, nil
}

func (r *messageRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "requirementId", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create message indexes: %w", err)
	}
	return nil
}
