package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a single chat message tied to a requirement. Messages are
// immutable once created; there is no edit or delete operation.
type Message struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequirementID primitive.ObjectID `bson:"requirementId" json:"requirement_id"`
	SenderID      primitive.ObjectID `bson:"sender" json:"sender_id"`
	ReceiverID    primitive.ObjectID `bson:"receiver" json:"receiver_id"`
	Body          string             `bson:"message" json:"message"`
	CreatedAt     time.Time          `bson:"createdAt" json:"created_at"`

	// Sender and Receiver are resolved from the user collection at read
	// time, never persisted.
	Sender   *UserSummary `bson:"-" json:"sender,omitempty"`
	Receiver *UserSummary `bson:"-" json:"receiver,omitempty"`
}
