package kafka

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

const (
	EventMessageCreated    = "message.created"
	EventRequirementClosed = "requirement.closed"
)

// Event is the audit record published for downstream consumers. It is not a
// delivery channel; clients still poll for new messages.
type Event struct {
	Type          string    `json:"type"`
	RequirementID string    `json:"requirement_id"`
	ActorID       string    `json:"actor_id"`
	OccurredAt    time.Time `json:"occurred_at"`
	MessageID     string    `json:"message_id,omitempty"`
	ReceiverID    string    `json:"receiver_id,omitempty"`
}

func NewMessageCreatedEvent(message *models.Message) Event {
	return Event{
		Type:          EventMessageCreated,
		RequirementID: message.RequirementID.Hex(),
		ActorID:       message.SenderID.Hex(),
		OccurredAt:    message.CreatedAt,
		MessageID:     message.ID.Hex(),
		ReceiverID:    message.ReceiverID.Hex(),
	}
}

func NewRequirementClosedEvent(requirementID, ownerID primitive.ObjectID, at time.Time) Event {
	return Event{
		Type:          EventRequirementClosed,
		RequirementID: requirementID.Hex(),
		ActorID:       ownerID.Hex(),
		OccurredAt:    at,
	}
}
