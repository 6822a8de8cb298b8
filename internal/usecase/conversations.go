package usecase

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
)

// PartitionConversations derives the distinct counterparties a user has
// exchanged messages with for one requirement. Partners come back in
// first-seen order so the UI renders a stable list; messages come back
// ascending by creation time. The requesting user is never a partner of
// itself, even when a malformed row has sender == receiver.
func PartitionConversations(messages []*models.Message, userID primitive.ObjectID) ([]models.UserSummary, []*models.Message) {
	ordered := make([]*models.Message, len(messages))
	copy(ordered, messages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	partners := make([]models.UserSummary, 0)
	seen := make(map[primitive.ObjectID]struct{})
	for _, message := range ordered {
		partner := message.Receiver
		if message.SenderID != userID {
			partner = message.Sender
		}
		if partner == nil || partner.ID == userID {
			continue
		}
		if _, ok := seen[partner.ID]; ok {
			continue
		}
		seen[partner.ID] = struct{}{}
		partners = append(partners, *partner)
	}

	return partners, ordered
}
