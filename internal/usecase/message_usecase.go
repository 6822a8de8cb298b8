package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"

	"github.com/wanderhub/marketplace-chat/internal/kafka"
	"github.com/wanderhub/marketplace-chat/internal/models"
	"github.com/wanderhub/marketplace-chat/internal/repo/mongodb"
	"github.com/wanderhub/marketplace-chat/pkg/util"
)

const publishTimeout = 10 * time.Second

type SendMessageParams struct {
	RequirementID primitive.ObjectID
	ReceiverID    primitive.ObjectID
	Body          string
}

type MessageUsecase interface {
	// Send persists a message from the principal to the receiver. The body
	// is trimmed and must not be blank; the receiver must differ from the
	// sender.
	Send(ctx context.Context, principal models.Principal, params SendMessageParams) (*models.Message, error)
	// History returns all messages between exactly the principal and the
	// other user for one requirement, ascending by creation time.
	History(ctx context.Context, principal models.Principal, requirementID, otherUserID primitive.ObjectID) ([]*models.Message, error)
	// Conversations returns the principal's distinct chat partners for a
	// requirement plus the full message list, both resolved and ordered.
	Conversations(ctx context.Context, principal models.Principal, requirementID primitive.ObjectID) ([]models.UserSummary, []*models.Message, error)
}

type messageUsecase struct {
	messageRepo mongodb.MessageRepository
	userRepo    mongodb.UserRepository
	publisher   kafka.Publisher
}

func NewMessageUsecase(
	messageRepo mongodb.MessageRepository,
	userRepo mongodb.UserRepository,
	publisher kafka.Publisher,
) MessageUsecase {
	return &messageUsecase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

func (uc *messageUsecase) Send(ctx context.Context, principal models.Principal, params SendMessageParams) (*models.Message, error) {
	body := strings.TrimSpace(params.Body)
	if body == "" {
		return nil, models.ErrBlankMessage
	}
	if params.ReceiverID == principal.UserID {
		return nil, models.ErrSelfMessage
	}

	message := &models.Message{
		RequirementID: params.RequirementID,
		SenderID:      principal.UserID,
		ReceiverID:    params.ReceiverID,
		Body:          body,
	}
	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	if err := uc.resolveIdentities(ctx, []*models.Message{message}); err != nil {
		return nil, fmt.Errorf("resolve identities: %w", err)
	}

	// Audit event only; delivery stays poll-based and the send must not
	// fail if the broker is down.
	go func() {
		ctx, cancel := util.NewTimeoutContext(ctx, publishTimeout)
		defer cancel()
		if err := uc.publisher.Publish(ctx, kafka.NewMessageCreatedEvent(message)); err != nil {
			log.Errorw(ctx, "failed to publish message event", "error", err, "message_id", message.ID.Hex())
		}
	}()

	return message, nil
}

func (uc *messageUsecase) History(ctx context.Context, principal models.Principal, requirementID, otherUserID primitive.ObjectID) ([]*models.Message, error) {
	var messages []*models.Message
	var users []*models.User

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		messages, err = uc.messageRepo.ListBetween(gctx, requirementID, principal.UserID, otherUserID)
		return err
	})
	group.Go(func() error {
		var err error
		users, err = uc.userRepo.GetByIDs(gctx, []primitive.ObjectID{principal.UserID, otherUserID})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}

	attachIdentities(messages, users)
	return messages, nil
}

func (uc *messageUsecase) Conversations(ctx context.Context, principal models.Principal, requirementID primitive.ObjectID) ([]models.UserSummary, []*models.Message, error) {
	messages, err := uc.messageRepo.ListForUser(ctx, requirementID, principal.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("list messages: %w", err)
	}

	if err := uc.resolveIdentities(ctx, messages); err != nil {
		return nil, nil, fmt.Errorf("resolve identities: %w", err)
	}

	partners, ordered := PartitionConversations(messages, principal.UserID)
	return partners, ordered, nil
}

// resolveIdentities performs the read-time join from sender/receiver refs to
// user summaries. Messages referencing unknown users keep nil summaries.
func (uc *messageUsecase) resolveIdentities(ctx context.Context, messages []*models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	ids := make([]primitive.ObjectID, 0, len(messages)*2)
	for _, message := range messages {
		ids = append(ids, message.SenderID, message.ReceiverID)
	}

	users, err := uc.userRepo.GetByIDs(ctx, lo.Uniq(ids))
	if err != nil {
		return err
	}

	attachIdentities(messages, users)
	return nil
}

func attachIdentities(messages []*models.Message, users []*models.User) {
	byID := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for _, user := range users {
		byID[user.ID] = user.Summary()
	}

	for _, message := range messages {
		if summary, ok := byID[message.SenderID]; ok {
			message.Sender = util.Ptr(summary)
		}
		if summary, ok := byID[message.ReceiverID]; ok {
			message.Receiver = util.Ptr(summary)
		}
	}
}
