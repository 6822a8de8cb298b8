package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/config"
	"github.com/wanderhub/marketplace-chat/internal/usecase"
)

type MessageController interface {
	GetMessages(c echo.Context) error
	GetConversations(c echo.Context) error
	SendMessage(c echo.Context) error
}

type messageController struct {
	messageUsecase usecase.MessageUsecase
	pollInterval   time.Duration
}

func NewMessageController(conf *config.Config, messageUsecase usecase.MessageUsecase) MessageController {
	return &messageController{
		messageUsecase: messageUsecase,
		pollInterval:   conf.Chat.PollInterval,
	}
}

// setPollInterval advertises the history fetch cadence, in seconds. Clients
// poll; there is no push channel.
func (mc *messageController) setPollInterval(c echo.Context) {
	seconds := int(mc.pollInterval.Seconds())
	c.Response().Header().Set("X-Poll-Interval", strconv.Itoa(seconds))
}

type GetMessagesRequest struct {
	RequirementID string `query:"requirement_id" validate:"required"`
	UserID        string `query:"user_id" validate:"required"`
}

func (mc *messageController) GetMessages(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req GetMessagesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	requirementID, err := primitive.ObjectIDFromHex(req.RequirementID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requirement ID")
	}
	otherUserID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user ID")
	}

	ctx := c.Request().Context()
	messages, err := mc.messageUsecase.History(ctx, p, requirementID, otherUserID)
	if err != nil {
		return err
	}

	mc.setPollInterval(c)
	return c.JSON(http.StatusOK, MessageListResponse{
		Success:  true,
		Messages: messages,
	})
}

type GetConversationsRequest struct {
	RequirementID string `query:"requirement_id" validate:"required"`
}

func (mc *messageController) GetConversations(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req GetConversationsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	requirementID, err := primitive.ObjectIDFromHex(req.RequirementID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requirement ID")
	}

	ctx := c.Request().Context()
	partners, messages, err := mc.messageUsecase.Conversations(ctx, p, requirementID)
	if err != nil {
		return err
	}

	mc.setPollInterval(c)
	return c.JSON(http.StatusOK, ConversationsResponse{
		Success:  true,
		Partners: partners,
		Messages: messages,
	})
}

type SendMessageRequest struct {
	RequirementID string `json:"requirement_id" validate:"required"`
	ReceiverID    string `json:"receiver_id" validate:"required"`
	Message       string `json:"message" validate:"required"`
}

func (mc *messageController) SendMessage(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	requirementID, err := primitive.ObjectIDFromHex(req.RequirementID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requirement ID")
	}
	receiverID, err := primitive.ObjectIDFromHex(req.ReceiverID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid receiver ID")
	}

	ctx := c.Request().Context()
	message, err := mc.messageUsecase.Send(ctx, p, usecase.SendMessageParams{
		RequirementID: requirementID,
		ReceiverID:    receiverID,
		Body:          req.Message,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: message,
	})
}
