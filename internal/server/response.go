package server

import "github.com/wanderhub/marketplace-chat/internal/models"

// Every endpoint responds with a success envelope; errors go through the
// HTTP error handler and render ErrorResponse instead.
type (
	ErrorResponse struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}

	HealthResponse struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}

	RequirementResponse struct {
		Success     bool                `json:"success"`
		Requirement *models.Requirement `json:"requirement"`
	}

	RequirementListResponse struct {
		Success      bool                  `json:"success"`
		Requirements []*models.Requirement `json:"requirements"`
	}

	CloseRequirementResponse struct {
		Success bool `json:"success"`
		// Updated is null when nothing matched, which also covers a close
		// attempted by a non-owner.
		Updated *models.Requirement `json:"updated"`
	}

	MessageResponse struct {
		Success bool            `json:"success"`
		Message *models.Message `json:"message"`
	}

	MessageListResponse struct {
		Success  bool              `json:"success"`
		Messages []*models.Message `json:"messages"`
	}

	ConversationsResponse struct {
		Success  bool                 `json:"success"`
		Partners []models.UserSummary `json:"partners"`
		Messages []*models.Message    `json:"messages"`
	}
)
