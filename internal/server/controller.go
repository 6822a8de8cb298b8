package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderhub/marketplace-chat/internal/models"
	pkgmdw "github.com/wanderhub/marketplace-chat/internal/server/middleware"
)

type Controller interface {
	Health(c echo.Context) error
}

type controller struct{}

func NewController() Controller {
	return &controller{}
}

func (h *controller) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "marketplace-chat",
	})
}

// principal returns the authenticated identity or a 401 when the auth
// middleware did not run for this route.
func principal(c echo.Context) (models.Principal, error) {
	p, ok := pkgmdw.GetPrincipal(c)
	if !ok {
		return models.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	return p, nil
}
