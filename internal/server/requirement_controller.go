package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
	"github.com/wanderhub/marketplace-chat/internal/usecase"
)

type RequirementController interface {
	CreateRequirement(c echo.Context) error
	GetRequirement(c echo.Context) error
	CloseRequirement(c echo.Context) error
	GetOwnRequirements(c echo.Context) error
	GetVendorRequirements(c echo.Context) error
}

type requirementController struct {
	requirementUsecase usecase.RequirementUsecase
}

func NewRequirementController(requirementUsecase usecase.RequirementUsecase) RequirementController {
	return &requirementController{
		requirementUsecase: requirementUsecase,
	}
}

type CreateRequirementRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Categories  []string `json:"categories" validate:"required,min=1"`
}

func (rc *requirementController) CreateRequirement(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req CreateRequirementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	categories := make([]models.Category, 0, len(req.Categories))
	for _, raw := range req.Categories {
		categories = append(categories, models.Category(raw))
	}

	ctx := c.Request().Context()
	requirement, err := rc.requirementUsecase.Create(ctx, p, usecase.CreateRequirementParams{
		Title:       req.Title,
		Description: req.Description,
		Categories:  categories,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, RequirementResponse{
		Success:     true,
		Requirement: requirement,
	})
}

// GetRequirement is the one unauthenticated route besides health and
// metrics: requirement pages are publicly viewable.
func (rc *requirementController) GetRequirement(c echo.Context) error {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requirement ID")
	}

	ctx := c.Request().Context()
	requirement, err := rc.requirementUsecase.Get(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Requirement not found")
		}
		return err
	}

	return c.JSON(http.StatusOK, RequirementResponse{
		Success:     true,
		Requirement: requirement,
	})
}

func (rc *requirementController) CloseRequirement(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid requirement ID")
	}

	ctx := c.Request().Context()
	updated, err := rc.requirementUsecase.Close(ctx, p, id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CloseRequirementResponse{
		Success: true,
		Updated: updated,
	})
}

func (rc *requirementController) GetOwnRequirements(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	requirements, err := rc.requirementUsecase.ListOwn(ctx, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RequirementListResponse{
		Success:      true,
		Requirements: requirements,
	})
}

func (rc *requirementController) GetVendorRequirements(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	requirements, err := rc.requirementUsecase.ListForVendor(ctx, p)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, RequirementListResponse{
		Success:      true,
		Requirements: requirements,
	})
}
