package server

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/models"
	"github.com/wanderhub/marketplace-chat/internal/usecase"
)

func TestCreateRequirement(t *testing.T) {
	e := newTestEcho()
	owner := models.Principal{UserID: primitive.NewObjectID(), AccountType: models.AccountTypeCustomer}

	var gotParams usecase.CreateRequirementParams
	uc := &fakeRequirementUsecase{
		createFunc: func(ctx context.Context, p models.Principal, params usecase.CreateRequirementParams) (*models.Requirement, error) {
			gotParams = params
			return &models.Requirement{
				ID:         primitive.NewObjectID(),
				UserID:     p.UserID,
				Title:      params.Title,
				Categories: params.Categories,
				Status:     models.RequirementStatusOpen,
				CreatedAt:  time.Now(),
			}, nil
		},
	}
	rc := NewRequirementController(uc)

	body := `{"title":"Weekend in Da Lat","description":"two nights, pet friendly","categories":["stays","tours"]}`
	rec := do(e, rc.CreateRequirement, testRequest{
		method:    http.MethodPost,
		target:    "/api/v1/requirements",
		body:      body,
		principal: &owner,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Weekend in Da Lat", gotParams.Title)
	assert.Equal(t, []models.Category{models.CategoryStays, models.CategoryTours}, gotParams.Categories)

	var resp RequirementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Requirement)
	assert.Equal(t, owner.UserID, resp.Requirement.UserID)
	assert.Equal(t, models.RequirementStatusOpen, resp.Requirement.Status)
}

func TestCreateRequirementRejectsBadRequests(t *testing.T) {
	e := newTestEcho()
	owner := models.Principal{UserID: primitive.NewObjectID()}

	uc := &fakeRequirementUsecase{
		createFunc: func(ctx context.Context, p models.Principal, params usecase.CreateRequirementParams) (*models.Requirement, error) {
			return nil, models.ErrInvalidCategory
		},
	}
	rc := NewRequirementController(uc)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing title", body: `{"categories":["stays"]}`},
		{name: "missing categories", body: `{"title":"anything"}`},
		{name: "empty categories", body: `{"title":"anything","categories":[]}`},
		{name: "unknown category rejected by usecase", body: `{"title":"anything","categories":["spaceships"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, rc.CreateRequirement, testRequest{
				method:    http.MethodPost,
				target:    "/api/v1/requirements",
				body:      tt.body,
				principal: &owner,
			})

			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
		})
	}
}

func TestGetRequirement(t *testing.T) {
	e := newTestEcho()
	id := primitive.NewObjectID()

	uc := &fakeRequirementUsecase{
		getFunc: func(ctx context.Context, gotID primitive.ObjectID) (*models.Requirement, error) {
			assert.Equal(t, id, gotID)
			return &models.Requirement{ID: gotID, Title: "City tour"}, nil
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.GetRequirement, testRequest{
		method:  http.MethodGet,
		target:  "/api/v1/requirements/" + id.Hex(),
		paramID: id.Hex(),
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RequirementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "City tour", resp.Requirement.Title)
}

func TestGetRequirementNotFound(t *testing.T) {
	e := newTestEcho()

	uc := &fakeRequirementUsecase{
		getFunc: func(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error) {
			return nil, models.ErrNotFound
		},
	}
	rc := NewRequirementController(uc)

	id := primitive.NewObjectID().Hex()
	rec := do(e, rc.GetRequirement, testRequest{
		method:  http.MethodGet,
		target:  "/api/v1/requirements/" + id,
		paramID: id,
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Requirement not found", resp.Message)
}

func TestGetRequirementInvalidID(t *testing.T) {
	e := newTestEcho()
	rc := NewRequirementController(&fakeRequirementUsecase{})

	rec := do(e, rc.GetRequirement, testRequest{
		method:  http.MethodGet,
		target:  "/api/v1/requirements/not-an-id",
		paramID: "not-an-id",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCloseRequirement(t *testing.T) {
	e := newTestEcho()
	owner := models.Principal{UserID: primitive.NewObjectID()}
	id := primitive.NewObjectID()

	uc := &fakeRequirementUsecase{
		closeFunc: func(ctx context.Context, p models.Principal, gotID primitive.ObjectID) (*models.Requirement, error) {
			assert.Equal(t, id, gotID)
			return &models.Requirement{ID: gotID, UserID: p.UserID, Status: models.RequirementStatusClosed}, nil
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.CloseRequirement, testRequest{
		method:    http.MethodPut,
		target:    "/api/v1/requirements/" + id.Hex(),
		paramID:   id.Hex(),
		principal: &owner,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CloseRequirementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Updated)
	assert.Equal(t, models.RequirementStatusClosed, resp.Updated.Status)
}

func TestCloseRequirementNotOwnerReportsNullUpdate(t *testing.T) {
	e := newTestEcho()
	stranger := models.Principal{UserID: primitive.NewObjectID()}
	id := primitive.NewObjectID()

	uc := &fakeRequirementUsecase{
		closeFunc: func(ctx context.Context, p models.Principal, gotID primitive.ObjectID) (*models.Requirement, error) {
			return nil, nil
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.CloseRequirement, testRequest{
		method:    http.MethodPut,
		target:    "/api/v1/requirements/" + id.Hex(),
		paramID:   id.Hex(),
		principal: &stranger,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CloseRequirementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Updated)
}

func TestGetOwnRequirements(t *testing.T) {
	e := newTestEcho()
	owner := models.Principal{UserID: primitive.NewObjectID()}

	uc := &fakeRequirementUsecase{
		listOwnFunc: func(ctx context.Context, p models.Principal) ([]*models.Requirement, error) {
			return []*models.Requirement{
				{UserID: p.UserID, Title: "newest"},
				{UserID: p.UserID, Title: "older"},
			}, nil
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.GetOwnRequirements, testRequest{
		method:    http.MethodGet,
		target:    "/api/v1/requirements/user",
		principal: &owner,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RequirementListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Requirements, 2)
	assert.Equal(t, "newest", resp.Requirements[0].Title)
}

func TestGetVendorRequirementsForbiddenForCustomers(t *testing.T) {
	e := newTestEcho()
	customer := models.Principal{UserID: primitive.NewObjectID(), AccountType: models.AccountTypeCustomer}

	uc := &fakeRequirementUsecase{
		listForVendorFunc: func(ctx context.Context, p models.Principal) ([]*models.Requirement, error) {
			return nil, models.ErrVendorRequired
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.GetVendorRequirements, testRequest{
		method:    http.MethodGet,
		target:    "/api/v1/requirements/vendor",
		principal: &customer,
	})

	assert.Equal(t, http.StatusForbidden, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestGetVendorRequirements(t *testing.T) {
	e := newTestEcho()
	vendor := models.Principal{UserID: primitive.NewObjectID(), AccountType: models.AccountTypeVendor}

	uc := &fakeRequirementUsecase{
		listForVendorFunc: func(ctx context.Context, p models.Principal) ([]*models.Requirement, error) {
			return []*models.Requirement{
				{Title: "City tour", Categories: []models.Category{models.CategoryTours}},
			}, nil
		},
	}
	rc := NewRequirementController(uc)

	rec := do(e, rc.GetVendorRequirements, testRequest{
		method:    http.MethodGet,
		target:    "/api/v1/requirements/vendor",
		principal: &vendor,
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RequirementListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Requirements, 1)
}
