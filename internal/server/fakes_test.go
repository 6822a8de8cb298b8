package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/config"
	"github.com/wanderhub/marketplace-chat/internal/models"
	pkgmdw "github.com/wanderhub/marketplace-chat/internal/server/middleware"
	"github.com/wanderhub/marketplace-chat/internal/usecase"
)

type fakeMessageUsecase struct {
	sendFunc          func(ctx context.Context, p models.Principal, params usecase.SendMessageParams) (*models.Message, error)
	historyFunc       func(ctx context.Context, p models.Principal, requirementID, otherUserID primitive.ObjectID) ([]*models.Message, error)
	conversationsFunc func(ctx context.Context, p models.Principal, requirementID primitive.ObjectID) ([]models.UserSummary, []*models.Message, error)
}

func (f *fakeMessageUsecase) Send(ctx context.Context, p models.Principal, params usecase.SendMessageParams) (*models.Message, error) {
	return f.sendFunc(ctx, p, params)
}

func (f *fakeMessageUsecase) History(ctx context.Context, p models.Principal, requirementID, otherUserID primitive.ObjectID) ([]*models.Message, error) {
	return f.historyFunc(ctx, p, requirementID, otherUserID)
}

func (f *fakeMessageUsecase) Conversations(ctx context.Context, p models.Principal, requirementID primitive.ObjectID) ([]models.UserSummary, []*models.Message, error) {
	return f.conversationsFunc(ctx, p, requirementID)
}

type fakeRequirementUsecase struct {
	createFunc        func(ctx context.Context, p models.Principal, params usecase.CreateRequirementParams) (*models.Requirement, error)
	getFunc           func(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error)
	closeFunc         func(ctx context.Context, p models.Principal, id primitive.ObjectID) (*models.Requirement, error)
	listOwnFunc       func(ctx context.Context, p models.Principal) ([]*models.Requirement, error)
	listForVendorFunc func(ctx context.Context, p models.Principal) ([]*models.Requirement, error)
}

func (f *fakeRequirementUsecase) Create(ctx context.Context, p models.Principal, params usecase.CreateRequirementParams) (*models.Requirement, error) {
	return f.createFunc(ctx, p, params)
}

func (f *fakeRequirementUsecase) Get(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error) {
	return f.getFunc(ctx, id)
}

func (f *fakeRequirementUsecase) Close(ctx context.Context, p models.Principal, id primitive.ObjectID) (*models.Requirement, error) {
	return f.closeFunc(ctx, p, id)
}

func (f *fakeRequirementUsecase) ListOwn(ctx context.Context, p models.Principal) ([]*models.Requirement, error) {
	return f.listOwnFunc(ctx, p)
}

func (f *fakeRequirementUsecase) ListForVendor(ctx context.Context, p models.Principal) ([]*models.Requirement, error) {
	return f.listForVendorFunc(ctx, p)
}

func testConfig() *config.Config {
	return &config.Config{
		Chat: config.ChatConfig{PollInterval: 3 * time.Second},
	}
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = errorHandler()
	return e
}

type testRequest struct {
	method    string
	target    string
	body      string
	paramID   string
	principal *models.Principal
}

// do runs a handler against a synthetic request and renders errors through
// the error handler, same as a live server would.
func do(e *echo.Echo, handler echo.HandlerFunc, tr testRequest) *httptest.ResponseRecorder {
	req := httptest.NewRequest(tr.method, tr.target, strings.NewReader(tr.body))
	if tr.body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if tr.paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(tr.paramID)
	}
	if tr.principal != nil {
		pkgmdw.SetPrincipal(c, *tr.principal)
	}

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}
