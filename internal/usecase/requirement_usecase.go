package usecase

import (
	"context"
	"fmt"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/kafka"
	"github.com/wanderhub/marketplace-chat/internal/matching"
	"github.com/wanderhub/marketplace-chat/internal/models"
	"github.com/wanderhub/marketplace-chat/internal/repo/mongodb"
	"github.com/wanderhub/marketplace-chat/pkg/util"
)

type CreateRequirementParams struct {
	Title       string
	Description string
	Categories  []models.Category
}

type RequirementUsecase interface {
	Create(ctx context.Context, principal models.Principal, params CreateRequirementParams) (*models.Requirement, error)
	// Get is the one unauthenticated read; not-found is distinct from
	// storage failure.
	Get(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error)
	// Close flips the requirement to closed, scoped to the owner. A
	// non-owner call returns (nil, nil): callers report success with no
	// updated document, matching the current API contract.
	Close(ctx context.Context, principal models.Principal, id primitive.ObjectID) (*models.Requirement, error)
	ListOwn(ctx context.Context, principal models.Principal) ([]*models.Requirement, error)
	// ListForVendor resolves the vendor's offerings to requirement
	// categories and returns matching requirements, newest first.
	ListForVendor(ctx context.Context, principal models.Principal) ([]*models.Requirement, error)
}

type requirementUsecase struct {
	requirementRepo mongodb.RequirementRepository
	userRepo        mongodb.UserRepository
	publisher       kafka.Publisher
}

func NewRequirementUsecase(
	requirementRepo mongodb.RequirementRepository,
	userRepo mongodb.UserRepository,
	publisher kafka.Publisher,
) RequirementUsecase {
	return &requirementUsecase{
		requirementRepo: requirementRepo,
		userRepo:        userRepo,
		publisher:       publisher,
	}
}

func (uc *requirementUsecase) Create(ctx context.Context, principal models.Principal, params CreateRequirementParams) (*models.Requirement, error) {
	if len(params.Categories) == 0 {
		return nil, models.ErrInvalidCategory
	}
	for _, category := range params.Categories {
		if !category.Valid() {
			return nil, fmt.Errorf("%w: %q", models.ErrInvalidCategory, category)
		}
	}

	requirement := &models.Requirement{
		UserID:      principal.UserID,
		Title:       params.Title,
		Description: params.Description,
		Categories:  lo.Uniq(params.Categories),
	}
	if err := uc.requirementRepo.Create(ctx, requirement); err != nil {
		return nil, fmt.Errorf("create requirement: %w", err)
	}

	if err := uc.resolveOwners(ctx, []*models.Requirement{requirement}); err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}

	log.Infow(ctx, "requirement created", "requirement_id", requirement.ID.Hex(), "categories", requirement.Categories)
	return requirement, nil
}

func (uc *requirementUsecase) Get(ctx context.Context, id primitive.ObjectID) (*models.Requirement, error) {
	requirement, err := uc.requirementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.resolveOwners(ctx, []*models.Requirement{requirement}); err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	return requirement, nil
}

func (uc *requirementUsecase) Close(ctx context.Context, principal models.Principal, id primitive.ObjectID) (*models.Requirement, error) {
	updated, err := uc.requirementRepo.CloseOwned(ctx, id, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("close requirement: %w", err)
	}
	if updated == nil {
		// Not this user's requirement (or no such document). The update
		// matched nothing and the endpoint still reports success.
		log.Infow(ctx, "close matched no requirement", "requirement_id", id.Hex(), "user_id", principal.UserID.Hex())
		return nil, nil
	}

	go func() {
		ctx, cancel := util.NewTimeoutContext(ctx, publishTimeout)
		defer cancel()
		event := kafka.NewRequirementClosedEvent(updated.ID, principal.UserID, time.Now())
		if err := uc.publisher.Publish(ctx, event); err != nil {
			log.Errorw(ctx, "failed to publish requirement event", "error", err, "requirement_id", updated.ID.Hex())
		}
	}()

	return updated, nil
}

func (uc *requirementUsecase) ListOwn(ctx context.Context, principal models.Principal) ([]*models.Requirement, error) {
	requirements, err := uc.requirementRepo.ListByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}

	if err := uc.resolveOwners(ctx, requirements); err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	return requirements, nil
}

func (uc *requirementUsecase) ListForVendor(ctx context.Context, principal models.Principal) ([]*models.Requirement, error) {
	vendor, err := uc.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	if vendor.AccountType != models.AccountTypeVendor {
		return nil, models.ErrVendorRequired
	}

	matched := matching.MatchCategories(vendor.VendorServices, vendor.IsSeller)
	if len(matched) == 0 {
		// no matched categories means no visible requirements; skip the query
		return []*models.Requirement{}, nil
	}

	requirements, err := uc.requirementRepo.ListByCategories(ctx, matched)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}

	if err := uc.resolveOwners(ctx, requirements); err != nil {
		return nil, fmt.Errorf("resolve owners: %w", err)
	}
	return requirements, nil
}

// resolveOwners performs the read-time join from owner refs to user
// summaries.
func (uc *requirementUsecase) resolveOwners(ctx context.Context, requirements []*models.Requirement) error {
	if len(requirements) == 0 {
		return nil
	}

	ids := lo.Uniq(util.ConvertList(requirements, func(r *models.Requirement) primitive.ObjectID {
		return r.UserID
	}))
	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for _, user := range users {
		byID[user.ID] = user.Summary()
	}
	for _, requirement := range requirements {
		if summary, ok := byID[requirement.UserID]; ok {
			requirement.Owner = util.Ptr(summary)
		}
	}
	return nil
}
