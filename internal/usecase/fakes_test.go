package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderhub/marketplace-chat/internal/kafka"
	"github.com/wanderhub/marketplace-chat/internal/models"
)

type fakeMessageRepo struct {
	mu       sync.Mutex
	messages []*models.Message
	clock    time.Time
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	message.ID = primitive.NewObjectID()
	message.CreatedAt = r.clock
	stored := *message
	r.messages = append(r.messages, &stored)
	return nil
}

func (r *fakeMessageRepo) ListBetween(_ context.Context, requirementID, userA, userB primitive.ObjectID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.messages {
		if m.RequirementID != requirementID {
			continue
		}
		if (m.SenderID == userA && m.ReceiverID == userB) || (m.SenderID == userB && m.ReceiverID == userA) {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListForUser(_ context.Context, requirementID, userID primitive.ObjectID) ([]*models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Message
	for _, m := range r.messages {
		if m.RequirementID != requirementID {
			continue
		}
		if m.SenderID == userID || m.ReceiverID == userID {
			copied := *m
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) EnsureIndexes(context.Context) error { return nil }

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	byID := make(map[primitive.ObjectID]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return &fakeUserRepo{users: byID}
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			out = append(out, user)
		}
	}
	return out, nil
}

type fakeRequirementRepo struct {
	mu           sync.Mutex
	requirements []*models.Requirement
	listCalls    int
	clock        time.Time
}

func newFakeRequirementRepo(requirements ...*models.Requirement) *fakeRequirementRepo {
	return &fakeRequirementRepo{
		requirements: requirements,
		clock:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRequirementRepo) Create(_ context.Context, requirement *models.Requirement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clock = r.clock.Add(time.Second)
	requirement.ID = primitive.NewObjectID()
	requirement.Status = models.RequirementStatusOpen
	requirement.CreatedAt = r.clock
	requirement.UpdatedAt = r.clock
	stored := *requirement
	r.requirements = append(r.requirements, &stored)
	return nil
}

func (r *fakeRequirementRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requirements {
		if req.ID == id {
			copied := *req
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeRequirementRepo) ListByOwner(_ context.Context, ownerID primitive.ObjectID) ([]*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Requirement
	for _, req := range r.requirements {
		if req.UserID == ownerID {
			copied := *req
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeRequirementRepo) ListByCategories(_ context.Context, categories []models.Category) ([]*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	wanted := make(map[models.Category]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	var out []*models.Requirement
	for _, req := range r.requirements {
		for _, c := range req.Categories {
			if _, ok := wanted[c]; ok {
				copied := *req
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeRequirementRepo) CloseOwned(_ context.Context, id, ownerID primitive.ObjectID) (*models.Requirement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requirements {
		if req.ID == id && req.UserID == ownerID {
			req.Status = models.RequirementStatusClosed
			req.UpdatedAt = req.UpdatedAt.Add(time.Second)
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeRequirementRepo) EnsureIndexes(context.Context) error { return nil }

type fakePublisher struct {
	events chan kafka.Event
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{events: make(chan kafka.Event, 16)}
}

func (p *fakePublisher) Publish(_ context.Context, event kafka.Event) error {
	p.events <- event
	return nil
}
