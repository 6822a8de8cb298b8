package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category string

const (
	CategoryStays         Category = "stays"
	CategoryAdventure     Category = "adventure"
	CategoryTours         Category = "tours"
	CategoryVehicleRental Category = "vehicle-rental"
	CategoryMarketplace   Category = "market-place"

	// CategoryTourLegacy is an alias tag still present on historic
	// requirement documents. The matcher emits it for query compatibility
	// but it is not accepted when creating new requirements.
	CategoryTourLegacy Category = "tour"
)

// Categories lists the canonical tags a new requirement may carry.
var Categories = []Category{
	CategoryStays,
	CategoryAdventure,
	CategoryTours,
	CategoryVehicleRental,
	CategoryMarketplace,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type RequirementStatus string

const (
	RequirementStatusOpen   RequirementStatus = "open"
	RequirementStatusClosed RequirementStatus = "closed"
)

// Requirement is a customer-posted request for services. It is created by
// its owner, closed only by its owner and never deleted.
type Requirement struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"user" json:"user_id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Categories  []Category         `bson:"categories" json:"categories" validate:"required,min=1"`
	Status      RequirementStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`

	// Owner is resolved from UserID at read time, never persisted.
	Owner *UserSummary `bson:"-" json:"owner,omitempty"`
}
