package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccountType string

const (
	AccountTypeCustomer AccountType = "customer"
	AccountTypeVendor   AccountType = "vendor"
)

// User is owned by the account service; this service only reads it to
// resolve identities and vendor offerings.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName       string             `bson:"fullName" json:"full_name"`
	Email          string             `bson:"email" json:"email" validate:"omitempty,email"`
	Avatar         string             `bson:"avatar" json:"avatar"`
	ContactNumber  string             `bson:"contactNumber" json:"contact_number"`
	AccountType    AccountType        `bson:"accountType" json:"account_type"`
	VendorServices []string           `bson:"vendorServices" json:"vendor_services"`
	IsSeller       bool               `bson:"isSeller" json:"is_seller"`
	CreatedAt      time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updated_at"`
}

// UserSummary is the read-time join shape attached to messages and
// requirements in place of a raw user reference.
type UserSummary struct {
	ID            primitive.ObjectID `json:"id"`
	FullName      string             `json:"full_name"`
	Avatar        string             `json:"avatar"`
	Email         string             `json:"email,omitempty"`
	ContactNumber string             `json:"contact_number,omitempty"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		FullName:      u.FullName,
		Avatar:        u.Avatar,
		Email:         u.Email,
		ContactNumber: u.ContactNumber,
	}
}
