package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Principal is the authenticated identity making a request. It is built by
// the auth middleware from token claims and passed explicitly into every
// usecase call; handlers never reach into a raw request object for it.
type Principal struct {
	UserID      primitive.ObjectID
	AccountType AccountType
}

func (p Principal) IsVendor() bool {
	return p.AccountType == AccountTypeVendor
}
