package models

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrBlankMessage    = errors.New("message body is required")
	ErrSelfMessage     = errors.New("sender and receiver must differ")
	ErrVendorRequired  = errors.New("vendor access required")
	ErrInvalidCategory = errors.New("invalid requirement category")
)
