package domain

import "errors"

var (
	// Registration errors
	ErrDuplicateAccount = errors.New("account already registered")
	ErrDuplicateGroup   = errors.New("group already attached")
	ErrAccountNotFound  = errors.New("account not found")

	// Posting errors
	ErrUnknownAccount = errors.New("unknown account in entry")
)
