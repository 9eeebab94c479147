package models

import "errors"

// Custom errors
var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key violation")
	ErrAlreadySettled = errors.New("ledger entry already settled")
)
