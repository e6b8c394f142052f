package domain

import "errors"

var (
	// Transaction errors
	ErrInvalidAmount   = errors.New("amount must be positive")
	ErrInvalidType     = errors.New("transaction type must be income or expense")
	ErrIndexOutOfRange = errors.New("transaction index out of range")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
)
