package service

import "errors"

var (
	// ErrEmptyName is returned when an item name is empty or whitespace.
	ErrEmptyName = errors.New("item name must not be empty")

	// ErrNameTooLong is returned when an item name exceeds the limit.
	ErrNameTooLong = errors.New("item name must be at most 100 characters")

	// ErrNoOpenConflict is returned when resolving a conflict that is not
	// open (already resolved, cancelled, or never raised).
	ErrNoOpenConflict = errors.New("no open conflict for collection")
)
