// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyTitle is returned when a task title is empty after trimming.
	ErrEmptyTitle = errors.New("task title cannot be empty")

	// ErrTitleTooLong is returned when a task title exceeds the maximum length.
	ErrTitleTooLong = errors.New("task title exceeds maximum length")

	// ErrEmptyTenantID is returned when a task has no owning tenant.
	ErrEmptyTenantID = errors.New("task tenant ID cannot be empty")

	// ErrEmptyPatch is returned when a task patch supplies no fields.
	ErrEmptyPatch = errors.New("task patch must supply at least one field")

	// ErrInvalidListQuery is returned when a list query parameter is out of range
	// or not one of the accepted enum values.
	ErrInvalidListQuery = errors.New("invalid task list query")
)
