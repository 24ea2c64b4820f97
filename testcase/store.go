package testcase

import (
	"context"
)

// Store defines the interface for test case persistence operations.
type Store interface {
	// Create inserts a new test case, assigning its ID and timestamps.
	Create(ctx context.Context, tc *TestCase) error

	// GetByID retrieves a test case by its ID.
	GetByID(ctx context.Context, id string) (*TestCase, error)

	// ExistsByTitle reports whether a test case with the exact title exists.
	ExistsByTitle(ctx context.Context, title string) (bool, error)

	// Update applies the setters to the stored test case and saves it,
	// refreshing UpdatedOn even when no setter is given.
	Update(ctx context.Context, id string, setters ...UpdateSetter) (*TestCase, error)

	// Delete removes a test case.
	Delete(ctx context.Context, id string) error

	// List retrieves a page of test cases matching the filter, newest first.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*TestCase, error)

	// Count returns the number of test cases matching the filter.
	Count(ctx context.Context, filter Filter) (int, error)
}

// UpdateSetter is a function that updates a test case field.
type UpdateSetter func(*TestCase) error
