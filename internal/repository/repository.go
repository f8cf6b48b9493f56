package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/freelance-marketplace-api/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record does not exist, or when
	// an atomic counter update matched no record.
	ErrNotFound = errors.New("repository: record not found")
	// ErrInvalidID is returned when an identifier is not well-formed for the backend.
	ErrInvalidID = errors.New("repository: malformed identifier")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// IsValidID reports whether id is a well-formed task identifier
	IsValidID(id string) bool

	// Create persists a new task and assigns its ID
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// List retrieves tasks ordered by ascending deadline
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// UpdateDetails replaces the editable fields of a task in a single write
	UpdateDetails(ctx context.Context, id string, details TaskDetails) error

	// Delete removes a task and its bids, reporting whether the task existed
	Delete(ctx context.Context, id string) (bool, error)

	// DeleteAll removes every task and bid, returning the number of tasks removed
	DeleteAll(ctx context.Context) (int64, error)

	// IncrementBidsCount atomically adds delta to the task's bidsCount
	IncrementBidsCount(ctx context.Context, id string, delta int) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserEmail string
	Limit     int
}

// TaskDetails holds the owner-editable task fields
type TaskDetails struct {
	Title       string
	Category    string
	Description string
	Deadline    time.Time
	Budget      float64
}

// BidRepository defines the interface for bid data access
type BidRepository interface {
	// IsValidID reports whether id is a well-formed bid identifier
	IsValidID(id string) bool

	// Create persists a new bid and assigns its ID
	Create(ctx context.Context, bid *models.Bid) error

	// FindByID finds a bid by ID
	FindByID(ctx context.Context, id string) (*models.Bid, error)

	// ListByTask retrieves the bids of a task, most recent first
	ListByTask(ctx context.Context, taskID string) ([]models.Bid, error)

	// List retrieves every bid, most recent first
	List(ctx context.Context) ([]models.Bid, error)

	// Delete removes a bid, reporting whether a record was removed
	Delete(ctx context.Context, id string) (bool, error)
}
