package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// StatusReader defines read operations for pipeline statuses
type StatusReader interface {
	// FindStatusByID retrieves a specific status by its unique identifier.
	FindStatusByID(ctx context.Context, statusID string) (*domain.Status, error)

	// ListStatuses retrieves all pipeline statuses.
	ListStatuses(ctx context.Context) ([]domain.Status, error)
}

// StatusWriter defines write operations for pipeline statuses
type StatusWriter interface {
	// SaveStatus persists a new status.
	SaveStatus(ctx context.Context, status domain.Status) error

	// UpdateStatus renames an existing status.
	UpdateStatus(ctx context.Context, status domain.Status) error

	// DeleteStatus removes a status.
	DeleteStatus(ctx context.Context, statusID string) error
}

// StatusRepositoryFacade combines all status-related repository interfaces
type StatusRepositoryFacade interface {
	StatusReader
	StatusWriter
}
