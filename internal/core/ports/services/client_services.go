package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// ClientSvcFacade defines operations on clients in the intake pipeline.
type ClientSvcFacade interface {
	// CreateClient persists a new client from intake.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, userID string) (*domain.Client, error)

	// GetClientByID retrieves a specific client.
	GetClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// UpdateClient applies field edits and status transitions (last write wins).
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest, userID string) (*domain.Client, error)

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, clientID string) error
}

// StatusSvcFacade defines operations on the mutable pipeline status set.
type StatusSvcFacade interface {
	// CreateStatus adds a pipeline column.
	CreateStatus(ctx context.Context, req dto.CreateStatusRequest, userID string) (*domain.Status, error)

	// ListStatuses retrieves all pipeline columns.
	ListStatuses(ctx context.Context) ([]domain.Status, error)

	// UpdateStatus renames a pipeline column.
	UpdateStatus(ctx context.Context, statusID string, req dto.UpdateStatusRequest, userID string) (*domain.Status, error)

	// DeleteStatus removes a pipeline column; refused while clients sit in it.
	DeleteStatus(ctx context.Context, statusID string) error
}
