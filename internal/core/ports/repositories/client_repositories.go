package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// ClientReader defines read operations for client data
type ClientReader interface {
	// FindClientByID retrieves a specific client by its unique identifier.
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)

	// ListClients retrieves all clients, ordered by name.
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CountClientsByStatus returns how many clients sit in a pipeline status.
	CountClientsByStatus(ctx context.Context, statusID string) (int, error)
}

// ClientWriter defines write operations for client data
type ClientWriter interface {
	// SaveClient persists a new client.
	SaveClient(ctx context.Context, client domain.Client) error

	// UpdateClient updates an existing client's details (last write wins).
	UpdateClient(ctx context.Context, client domain.Client) error

	// DeleteClient removes a client.
	DeleteClient(ctx context.Context, clientID string) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
