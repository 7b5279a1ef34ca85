package repositories

import (
	"context"
	"time"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// IntegrationReader defines read operations for QuickBooks integrations
type IntegrationReader interface {
	// FindIntegrationByClientID retrieves a client's QuickBooks connection.
	FindIntegrationByClientID(ctx context.Context, clientID string) (*domain.Integration, error)
}

// IntegrationWriter defines write operations for QuickBooks integrations
type IntegrationWriter interface {
	// SaveIntegration persists a new integration (one per client).
	SaveIntegration(ctx context.Context, integration domain.Integration) error

	// UpdateIntegrationTokens stores a refreshed token pair.
	UpdateIntegrationTokens(ctx context.Context, integrationID string, accessToken, refreshToken string, expiresAt time.Time, now time.Time) error

	// DeleteIntegrationByClientID removes a client's integration, forcing
	// re-authorization on the next connect.
	DeleteIntegrationByClientID(ctx context.Context, clientID string) error
}

// IntegrationRepositoryFacade combines all integration repository interfaces
type IntegrationRepositoryFacade interface {
	IntegrationReader
	IntegrationWriter
}
