package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	"github.com/taxdesk/taxdesk_app/internal/models"
)

type PgxIntegrationRepository struct {
	pool *pgxpool.Pool
}

// NewIntegrationRepository creates a new repository for QuickBooks
// integration data.
func NewIntegrationRepository(pool *pgxpool.Pool) portsrepo.IntegrationRepositoryFacade {
	return &PgxIntegrationRepository{pool: pool}
}

var _ portsrepo.IntegrationRepositoryFacade = (*PgxIntegrationRepository)(nil)

func toDomainIntegration(m models.Integration) domain.Integration {
	return domain.Integration{
		IntegrationID: m.IntegrationID,
		ClientID:      m.ClientID,
		RealmID:       m.RealmID,
		AccessToken:   m.AccessToken,
		RefreshToken:  m.RefreshToken,
		ExpiresAt:     m.ExpiresAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const integrationColumns = `integration_id, client_id, realm_id, access_token, refresh_token, expires_at, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxIntegrationRepository) FindIntegrationByClientID(ctx context.Context, clientID string) (*domain.Integration, error) {
	query := `SELECT ` + integrationColumns + ` FROM quickbooks_integrations WHERE client_id = $1;`

	var m models.Integration
	err := r.pool.QueryRow(ctx, query, clientID).Scan(
		&m.IntegrationID,
		&m.ClientID,
		&m.RealmID,
		&m.AccessToken,
		&m.RefreshToken,
		&m.ExpiresAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find integration for client %s: %w", clientID, err)
	}
	integration := toDomainIntegration(m)
	return &integration, nil
}

func (r *PgxIntegrationRepository) SaveIntegration(ctx context.Context, integration domain.Integration) error {
	query := `
		INSERT INTO quickbooks_integrations (` + integrationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		integration.IntegrationID,
		integration.ClientID,
		integration.RealmID,
		integration.AccessToken,
		integration.RefreshToken,
		integration.ExpiresAt,
		integration.CreatedAt,
		integration.CreatedBy,
		integration.LastUpdatedAt,
		integration.LastUpdatedBy,
	)
	if err != nil {
		// client_id carries a unique constraint: one integration per client.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: integration for client %s", apperrors.ErrDuplicate, integration.ClientID)
		}
		return fmt.Errorf("failed to save integration %s: %w", integration.IntegrationID, err)
	}
	return nil
}

func (r *PgxIntegrationRepository) UpdateIntegrationTokens(ctx context.Context, integrationID string, accessToken, refreshToken string, expiresAt time.Time, now time.Time) error {
	query := `
		UPDATE quickbooks_integrations
		SET access_token = $2, refresh_token = $3, expires_at = $4, last_updated_at = $5
		WHERE integration_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, integrationID, accessToken, refreshToken, expiresAt, now)
	if err != nil {
		return fmt.Errorf("failed to update tokens for integration %s: %w", integrationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxIntegrationRepository) DeleteIntegrationByClientID(ctx context.Context, clientID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM quickbooks_integrations WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete integration for client %s: %w", clientID, err)
	}
	return nil
}
