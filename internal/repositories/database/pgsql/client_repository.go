package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	"github.com/taxdesk/taxdesk_app/internal/models"
)

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new repository for client data.
func NewClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID: m.ClientID,
		Name:     m.Name,
		Email:    m.Email,
		Phone:    m.Phone,
		TaxForm:  m.TaxForm,
		StatusID: m.StatusID,
		Assignee: m.Assignee,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanClient(row pgx.Row) (models.Client, error) {
	var m models.Client
	err := row.Scan(
		&m.ClientID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.TaxForm,
		&m.StatusID,
		&m.Assignee,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const clientColumns = `client_id, name, email, phone, tax_form, status_id, assignee, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE client_id = $1;`

	m, err := scanClient(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	client := toDomainClient(m)
	return &client, nil
}

func (r *PgxClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Client, error) {
		return scanClient(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan clients: %w", err)
	}

	clients := make([]domain.Client, len(ms))
	for i, m := range ms {
		clients[i] = toDomainClient(m)
	}
	return clients, nil
}

func (r *PgxClientRepository) CountClientsByStatus(ctx context.Context, statusID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM clients WHERE status_id = $1;`, statusID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count clients for status %s: %w", statusID, err)
	}
	return count, nil
}

func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.TaxForm,
		client.StatusID,
		client.Assignee,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: client %s", apperrors.ErrDuplicate, client.ClientID)
		}
		return fmt.Errorf("failed to save client %s: %w", client.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, tax_form = $5, status_id = $6, assignee = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE client_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Email,
		client.Phone,
		client.TaxForm,
		client.StatusID,
		client.Assignee,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update client %s: %w", client.ClientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE client_id = $1;`, clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client %s: %w", clientID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
