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

type PgxStatusRepository struct {
	pool *pgxpool.Pool
}

// NewStatusRepository creates a new repository for pipeline status data.
func NewStatusRepository(pool *pgxpool.Pool) portsrepo.StatusRepositoryFacade {
	return &PgxStatusRepository{pool: pool}
}

var _ portsrepo.StatusRepositoryFacade = (*PgxStatusRepository)(nil)

func toDomainStatus(m models.Status) domain.Status {
	return domain.Status{
		StatusID: m.StatusID,
		Title:    m.Title,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const statusColumns = `status_id, title, created_at, created_by, last_updated_at, last_updated_by`

func scanStatus(row pgx.Row) (models.Status, error) {
	var m models.Status
	err := row.Scan(
		&m.StatusID,
		&m.Title,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxStatusRepository) FindStatusByID(ctx context.Context, statusID string) (*domain.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses WHERE status_id = $1;`

	m, err := scanStatus(r.pool.QueryRow(ctx, query, statusID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find status %s: %w", statusID, err)
	}
	status := toDomainStatus(m)
	return &status, nil
}

func (r *PgxStatusRepository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	query := `SELECT ` + statusColumns + ` FROM statuses ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Status, error) {
		return scanStatus(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan statuses: %w", err)
	}

	statuses := make([]domain.Status, len(ms))
	for i, m := range ms {
		statuses[i] = toDomainStatus(m)
	}
	return statuses, nil
}

func (r *PgxStatusRepository) SaveStatus(ctx context.Context, status domain.Status) error {
	query := `
		INSERT INTO statuses (` + statusColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.pool.Exec(ctx, query,
		status.StatusID,
		status.Title,
		status.CreatedAt,
		status.CreatedBy,
		status.LastUpdatedAt,
		status.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save status %s: %w", status.StatusID, err)
	}
	return nil
}

func (r *PgxStatusRepository) UpdateStatus(ctx context.Context, status domain.Status) error {
	query := `
		UPDATE statuses
		SET title = $2, last_updated_at = $3, last_updated_by = $4
		WHERE status_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		status.StatusID,
		status.Title,
		status.LastUpdatedAt,
		status.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update status %s: %w", status.StatusID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStatusRepository) DeleteStatus(ctx context.Context, statusID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM statuses WHERE status_id = $1;`, statusID)
	if err != nil {
		return fmt.Errorf("failed to delete status %s: %w", statusID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
