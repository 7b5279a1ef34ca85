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

type PgxTrialBalanceRepository struct {
	pool *pgxpool.Pool
}

// NewTrialBalanceRepository creates a new repository for trial balance data.
func NewTrialBalanceRepository(pool *pgxpool.Pool) portsrepo.TrialBalanceRepositoryFacade {
	return &PgxTrialBalanceRepository{pool: pool}
}

var _ portsrepo.TrialBalanceRepositoryFacade = (*PgxTrialBalanceRepository)(nil)

func toDomainTrialBalance(m models.TrialBalance) domain.TrialBalance {
	return domain.TrialBalance{
		TrialBalanceID: m.TrialBalanceID,
		ClientID:       m.ClientID,
		StartDate:      m.StartDate,
		EndDate:        m.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const trialBalanceColumns = `trial_balance_id, client_id, start_date, end_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTrialBalance(row pgx.Row) (models.TrialBalance, error) {
	var m models.TrialBalance
	err := row.Scan(
		&m.TrialBalanceID,
		&m.ClientID,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTrialBalanceRepository) FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error) {
	query := `SELECT ` + trialBalanceColumns + ` FROM trial_balances WHERE trial_balance_id = $1;`

	m, err := scanTrialBalance(r.pool.QueryRow(ctx, query, trialBalanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trial balance %s: %w", trialBalanceID, err)
	}
	tb := toDomainTrialBalance(m)
	return &tb, nil
}

// FindLatestTrialBalance returns the most recently created trial balance for
// a client, which the application treats as the current period.
func (r *PgxTrialBalanceRepository) FindLatestTrialBalance(ctx context.Context, clientID string) (*domain.TrialBalance, error) {
	query := `
		SELECT ` + trialBalanceColumns + `
		FROM trial_balances
		WHERE client_id = $1
		ORDER BY created_at DESC
		LIMIT 1;
	`
	m, err := scanTrialBalance(r.pool.QueryRow(ctx, query, clientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find latest trial balance for client %s: %w", clientID, err)
	}
	tb := toDomainTrialBalance(m)
	return &tb, nil
}

func (r *PgxTrialBalanceRepository) SaveTrialBalance(ctx context.Context, trialBalance domain.TrialBalance) error {
	query := `
		INSERT INTO trial_balances (` + trialBalanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		trialBalance.TrialBalanceID,
		trialBalance.ClientID,
		trialBalance.StartDate,
		trialBalance.EndDate,
		trialBalance.CreatedAt,
		trialBalance.CreatedBy,
		trialBalance.LastUpdatedAt,
		trialBalance.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save trial balance %s: %w", trialBalance.TrialBalanceID, err)
	}
	return nil
}
