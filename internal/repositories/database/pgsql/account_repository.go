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

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		TrialBalanceID: m.TrialBalanceID,
		TaxCategoryID:  m.TaxCategoryID,
		Code:           m.Code,
		Name:           m.Name,
		Debit:          m.Debit,
		Credit:         m.Credit,
		AdjustedDebit:  m.AdjustedDebit,
		AdjustedCredit: m.AdjustedCredit,
		Order:          m.Order,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `account_id, trial_balance_id, tax_category_id, code, name, debit, credit, adjusted_debit, adjusted_credit, sort_order, created_at, created_by, last_updated_at, last_updated_by`

const insertAccountQuery = `
	INSERT INTO accounts (` + accountColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.TrialBalanceID,
		&m.TaxCategoryID,
		&m.Code,
		&m.Name,
		&m.Debit,
		&m.Credit,
		&m.AdjustedDebit,
		&m.AdjustedCredit,
		&m.Order,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func accountInsertArgs(a domain.Account) []any {
	return []any{
		a.AccountID,
		a.TrialBalanceID,
		a.TaxCategoryID,
		a.Code,
		a.Name,
		a.Debit,
		a.Credit,
		a.AdjustedDebit,
		a.AdjustedCredit,
		a.Order,
		a.CreatedAt,
		a.CreatedBy,
		a.LastUpdatedAt,
		a.LastUpdatedBy,
	}
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, trialBalanceID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE trial_balance_id = $1 AND code = $2;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, trialBalanceID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// ListAccountsByTrialBalance returns the accounts sorted the way the trial
// balance view renders them: grouped by category, then by fractional sort key.
func (r *PgxAccountRepository) ListAccountsByTrialBalance(ctx context.Context, trialBalanceID string) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE trial_balance_id = $1
		ORDER BY tax_category_id, sort_order;
	`
	rows, err := r.pool.Query(ctx, query, trialBalanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts for trial balance %s: %w", trialBalanceID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccount(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	accounts := make([]domain.Account, len(ms))
	for i, m := range ms {
		accounts[i] = toDomainAccount(m)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	_, err := r.pool.Exec(ctx, insertAccountQuery, accountInsertArgs(account)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", account.AccountID, err)
	}
	return nil
}

// SaveAccounts persists a batch of accounts inside one transaction, so an
// interrupted sync or import never leaves a partially written batch.
func (r *PgxAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	if len(accounts) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	batch := &pgx.Batch{}
	for _, account := range accounts {
		batch.Queue(insertAccountQuery, accountInsertArgs(account)...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: duplicate account code in batch", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to execute account batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit account batch: %w", err)
	}
	return nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET tax_category_id = $2, name = $3, debit = $4, credit = $5,
			adjusted_debit = $6, adjusted_credit = $7, sort_order = $8,
			last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.TaxCategoryID,
		account.Name,
		account.Debit,
		account.Credit,
		account.AdjustedDebit,
		account.AdjustedCredit,
		account.Order,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
