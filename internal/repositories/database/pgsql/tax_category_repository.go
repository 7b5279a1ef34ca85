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

type PgxTaxCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewTaxCategoryRepository creates a new repository for tax category data.
func NewTaxCategoryRepository(pool *pgxpool.Pool) portsrepo.TaxCategoryRepositoryFacade {
	return &PgxTaxCategoryRepository{pool: pool}
}

var _ portsrepo.TaxCategoryRepositoryFacade = (*PgxTaxCategoryRepository)(nil)

func toDomainTaxCategory(m models.TaxCategory) domain.TaxCategory {
	return domain.TaxCategory{
		TaxCategoryID: m.TaxCategoryID,
		ClientID:      m.ClientID,
		Name:          m.Name,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const taxCategoryColumns = `tax_category_id, client_id, name, created_at, created_by, last_updated_at, last_updated_by`

func scanTaxCategory(row pgx.Row) (models.TaxCategory, error) {
	var m models.TaxCategory
	err := row.Scan(
		&m.TaxCategoryID,
		&m.ClientID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTaxCategoryRepository) FindCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error) {
	query := `SELECT ` + taxCategoryColumns + ` FROM tax_categories WHERE tax_category_id = $1;`

	m, err := scanTaxCategory(r.pool.QueryRow(ctx, query, taxCategoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax category %s: %w", taxCategoryID, err)
	}
	category := toDomainTaxCategory(m)
	return &category, nil
}

func (r *PgxTaxCategoryRepository) ListCategoriesByClient(ctx context.Context, clientID string) ([]domain.TaxCategory, error) {
	query := `SELECT ` + taxCategoryColumns + ` FROM tax_categories WHERE client_id = $1 ORDER BY created_at;`

	rows, err := r.pool.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tax categories for client %s: %w", clientID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.TaxCategory, error) {
		return scanTaxCategory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan tax categories: %w", err)
	}

	categories := make([]domain.TaxCategory, len(ms))
	for i, m := range ms {
		categories[i] = toDomainTaxCategory(m)
	}
	return categories, nil
}

func (r *PgxTaxCategoryRepository) CountAccountsByCategory(ctx context.Context, taxCategoryID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE tax_category_id = $1;`, taxCategoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts for tax category %s: %w", taxCategoryID, err)
	}
	return count, nil
}

func (r *PgxTaxCategoryRepository) SaveCategory(ctx context.Context, category domain.TaxCategory) error {
	query := `
		INSERT INTO tax_categories (` + taxCategoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		category.TaxCategoryID,
		category.ClientID,
		category.Name,
		category.CreatedAt,
		category.CreatedBy,
		category.LastUpdatedAt,
		category.LastUpdatedBy,
	)
	if err != nil {
		// (client_id, lower(name)) carries a unique index.
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax category %q", apperrors.ErrDuplicate, category.Name)
		}
		return fmt.Errorf("failed to save tax category %s: %w", category.TaxCategoryID, err)
	}
	return nil
}

func (r *PgxTaxCategoryRepository) DeleteCategory(ctx context.Context, taxCategoryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tax_categories WHERE tax_category_id = $1;`, taxCategoryID)
	if err != nil {
		return fmt.Errorf("failed to delete tax category %s: %w", taxCategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
