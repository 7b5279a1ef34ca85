package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// TaxCategoryReader defines read operations for tax categories
type TaxCategoryReader interface {
	// FindCategoryByID retrieves a category by its unique identifier.
	FindCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error)

	// ListCategoriesByClient retrieves all categories of a client, by name.
	ListCategoriesByClient(ctx context.Context, clientID string) ([]domain.TaxCategory, error)

	// CountAccountsByCategory returns how many accounts reference a category.
	// Category deletion is refused while this is non-zero.
	CountAccountsByCategory(ctx context.Context, taxCategoryID string) (int, error)
}

// TaxCategoryWriter defines write operations for tax categories
type TaxCategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.TaxCategory) error

	// DeleteCategory removes a category.
	DeleteCategory(ctx context.Context, taxCategoryID string) error
}

// TaxCategoryRepositoryFacade combines all tax-category repository interfaces
type TaxCategoryRepositoryFacade interface {
	TaxCategoryReader
	TaxCategoryWriter
}
