package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// CategoryResolverSvc resolves external classification labels to tax
// categories, creating them when absent. Resolution is case-insensitive and
// idempotent within a batch: "Assets" and "assets" yield the same category.
type CategoryResolverSvc interface {
	// ResolveCategory returns the client's category matching name
	// (case-insensitive), creating it (original casing preserved) if absent.
	ResolveCategory(ctx context.Context, clientID string, name string, userID string) (*domain.TaxCategory, error)

	// Uncategorized resolves the fallback bucket for accounts without a
	// classification label.
	Uncategorized(ctx context.Context, clientID string, userID string) (*domain.TaxCategory, error)

	// InvalidateCache drops the in-memory category cache for a client, e.g.
	// after an out-of-band category mutation.
	InvalidateCache(clientID string)
}

// TaxCategorySvcFacade combines resolution with plain category CRUD.
type TaxCategorySvcFacade interface {
	CategoryResolverSvc

	// ListCategories retrieves all categories of a client.
	ListCategories(ctx context.Context, clientID string) ([]domain.TaxCategory, error)

	// CreateCategory adds a category, rejecting case-insensitive duplicates.
	CreateCategory(ctx context.Context, clientID string, req dto.CreateTaxCategoryRequest, userID string) (*domain.TaxCategory, error)

	// DeleteCategory removes a category; refused while accounts reference it.
	DeleteCategory(ctx context.Context, clientID string, taxCategoryID string) error
}
