package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// taxCategoryService resolves classification labels to client-scoped tax
// categories. It owns a per-client in-memory cache keyed by lowercase name so
// that repeated resolutions within a batch (sync, spreadsheet import) hit the
// store at most once per distinct name and never create case-variant
// duplicates.
type taxCategoryService struct {
	BaseService
	categoryRepo portsrepo.TaxCategoryRepositoryFacade

	mu    sync.Mutex
	cache map[string]map[string]domain.TaxCategory // clientID -> lower(name) -> category
}

// NewTaxCategoryService creates the category service.
func NewTaxCategoryService(repo portsrepo.TaxCategoryRepositoryFacade) portssvc.TaxCategorySvcFacade {
	return &taxCategoryService{
		categoryRepo: repo,
		cache:        make(map[string]map[string]domain.TaxCategory),
	}
}

var _ portssvc.TaxCategorySvcFacade = (*taxCategoryService)(nil)

// clientCache returns the cached name map for a client, loading it from the
// repository on first use.
func (s *taxCategoryService) clientCache(ctx context.Context, clientID string) (map[string]domain.TaxCategory, error) {
	if cached, ok := s.cache[clientID]; ok {
		return cached, nil
	}

	categories, err := s.categoryRepo.ListCategoriesByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories for client %s: %w", clientID, err)
	}

	byName := make(map[string]domain.TaxCategory, len(categories))
	for _, cat := range categories {
		byName[strings.ToLower(cat.Name)] = cat
	}
	s.cache[clientID] = byName
	return byName, nil
}

func (s *taxCategoryService) ResolveCategory(ctx context.Context, clientID string, name string, userID string) (*domain.TaxCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = domain.UncategorizedName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byName, err := s.clientCache(ctx, clientID)
	if err != nil {
		return nil, err
	}

	key := strings.ToLower(name)
	if existing, ok := byName[key]; ok {
		return &existing, nil
	}

	now := time.Now()
	category := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      clientID,
		Name:          name, // display casing preserved
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// The name was created behind this cache's back (another
			// process, or directly in the store). Reload and resolve to
			// the persisted row instead of failing the caller.
			delete(s.cache, clientID)
			byName, err = s.clientCache(ctx, clientID)
			if err != nil {
				return nil, err
			}
			if existing, ok := byName[key]; ok {
				return &existing, nil
			}
			return nil, fmt.Errorf("%w: category %q vanished during resolve", apperrors.ErrNotFound, name)
		}
		return nil, err
	}
	byName[key] = category

	s.LogInfo(ctx, "Tax category created",
		slog.String("tax_category_id", category.TaxCategoryID),
		slog.String("client_id", clientID),
		slog.String("name", name))
	return &category, nil
}

func (s *taxCategoryService) Uncategorized(ctx context.Context, clientID string, userID string) (*domain.TaxCategory, error) {
	return s.ResolveCategory(ctx, clientID, domain.UncategorizedName, userID)
}

func (s *taxCategoryService) InvalidateCache(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, clientID)
}

func (s *taxCategoryService) ListCategories(ctx context.Context, clientID string) ([]domain.TaxCategory, error) {
	categories, err := s.categoryRepo.ListCategoriesByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("client_id", clientID))
		return nil, err
	}
	if categories == nil {
		return []domain.TaxCategory{}, nil
	}
	return categories, nil
}

func (s *taxCategoryService) CreateCategory(ctx context.Context, clientID string, req dto.CreateTaxCategoryRequest, userID string) (*domain.TaxCategory, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byName, err := s.clientCache(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if _, ok := byName[strings.ToLower(name)]; ok {
		return nil, fmt.Errorf("%w: category %q already exists for client", apperrors.ErrDuplicate, name)
	}

	now := time.Now()
	category := domain.TaxCategory{
		TaxCategoryID: uuid.NewString(),
		ClientID:      clientID,
		Name:          name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	byName[strings.ToLower(name)] = category
	return &category, nil
}

func (s *taxCategoryService) DeleteCategory(ctx context.Context, clientID string, taxCategoryID string) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, taxCategoryID)
	if err != nil {
		return err
	}
	if category.ClientID != clientID {
		// Obscure existence across clients.
		return apperrors.ErrNotFound
	}

	count, err := s.categoryRepo.CountAccountsByCategory(ctx, taxCategoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts for category", slog.String("tax_category_id", taxCategoryID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete category with %d accounts", apperrors.ErrConflict, count)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, taxCategoryID); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.cache, clientID)
	s.mu.Unlock()

	s.LogInfo(ctx, "Tax category deleted",
		slog.String("tax_category_id", taxCategoryID),
		slog.String("client_id", clientID))
	return nil
}
