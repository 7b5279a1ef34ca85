package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/ledgerimport"
	"github.com/taxdesk/taxdesk_app/internal/utils/accounting"
	"github.com/taxdesk/taxdesk_app/internal/utils/ordering"
)

// trialBalanceService implements the TrialBalanceSvcFacade interface
type trialBalanceService struct {
	BaseService
	trialBalanceRepo portsrepo.TrialBalanceRepositoryFacade
	accountRepo      portsrepo.AccountRepositoryFacade
	transactionRepo  portsrepo.TransactionReader
	categories       portssvc.TaxCategorySvcFacade
}

// NewTrialBalanceService creates a new trial balance service.
func NewTrialBalanceService(
	trialBalanceRepo portsrepo.TrialBalanceRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionReader,
	categories portssvc.TaxCategorySvcFacade,
) portssvc.TrialBalanceSvcFacade {
	return &trialBalanceService{
		trialBalanceRepo: trialBalanceRepo,
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		categories:       categories,
	}
}

var _ portssvc.TrialBalanceSvcFacade = (*trialBalanceService)(nil)

// GetOrCreateCurrent returns the client's latest trial balance, lazily
// creating one spanning the current calendar year on first access.
func (s *trialBalanceService) GetOrCreateCurrent(ctx context.Context, clientID string, userID string) (*domain.TrialBalance, error) {
	tb, err := s.trialBalanceRepo.FindLatestTrialBalance(ctx, clientID)
	if err == nil {
		return tb, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find latest trial balance", slog.String("client_id", clientID))
		return nil, err
	}

	now := time.Now()
	created := domain.TrialBalance{
		TrialBalanceID: uuid.NewString(),
		ClientID:       clientID,
		StartDate:      time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.trialBalanceRepo.SaveTrialBalance(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to create trial balance", slog.String("client_id", clientID))
		return nil, err
	}

	s.LogInfo(ctx, "Trial balance created",
		slog.String("trial_balance_id", created.TrialBalanceID),
		slog.String("client_id", clientID))
	return &created, nil
}

// GetCurrentView assembles the full trial balance response: every account
// with its transaction log, the client's categories, and the advisory
// balanced flag.
func (s *trialBalanceService) GetCurrentView(ctx context.Context, clientID string, userID string) (*dto.TrialBalanceResponse, error) {
	tb, err := s.GetOrCreateCurrent(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccountsByTrialBalance(ctx, tb.TrialBalanceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for view", slog.String("trial_balance_id", tb.TrialBalanceID))
		return nil, err
	}

	accountViews := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		view := dto.ToAccountResponse(&accounts[i])
		txns, err := s.transactionRepo.ListTransactionsByAccount(ctx, accounts[i].AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to list account transactions", slog.String("account_id", accounts[i].AccountID))
			return nil, err
		}
		view.Transactions = dto.ToListTransactionResponse(txns)
		accountViews = append(accountViews, view)
	}

	categories, err := s.categories.ListCategories(ctx, clientID)
	if err != nil {
		return nil, err
	}

	res := dto.NewTrialBalanceResponse(tb, accountViews, categories, accounting.IsBalanced(accounts))
	return &res, nil
}

// ImportAccounts merges parsed spreadsheet rows into the client's current
// trial balance. Rows whose name matches an existing account
// (case-insensitive) are skipped rather than overwritten; uploads are
// additive. All new rows land in the Uncategorized bucket, appended after the
// bucket's existing accounts in file order.
func (s *trialBalanceService) ImportAccounts(ctx context.Context, clientID string, parsed []ledgerimport.ParsedAccount, userID string) (*dto.ImportResponse, error) {
	tb, err := s.GetOrCreateCurrent(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.accountRepo.ListAccountsByTrialBalance(ctx, tb.TrialBalanceID)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[strings.ToLower(a.Name)] = true
	}

	uncategorized, err := s.categories.Uncategorized(ctx, clientID, userID)
	if err != nil {
		return nil, err
	}
	lastOrder := maxOrderInCategory(existing, uncategorized.TaxCategoryID)

	now := time.Now()
	created := make([]domain.Account, 0, len(parsed))
	skipped := 0
	for _, row := range parsed {
		key := strings.ToLower(row.Name)
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true

		account := domain.Account{
			AccountID:      uuid.NewString(),
			TrialBalanceID: tb.TrialBalanceID,
			TaxCategoryID:  uncategorized.TaxCategoryID,
			Code:           row.Code,
			Name:           row.Name,
			Debit:          row.Debit,
			Credit:         row.Credit,
			Order:          ordering.AppendBatch(lastOrder, len(created)),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
		created = append(created, account)
	}

	if len(created) > 0 {
		if err := s.accountRepo.SaveAccounts(ctx, created); err != nil {
			s.LogError(ctx, err, "Failed to save imported accounts",
				slog.String("trial_balance_id", tb.TrialBalanceID),
				slog.Int("count", len(created)))
			return nil, err
		}
	}

	s.LogInfo(ctx, "Ledger import completed",
		slog.String("client_id", clientID),
		slog.Int("created", len(created)),
		slog.Int("skipped", skipped))
	return &dto.ImportResponse{
		Created:  len(created),
		Skipped:  skipped,
		Accounts: dto.ToListAccountResponse(created),
	}, nil
}
