package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/quickbooks"
	"github.com/taxdesk/taxdesk_app/internal/utils/accounting"
	"github.com/taxdesk/taxdesk_app/internal/utils/ordering"
)

// fallbackDescription labels journal lines that carry neither a line
// description nor a document number.
const fallbackDescription = "QuickBooks Journal Entry"

// syncService implements the SyncSvcFacade interface. It pulls the remote
// chart of accounts and journal entries, merges new accounts into the
// client's current trial balance, replays journal lines as transactions and
// recomputes adjusted balances. One sync per client runs at a time.
type syncService struct {
	BaseService
	integrationRepo  portsrepo.IntegrationRepositoryFacade
	trialBalanceRepo portsrepo.TrialBalanceReader
	accountRepo      portsrepo.AccountRepositoryFacade
	transactionRepo  portsrepo.TransactionRepositoryFacade
	categories       portssvc.CategoryResolverSvc
	gateway          portssvc.QuickBooksGateway

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewSyncService creates a new sync service.
func NewSyncService(
	integrationRepo portsrepo.IntegrationRepositoryFacade,
	trialBalanceRepo portsrepo.TrialBalanceReader,
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	categories portssvc.CategoryResolverSvc,
	gateway portssvc.QuickBooksGateway,
) portssvc.SyncSvcFacade {
	return &syncService{
		integrationRepo:  integrationRepo,
		trialBalanceRepo: trialBalanceRepo,
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		categories:       categories,
		gateway:          gateway,
		inFlight:         make(map[string]struct{}),
	}
}

var _ portssvc.SyncSvcFacade = (*syncService)(nil)

// acquire takes the per-client sync lock. The lock is advisory and
// in-process; concurrent syncs for the same client would race on account
// creation and order assignment.
func (s *syncService) acquire(clientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[clientID]; busy {
		return false
	}
	s.inFlight[clientID] = struct{}{}
	return true
}

func (s *syncService) release(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, clientID)
}

func (s *syncService) SyncClient(ctx context.Context, clientID string, userID string) (*dto.SyncStats, error) {
	if !s.acquire(clientID) {
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrSyncInProgress, clientID)
	}
	defer s.release(clientID)

	integration, err := s.integrationRepo.FindIntegrationByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no QuickBooks integration for client %s", apperrors.ErrNotFound, clientID)
		}
		s.LogError(ctx, err, "Failed to load integration", slog.String("client_id", clientID))
		return nil, err
	}

	accessToken, err := s.ensureFreshTokens(ctx, integration)
	if err != nil {
		return nil, err
	}

	trialBalance, err := s.trialBalanceRepo.FindLatestTrialBalance(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: client %s", apperrors.ErrNoTrialBalance, clientID)
		}
		return nil, err
	}

	remoteAccounts, remoteEntries, err := s.fetchRemote(ctx, accessToken, integration.RealmID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch remote ledger data", slog.String("client_id", clientID))
		return nil, err
	}

	existing, err := s.accountRepo.ListAccountsByTrialBalance(ctx, trialBalance.TrialBalanceID)
	if err != nil {
		return nil, err
	}

	merge := newMergeState(trialBalance, existing)
	stats := &dto.SyncStats{}

	if err := s.createMissingAccounts(ctx, clientID, merge, remoteAccounts, userID, stats); err != nil {
		return nil, err
	}

	touched, err := s.replayJournalEntries(ctx, clientID, merge, remoteEntries, accessToken, integration.RealmID, userID, stats)
	if err != nil {
		return nil, err
	}

	if err := s.recomputeBalances(ctx, touched, userID, stats); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "QuickBooks sync completed",
		slog.String("client_id", clientID),
		slog.Int("accounts_created", stats.AccountsCreated),
		slog.Int("transactions_created", stats.TransactionsCreated),
		slog.Int("lines_skipped", stats.LinesSkipped),
		slog.Int("accounts_recomputed", stats.AccountsRecomputed))
	return stats, nil
}

// ensureFreshTokens returns a usable access token, refreshing synchronously
// when the stored one has expired. An expired refresh token is unrecoverable:
// the integration is deleted so the next connect starts a clean authorization.
func (s *syncService) ensureFreshTokens(ctx context.Context, integration *domain.Integration) (string, error) {
	if !integration.Expired(time.Now()) {
		return integration.AccessToken, nil
	}

	tokens, err := s.gateway.RefreshTokens(ctx, integration.RefreshToken)
	if err != nil {
		if errors.Is(err, quickbooks.ErrRefreshTokenExpired) {
			s.LogWarn(ctx, "Refresh token expired, removing integration", slog.String("client_id", integration.ClientID))
			if delErr := s.integrationRepo.DeleteIntegrationByClientID(ctx, integration.ClientID); delErr != nil {
				s.LogError(ctx, delErr, "Failed to delete stale integration", slog.String("client_id", integration.ClientID))
			}
			return "", fmt.Errorf("%w: QuickBooks refresh token expired", apperrors.ErrReauthorizationRequired)
		}
		s.LogError(ctx, err, "Token refresh failed", slog.String("client_id", integration.ClientID))
		return "", err
	}

	now := time.Now()
	if err := s.integrationRepo.UpdateIntegrationTokens(ctx, integration.IntegrationID,
		tokens.AccessToken, tokens.RefreshToken, tokens.ExpiresAt, now); err != nil {
		s.LogError(ctx, err, "Failed to persist refreshed tokens", slog.String("client_id", integration.ClientID))
		return "", err
	}
	return tokens.AccessToken, nil
}

// fetchRemote pulls the chart of accounts and the journal entries in
// parallel; both are needed before any merging starts.
func (s *syncService) fetchRemote(ctx context.Context, accessToken, realmID string) ([]quickbooks.Account, []quickbooks.JournalEntry, error) {
	accountChan := make(chan []quickbooks.Account, 1)
	entryChan := make(chan []quickbooks.JournalEntry, 1)
	errorChan := make(chan error, 2)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		accounts, err := s.gateway.GetAccounts(ctx, accessToken, realmID)
		if err != nil {
			errorChan <- fmt.Errorf("fetch accounts: %w", err)
			return
		}
		accountChan <- accounts
	}()

	go func() {
		defer wg.Done()
		entries, err := s.gateway.GetTransactions(ctx, accessToken, realmID)
		if err != nil {
			errorChan <- fmt.Errorf("fetch journal entries: %w", err)
			return
		}
		entryChan <- entries
	}()

	wg.Wait()
	close(accountChan)
	close(entryChan)
	close(errorChan)

	if err := <-errorChan; err != nil {
		return nil, nil, err
	}
	return <-accountChan, <-entryChan, nil
}

// mergeState tracks the local accounts of the trial balance being synced,
// keyed by external code, plus per-category order high-water marks.
type mergeState struct {
	trialBalance *domain.TrialBalance
	byCode       map[string]*domain.Account
	maxOrder     map[string]float64 // taxCategoryID -> highest sort key
}

func newMergeState(trialBalance *domain.TrialBalance, existing []domain.Account) *mergeState {
	m := &mergeState{
		trialBalance: trialBalance,
		byCode:       make(map[string]*domain.Account, len(existing)),
		maxOrder:     make(map[string]float64),
	}
	for i := range existing {
		a := &existing[i]
		m.byCode[a.Code] = a
		if a.Order > m.maxOrder[a.TaxCategoryID] {
			m.maxOrder[a.TaxCategoryID] = a.Order
		}
	}
	return m
}

func (m *mergeState) add(account *domain.Account) {
	m.byCode[account.Code] = account
	if account.Order > m.maxOrder[account.TaxCategoryID] {
		m.maxOrder[account.TaxCategoryID] = account.Order
	}
}

// buildAccount converts one remote account into a local row: classification
// resolves the tax category (created on demand), polarity decides which side
// of the ledger the absolute balance lands on.
func (s *syncService) buildAccount(ctx context.Context, clientID string, merge *mergeState, remote quickbooks.Account, batchIndex int, userID string) (*domain.Account, error) {
	categoryName := remote.Classification
	if categoryName == "" {
		categoryName = domain.UncategorizedName
	}
	category, err := s.categories.ResolveCategory(ctx, clientID, categoryName, userID)
	if err != nil {
		return nil, err
	}

	debit, credit := accounting.SplitBalance(remote.Classification, remote.CurrentBalance)
	now := time.Now()
	account := &domain.Account{
		AccountID:      uuid.NewString(),
		TrialBalanceID: merge.trialBalance.TrialBalanceID,
		TaxCategoryID:  category.TaxCategoryID,
		Code:           remote.ID,
		Name:           remote.Name,
		Debit:          debit,
		Credit:         credit,
		Order:          ordering.AppendBatch(merge.maxOrder[category.TaxCategoryID], batchIndex),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	merge.add(account)
	return account, nil
}

// createMissingAccounts diffs the remote chart of accounts against the local
// trial balance by external code and batch-creates whatever is new. One
// persistence call, so an interrupted sync never leaves half a category.
func (s *syncService) createMissingAccounts(ctx context.Context, clientID string, merge *mergeState, remoteAccounts []quickbooks.Account, userID string, stats *dto.SyncStats) error {
	created := make([]domain.Account, 0)
	for _, remote := range remoteAccounts {
		if _, exists := merge.byCode[remote.ID]; exists {
			continue
		}
		account, err := s.buildAccount(ctx, clientID, merge, remote, len(created), userID)
		if err != nil {
			return err
		}
		created = append(created, *account)
	}

	if len(created) == 0 {
		return nil
	}
	if err := s.accountRepo.SaveAccounts(ctx, created); err != nil {
		s.LogError(ctx, err, "Failed to batch-create synced accounts", slog.Int("count", len(created)))
		return err
	}
	stats.AccountsCreated += len(created)
	return nil
}

// replayJournalEntries posts every remote journal line as a transaction
// against its local account. Lines referencing an account missing from the
// chart-of-accounts pull trigger an on-the-fly fetch and create; a line is
// only skipped when even that fails, and the batch continues.
func (s *syncService) replayJournalEntries(ctx context.Context, clientID string, merge *mergeState, entries []quickbooks.JournalEntry, accessToken, realmID, userID string, stats *dto.SyncStats) (map[string]*domain.Account, error) {
	touched := make(map[string]*domain.Account)

	for _, entry := range entries {
		for _, line := range entry.Lines {
			code := line.Detail.AccountRef.Value
			account, ok := merge.byCode[code]
			if !ok {
				remote, err := s.gateway.GetAccountByID(ctx, accessToken, realmID, code)
				if err != nil {
					s.LogWarn(ctx, "Skipping journal line with unresolvable account",
						slog.String("code", code),
						slog.String("journal_entry_id", entry.ID))
					stats.LinesSkipped++
					continue
				}
				account, err = s.buildAccount(ctx, clientID, merge, *remote, 0, userID)
				if err != nil {
					return nil, err
				}
				if err := s.accountRepo.SaveAccount(ctx, *account); err != nil {
					s.LogError(ctx, err, "Failed to create account for journal line", slog.String("code", code))
					return nil, err
				}
				stats.AccountsCreated++
			}

			debit, credit := decimal.Zero, decimal.Zero
			if line.Detail.PostingType == "Debit" {
				debit = line.Amount
			} else {
				credit = line.Amount
			}
			description := line.Description
			if description == "" {
				description = entry.DocNumber
			}
			if description == "" {
				description = fallbackDescription
			}

			now := time.Now()
			txn := domain.Transaction{
				TransactionID: uuid.NewString(),
				AccountID:     account.AccountID,
				Date:          entry.TxnDate.Time,
				Description:   description,
				Debit:         debit,
				Credit:        credit,
				AuditFields: domain.AuditFields{
					CreatedAt:     now,
					CreatedBy:     userID,
					LastUpdatedAt: now,
					LastUpdatedBy: userID,
				},
			}
			if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
				s.LogError(ctx, err, "Failed to save synced transaction", slog.String("account_id", account.AccountID))
				return nil, err
			}
			stats.TransactionsCreated++
			touched[account.AccountID] = account
		}
	}
	return touched, nil
}

// recomputeBalances rederives adjusted figures for every account that
// received at least one transaction this run. Always a full recomputation
// from the log plus the unadjusted baseline.
func (s *syncService) recomputeBalances(ctx context.Context, touched map[string]*domain.Account, userID string, stats *dto.SyncStats) error {
	for accountID, account := range touched {
		txns, err := s.transactionRepo.ListTransactionsByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		account.AdjustedDebit, account.AdjustedCredit = accounting.RecomputeAdjusted(*account, txns)
		account.LastUpdatedAt = time.Now()
		account.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			s.LogError(ctx, err, "Failed to persist recomputed balances", slog.String("account_id", accountID))
			return err
		}
		stats.AccountsRecomputed++
	}
	return nil
}
