package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/utils/ordering"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo      portsrepo.AccountRepositoryFacade
	transactionRepo  portsrepo.TransactionRepositoryFacade
	attachmentRepo   portsrepo.AttachmentRepositoryFacade
	noteRepo         portsrepo.NoteWriter
	trialBalanceRepo portsrepo.TrialBalanceReader
	categories       portssvc.CategoryResolverSvc
}

// NewAccountService creates a new account service.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
	attachmentRepo portsrepo.AttachmentRepositoryFacade,
	noteRepo portsrepo.NoteWriter,
	trialBalanceRepo portsrepo.TrialBalanceReader,
	categories portssvc.CategoryResolverSvc,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:      accountRepo,
		transactionRepo:  transactionRepo,
		attachmentRepo:   attachmentRepo,
		noteRepo:         noteRepo,
		trialBalanceRepo: trialBalanceRepo,
		categories:       categories,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, trialBalanceID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByTrialBalance(ctx, trialBalanceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("trial_balance_id", trialBalanceID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	trialBalance, err := s.trialBalanceRepo.FindTrialBalanceByID(ctx, req.TrialBalanceID)
	if err != nil {
		return nil, err
	}
	if trialBalance.ClientID != clientID {
		return nil, apperrors.ErrNotFound
	}

	// Resolve the tax category; an account is never persisted without one.
	categoryID := req.TaxCategoryID
	if categoryID == "" {
		name := req.CategoryName
		if name == "" {
			name = domain.UncategorizedName
		}
		category, err := s.categories.ResolveCategory(ctx, clientID, name, userID)
		if err != nil {
			return nil, err
		}
		categoryID = category.TaxCategoryID
	}

	siblings, err := s.accountRepo.ListAccountsByTrialBalance(ctx, req.TrialBalanceID)
	if err != nil {
		return nil, err
	}

	code := req.Code
	if code == "" {
		code = uuid.NewString()
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		TrialBalanceID: req.TrialBalanceID,
		TaxCategoryID:  categoryID,
		Code:           code,
		Name:           req.Name,
		Debit:          req.Debit,
		Credit:         req.Credit,
		Order:          ordering.Append(maxOrderInCategory(siblings, categoryID)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("trial_balance_id", req.TrialBalanceID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.TaxCategoryID != nil && *req.TaxCategoryID != account.TaxCategoryID {
		account.TaxCategoryID = *req.TaxCategoryID
		// A category move without an explicit drop position appends to the
		// target category.
		if req.Position == nil {
			siblings, err := s.accountRepo.ListAccountsByTrialBalance(ctx, account.TrialBalanceID)
			if err != nil {
				return nil, err
			}
			account.Order = ordering.Append(maxOrderInCategory(siblings, account.TaxCategoryID))
		}
		updated = true
	}
	if req.Position != nil {
		account.Order = orderFromPosition(*req.Position)
		updated = true
	}
	if req.AdjustedDebit != nil {
		account.AdjustedDebit = *req.AdjustedDebit
		updated = true
	}
	if req.AdjustedCredit != nil {
		account.AdjustedCredit = *req.AdjustedCredit
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account together with its attachments, notes
// and transactions. The cleanup order matters: dependents go first so a
// failure part-way never orphans rows pointing at a missing account.
func (s *accountService) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.attachmentRepo.DeleteAttachmentsByAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account attachments", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete attachments for account %s: %w", accountID, err)
	}
	if err := s.noteRepo.DeleteNotesByAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account notes", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete notes for account %s: %w", accountID, err)
	}
	if err := s.transactionRepo.DeleteTransactionsByAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account transactions", slog.String("account_id", accountID))
		return fmt.Errorf("failed to delete transactions for account %s: %w", accountID, err)
	}
	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

// maxOrderInCategory returns the highest fractional sort key among the
// accounts of one category, or 0 when the category holds none.
func maxOrderInCategory(accounts []domain.Account, taxCategoryID string) float64 {
	max := 0.0
	for _, a := range accounts {
		if a.TaxCategoryID == taxCategoryID && a.Order > max {
			max = a.Order
		}
	}
	return max
}

// orderFromPosition translates a drop position into a fractional sort key.
func orderFromPosition(pos dto.ReorderPosition) float64 {
	switch {
	case pos.BeforeOrder == nil && pos.AfterOrder == nil:
		return ordering.Initial()
	case pos.BeforeOrder == nil:
		return ordering.Before(*pos.AfterOrder)
	case pos.AfterOrder == nil:
		return ordering.After(*pos.BeforeOrder)
	default:
		return ordering.Between(*pos.BeforeOrder, *pos.AfterOrder)
	}
}
