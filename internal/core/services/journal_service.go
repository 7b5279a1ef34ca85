package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portsrepo "github.com/taxdesk/taxdesk_app/internal/core/ports/repositories"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(
	accountRepo portsrepo.AccountRepositoryFacade,
	transactionRepo portsrepo.TransactionRepositoryFacade,
) portssvc.JournalSvcFacade {
	return &journalService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateJournalEntry posts one transaction per entry line and bumps each
// affected account's adjusted figure on the matching side. Unlike sync, this
// path increments in place rather than replaying the whole transaction log.
func (s *journalService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) ([]domain.Transaction, error) {
	now := time.Now()
	txns := make([]domain.Transaction, 0, len(req.Entries))

	for _, entry := range req.Entries {
		account, err := s.accountRepo.FindAccountByID(ctx, entry.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Journal entry references unknown account", slog.String("account_id", entry.AccountID))
			return nil, err
		}

		debit, credit := decimal.Zero, decimal.Zero
		if domain.EntryType(strings.ToUpper(entry.Type)) == domain.Debit {
			debit = entry.Amount
			account.AdjustedDebit = account.AdjustedDebit.Add(entry.Amount)
		} else {
			credit = entry.Amount
			account.AdjustedCredit = account.AdjustedCredit.Add(entry.Amount)
		}

		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			AccountID:     entry.AccountID,
			Date:          entry.Date,
			Description:   entry.Description,
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
			s.LogError(ctx, err, "Failed to save journal transaction", slog.String("account_id", entry.AccountID))
			return nil, err
		}

		account.LastUpdatedAt = now
		account.LastUpdatedBy = userID
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			s.LogError(ctx, err, "Failed to update account adjusted figures", slog.String("account_id", entry.AccountID))
			return nil, err
		}

		txns = append(txns, txn)
	}

	s.LogInfo(ctx, "Journal entry posted", slog.Int("lines", len(txns)))
	return txns, nil
}
