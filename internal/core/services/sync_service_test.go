package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/core/services"
	"github.com/taxdesk/taxdesk_app/internal/quickbooks"
)

type SyncServiceTestSuite struct {
	suite.Suite
	mockIntegrationRepo  *MockIntegrationRepository
	mockTrialBalanceRepo *MockTrialBalanceRepository
	mockAccountRepo      *MockAccountRepository
	mockTransactionRepo  *MockTransactionRepository
	mockCategories       *MockTaxCategoryService
	mockGateway          *MockQuickBooksGateway
	service              portssvc.SyncSvcFacade

	clientID string
	userID   string
}

func (suite *SyncServiceTestSuite) SetupTest() {
	suite.mockIntegrationRepo = new(MockIntegrationRepository)
	suite.mockTrialBalanceRepo = new(MockTrialBalanceRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTransactionRepo = new(MockTransactionRepository)
	suite.mockCategories = new(MockTaxCategoryService)
	suite.mockGateway = new(MockQuickBooksGateway)
	suite.service = services.NewSyncService(
		suite.mockIntegrationRepo,
		suite.mockTrialBalanceRepo,
		suite.mockAccountRepo,
		suite.mockTransactionRepo,
		suite.mockCategories,
		suite.mockGateway,
	)
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *SyncServiceTestSuite) freshIntegration() *domain.Integration {
	return &domain.Integration{
		IntegrationID: uuid.NewString(),
		ClientID:      suite.clientID,
		RealmID:       "realm-1",
		AccessToken:   "access-token",
		RefreshToken:  "refresh-token",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func (suite *SyncServiceTestSuite) TestSyncClient_NoIntegration() {
	ctx := context.Background()
	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(stats)
	suite.mockIntegrationRepo.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncClient_RefreshTokenExpired_DeletesIntegration() {
	ctx := context.Background()
	integration := suite.freshIntegration()
	integration.ExpiresAt = time.Now().Add(-time.Minute)

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(integration, nil).Once()
	suite.mockGateway.On("RefreshTokens", ctx, "refresh-token").
		Return(quickbooks.Tokens{}, quickbooks.ErrRefreshTokenExpired).Once()
	suite.mockIntegrationRepo.On("DeleteIntegrationByClientID", ctx, suite.clientID).
		Return(nil).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrReauthorizationRequired)
	suite.Nil(stats)
	suite.mockIntegrationRepo.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncClient_RefreshPersistsNewTokens() {
	ctx := context.Background()
	integration := suite.freshIntegration()
	integration.ExpiresAt = time.Now().Add(-time.Minute)
	newExpiry := time.Now().Add(time.Hour)

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(integration, nil).Once()
	suite.mockGateway.On("RefreshTokens", ctx, "refresh-token").
		Return(quickbooks.Tokens{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresAt: newExpiry}, nil).Once()
	suite.mockIntegrationRepo.On("UpdateIntegrationTokens", ctx, integration.IntegrationID,
		"new-access", "new-refresh", newExpiry, mock.AnythingOfType("time.Time")).
		Return(nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoTrialBalance)
	suite.mockIntegrationRepo.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

func (suite *SyncServiceTestSuite) TestSyncClient_NoTrialBalance() {
	ctx := context.Background()
	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(nil, apperrors.ErrNotFound).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoTrialBalance)
	suite.Nil(stats)
}

// End to end: local trial balance holds account "40" (Cash, debit 1000). The
// remote ledger returns "40" plus a new "41" (AR, Asset, 500) and one journal
// entry crediting "40" by 200 and debiting "41" by 200. The sync must create
// only "41" and recompute both accounts' adjusted figures.
func (suite *SyncServiceTestSuite) TestSyncClient_EndToEnd() {
	ctx := context.Background()
	tb := &domain.TrialBalance{TrialBalanceID: uuid.NewString(), ClientID: suite.clientID}
	assetCategory := &domain.TaxCategory{TaxCategoryID: uuid.NewString(), ClientID: suite.clientID, Name: "Asset"}
	cash := domain.Account{
		AccountID:      uuid.NewString(),
		TrialBalanceID: tb.TrialBalanceID,
		TaxCategoryID:  assetCategory.TaxCategoryID,
		Code:           "40",
		Name:           "Cash",
		Debit:          decimal.NewFromInt(1000),
		Order:          1024,
	}

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(tb, nil).Once()
	suite.mockGateway.On("GetAccounts", ctx, "access-token", "realm-1").
		Return([]quickbooks.Account{
			{ID: "40", Name: "Cash", Classification: "Asset", CurrentBalance: decimal.NewFromInt(1000)},
			{ID: "41", Name: "AR", Classification: "Asset", CurrentBalance: decimal.NewFromInt(500)},
		}, nil).Once()
	suite.mockGateway.On("GetTransactions", ctx, "access-token", "realm-1").
		Return([]quickbooks.JournalEntry{
			{
				ID:        "je-1",
				DocNumber: "JE-100",
				TxnDate:   quickbooks.Date{Time: time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)},
				Lines: []quickbooks.JournalLine{
					{
						Amount: decimal.NewFromInt(200),
						Detail: quickbooks.LineDetail{PostingType: "Credit", AccountRef: quickbooks.AccountRef{Value: "40"}},
					},
					{
						Amount: decimal.NewFromInt(200),
						Detail: quickbooks.LineDetail{PostingType: "Debit", AccountRef: quickbooks.AccountRef{Value: "41"}},
					},
				},
			},
		}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByTrialBalance", ctx, tb.TrialBalanceID).
		Return([]domain.Account{cash}, nil).Once()
	suite.mockCategories.On("ResolveCategory", ctx, suite.clientID, "Asset", suite.userID).
		Return(assetCategory, nil).Once()

	suite.mockAccountRepo.On("SaveAccounts", ctx, mock.MatchedBy(func(accounts []domain.Account) bool {
		if len(accounts) != 1 {
			return false
		}
		a := accounts[0]
		return a.Code == "41" &&
			a.Name == "AR" &&
			a.TaxCategoryID == assetCategory.TaxCategoryID &&
			a.Debit.Equal(decimal.NewFromInt(500)) &&
			a.Credit.IsZero() &&
			a.Order > cash.Order
	})).Return(nil).Once()

	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.AccountID == cash.AccountID && t.Credit.Equal(decimal.NewFromInt(200)) && t.Debit.IsZero() && t.Description == "JE-100"
	})).Return(nil).Once()
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.AccountID != cash.AccountID && t.Debit.Equal(decimal.NewFromInt(200)) && t.Credit.IsZero()
	})).Return(nil).Once()

	suite.mockTransactionRepo.On("ListTransactionsByAccount", ctx, cash.AccountID).
		Return([]domain.Transaction{{AccountID: cash.AccountID, Credit: decimal.NewFromInt(200)}}, nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", ctx, mock.MatchedBy(func(id string) bool {
		return id != cash.AccountID
	})).Return([]domain.Transaction{{Debit: decimal.NewFromInt(200)}}, nil).Once()

	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountID == cash.AccountID &&
			a.AdjustedDebit.Equal(decimal.NewFromInt(1000)) &&
			a.AdjustedCredit.Equal(decimal.NewFromInt(200))
	})).Return(nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "41" &&
			a.AdjustedDebit.Equal(decimal.NewFromInt(700)) &&
			a.AdjustedCredit.IsZero()
	})).Return(nil).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(stats)
	suite.Equal(1, stats.AccountsCreated)
	suite.Equal(2, stats.TransactionsCreated)
	suite.Equal(0, stats.LinesSkipped)
	suite.Equal(2, stats.AccountsRecomputed)

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTransactionRepo.AssertExpectations(suite.T())
	suite.mockCategories.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

// Running a sync against an unchanged remote ledger must not create a second
// copy of any account whose code already exists locally.
func (suite *SyncServiceTestSuite) TestSyncClient_SecondRunCreatesNothing() {
	ctx := context.Background()
	tb := &domain.TrialBalance{TrialBalanceID: uuid.NewString(), ClientID: suite.clientID}
	existing := []domain.Account{
		{AccountID: uuid.NewString(), TrialBalanceID: tb.TrialBalanceID, Code: "40", Order: 1024},
		{AccountID: uuid.NewString(), TrialBalanceID: tb.TrialBalanceID, Code: "41", Order: 2048},
	}

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(tb, nil).Once()
	suite.mockGateway.On("GetAccounts", ctx, "access-token", "realm-1").
		Return([]quickbooks.Account{{ID: "40"}, {ID: "41"}}, nil).Once()
	suite.mockGateway.On("GetTransactions", ctx, "access-token", "realm-1").
		Return([]quickbooks.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByTrialBalance", ctx, tb.TrialBalanceID).
		Return(existing, nil).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0, stats.AccountsCreated)
	suite.Equal(0, stats.TransactionsCreated)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccounts", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// A journal line whose account is missing locally and unresolvable remotely
// is skipped without failing the batch.
func (suite *SyncServiceTestSuite) TestSyncClient_UnresolvableLineSkipped() {
	ctx := context.Background()
	tb := &domain.TrialBalance{TrialBalanceID: uuid.NewString(), ClientID: suite.clientID}

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(tb, nil).Once()
	suite.mockGateway.On("GetAccounts", ctx, "access-token", "realm-1").
		Return([]quickbooks.Account{}, nil).Once()
	suite.mockGateway.On("GetTransactions", ctx, "access-token", "realm-1").
		Return([]quickbooks.JournalEntry{
			{
				ID: "je-1",
				Lines: []quickbooks.JournalLine{
					{
						Amount: decimal.NewFromInt(50),
						Detail: quickbooks.LineDetail{PostingType: "Debit", AccountRef: quickbooks.AccountRef{Value: "99"}},
					},
				},
			},
		}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByTrialBalance", ctx, tb.TrialBalanceID).
		Return([]domain.Account{}, nil).Once()
	suite.mockGateway.On("GetAccountByID", ctx, "access-token", "realm-1", "99").
		Return(nil, quickbooks.ErrAccountNotFound).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, stats.LinesSkipped)
	suite.Equal(0, stats.TransactionsCreated)
	suite.mockTransactionRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	suite.mockGateway.AssertExpectations(suite.T())
}

// A journal line referencing an account absent from the chart-of-accounts
// pull creates that account on the fly from the remote detail lookup.
func (suite *SyncServiceTestSuite) TestSyncClient_OnTheFlyAccountCreation() {
	ctx := context.Background()
	tb := &domain.TrialBalance{TrialBalanceID: uuid.NewString(), ClientID: suite.clientID}
	expenseCategory := &domain.TaxCategory{TaxCategoryID: uuid.NewString(), ClientID: suite.clientID, Name: "Expense"}

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(tb, nil).Once()
	suite.mockGateway.On("GetAccounts", ctx, "access-token", "realm-1").
		Return([]quickbooks.Account{}, nil).Once()
	suite.mockGateway.On("GetTransactions", ctx, "access-token", "realm-1").
		Return([]quickbooks.JournalEntry{
			{
				ID: "je-1",
				Lines: []quickbooks.JournalLine{
					{
						Description: "Office supplies",
						Amount:      decimal.NewFromInt(75),
						Detail:      quickbooks.LineDetail{PostingType: "Debit", AccountRef: quickbooks.AccountRef{Value: "60"}},
					},
				},
			},
		}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByTrialBalance", ctx, tb.TrialBalanceID).
		Return([]domain.Account{}, nil).Once()
	suite.mockGateway.On("GetAccountByID", ctx, "access-token", "realm-1", "60").
		Return(&quickbooks.Account{ID: "60", Name: "Supplies", Classification: "Expense", CurrentBalance: decimal.NewFromInt(75)}, nil).Once()
	suite.mockCategories.On("ResolveCategory", ctx, suite.clientID, "Expense", suite.userID).
		Return(expenseCategory, nil).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "60" && a.Name == "Supplies" && a.Debit.Equal(decimal.NewFromInt(75))
	})).Return(nil).Once()
	suite.mockTransactionRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Debit.Equal(decimal.NewFromInt(75)) && t.Description == "Office supplies"
	})).Return(nil).Once()
	suite.mockTransactionRepo.On("ListTransactionsByAccount", ctx, mock.AnythingOfType("string")).
		Return([]domain.Transaction{{Debit: decimal.NewFromInt(75)}}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "60" && a.AdjustedDebit.Equal(decimal.NewFromInt(150))
	})).Return(nil).Once()

	stats, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(1, stats.AccountsCreated)
	suite.Equal(1, stats.TransactionsCreated)
	suite.Equal(1, stats.AccountsRecomputed)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockGateway.AssertExpectations(suite.T())
}

// Only one sync per client runs at a time; a second trigger while the first
// is still fetching fails fast.
func (suite *SyncServiceTestSuite) TestSyncClient_ConcurrentRunRejected() {
	ctx := context.Background()
	tb := &domain.TrialBalance{TrialBalanceID: uuid.NewString(), ClientID: suite.clientID}
	fetching := make(chan struct{})
	proceed := make(chan struct{})

	suite.mockIntegrationRepo.On("FindIntegrationByClientID", ctx, suite.clientID).
		Return(suite.freshIntegration(), nil).Once()
	suite.mockTrialBalanceRepo.On("FindLatestTrialBalance", ctx, suite.clientID).
		Return(tb, nil).Once()
	suite.mockGateway.On("GetAccounts", ctx, "access-token", "realm-1").
		Run(func(args mock.Arguments) {
			close(fetching)
			<-proceed
		}).
		Return([]quickbooks.Account{}, nil).Once()
	suite.mockGateway.On("GetTransactions", ctx, "access-token", "realm-1").
		Return([]quickbooks.JournalEntry{}, nil).Once()
	suite.mockAccountRepo.On("ListAccountsByTrialBalance", ctx, tb.TrialBalanceID).
		Return([]domain.Account{}, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)
		done <- err
	}()

	<-fetching
	_, err := suite.service.SyncClient(ctx, suite.clientID, suite.userID)
	suite.ErrorIs(err, apperrors.ErrSyncInProgress)

	close(proceed)
	suite.Require().NoError(<-done)
}

func TestSyncServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SyncServiceTestSuite))
}
