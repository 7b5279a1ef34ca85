package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/quickbooks"
)

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) CountClientsByStatus(ctx context.Context, statusID string) (int, error) {
	args := m.Called(ctx, statusID)
	return args.Int(0), args.Error(1)
}

func (m *MockClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteClient(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// --- Mock StatusRepository ---
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) FindStatusByID(ctx context.Context, statusID string) (*domain.Status, error) {
	args := m.Called(ctx, statusID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Status), args.Error(1)
}

func (m *MockStatusRepository) ListStatuses(ctx context.Context) ([]domain.Status, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Status), args.Error(1)
}

func (m *MockStatusRepository) SaveStatus(ctx context.Context, status domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) UpdateStatus(ctx context.Context, status domain.Status) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

func (m *MockStatusRepository) DeleteStatus(ctx context.Context, statusID string) error {
	args := m.Called(ctx, statusID)
	return args.Error(0)
}

// --- Mock TrialBalanceRepository ---
type MockTrialBalanceRepository struct {
	mock.Mock
}

func (m *MockTrialBalanceRepository) FindTrialBalanceByID(ctx context.Context, trialBalanceID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, trialBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockTrialBalanceRepository) FindLatestTrialBalance(ctx context.Context, clientID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}

func (m *MockTrialBalanceRepository) SaveTrialBalance(ctx context.Context, trialBalance domain.TrialBalance) error {
	args := m.Called(ctx, trialBalance)
	return args.Error(0)
}

// --- Mock TaxCategoryRepository ---
type MockTaxCategoryRepository struct {
	mock.Mock
}

func (m *MockTaxCategoryRepository) FindCategoryByID(ctx context.Context, taxCategoryID string) (*domain.TaxCategory, error) {
	args := m.Called(ctx, taxCategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryRepository) ListCategoriesByClient(ctx context.Context, clientID string) ([]domain.TaxCategory, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryRepository) CountAccountsByCategory(ctx context.Context, taxCategoryID string) (int, error) {
	args := m.Called(ctx, taxCategoryID)
	return args.Int(0), args.Error(1)
}

func (m *MockTaxCategoryRepository) SaveCategory(ctx context.Context, category domain.TaxCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockTaxCategoryRepository) DeleteCategory(ctx context.Context, taxCategoryID string) error {
	args := m.Called(ctx, taxCategoryID)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, trialBalanceID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, trialBalanceID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByTrialBalance(ctx context.Context, trialBalanceID string) ([]domain.Account, error) {
	args := m.Called(ctx, trialBalanceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveAccounts(ctx context.Context, accounts []domain.Account) error {
	args := m.Called(ctx, accounts)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransactionsByAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock AttachmentRepository ---
type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) ListAttachmentsByAccount(ctx context.Context, accountID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	args := m.Called(ctx, attachmentID)
	return args.Error(0)
}

func (m *MockAttachmentRepository) DeleteAttachmentsByAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock NoteRepository ---
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) ListNotesByAccount(ctx context.Context, accountID string) ([]domain.Note, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Note), args.Error(1)
}

func (m *MockNoteRepository) SaveNote(ctx context.Context, note domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteNote(ctx context.Context, noteID string) error {
	args := m.Called(ctx, noteID)
	return args.Error(0)
}

func (m *MockNoteRepository) DeleteNotesByAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock CommentRepository ---
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListCommentsByClient(ctx context.Context, clientID string) ([]domain.Comment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}

func (m *MockCommentRepository) SaveComment(ctx context.Context, comment domain.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) DeleteComment(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

// --- Mock IntegrationRepository ---
type MockIntegrationRepository struct {
	mock.Mock
}

func (m *MockIntegrationRepository) FindIntegrationByClientID(ctx context.Context, clientID string) (*domain.Integration, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}

func (m *MockIntegrationRepository) SaveIntegration(ctx context.Context, integration domain.Integration) error {
	args := m.Called(ctx, integration)
	return args.Error(0)
}

func (m *MockIntegrationRepository) UpdateIntegrationTokens(ctx context.Context, integrationID string, accessToken, refreshToken string, expiresAt time.Time, now time.Time) error {
	args := m.Called(ctx, integrationID, accessToken, refreshToken, expiresAt, now)
	return args.Error(0)
}

func (m *MockIntegrationRepository) DeleteIntegrationByClientID(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

// --- Mock TaxCategoryService ---
type MockTaxCategoryService struct {
	mock.Mock
}

func (m *MockTaxCategoryService) ResolveCategory(ctx context.Context, clientID string, name string, userID string) (*domain.TaxCategory, error) {
	args := m.Called(ctx, clientID, name, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryService) Uncategorized(ctx context.Context, clientID string, userID string) (*domain.TaxCategory, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryService) InvalidateCache(clientID string) {
	m.Called(clientID)
}

func (m *MockTaxCategoryService) ListCategories(ctx context.Context, clientID string) ([]domain.TaxCategory, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryService) CreateCategory(ctx context.Context, clientID string, req dto.CreateTaxCategoryRequest, userID string) (*domain.TaxCategory, error) {
	args := m.Called(ctx, clientID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxCategory), args.Error(1)
}

func (m *MockTaxCategoryService) DeleteCategory(ctx context.Context, clientID string, taxCategoryID string) error {
	args := m.Called(ctx, clientID, taxCategoryID)
	return args.Error(0)
}

// --- Mock QuickBooksGateway ---
type MockQuickBooksGateway struct {
	mock.Mock
}

func (m *MockQuickBooksGateway) RefreshTokens(ctx context.Context, refreshToken string) (quickbooks.Tokens, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(quickbooks.Tokens), args.Error(1)
}

func (m *MockQuickBooksGateway) GetAccounts(ctx context.Context, accessToken, realmID string) ([]quickbooks.Account, error) {
	args := m.Called(ctx, accessToken, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quickbooks.Account), args.Error(1)
}

func (m *MockQuickBooksGateway) GetAccountByID(ctx context.Context, accessToken, realmID, accountID string) (*quickbooks.Account, error) {
	args := m.Called(ctx, accessToken, realmID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quickbooks.Account), args.Error(1)
}

func (m *MockQuickBooksGateway) GetTransactions(ctx context.Context, accessToken, realmID string) ([]quickbooks.JournalEntry, error) {
	args := m.Called(ctx, accessToken, realmID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]quickbooks.JournalEntry), args.Error(1)
}
