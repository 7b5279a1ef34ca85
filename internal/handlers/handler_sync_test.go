package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/handlers"
	"github.com/taxdesk/taxdesk_app/internal/ledgerimport"
	"github.com/taxdesk/taxdesk_app/internal/middleware"
)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) SyncClient(ctx context.Context, clientID string, userID string) (*dto.SyncStats, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SyncStats), args.Error(1)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

// --- Mock IntegrationService ---
type MockIntegrationService struct {
	mock.Mock
}

func (m *MockIntegrationService) ConnectIntegration(ctx context.Context, clientID string, req dto.ConnectIntegrationRequest, userID string) (*domain.Integration, error) {
	args := m.Called(ctx, clientID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Integration), args.Error(1)
}
func (m *MockIntegrationService) GetIntegrationStatus(ctx context.Context, clientID string) (*dto.IntegrationStatusResponse, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.IntegrationStatusResponse), args.Error(1)
}
func (m *MockIntegrationService) DisconnectIntegration(ctx context.Context, clientID string) error {
	args := m.Called(ctx, clientID)
	return args.Error(0)
}

var _ portssvc.IntegrationSvcFacade = (*MockIntegrationService)(nil)

// --- Mock TrialBalanceService ---
type MockTrialBalanceService struct {
	mock.Mock
}

func (m *MockTrialBalanceService) GetOrCreateCurrent(ctx context.Context, clientID string, userID string) (*domain.TrialBalance, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockTrialBalanceService) GetCurrentView(ctx context.Context, clientID string, userID string) (*dto.TrialBalanceResponse, error) {
	args := m.Called(ctx, clientID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TrialBalanceResponse), args.Error(1)
}
func (m *MockTrialBalanceService) ImportAccounts(ctx context.Context, clientID string, parsed []ledgerimport.ParsedAccount, userID string) (*dto.ImportResponse, error) {
	args := m.Called(ctx, clientID, parsed, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportResponse), args.Error(1)
}

var _ portssvc.TrialBalanceSvcFacade = (*MockTrialBalanceService)(nil)

// --- Test Suite ---
type SyncHandlerTestSuite struct {
	suite.Suite
	router                  *gin.Engine
	mockSyncService         *MockSyncService
	mockIntegrationService  *MockIntegrationService
	mockTrialBalanceService *MockTrialBalanceService
	jwtSecret               string
}

func (suite *SyncHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "taxdesk-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSyncService = new(MockSyncService)
	suite.mockIntegrationService = new(MockIntegrationService)
	suite.mockTrialBalanceService = new(MockTrialBalanceService)
	h := handlers.NewSyncHandler(suite.mockSyncService, suite.mockIntegrationService, suite.mockTrialBalanceService)

	v1 := suite.router.Group("/api/v1")
	v1.POST("/quickbooks/sync/:clientID", h.SyncClient)
	v1.GET("/clients/:clientID/integration", h.GetIntegrationStatus)
	v1.DELETE("/clients/:clientID/integration", h.DisconnectIntegration)
}

func (suite *SyncHandlerTestSuite) do(method, url, userID string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *SyncHandlerTestSuite) TestSync_Success_ReturnsStatsAndView() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	stats := &dto.SyncStats{AccountsCreated: 2, TransactionsCreated: 5, AccountsRecomputed: 3}
	view := &dto.TrialBalanceResponse{TrialBalanceID: uuid.NewString(), ClientID: clientID, Balanced: true}

	suite.mockSyncService.On("SyncClient", mock.Anything, clientID, userID).Return(stats, nil).Once()
	suite.mockTrialBalanceService.On("GetCurrentView", mock.Anything, clientID, userID).Return(view, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/quickbooks/sync/"+clientID, userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SyncResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.Stats.AccountsCreated)
	suite.Equal(5, resp.Stats.TransactionsCreated)
	suite.True(resp.TrialBalance.Balanced)
}

func (suite *SyncHandlerTestSuite) TestSync_ReauthorizationRequired() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSyncService.On("SyncClient", mock.Anything, clientID, userID).
		Return(nil, apperrors.ErrReauthorizationRequired).Once()

	w := suite.do(http.MethodPost, "/api/v1/quickbooks/sync/"+clientID, userID)

	suite.Equal(http.StatusConflict, w.Code)
	var body map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(true, body["reauthorizationRequired"])
	suite.mockTrialBalanceService.AssertNotCalled(suite.T(), "GetCurrentView", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SyncHandlerTestSuite) TestSync_AlreadyRunning() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSyncService.On("SyncClient", mock.Anything, clientID, userID).
		Return(nil, apperrors.ErrSyncInProgress).Once()

	w := suite.do(http.MethodPost, "/api/v1/quickbooks/sync/"+clientID, userID)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSync_NoIntegration() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSyncService.On("SyncClient", mock.Anything, clientID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodPost, "/api/v1/quickbooks/sync/"+clientID, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SyncHandlerTestSuite) TestSync_NoTrialBalance() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockSyncService.On("SyncClient", mock.Anything, clientID, userID).
		Return(nil, apperrors.ErrNoTrialBalance).Once()

	w := suite.do(http.MethodPost, "/api/v1/quickbooks/sync/"+clientID, userID)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *SyncHandlerTestSuite) TestIntegrationStatus_Disconnected() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockIntegrationService.On("GetIntegrationStatus", mock.Anything, clientID).
		Return(&dto.IntegrationStatusResponse{Connected: false}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/clients/"+clientID+"/integration", userID)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.IntegrationStatusResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Connected)
}

func (suite *SyncHandlerTestSuite) TestDisconnect_Success() {
	clientID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockIntegrationService.On("DisconnectIntegration", mock.Anything, clientID).
		Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/clients/"+clientID+"/integration", userID)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestSyncHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
