package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/dto"
	"github.com/taxdesk/taxdesk_app/internal/middleware"
)

// SyncHandler triggers QuickBooks synchronization and manages a client's
// stored connection.
type SyncHandler struct {
	syncService         portssvc.SyncSvcFacade
	integrationService  portssvc.IntegrationSvcFacade
	trialBalanceService portssvc.TrialBalanceSvcFacade
}

// NewSyncHandler creates a new SyncHandler.
func NewSyncHandler(
	ss portssvc.SyncSvcFacade,
	is portssvc.IntegrationSvcFacade,
	ts portssvc.TrialBalanceSvcFacade,
) *SyncHandler {
	return &SyncHandler{
		syncService:         ss,
		integrationService:  is,
		trialBalanceService: ts,
	}
}

// SyncClient pulls the client's QuickBooks data, merges it into the current
// trial balance and returns the refreshed view.
func (h *SyncHandler) SyncClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("client_id", clientID))
	logger.Info("Sync requested")

	stats, err := h.syncService.SyncClient(c.Request.Context(), clientID, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrReauthorizationRequired):
			logger.Warn("Refresh token rejected, integration removed")
			c.JSON(http.StatusConflict, gin.H{
				"error":                   "QuickBooks connection expired, please reconnect",
				"reauthorizationRequired": true,
			})
		case errors.Is(err, apperrors.ErrSyncInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "A sync for this client is already running"})
		case errors.Is(err, apperrors.ErrNoTrialBalance):
			c.JSON(http.StatusNotFound, gin.H{"error": "No trial balance exists for this client"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No QuickBooks connection for this client"})
		default:
			logger.Error("Sync failed", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync with QuickBooks"})
		}
		return
	}

	view, err := h.trialBalanceService.GetCurrentView(c.Request.Context(), clientID, userID)
	if err != nil {
		logger.Error("Sync succeeded but view assembly failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sync completed but trial balance could not be loaded"})
		return
	}

	logger.Info("Sync completed",
		slog.Int("accounts_created", stats.AccountsCreated),
		slog.Int("transactions_created", stats.TransactionsCreated),
		slog.Int("lines_skipped", stats.LinesSkipped),
	)
	c.JSON(http.StatusOK, dto.SyncResponse{
		Message:      "Sync completed",
		Stats:        *stats,
		TrialBalance: *view,
	})
}

// GetIntegrationStatus reports whether the client has a QuickBooks
// connection.
func (h *SyncHandler) GetIntegrationStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	status, err := h.integrationService.GetIntegrationStatus(c.Request.Context(), clientID)
	if err != nil {
		logger.Error("Failed to get integration status", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get integration status"})
		return
	}

	c.JSON(http.StatusOK, status)
}

// ConnectIntegration stores the token set produced by the external OAuth
// connect flow. Reconnecting replaces any previous connection.
func (h *SyncHandler) ConnectIntegration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.ConnectIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ConnectIntegration", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	integration, err := h.integrationService.ConnectIntegration(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to connect integration", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to connect integration"})
		}
		return
	}

	logger.Info("Integration connected", slog.String("client_id", clientID), slog.String("realm_id", integration.RealmID))
	c.JSON(http.StatusCreated, dto.IntegrationStatusResponse{
		Connected: true,
		RealmID:   integration.RealmID,
		ExpiresAt: integration.ExpiresAt,
	})
}

// DisconnectIntegration removes the stored connection.
func (h *SyncHandler) DisconnectIntegration(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	err := h.integrationService.DisconnectIntegration(c.Request.Context(), clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No QuickBooks connection for this client"})
		} else {
			logger.Error("Failed to disconnect integration", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disconnect integration"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
