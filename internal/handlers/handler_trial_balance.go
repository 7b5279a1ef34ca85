package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxdesk/taxdesk_app/internal/apperrors"
	portssvc "github.com/taxdesk/taxdesk_app/internal/core/ports/services"
	"github.com/taxdesk/taxdesk_app/internal/ledgerimport"
	"github.com/taxdesk/taxdesk_app/internal/middleware"
)

// maxImportSize bounds the spreadsheet upload at 10MB.
const maxImportSize = 10 << 20

// TrialBalanceHandler handles HTTP requests for the trial balance view and
// spreadsheet imports.
type TrialBalanceHandler struct {
	trialBalanceService portssvc.TrialBalanceSvcFacade
}

// NewTrialBalanceHandler creates a new TrialBalanceHandler.
func NewTrialBalanceHandler(ts portssvc.TrialBalanceSvcFacade) *TrialBalanceHandler {
	return &TrialBalanceHandler{trialBalanceService: ts}
}

// GetTrialBalance returns the client's current trial balance view, lazily
// creating the period on first access.
func (h *TrialBalanceHandler) GetTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, err := h.trialBalanceService.GetCurrentView(c.Request.Context(), clientID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to assemble trial balance view", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve trial balance"})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

// ImportTrialBalance accepts a multipart .xls upload, parses account rows
// and merges them into the client's current trial balance. Rows whose name
// already exists are skipped, not overwritten.
func (h *TrialBalanceHandler) ImportTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing file in import request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A spreadsheet file is required"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}

	parsed, err := ledgerimport.ParseXLS(data)
	if err != nil {
		logger.Warn("Failed to parse spreadsheet", slog.String("error", err.Error()), slog.String("file_name", fileHeader.Filename))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not parse spreadsheet: " + err.Error()})
		return
	}

	result, err := h.trialBalanceService.ImportAccounts(c.Request.Context(), clientID, parsed, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to import accounts", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import accounts"})
		}
		return
	}

	logger.Info("Spreadsheet imported",
		slog.String("client_id", clientID),
		slog.Int("created", result.Created),
		slog.Int("skipped", result.Skipped),
	)
	c.JSON(http.StatusOK, result)
}
