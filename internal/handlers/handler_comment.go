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

// CommentHandler handles HTTP requests for client comments.
type CommentHandler struct {
	commentService portssvc.CommentSvcFacade
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(cs portssvc.CommentSvcFacade) *CommentHandler {
	return &CommentHandler{commentService: cs}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	comments, err := h.commentService.ListComments(c.Request.Context(), clientID)
	if err != nil {
		logger.Error("Failed to list comments", slog.String("error", err.Error()), slog.String("client_id", clientID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListCommentResponse(comments))
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	clientID := c.Param("clientID")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), clientID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
		} else {
			logger.Error("Failed to create comment", slog.String("error", err.Error()), slog.String("client_id", clientID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// DeleteComment removes a comment. Only the comment's author may delete it.
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	commentID := c.Param("commentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only the author can delete this comment"})
		} else {
			logger.Error("Failed to delete comment", slog.String("error", err.Error()), slog.String("comment_id", commentID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
