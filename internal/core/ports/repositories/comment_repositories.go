package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// CommentReader defines read operations for client comments
type CommentReader interface {
	// FindCommentByID retrieves a single comment.
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// ListCommentsByClient retrieves all comments of a client, newest first.
	ListCommentsByClient(ctx context.Context, clientID string) ([]domain.Comment, error)
}

// CommentWriter defines write operations for client comments
type CommentWriter interface {
	// SaveComment persists a new comment.
	SaveComment(ctx context.Context, comment domain.Comment) error

	// DeleteComment removes a single comment.
	DeleteComment(ctx context.Context, commentID string) error
}

// CommentRepositoryFacade combines all comment repository interfaces
type CommentRepositoryFacade interface {
	CommentReader
	CommentWriter
}
