package services

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
	"github.com/taxdesk/taxdesk_app/internal/dto"
)

// NoteSvcFacade manages free-text notes on accounts.
type NoteSvcFacade interface {
	// CreateNote adds a note to an account.
	CreateNote(ctx context.Context, accountID string, req dto.CreateNoteRequest, userID string) (*domain.Note, error)

	// ListNotes retrieves an account's notes, newest first.
	ListNotes(ctx context.Context, accountID string) ([]domain.Note, error)

	// DeleteNote removes a note.
	DeleteNote(ctx context.Context, noteID string) error
}

// CommentSvcFacade manages discussion comments on client cards.
type CommentSvcFacade interface {
	// CreateComment adds a comment to a client.
	CreateComment(ctx context.Context, clientID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error)

	// ListComments retrieves a client's comments, newest first.
	ListComments(ctx context.Context, clientID string) ([]domain.Comment, error)

	// DeleteComment removes a comment; only its author may do so.
	DeleteComment(ctx context.Context, commentID string, userID string) error
}
