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
)

// noteService implements the NoteSvcFacade interface
type noteService struct {
	BaseService
	noteRepo    portsrepo.NoteRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewNoteService creates a new account note service.
func NewNoteService(noteRepo portsrepo.NoteRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.NoteSvcFacade {
	return &noteService{
		noteRepo:    noteRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.NoteSvcFacade = (*noteService)(nil)

func (s *noteService) CreateNote(ctx context.Context, accountID string, req dto.CreateNoteRequest, userID string) (*domain.Note, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account for note", slog.String("account_id", accountID))
		}
		return nil, err
	}

	now := time.Now()
	note := domain.Note{
		NoteID:     uuid.NewString(),
		AccountID:  accountID,
		Content:    req.Content,
		AuthorID:   userID,
		AuthorName: req.AuthorName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.noteRepo.SaveNote(ctx, note); err != nil {
		s.LogError(ctx, err, "Failed to save note", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Note created", slog.String("note_id", note.NoteID), slog.String("account_id", accountID))
	return &note, nil
}

func (s *noteService) ListNotes(ctx context.Context, accountID string) ([]domain.Note, error) {
	notes, err := s.noteRepo.ListNotesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notes", slog.String("account_id", accountID))
		return nil, err
	}
	if notes == nil {
		return []domain.Note{}, nil
	}
	return notes, nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID string) error {
	if err := s.noteRepo.DeleteNote(ctx, noteID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete note", slog.String("note_id", noteID))
		}
		return err
	}
	return nil
}

// commentService implements the CommentSvcFacade interface
type commentService struct {
	BaseService
	commentRepo portsrepo.CommentRepositoryFacade
	clientRepo  portsrepo.ClientReader
}

// NewCommentService creates a new client comment service.
func NewCommentService(commentRepo portsrepo.CommentRepositoryFacade, clientRepo portsrepo.ClientReader) portssvc.CommentSvcFacade {
	return &commentService{
		commentRepo: commentRepo,
		clientRepo:  clientRepo,
	}
}

var _ portssvc.CommentSvcFacade = (*commentService)(nil)

func (s *commentService) CreateComment(ctx context.Context, clientID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error) {
	if _, err := s.clientRepo.FindClientByID(ctx, clientID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client for comment", slog.String("client_id", clientID))
		}
		return nil, err
	}

	now := time.Now()
	comment := domain.Comment{
		CommentID:  uuid.NewString(),
		ClientID:   clientID,
		Content:    req.Content,
		AuthorID:   userID,
		AuthorName: req.AuthorName,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.commentRepo.SaveComment(ctx, comment); err != nil {
		s.LogError(ctx, err, "Failed to save comment", slog.String("client_id", clientID))
		return nil, err
	}

	s.LogInfo(ctx, "Comment created", slog.String("comment_id", comment.CommentID), slog.String("client_id", clientID))
	return &comment, nil
}

func (s *commentService) ListComments(ctx context.Context, clientID string) ([]domain.Comment, error) {
	comments, err := s.commentRepo.ListCommentsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list comments", slog.String("client_id", clientID))
		return nil, err
	}
	if comments == nil {
		return []domain.Comment{}, nil
	}
	return comments, nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string, userID string) error {
	comment, err := s.commentRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find comment", slog.String("comment_id", commentID))
		}
		return err
	}

	if comment.AuthorID != userID {
		return fmt.Errorf("%w: comment belongs to another user", apperrors.ErrForbidden)
	}

	if err := s.commentRepo.DeleteComment(ctx, commentID); err != nil {
		s.LogError(ctx, err, "Failed to delete comment", slog.String("comment_id", commentID))
		return err
	}

	s.LogInfo(ctx, "Comment deleted", slog.String("comment_id", commentID))
	return nil
}
