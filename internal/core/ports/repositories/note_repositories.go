package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// NoteReader defines read operations for account notes
type NoteReader interface {
	// ListNotesByAccount retrieves all notes of an account, newest first.
	ListNotesByAccount(ctx context.Context, accountID string) ([]domain.Note, error)
}

// NoteWriter defines write operations for account notes
type NoteWriter interface {
	// SaveNote persists a new note.
	SaveNote(ctx context.Context, note domain.Note) error

	// DeleteNote removes a single note.
	DeleteNote(ctx context.Context, noteID string) error

	// DeleteNotesByAccount removes all notes of an account as part of
	// account deletion.
	DeleteNotesByAccount(ctx context.Context, accountID string) error
}

// NoteRepositoryFacade combines all note repository interfaces
type NoteRepositoryFacade interface {
	NoteReader
	NoteWriter
}
