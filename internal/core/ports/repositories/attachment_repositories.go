package repositories

import (
	"context"

	"github.com/taxdesk/taxdesk_app/internal/core/domain"
)

// AttachmentReader defines read operations for account attachments
type AttachmentReader interface {
	// ListAttachmentsByAccount retrieves all attachments of an account.
	ListAttachmentsByAccount(ctx context.Context, accountID string) ([]domain.Attachment, error)
}

// AttachmentWriter defines write operations for account attachments
type AttachmentWriter interface {
	// SaveAttachment persists a new attachment reference.
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error

	// DeleteAttachment removes a single attachment reference.
	DeleteAttachment(ctx context.Context, attachmentID string) error

	// DeleteAttachmentsByAccount removes all attachment references of an
	// account as part of account deletion.
	DeleteAttachmentsByAccount(ctx context.Context, accountID string) error
}

// AttachmentRepositoryFacade combines all attachment repository interfaces
type AttachmentRepositoryFacade interface {
	AttachmentReader
	AttachmentWriter
}
