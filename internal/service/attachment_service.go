package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/events"
	"github.com/hivedesk/helpdesk/internal/media"
	"github.com/hivedesk/helpdesk/internal/repository"
	apperrors "github.com/hivedesk/helpdesk/pkg/util"
)

// AttachmentService guards ticket access around the media store.
type AttachmentService struct {
	tickets     repository.TicketRepository
	attachments repository.AttachmentRepository
	store       *media.Store
	dispatcher  events.Dispatcher
}

// AttachmentDependencies bundles collaborators.
type AttachmentDependencies struct {
	TicketRepo     repository.TicketRepository
	AttachmentRepo repository.AttachmentRepository
	Store          *media.Store
	Dispatcher     events.Dispatcher
}

// NewAttachmentService constructs the service.
func NewAttachmentService(deps AttachmentDependencies) *AttachmentService {
	return &AttachmentService{
		tickets:     deps.TicketRepo,
		attachments: deps.AttachmentRepo,
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
	}
}

// Upload stores new attachment content and its metadata row.
func (s *AttachmentService) Upload(ctx context.Context, actor *domain.User, ticketID, fileName, mimeType string, content []byte) (*domain.Attachment, error) {
	if err := s.checkTicketAccess(ctx, actor, ticketID); err != nil {
		return nil, err
	}

	attachment, err := s.store.Create(ctx, media.CreateInput{
		TicketID: ticketID,
		FileName: fileName,
		MimeType: mimeType,
		Content:  content,
	})
	if err != nil {
		return nil, mapStoreError(err)
	}

	s.publishStored(ctx, actor.ID, attachment)
	return attachment, nil
}

// Replace swaps an attachment's content for new bytes.
func (s *AttachmentService) Replace(ctx context.Context, actor *domain.User, attachmentID, fileName, mimeType string, content []byte) (*domain.Attachment, error) {
	attachment, err := s.loadAttachment(ctx, attachmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTicketAccess(ctx, actor, attachment.TicketID); err != nil {
		return nil, err
	}

	stored, err := s.store.Replace(ctx, attachment.ID, fileName, mimeType, content, attachment.Path)
	if err != nil {
		return nil, mapStoreError(err)
	}

	attachment.Path = stored
	attachment.FileName = fileName
	attachment.MimeType = mimeType
	attachment.SizeBytes = int64(len(content))
	return attachment, nil
}

// Delete removes the file and then the metadata row.
func (s *AttachmentService) Delete(ctx context.Context, actor *domain.User, attachmentID string) error {
	attachment, err := s.loadAttachment(ctx, attachmentID)
	if err != nil {
		return err
	}
	if err := s.checkTicketAccess(ctx, actor, attachment.TicketID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, attachment.Path, attachment.ID); err != nil {
		return mapStoreError(err)
	}
	return nil
}

// ListByTicket returns a ticket's attachment rows.
func (s *AttachmentService) ListByTicket(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Attachment, error) {
	if err := s.checkTicketAccess(ctx, actor, ticketID); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return attachments, nil
}

// Locate resolves an attachment's absolute file location for download.
func (s *AttachmentService) Locate(ctx context.Context, actor *domain.User, attachmentID string) (*domain.Attachment, string, error) {
	attachment, err := s.loadAttachment(ctx, attachmentID)
	if err != nil {
		return nil, "", err
	}
	if err := s.checkTicketAccess(ctx, actor, attachment.TicketID); err != nil {
		return nil, "", err
	}
	return attachment, s.store.Resolve(attachment.Path), nil
}

func (s *AttachmentService) loadAttachment(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	attachment, err := s.attachments.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("attachment", map[string]any{"attachment_id": attachmentID})
		}
		return nil, apperrors.MapError(err)
	}
	return attachment, nil
}

func (s *AttachmentService) checkTicketAccess(ctx context.Context, actor *domain.User, ticketID string) error {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	if !canAccess(actor, ticket) {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func (s *AttachmentService) publishStored(ctx context.Context, actorID string, attachment *domain.Attachment) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventAttachmentStored,
		TicketID:  attachment.TicketID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload: events.AttachmentStoredPayload{
			AttachmentID: attachment.ID,
			Path:         attachment.Path,
		},
	}
	_ = s.dispatcher.Publish(ctx, event)
}

// mapStoreError keeps the store's failure kinds visible to API callers:
// invalid paths are client errors, an unpersisted metadata commit is
// surfaced with its own code so operators can reconcile the orphan file.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, media.ErrInvalidPath):
		return apperrors.NewValidationError("invalid attachment path", nil)
	case errors.Is(err, media.ErrNotPersisted):
		return apperrors.NewDomainError("ATTACHMENT_NOT_PERSISTED",
			"attachment stored but metadata commit failed", http.StatusInternalServerError, nil)
	default:
		return apperrors.NewInternalError(err)
	}
}
