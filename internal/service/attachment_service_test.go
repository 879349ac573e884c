package service

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/media"
	apperrors "github.com/hivedesk/helpdesk/pkg/util"
)

func newAttachmentService(t *testing.T, tickets *mockTicketRepo, attachments *mockAttachmentRepo) (*AttachmentService, *media.Store) {
	t.Helper()
	store := media.NewStore(t.TempDir(), attachments, zap.NewNop())
	svc := NewAttachmentService(AttachmentDependencies{
		TicketRepo:     tickets,
		AttachmentRepo: attachments,
		Store:          store,
	})
	return svc, store
}

func ticketRepoReturning(ticket *domain.Ticket) *mockTicketRepo {
	return &mockTicketRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Ticket, error) {
			return ticket, nil
		},
	}
}

func TestUpload(t *testing.T) {
	attachments := &mockAttachmentRepo{
		CreateFunc: func(context.Context, *domain.Attachment) error { return nil },
	}
	svc, store := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	creator := &domain.User{ID: "creator-1", Role: domain.UserRoleRegular}
	attachment, err := svc.Upload(context.Background(), creator, "ticket-1", "log.txt", "text/plain", []byte("boom"))
	require.NoError(t, err)
	assert.Equal(t, "ticket-1", attachment.TicketID)
	assert.Equal(t, int64(4), attachment.SizeBytes)

	content, err := os.ReadFile(store.Resolve(attachment.Path))
	require.NoError(t, err)
	assert.Equal(t, []byte("boom"), content)
}

func TestUpload_StrangerForbidden(t *testing.T) {
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), &mockAttachmentRepo{})

	stranger := &domain.User{ID: "stranger-1", Role: domain.UserRoleRegular}
	_, err := svc.Upload(context.Background(), stranger, "ticket-1", "log.txt", "text/plain", []byte("boom"))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "FORBIDDEN", domainErr.Code)
}

func TestUpload_MetadataFailureSurfacesOwnCode(t *testing.T) {
	attachments := &mockAttachmentRepo{
		CreateFunc: func(context.Context, *domain.Attachment) error {
			return errors.New("connection reset")
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	_, err := svc.Upload(context.Background(), admin, "ticket-1", "log.txt", "text/plain", []byte("boom"))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ATTACHMENT_NOT_PERSISTED", domainErr.Code)
}

func TestReplace(t *testing.T) {
	var repointed string
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return &domain.Attachment{ID: "att-1", TicketID: "ticket-1", Path: "2025/1/2/old.txt", FileName: "old.txt"}, nil
		},
		UpdateContentFunc: func(_ context.Context, _, path, _, _ string, _ int64) error {
			repointed = path
			return nil
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	attachment, err := svc.Replace(context.Background(), admin, "att-1", "new.txt", "text/plain", []byte("fresh"))
	require.NoError(t, err)
	assert.Equal(t, repointed, attachment.Path)
	assert.Equal(t, "new.txt", attachment.FileName)
	assert.Equal(t, int64(5), attachment.SizeBytes)
}

func TestReplace_PersistsNewMetadata(t *testing.T) {
	var persisted struct {
		path      string
		fileName  string
		mimeType  string
		sizeBytes int64
	}
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return &domain.Attachment{
				ID:        "att-1",
				TicketID:  "ticket-1",
				Path:      "2025/1/2/old.txt",
				FileName:  "old.txt",
				MimeType:  "text/plain",
				SizeBytes: 3,
			}, nil
		},
		UpdateContentFunc: func(_ context.Context, _, path, fileName, mimeType string, sizeBytes int64) error {
			persisted.path = path
			persisted.fileName = fileName
			persisted.mimeType = mimeType
			persisted.sizeBytes = sizeBytes
			return nil
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	attachment, err := svc.Replace(context.Background(), admin, "att-1", "new.pdf", "application/pdf", []byte("fresh"))
	require.NoError(t, err)

	// The row and the returned struct agree on the post-replace state; a
	// later GetByID must not serve the old name or mime type.
	assert.Equal(t, attachment.Path, persisted.path)
	assert.Equal(t, "new.pdf", persisted.fileName)
	assert.Equal(t, "application/pdf", persisted.mimeType)
	assert.Equal(t, int64(5), persisted.sizeBytes)
}

func TestReplace_CorruptStoredPathRejected(t *testing.T) {
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return &domain.Attachment{ID: "att-1", TicketID: "ticket-1", Path: "2025//old.txt"}, nil
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	_, err := svc.Replace(context.Background(), admin, "att-1", "new.txt", "text/plain", []byte("fresh"))
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
}

func TestDeleteAttachment(t *testing.T) {
	var deleted string
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return &domain.Attachment{ID: "att-1", TicketID: "ticket-1", Path: "2025/1/2/old.txt"}, nil
		},
		DeleteFunc: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	require.NoError(t, svc.Delete(context.Background(), admin, "att-1"))
	assert.Equal(t, "att-1", deleted)
}

func TestDeleteAttachment_MissingRow(t *testing.T) {
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return nil, pgx.ErrNoRows
		},
	}
	svc, _ := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	admin := staffUser("admin-1", domain.UserRoleAdmin)
	err := svc.Delete(context.Background(), admin, "att-1")
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestLocate(t *testing.T) {
	attachments := &mockAttachmentRepo{
		GetByIDFunc: func(context.Context, string) (*domain.Attachment, error) {
			return &domain.Attachment{ID: "att-1", TicketID: "ticket-1", Path: "2025/1/2/report.pdf"}, nil
		},
	}
	svc, store := newAttachmentService(t, ticketRepoReturning(openTicket(nil)), attachments)

	creator := &domain.User{ID: "creator-1", Role: domain.UserRoleRegular}
	attachment, abs, err := svc.Locate(context.Background(), creator, "att-1")
	require.NoError(t, err)
	assert.Equal(t, "att-1", attachment.ID)
	assert.Equal(t, store.Resolve("2025/1/2/report.pdf"), abs)
}
