package handlers

import (
	"io"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/hivedesk/helpdesk/internal/api/dto"
	"github.com/hivedesk/helpdesk/internal/auth"
	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/service"
	apperrors "github.com/hivedesk/helpdesk/pkg/util"
)

// AttachmentsHandler manages attachment endpoints.
type AttachmentsHandler struct {
	service        *service.AttachmentService
	maxUploadBytes int64
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService, maxUploadBytes int64) *AttachmentsHandler {
	return &AttachmentsHandler{service: attachmentService, maxUploadBytes: maxUploadBytes}
}

// Upload POST /tickets/:id/attachments (multipart, field "file").
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	fileName, mimeType, content, err := h.readUpload(c)
	if err != nil {
		return err
	}

	attachment, err := h.service.Upload(c.Context(), principal.User, c.Params("id"), fileName, mimeType, content)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": attachmentSummary(attachment)})
}

// Replace PUT /attachments/:id (multipart, field "file").
func (h *AttachmentsHandler) Replace(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}

	fileName, mimeType, content, err := h.readUpload(c)
	if err != nil {
		return err
	}

	attachment, err := h.service.Replace(c.Context(), principal.User, c.Params("id"), fileName, mimeType, content)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": attachmentSummary(attachment)})
}

// Delete DELETE /attachments/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.service.Delete(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// List GET /tickets/:id/attachments.
func (h *AttachmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	attachments, err := h.service.ListByTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentSummary, 0, len(attachments))
	for i := range attachments {
		items = append(items, attachmentSummary(&attachments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Download GET /attachments/:id/content.
func (h *AttachmentsHandler) Download(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	attachment, location, err := h.service.Locate(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set("Content-Type", attachment.MimeType)
	return c.SendFile(location)
}

func (h *AttachmentsHandler) readUpload(c *fiber.Ctx) (fileName, mimeType string, content []byte, err error) {
	header, err := c.FormFile("file")
	if err != nil {
		return "", "", nil, apperrors.NewValidationError("file field required", nil)
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		return "", "", nil, apperrors.NewValidationError("file too large", map[string]any{
			"max_bytes": h.maxUploadBytes,
		})
	}

	file, err := header.Open()
	if err != nil {
		return "", "", nil, apperrors.NewInternalError(err)
	}
	defer file.Close()

	content, err = io.ReadAll(file)
	if err != nil {
		return "", "", nil, apperrors.NewInternalError(err)
	}
	return header.Filename, header.Header.Get("Content-Type"), content, nil
}

func attachmentSummary(attachment *domain.Attachment) dto.AttachmentSummary {
	return dto.AttachmentSummary{
		ID:        attachment.ID,
		TicketID:  attachment.TicketID,
		Path:      attachment.Path,
		FileName:  attachment.FileName,
		MimeType:  attachment.MimeType,
		SizeBytes: attachment.SizeBytes,
		CreatedAt: attachment.CreatedAt,
	}
}
