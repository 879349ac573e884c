package dto

import "time"

// AttachmentSummary response shape.
type AttachmentSummary struct {
	ID        string    `json:"id"`
	TicketID  string    `json:"ticket_id"`
	Path      string    `json:"path"`
	FileName  string    `json:"file_name"`
	MimeType  string    `json:"mime_type"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
