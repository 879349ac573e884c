package domain

import "time"

// Attachment references a file stored under the media root. Path is always
// relative to that root and must match an existing file whenever the row
// exists.
type Attachment struct {
	ID        string
	TicketID  string
	Path      string
	FileName  string
	MimeType  string
	SizeBytes int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
