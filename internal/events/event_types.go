package events

import (
	"time"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated         EventType = "ticket_created"
	EventTicketStatusChanged   EventType = "ticket_status_changed"
	EventTicketOperatorChanged EventType = "ticket_operator_changed"
	EventAttachmentStored      EventType = "attachment_stored"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Priority domain.TicketPriority `json:"priority"`
	Title    string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketOperatorChangedPayload carries the operator field before and after
// the edit; either side may be nil.
type TicketOperatorChangedPayload struct {
	OldOperatorID *string `json:"old_operator_id,omitempty"`
	NewOperatorID *string `json:"new_operator_id,omitempty"`
}

// AttachmentStoredPayload payload.
type AttachmentStoredPayload struct {
	AttachmentID string `json:"attachment_id"`
	Path         string `json:"path"`
}
