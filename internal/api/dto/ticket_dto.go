package dto

import (
	"time"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// CreateTicketRequest payload for ticket creation.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest payload for ticket edits. Omitted fields stay as they
// are; "operator_id": null with "set_operator": true clears the assignment.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Status      *domain.TicketStatus   `json:"status"`
	OperatorID  *string                `json:"operator_id"`
	SetOperator bool                   `json:"set_operator"`
}

// AssignTicketRequest payload for the assignment endpoint.
type AssignTicketRequest struct {
	OperatorID string `json:"operator_id"`
}

// TicketSummary response shape.
type TicketSummary struct {
	ID          string                `json:"id"`
	CreatorID   string                `json:"creator_id"`
	OperatorID  *string               `json:"operator_id,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Status      domain.TicketStatus   `json:"status"`
	Priority    domain.TicketPriority `json:"priority"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
	ClosedAt    *time.Time            `json:"closed_at,omitempty"`
}
