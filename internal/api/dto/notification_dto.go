package dto

import (
	"time"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// NotificationItem is one inbox entry: the notification plus the caller's
// own read flag.
type NotificationItem struct {
	ID            string                     `json:"id"`
	TicketID      string                     `json:"ticket_id"`
	ResponsibleID string                     `json:"responsible_id"`
	Message       domain.NotificationMessage `json:"message"`
	Read          bool                       `json:"read"`
	SentAt        time.Time                  `json:"sent_at"`
}
