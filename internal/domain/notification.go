package domain

import "time"

// NotificationMessage selects the rendered text for a notification. The core
// never templates text; callers localize from the enum value.
type NotificationMessage string

const (
	MessageTicketUnassigned    NotificationMessage = "TICKET_UNASSIGNED"
	MessageTicketAssigned      NotificationMessage = "TICKET_ASSIGNED"
	MessageTicketAssignedToYou NotificationMessage = "TICKET_ASSIGNED_TO_YOU"
)

// Notification is one persisted notification record. ResponsibleID is the
// user whose edit triggered it. Immutable after creation except the read
// flag, which downstream delivery code owns.
type Notification struct {
	ID            string
	TicketID      string
	ResponsibleID string
	Message       NotificationMessage
	Read          bool
	SentAt        time.Time
}

// RecipientLink joins a notification to one user who should see it.
// (NotificationID, UserID) is unique; the same user may hold links against
// two different notifications from the same ticket edit.
type RecipientLink struct {
	NotificationID string
	UserID         string
	Read           bool
}
