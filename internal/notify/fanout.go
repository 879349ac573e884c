package notify

import (
	"context"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// RosterLookup resolves the users who hear about an unassignment. It is the
// only external capability the fan-out needs, and it is consulted solely on
// the unassignment path.
type RosterLookup interface {
	// OperatorsAndAdmins returns the identifiers of every user whose role
	// is OPERATOR or ADMIN.
	OperatorsAndAdmins(ctx context.Context) ([]string, error)
}

// Intent describes one notification to create plus its recipient set,
// prior to persistence.
type Intent struct {
	Message       domain.NotificationMessage
	ResponsibleID string
	Recipients    []string
}

// Fanout computes the notification intents for one ticket edit. The ticket
// carries the post-edit operator in its OperatorID field; oldOperator is the
// value before the edit. Recipient sets are deduplicated per intent only:
// the same user can appear in both intents of an assignment and will then
// receive two recipient links.
//
// Old-operator identifiers are included verbatim when present, even when
// equal to the new operator or the creator, and even when they are sentinel
// or unresolvable values; validating them is the caller's concern.
func Fanout(ctx context.Context, ticket *domain.Ticket, oldOperator *string, editorID string, roster RosterLookup) ([]Intent, error) {
	switch Classify(oldOperator, ticket.OperatorID) {
	case TransitionUnassigned:
		staff, err := roster.OperatorsAndAdmins(ctx)
		if err != nil {
			return nil, err
		}
		recipients := make([]string, 0, len(staff)+1)
		recipients = append(recipients, ticket.CreatorID)
		recipients = append(recipients, staff...)
		return []Intent{{
			Message:       domain.MessageTicketUnassigned,
			ResponsibleID: editorID,
			Recipients:    dedup(recipients),
		}}, nil

	case TransitionAssignedFirst, TransitionReassigned:
		operator := *ticket.OperatorID
		broad := []string{ticket.CreatorID}
		if oldOperator != nil {
			broad = append(broad, *oldOperator)
		}
		return []Intent{
			{
				Message:       domain.MessageTicketAssignedToYou,
				ResponsibleID: operator,
				Recipients:    []string{operator},
			},
			{
				Message:       domain.MessageTicketAssigned,
				ResponsibleID: operator,
				Recipients:    dedup(broad),
			},
		}, nil

	default:
		return nil, nil
	}
}

// dedup removes duplicate identifiers preserving first-seen order.
func dedup(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
