package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hivedesk/helpdesk/internal/domain"
)

// NotificationWriter persists notification rows and their recipient links.
type NotificationWriter interface {
	CreateNotification(ctx context.Context, notification *domain.Notification) error
	CreateRecipientLink(ctx context.Context, link *domain.RecipientLink) error
}

// UnreadCounter tracks per-user unread counts. Implementations may be
// best-effort; a counter failure never fails a dispatch.
type UnreadCounter interface {
	Increment(ctx context.Context, userID string) error
}

// DispatchError reports which intent of a batch failed to persist. Intents
// persisted before the failing one stay written; the caller's transaction
// boundary decides whether to roll the batch back.
type DispatchError struct {
	IntentIndex int
	Message     domain.NotificationMessage
	Err         error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch intent %d (%s): %v", e.IntentIndex, e.Message, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// Dispatcher records computed notification intents. It decides nothing
// about who is notified; that is the fan-out's job.
type Dispatcher struct {
	store  NotificationWriter
	unread UnreadCounter
	logger *zap.Logger
	now    func() time.Time
}

// NewDispatcher constructs a dispatcher. unread may be nil.
func NewDispatcher(store NotificationWriter, unread UnreadCounter, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		store:  store,
		unread: unread,
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch persists each intent in order: one notification row, then one
// recipient link per distinct recipient. Recipients arrive deduplicated per
// intent from the fan-out; Dispatch guards the invariant anyway so a
// hand-built intent cannot create duplicate links.
func (d *Dispatcher) Dispatch(ctx context.Context, ticketID string, intents []Intent) error {
	for i, intent := range intents {
		notification := &domain.Notification{
			ID:            uuid.NewString(),
			TicketID:      ticketID,
			ResponsibleID: intent.ResponsibleID,
			Message:       intent.Message,
			Read:          false,
			SentAt:        d.now(),
		}
		if err := d.store.CreateNotification(ctx, notification); err != nil {
			return &DispatchError{IntentIndex: i, Message: intent.Message, Err: err}
		}

		for _, recipient := range dedup(intent.Recipients) {
			link := &domain.RecipientLink{
				NotificationID: notification.ID,
				UserID:         recipient,
			}
			if err := d.store.CreateRecipientLink(ctx, link); err != nil {
				return &DispatchError{IntentIndex: i, Message: intent.Message, Err: err}
			}
			if d.unread != nil {
				if err := d.unread.Increment(ctx, recipient); err != nil {
					d.logger.Warn("unread counter increment failed",
						zap.String("user_id", recipient), zap.Error(err))
				}
			}
		}
	}
	return nil
}
