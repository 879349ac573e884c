package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hivedesk/helpdesk/internal/cache"
	"github.com/hivedesk/helpdesk/internal/config"
	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/events"
	"github.com/hivedesk/helpdesk/internal/notify"
	"github.com/hivedesk/helpdesk/internal/observability"
	"github.com/hivedesk/helpdesk/internal/repository"
)

// NotificationService runs the operator-transition fan-out and serves each
// user's notification inbox.
type NotificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	dispatcher    *notify.Dispatcher
	unread        *cache.UnreadCache
	metrics       *observability.Metrics
	logger        *zap.Logger
	cfg           config.NotificationConfig
}

// NotificationDependencies bundles collaborators. Metrics may be nil.
type NotificationDependencies struct {
	NotificationRepo repository.NotificationRepository
	UserRepo         repository.UserRepository
	Unread           *cache.UnreadCache
	Metrics          *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		notifications: deps.NotificationRepo,
		users:         deps.UserRepo,
		dispatcher:    notify.NewDispatcher(deps.NotificationRepo, deps.Unread, logger),
		unread:        deps.Unread,
		metrics:       deps.Metrics,
		logger:        logger,
		cfg:           cfg,
	}
}

// staffRoster adapts the user repository to the fan-out's roster capability.
type staffRoster struct {
	users repository.UserRepository
}

func (r staffRoster) OperatorsAndAdmins(ctx context.Context) ([]string, error) {
	staff, err := r.users.ListByRoles(ctx, domain.UserRoleOperator, domain.UserRoleAdmin)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(staff))
	for i := range staff {
		ids = append(ids, staff[i].ID)
	}
	return ids, nil
}

// NotifyOperatorChange computes and persists the notifications for one
// operator transition. The ticket carries the post-edit operator; the caller
// supplies the pre-edit value. A dispatch failure is returned so the
// enclosing edit does not report success.
func (s *NotificationService) NotifyOperatorChange(ctx context.Context, ticket *domain.Ticket, oldOperator *string, editorID string) error {
	intents, err := notify.Fanout(ctx, ticket, oldOperator, editorID, staffRoster{users: s.users})
	if err != nil {
		return err
	}
	if len(intents) == 0 {
		return nil
	}
	if err := s.dispatcher.Dispatch(ctx, ticket.ID, intents); err != nil {
		s.logger.Error("notification dispatch failed",
			zap.String("ticket_id", ticket.ID), zap.Error(err))
		return err
	}
	for _, intent := range intents {
		s.metrics.RecordNotification(string(intent.Message))
	}
	return nil
}

// ListForUser returns a page of the user's inbox.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, limit, offset int) ([]repository.UserNotification, error) {
	return s.notifications.ListForUser(ctx, userID, limit, offset)
}

// MarkRead flags one recipient link read and drops the cached unread count.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notifications.MarkRead(ctx, notificationID, userID); err != nil {
		return err
	}
	if err := s.unread.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("unread counter invalidation failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return nil
}

// UnreadCount serves the badge counter, preferring the cache.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok := s.unread.Get(ctx, userID); ok {
		return count, nil
	}
	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.unread.Set(ctx, userID, count); err != nil {
		s.logger.Warn("unread counter cache set failed",
			zap.String("user_id", userID), zap.Error(err))
	}
	return count, nil
}

// RegisterHandlers subscribes webhook/log listeners to ticket events.
func (s *NotificationService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventTicketCreated, s.handleTicketEvent)
	dispatcher.Subscribe(events.EventTicketStatusChanged, s.handleTicketEvent)
	dispatcher.Subscribe(events.EventTicketOperatorChanged, s.handleTicketEvent)
	dispatcher.Subscribe(events.EventAttachmentStored, s.handleTicketEvent)
}

func (s *NotificationService) handleTicketEvent(ctx context.Context, event events.Event) error {
	s.metrics.RecordEvent(string(event.Type))
	s.logger.Info(string(event.Type),
		zap.String("ticket_id", event.TicketID),
		zap.Any("payload", event.Payload))
	s.sendWebhookStub(ctx, event)
	return nil
}

func (s *NotificationService) sendWebhookStub(_ context.Context, event events.Event) {
	if s.cfg.WebhookURL == "" {
		return
	}
	s.logger.Debug("sendWebhookStub",
		zap.String("url", s.cfg.WebhookURL),
		zap.String("ticket_id", event.TicketID),
		zap.String("event_type", string(event.Type)))
}
