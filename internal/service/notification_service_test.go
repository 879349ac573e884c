package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hivedesk/helpdesk/internal/config"
	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/notify"
	"github.com/hivedesk/helpdesk/internal/observability"
	"github.com/hivedesk/helpdesk/internal/repository"
)

func newNotificationService(notifRepo *mockNotificationRepo, userRepo *mockUserRepo) *NotificationService {
	return NewNotificationService(NotificationDependencies{
		NotificationRepo: notifRepo,
		UserRepo:         userRepo,
	}, zap.NewNop(), config.NotificationConfig{})
}

func TestNotifyOperatorChange_Assignment(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	userRepo := &mockUserRepo{
		ListByRolesFunc: func(context.Context, ...domain.UserRole) ([]domain.User, error) {
			t.Fatal("roster must not be consulted for assignments")
			return nil, nil
		},
	}
	svc := newNotificationService(notifRepo, userRepo)

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1", OperatorID: strPtr("op-2")}
	err := svc.NotifyOperatorChange(context.Background(), ticket, strPtr("op-1"), "admin-1")
	require.NoError(t, err)

	require.Len(t, notifRepo.notifications, 2)
	assert.Equal(t, domain.MessageTicketAssignedToYou, notifRepo.notifications[0].Message)
	assert.Equal(t, domain.MessageTicketAssigned, notifRepo.notifications[1].Message)

	require.Len(t, notifRepo.links, 3)
	assert.Equal(t, "op-2", notifRepo.links[0].UserID)
	assert.Equal(t, "creator-1", notifRepo.links[1].UserID)
	assert.Equal(t, "op-1", notifRepo.links[2].UserID)
}

func TestNotifyOperatorChange_UnassignmentUsesStaffRoster(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	var rolesAsked []domain.UserRole
	userRepo := &mockUserRepo{
		ListByRolesFunc: func(_ context.Context, roles ...domain.UserRole) ([]domain.User, error) {
			rolesAsked = roles
			return []domain.User{
				{ID: "op-1", Role: domain.UserRoleOperator},
				{ID: "admin-1", Role: domain.UserRoleAdmin},
			}, nil
		},
	}
	svc := newNotificationService(notifRepo, userRepo)

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1", OperatorID: nil}
	err := svc.NotifyOperatorChange(context.Background(), ticket, strPtr("op-1"), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, []domain.UserRole{domain.UserRoleOperator, domain.UserRoleAdmin}, rolesAsked)

	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, domain.MessageTicketUnassigned, notifRepo.notifications[0].Message)
	assert.Equal(t, "admin-1", notifRepo.notifications[0].ResponsibleID)

	require.Len(t, notifRepo.links, 3)
	assert.Equal(t, "creator-1", notifRepo.links[0].UserID)
	assert.Equal(t, "op-1", notifRepo.links[1].UserID)
	assert.Equal(t, "admin-1", notifRepo.links[2].UserID)
}

func TestNotifyOperatorChange_CountsDispatchedMessages(t *testing.T) {
	metrics := observability.NewMetrics()
	svc := NewNotificationService(NotificationDependencies{
		NotificationRepo: &mockNotificationRepo{},
		UserRepo:         &mockUserRepo{},
		Metrics:          metrics,
	}, zap.NewNop(), config.NotificationConfig{})

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1", OperatorID: strPtr("op-1")}
	require.NoError(t, svc.NotifyOperatorChange(context.Background(), ticket, nil, "admin-1"))

	snapshot := metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.Notifications[string(domain.MessageTicketAssignedToYou)])
	assert.Equal(t, int64(1), snapshot.Notifications[string(domain.MessageTicketAssigned)])
}

func TestNotifyOperatorChange_NoOpWritesNothing(t *testing.T) {
	notifRepo := &mockNotificationRepo{}
	svc := newNotificationService(notifRepo, &mockUserRepo{})

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1", OperatorID: nil}
	err := svc.NotifyOperatorChange(context.Background(), ticket, nil, "editor-1")
	require.NoError(t, err)
	assert.Empty(t, notifRepo.notifications)
	assert.Empty(t, notifRepo.links)
}

func TestNotifyOperatorChange_RosterErrorPropagates(t *testing.T) {
	rosterErr := errors.New("query timeout")
	userRepo := &mockUserRepo{
		ListByRolesFunc: func(context.Context, ...domain.UserRole) ([]domain.User, error) {
			return nil, rosterErr
		},
	}
	svc := newNotificationService(&mockNotificationRepo{}, userRepo)

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1"}
	err := svc.NotifyOperatorChange(context.Background(), ticket, strPtr("op-1"), "editor-1")
	assert.ErrorIs(t, err, rosterErr)
}

func TestNotifyOperatorChange_DispatchFailurePropagates(t *testing.T) {
	writeErr := errors.New("insert failed")
	notifRepo := &mockNotificationRepo{
		CreateNotificationFunc: func(context.Context, *domain.Notification) error {
			return writeErr
		},
	}
	svc := newNotificationService(notifRepo, &mockUserRepo{})

	ticket := &domain.Ticket{ID: "ticket-1", CreatorID: "creator-1", OperatorID: strPtr("op-1")}
	err := svc.NotifyOperatorChange(context.Background(), ticket, nil, "admin-1")
	require.Error(t, err)

	var dispatchErr *notify.DispatchError
	require.ErrorAs(t, err, &dispatchErr)
	assert.Equal(t, 0, dispatchErr.IntentIndex)
}

func TestMarkRead(t *testing.T) {
	var marked [2]string
	notifRepo := &mockNotificationRepo{
		MarkReadFunc: func(_ context.Context, notificationID, userID string) error {
			marked = [2]string{notificationID, userID}
			return nil
		},
	}
	svc := newNotificationService(notifRepo, &mockUserRepo{})

	require.NoError(t, svc.MarkRead(context.Background(), "notif-1", "user-1"))
	assert.Equal(t, [2]string{"notif-1", "user-1"}, marked)
}

func TestUnreadCount_FallsBackToDatabase(t *testing.T) {
	notifRepo := &mockNotificationRepo{
		CountUnreadFunc: func(_ context.Context, userID string) (int64, error) {
			assert.Equal(t, "user-1", userID)
			return 4, nil
		},
	}
	svc := newNotificationService(notifRepo, &mockUserRepo{})

	count, err := svc.UnreadCount(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestListForUser(t *testing.T) {
	now := time.Now()
	notifRepo := &mockNotificationRepo{
		ListForUserFunc: func(_ context.Context, userID string, limit, offset int) ([]repository.UserNotification, error) {
			assert.Equal(t, "user-1", userID)
			assert.Equal(t, 20, limit)
			assert.Equal(t, 0, offset)
			return []repository.UserNotification{
				{Notification: domain.Notification{ID: "notif-1", SentAt: now}, RecipientRead: false},
			}, nil
		},
	}
	svc := newNotificationService(notifRepo, &mockUserRepo{})

	page, err := svc.ListForUser(context.Background(), "user-1", 20, 0)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "notif-1", page[0].ID)
}
