package worker

import (
	"github.com/hivedesk/helpdesk/internal/events"
	"github.com/hivedesk/helpdesk/internal/service"
)

// StartNotificationWorker attaches the notification service's event
// listeners to the dispatcher.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers(dispatcher)
}
