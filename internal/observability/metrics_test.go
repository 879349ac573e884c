package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordRequest("/tickets", "POST", 201, 5*time.Millisecond)
	metrics.RecordRequest("/tickets", "POST", 201, 7*time.Millisecond)
	metrics.RecordError("/tickets/1", "PATCH", "FORBIDDEN")
	metrics.RecordEvent("ticket_operator_changed")
	metrics.RecordNotification("TICKET_ASSIGNED")
	metrics.RecordNotification("TICKET_ASSIGNED")
	metrics.RecordNotification("TICKET_ASSIGNED_TO_YOU")

	snapshot := metrics.Snapshot()
	assert.Equal(t, int64(2), snapshot.Requests["/tickets|POST|201"])
	assert.Equal(t, int64(1), snapshot.Errors["/tickets/1|PATCH|FORBIDDEN"])
	assert.Equal(t, int64(1), snapshot.Events["ticket_operator_changed"])
	assert.Equal(t, int64(2), snapshot.Notifications["TICKET_ASSIGNED"])
	assert.Equal(t, int64(1), snapshot.Notifications["TICKET_ASSIGNED_TO_YOU"])
}

func TestMetricsNilSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/tickets", "GET", 200, time.Millisecond)
	metrics.RecordError("/tickets", "GET", "INTERNAL_ERROR")
	metrics.RecordEvent("ticket_created")
	metrics.RecordNotification("TICKET_UNASSIGNED")

	snapshot := metrics.Snapshot()
	assert.Empty(t, snapshot.Requests)
	assert.Empty(t, snapshot.Notifications)
}

func TestMetricsSnapshotIsCopy(t *testing.T) {
	metrics := NewMetrics()
	metrics.RecordNotification("TICKET_ASSIGNED")

	snapshot := metrics.Snapshot()
	snapshot.Notifications["TICKET_ASSIGNED"] = 99

	assert.Equal(t, int64(1), metrics.Snapshot().Notifications["TICKET_ASSIGNED"])
}
