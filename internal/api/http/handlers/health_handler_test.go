package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hivedesk/helpdesk/internal/observability"
	"github.com/hivedesk/helpdesk/internal/persistence"
)

func TestHealthReady_ReportsMediaRootSeparately(t *testing.T) {
	// Unconfigured pool and client fail their pings; the media root is fine.
	handler := NewHealthHandler("helpdesk", "test",
		&persistence.Postgres{}, &persistence.Redis{}, t.TempDir(), observability.NewMetrics())

	app := fiber.New()
	app.Get("/health/ready", handler.Ready)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))

	assert.Equal(t, "ok", body.Error.Details["media"])
	assert.NotEqual(t, "ok", body.Error.Details["postgres"])
	assert.NotEqual(t, "ok", body.Error.Details["redis"])
}

func TestHealthReady_UnwritableMediaRoot(t *testing.T) {
	// A regular file where the media root should be cannot hold uploads.
	blocked := filepath.Join(t.TempDir(), "media")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	handler := NewHealthHandler("helpdesk", "test",
		&persistence.Postgres{}, &persistence.Redis{}, blocked, observability.NewMetrics())

	app := fiber.New()
	app.Get("/health/ready", handler.Ready)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	var body struct {
		Error struct {
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.NotEqual(t, "ok", body.Error.Details["media"])
}

func TestHealthMetricsEndpoint(t *testing.T) {
	metrics := observability.NewMetrics()
	metrics.RecordNotification("TICKET_ASSIGNED")

	handler := NewHealthHandler("helpdesk", "test",
		&persistence.Postgres{}, &persistence.Redis{}, t.TempDir(), metrics)

	app := fiber.New()
	app.Get("/health/metrics", handler.Metrics)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data observability.MetricsSnapshot `json:"data"`
	}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(1), body.Data.Notifications["TICKET_ASSIGNED"])
}
