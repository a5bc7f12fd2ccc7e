//go:build unit
// +build unit

package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsm34/FlowRisk/internal/pkg/testutil"
)

func scrape(t *testing.T, tel *Telemetry) string {
	t.Helper()

	rec := httptest.NewRecorder()
	tel.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestTelemetry_RecordRun(t *testing.T) {
	tel, err := NewTelemetry(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })

	tel.RecordRun(context.Background(), "job_loss", "success", 150*time.Millisecond)
	tel.RecordRun(context.Background(), "job_loss", "success", 50*time.Millisecond)

	out := scrape(t, tel)
	assert.Contains(t, out, "flowrisk_runs_total")
	assert.Contains(t, out, `scenario_type="job_loss"`)
	assert.Contains(t, out, `outcome="success"`)
	assert.Contains(t, out, "flowrisk_run_duration_seconds_bucket")
}

func TestTelemetry_RecordHTTPRequest(t *testing.T) {
	tel, err := NewTelemetry(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = tel.Shutdown(context.Background()) })

	tel.RecordHTTPRequest(context.Background(), http.MethodGet, "/health", http.StatusOK)

	out := scrape(t, tel)
	assert.Contains(t, out, "flowrisk_http_requests_total")
	assert.Contains(t, out, `route="/health"`)
	assert.Contains(t, out, `status="200"`)
}

func TestTelemetry_PrivateRegistries(t *testing.T) {
	first, err := NewTelemetry(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	second, err := NewTelemetry(testutil.SetupTestLogger(t))
	require.NoError(t, err)

	first.RecordRun(context.Background(), "baseline", "failure", time.Second)

	assert.Contains(t, scrape(t, first), `outcome="failure"`)
	assert.NotContains(t, scrape(t, second), `outcome="failure"`)
}
