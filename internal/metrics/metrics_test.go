package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSubmission(t *testing.T) {
	m := New()

	m.ObserveSubmission("success", 20*time.Millisecond)
	m.ObserveSubmission("server_error", time.Millisecond)
	m.ObserveSubmission("success", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("server_error")))
}

func TestObserveDispatch(t *testing.T) {
	m := New()

	m.ObserveDispatch("map", "opened")
	m.ObserveDispatch("map", "skipped")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("map", "opened")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dispatches.WithLabelValues("map", "skipped")))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveSubmission("network_error", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `contact_submissions_total{outcome="network_error"} 1`)
	assert.Contains(t, string(body), "contact_submission_duration_seconds_count 1")
}
