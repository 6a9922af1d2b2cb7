package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRegistration(t *testing.T) {
	before := testutil.ToFloat64(registrations.WithLabelValues(OutcomeSuccess))
	ObserveRegistration("")
	assert.Equal(t, before+1, testutil.ToFloat64(registrations.WithLabelValues(OutcomeSuccess)))

	beforeCap := testutil.ToFloat64(registrations.WithLabelValues("CapacityExceeded"))
	ObserveRegistration("CapacityExceeded")
	assert.Equal(t, beforeCap+1, testutil.ToFloat64(registrations.WithLabelValues("CapacityExceeded")))
}

func TestAddUnresolvedEmails(t *testing.T) {
	before := testutil.ToFloat64(unresolvedEmails)
	AddUnresolvedEmails(2)
	AddUnresolvedEmails(0)
	assert.Equal(t, before+2, testutil.ToFloat64(unresolvedEmails))
}

func TestHandlerExposesCollectors(t *testing.T) {
	ObserveRequest(http.MethodGet, "/health", http.StatusOK, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "karyasetu_http_requests_total")
	assert.Contains(t, body, `route="/health"`)
	assert.Contains(t, body, "karyasetu_http_request_duration_seconds")
}
