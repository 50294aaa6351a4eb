package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveValidation(t *testing.T) {
	c := NewCollector("")

	c.ObserveValidation(false, []string{"missing-security-scan", "missing-access-control"}, time.Millisecond)
	c.ObserveValidation(false, []string{"missing-security-scan"}, time.Millisecond)
	c.ObserveValidation(true, nil, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.validations.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.validations.WithLabelValues("passed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.findings.WithLabelValues("missing-security-scan")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.findings.WithLabelValues("missing-access-control")))
}

func TestObservePersistenceError(t *testing.T) {
	c := NewCollector("test")
	c.ObservePersistenceError()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.persistenceErrors))
}

func TestHandler(t *testing.T) {
	c := NewCollector("")
	c.ObserveRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `devsecquest_http_requests_total{code="200",method="GET",route="/health"} 1`), body)
}

func TestRegistryCountsSeries(t *testing.T) {
	c := NewCollector("")
	c.ObserveValidation(false, []string{"exposed-credentials", "missing-security-scan"}, time.Millisecond)
	c.ObserveValidation(true, nil, time.Millisecond)

	n, err := testutil.GatherAndCount(c.Registry(),
		"devsecquest_validations_total",
		"devsecquest_findings_total",
		"devsecquest_validation_duration_seconds",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}
