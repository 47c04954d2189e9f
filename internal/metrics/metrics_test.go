package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/casevalue/internal/model"
)

func TestMetrics_ObserveEstimate(t *testing.T) {
	m := New()

	m.ObserveEstimate(model.CaseMedical, model.ValuationResult{
		Value: 240000,
		CapsApplied: []model.CapApplication{
			{Target: model.CapTargetNonEconomic},
		},
	})
	m.ObserveEstimate(model.CaseMedical, model.ValuationResult{
		Warnings: []model.Warning{{Code: model.WarnFaultThresholdBar}},
	})
	m.EstimateFailed(model.CaseMotor, OutcomeNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.estimates.WithLabelValues("medical", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.estimates.WithLabelValues("medical", OutcomeBarred)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.estimates.WithLabelValues("motor", OutcomeNotFound)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.capsApplied.WithLabelValues("non_economic")))
}

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.CacheLookup(true)
	m.CacheLookup(false)
	m.CacheLookup(false)
	m.ShareDecoded("expired")
	m.Narrative("openai", errors.New("timeout"))
	m.RateLimited()
	m.ObserveHTTP("/v1/valuations", "POST", 200, 12*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shareDecodes.WithLabelValues("expired")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.narratives.WithLabelValues("openai", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rateLimited))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/v1/valuations", "POST", "200")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.RateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), "casevalue_http_rate_limited_total 1")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveEstimate(model.CaseMotor, model.ValuationResult{})
	m.EstimateFailed(model.CaseMotor, OutcomeInvalid)
	m.CacheLookup(true)
	m.ShareDecoded("live")
	m.Narrative("ollama", nil)
	m.ObserveHTTP("/", "GET", 200, time.Second)
	m.RateLimited()
	assert.Nil(t, m.Registry())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 404, rec.Code)
}
