package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_Counters(t *testing.T) {
	c := NewCollector("gaia_test", prometheus.NewRegistry())

	c.RecordAPIRequest("/api/soil", "GET", "200")
	c.RecordAPIRequest("/api/soil", "GET", "200")
	c.RecordDomainResponse("soil", true)
	c.RecordFallback("soil", "upstream_status")
	c.RecordUpstreamError("soilgrids", "status_500")

	if got := testutil.ToFloat64(c.APIRequestsTotal.WithLabelValues("/api/soil", "GET", "200")); got != 2 {
		t.Errorf("api_requests_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.DomainResponsesTotal.WithLabelValues("soil", "simulated")); got != 1 {
		t.Errorf("domain_responses_total{simulated} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.FallbacksTotal.WithLabelValues("soil", "upstream_status")); got != 1 {
		t.Errorf("domain_fallbacks_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.UpstreamErrorsTotal.WithLabelValues("soilgrids", "status_500")); got != 1 {
		t.Errorf("upstream_errors_total = %v, want 1", got)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	// Two collectors on separate registries must not collide.
	NewCollector("gaia_test", prometheus.NewRegistry())
	NewCollector("gaia_test", prometheus.NewRegistry())
}

func TestTimer_ObserveDuration(t *testing.T) {
	c := NewCollector("gaia_test", prometheus.NewRegistry())
	timer := c.NewTimer(c.AssessmentDuration)
	time.Sleep(time.Millisecond)
	if d := timer.ObserveDuration(); d <= 0 {
		t.Errorf("duration = %v, want > 0", d)
	}
	if n := testutil.CollectAndCount(c.AssessmentDuration); n != 1 {
		t.Errorf("collected %d series, want 1", n)
	}
}
