package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New("herptracker")

	m.RecordMutation("feeding", "create")
	m.RecordMutation("feeding", "create")
	m.RecordMutation("cleaning", "delete")
	m.ExportBuilt(12)
	m.ObserveRequest(http.MethodGet, "/api/reptile/{id}", 200, 5*time.Millisecond)

	if got := testutil.ToFloat64(m.mutations.WithLabelValues("feeding", "create")); got != 2 {
		t.Fatalf("feeding creates: %v", got)
	}
	if got := testutil.ToFloat64(m.exportRow); got != 12 {
		t.Fatalf("export rows: %v", got)
	}
	if got := testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/reptile/{id}", "200")); got != 1 {
		t.Fatalf("requests: %v", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "herptracker_record_mutations_total") {
		t.Fatalf("missing mutation metric in output")
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.RecordMutation("feeding", "create")
	m.ExportBuilt(1)
	m.ObserveRequest("GET", "/", 200, time.Second)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: %d", rec.Code)
	}
}
