package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveOperationCountsByResult(t *testing.T) {
	before := testutil.ToFloat64(singleton().operations.WithLabelValues("reorder", ResultError))

	ObserveOperation("reorder", time.Now(), errors.New("boom"))
	ObserveOperation("reorder", time.Now(), nil)

	after := testutil.ToFloat64(singleton().operations.WithLabelValues("reorder", ResultError))
	if after-before != 1 {
		t.Fatalf("expected one error observation, got %v", after-before)
	}
}

func TestHandlerExposesCollectors(t *testing.T) {
	IncEvent("countries.stage.reordered")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "stage_sequencer_events_total") {
		t.Fatal("expected events counter in exposition")
	}
}
