package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPipelineHooks(t *testing.T) {
	m := New()
	h := m.Pipeline()
	ctx := context.Background()

	h.OnBuildStart(ctx, 10)
	h.OnBuildComplete(ctx, 8, 2, time.Millisecond)
	h.OnNormalizeStart(ctx, 8)
	h.OnNormalizeComplete(ctx, 5, 3, time.Millisecond, nil)
	h.OnNormalizeStart(ctx, 8)
	h.OnNormalizeComplete(ctx, 0, 0, time.Millisecond, errors.New("cycle"))

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"build runs", testutil.ToFloat64(m.stageRuns.WithLabelValues("build")), 1},
		{"normalize runs", testutil.ToFloat64(m.stageRuns.WithLabelValues("normalize")), 2},
		{"normalize errors", testutil.ToFloat64(m.stageErrors.WithLabelValues("normalize")), 1},
		{"excluded links", testutil.ToFloat64(m.excludedLinks), 2},
		{"pruned nodes", testutil.ToFloat64(m.prunedNodes), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestHTTPHooks(t *testing.T) {
	m := New()
	h := m.HTTP()
	ctx := context.Background()

	h.OnRequest(ctx, "POST", "/v1/tree/normalize")
	h.OnResponse(ctx, "POST", "/v1/tree/normalize", 200, 5*time.Millisecond)
	h.OnResponse(ctx, "POST", "/v1/tree/normalize", 400, time.Millisecond)

	if got := testutil.ToFloat64(m.requests.WithLabelValues("POST", "/v1/tree/normalize", "200")); got != 1 {
		t.Errorf("requests{200} = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.requests); got != 2 {
		t.Errorf("request series = %d, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Pipeline().OnBuildStart(context.Background(), 1)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`epicroadmap_pipeline_stage_runs_total{stage="build"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNewIsolatedRegistries(t *testing.T) {
	a, b := New(), New()
	a.Pipeline().OnBuildStart(context.Background(), 1)
	if got := testutil.ToFloat64(b.stageRuns.WithLabelValues("build")); got != 0 {
		t.Errorf("second registry saw %v build runs, want 0", got)
	}
}
