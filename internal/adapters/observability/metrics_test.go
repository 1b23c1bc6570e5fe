package observability_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"hotels_xml/internal/adapters/observability"
)

func TestPush_DeliversRegistryToGateway(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the pushed families are non-empty
	observability.ObserveExternal("fetch", "example.test", 200, 12*time.Millisecond)
	observability.ObserveDiagnostic("Error")
	observability.ObserveConverted(3)

	var gotJob, gotMethod string
	var body []byte
	r := chi.NewRouter()
	r.Put("/metrics/job/{job}", func(w http.ResponseWriter, req *http.Request) {
		gotJob = chi.URLParam(req, "job")
		gotMethod = req.Method
		body, _ = io.ReadAll(req.Body)
		w.WriteHeader(http.StatusOK)
	})
	ts := httptest.NewServer(r)
	defer ts.Close()

	if err := observability.Push(context.Background(), reg, ts.URL, "hotels_xml"); err != nil {
		t.Fatalf("push: %v", err)
	}
	if gotJob != "hotels_xml" || gotMethod != http.MethodPut {
		t.Fatalf("unexpected push target: job=%q method=%q", gotJob, gotMethod)
	}
	// default push format is delimited protobuf, metric names appear as raw bytes
	for _, name := range []string{"hotels_external_requests_total", "hotels_validation_diagnostics_total", "hotels_converted_total"} {
		if !bytes.Contains(body, []byte(name)) {
			t.Fatalf("expected %s in pushed payload", name)
		}
	}
}

func TestPush_DisabledWithoutURL(t *testing.T) {
	if err := observability.Push(context.Background(), observability.InitRegistry(), "", "job"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}

func TestPush_GatewayErrorIsReturned(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	err := observability.Push(context.Background(), observability.InitRegistry(), ts.URL, "job")
	if err == nil || !strings.Contains(err.Error(), "push metrics") {
		t.Fatalf("expected wrapped push error, got %v", err)
	}
}

func TestObserveDiagnostic_CountsBySeverity(t *testing.T) {
	before := testutil.ToFloat64(observability.ValidationDiagnostics.WithLabelValues("Warning"))
	observability.ObserveDiagnostic("Warning")
	observability.ObserveDiagnostic("Warning")
	after := testutil.ToFloat64(observability.ValidationDiagnostics.WithLabelValues("Warning"))
	if after-before != 2 {
		t.Fatalf("expected +2 warnings, got %v", after-before)
	}
}

func TestNewLogger_LevelFallback(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLoggerTo(&buf, "prod", "nonsense")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Fatalf("expected warn-level logger, got %q", out)
	}
}
