package telemetry

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSetup_NoEndpointIsNoop(t *testing.T) {
	shutdown := Setup(context.Background(), TracingConfig{ServiceName: "test"}, zerolog.Nop())
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown func")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("expected no error from noop shutdown, got %v", err)
	}
}

func TestHandler_ExposesRecordedMetrics(t *testing.T) {
	RecordHTTPRequest(http.MethodGet, "/queue", http.StatusOK, 12*time.Millisecond)
	RecordBackendCall(http.MethodGet, "/api/queue", "ok", 40*time.Millisecond)
	RecordRefresh("queue", "ok")
	RecordPollTick("queue")

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, name := range []string{
		"clinic_console_http_requests_total",
		"clinic_console_backend_calls_total",
		"clinic_console_view_refreshes_total",
		"clinic_console_poll_ticks_total",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in exposition output", name)
		}
	}
}
