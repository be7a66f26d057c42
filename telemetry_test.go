package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ocrsdk/tencentocr/headers"
)

func TestTelemetryStageReportsWithoutSecrets(t *testing.T) {
	var (
		entries     []LogEntry
		metrics     []Metric
		seenRequest *UnsignedRequest
		seenStatus  int
	)
	hooks := TelemetryHooks{
		OnHTTPResponse: func(_ context.Context, req *UnsignedRequest, status int, err error, _ time.Duration) {
			seenRequest = req
			seenStatus = status
		},
		OnLogEntry: func(_ context.Context, e LogEntry) { entries = append(entries, e) },
		OnMetric:   func(_ context.Context, m Metric) { metrics = append(metrics, m) },
	}
	transport := NewMockTransport().WithResponse(http.StatusOK, `{}`)
	p := NewPipeline(testSigner(), transport, TelemetryStage(hooks))

	ctx := withRequestID(context.Background(), "req-1")
	req := fixtureRequest()
	if _, err := p.Send(ctx, req); err != nil {
		t.Fatalf("send: %v", err)
	}

	if seenStatus != http.StatusOK {
		t.Fatalf("expected status 200, got %d", seenStatus)
	}
	if seenRequest == nil || seenRequest.Authorization() != "" {
		t.Fatalf("hooks must not see the Authorization header")
	}
	if req.Authorization() == "" {
		t.Fatalf("redaction must not strip the header from the dispatched request")
	}
	if len(entries) != 2 || entries[0].Message != "http_request" || entries[1].Message != "http_response" {
		t.Fatalf("unexpected log entries %+v", entries)
	}
	for _, e := range entries {
		if e.Fields["request_id"] != "req-1" {
			t.Fatalf("expected request id on %s, got %v", e.Message, e.Fields)
		}
		for _, v := range e.Fields {
			if s, ok := v.(string); ok && strings.Contains(s, testSecretKey) {
				t.Fatalf("secret key leaked into log fields")
			}
		}
	}
	if len(metrics) != 1 || metrics[0].Name != "sdk_http_request_latency_ms" || metrics[0].Labels["action"] != "GeneralBasicOCR" {
		t.Fatalf("unexpected metrics %+v", metrics)
	}
}

func TestTelemetryStageLogsFailures(t *testing.T) {
	var entries []LogEntry
	hooks := TelemetryHooks{OnLogEntry: func(_ context.Context, e LogEntry) { entries = append(entries, e) }}
	p := NewPipeline(NewSigner(Credentials{}), NewMockTransport(), TelemetryStage(hooks))

	if _, err := p.Send(context.Background(), fixtureRequest()); err == nil {
		t.Fatalf("expected error")
	}
	last := entries[len(entries)-1]
	if last.Level != LogLevelError || last.Message != "http_request_failed" {
		t.Fatalf("expected error entry, got %+v", last)
	}
}

func TestTelemetryStageDisabledIsPassthrough(t *testing.T) {
	called := false
	next := func(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
		called = true
		return nil, nil
	}
	h := TelemetryStage(TelemetryHooks{})(next)
	_, _ = h(context.Background(), fixtureRequest())
	if !called {
		t.Fatalf("expected next to be called")
	}
}

func TestZerologHooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := ZerologHooks(zerolog.New(&buf))

	hooks.OnLogEntry(context.Background(), LogEntry{
		Level:   LogLevelWarn,
		Message: "dropped images",
		Fields:  map[string]any{"dropped_images": 1},
	})
	hooks.OnMetric(context.Background(), Metric{Name: "latency", Value: 12, Labels: map[string]string{"action": headers.Action}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two log lines, got %q", buf.String())
	}
	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first["level"] != "warn" || first["message"] != "dropped images" || first["dropped_images"] != float64(1) {
		t.Fatalf("unexpected log line %v", first)
	}
	var second map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &second); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if second["metric"] != "latency" || second["value"] != float64(12) || second["level"] != "debug" {
		t.Fatalf("unexpected metric line %v", second)
	}
}

func TestZerologLevelMapping(t *testing.T) {
	cases := map[LogLevel]zerolog.Level{
		LogLevelDebug: zerolog.DebugLevel,
		LogLevelInfo:  zerolog.InfoLevel,
		LogLevelWarn:  zerolog.WarnLevel,
		LogLevelError: zerolog.ErrorLevel,
		"":            zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := zerologLevel(in); got != want {
			t.Fatalf("zerologLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTelemetryHooksNeverSeeSessionToken(t *testing.T) {
	var seen *UnsignedRequest
	hooks := TelemetryHooks{
		OnHTTPResponse: func(_ context.Context, req *UnsignedRequest, _ int, _ error, _ time.Duration) {
			seen = req
		},
	}
	signer := NewSigner(NewCredentials(testSecretID, testSecretKey).WithToken("sts-token-1"))
	transport := NewMockTransport().WithResponse(http.StatusOK, `{}`)
	if _, err := NewPipeline(signer, transport, TelemetryStage(hooks)).Send(context.Background(), fixtureRequest()); err != nil {
		t.Fatalf("send: %v", err)
	}
	if seen == nil || seen.Header.Get(headers.Token) != "" {
		t.Fatalf("hooks must not see the session token")
	}
	if got := transport.Requests()[0].Header.Get(headers.Token); got != "sts-token-1" {
		t.Fatalf("transport must receive the session token, got %q", got)
	}
}
