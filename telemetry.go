package sdk

import (
	"context"
	"net/http"
	"time"

	"github.com/ocrsdk/tencentocr/headers"
)

// TelemetryHooks expose observability callbacks without forcing dependencies on the caller.
// Hooks never receive credentials or the Authorization value: the telemetry
// stage runs before signing.
type TelemetryHooks struct {
	// OnHTTPRequest fires before the request enters the rest of the pipeline.
	OnHTTPRequest func(ctx context.Context, req *UnsignedRequest)
	// OnHTTPResponse fires after the request completes (even when err != nil).
	OnHTTPResponse func(ctx context.Context, req *UnsignedRequest, status int, err error, latency time.Duration)
	// OnLogEntry allows callers to capture SDK log events (info/warn/errors).
	OnLogEntry func(ctx context.Context, entry LogEntry)
	// OnMetric records lightweight counters/gauges for observability dashboards.
	OnMetric func(ctx context.Context, metric Metric)
}

// LogLevel encodes the severity for log hooks.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LogEntry captures structured log details for SDK consumers.
type LogEntry struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// Metric represents a single observability datapoint.
type Metric struct {
	Name   string
	Value  float64
	Labels map[string]string
}

func (t TelemetryHooks) enabled() bool {
	return t.OnHTTPRequest != nil || t.OnHTTPResponse != nil || t.OnLogEntry != nil || t.OnMetric != nil
}

func (t TelemetryHooks) log(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	if t.OnLogEntry == nil {
		return
	}
	if id := RequestIDFromContext(ctx); id != "" {
		if fields == nil {
			fields = make(map[string]any, 1)
		}
		fields["request_id"] = id
	}
	t.OnLogEntry(ctx, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (t TelemetryHooks) metric(ctx context.Context, name string, value float64, labels map[string]string) {
	if t.OnMetric == nil {
		return
	}
	t.OnMetric(ctx, Metric{Name: name, Value: value, Labels: labels})
}

// TelemetryStage reports each call to hooks. Install it before any stage
// whose latency should be measured.
func TelemetryStage(hooks TelemetryHooks) Stage {
	return func(next Handler) Handler {
		if !hooks.enabled() {
			return next
		}
		return func(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
			action := req.Header.Get(headers.Action)
			if hooks.OnHTTPRequest != nil {
				hooks.OnHTTPRequest(ctx, req)
			}
			hooks.log(ctx, LogLevelInfo, "http_request", map[string]any{
				"method": req.Method,
				"url":    req.URL(),
				"action": action,
			})

			start := time.Now()
			resp, err := next(ctx, req)
			latency := time.Since(start)

			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			if hooks.OnHTTPResponse != nil {
				hooks.OnHTTPResponse(ctx, redactedView(req), status, err, latency)
			}
			if err != nil {
				hooks.log(ctx, LogLevelError, "http_request_failed", map[string]any{
					"action": action,
					"error":  err.Error(),
				})
			} else {
				hooks.log(ctx, LogLevelInfo, "http_response", map[string]any{
					"action": action,
					"status": status,
				})
			}
			hooks.metric(ctx, "sdk_http_request_latency_ms", float64(latency.Milliseconds()), map[string]string{
				"action": action,
			})
			return resp, err
		}
	}
}

// redactedView copies req for hooks that fire after signing, minus
// Authorization and the session token.
func redactedView(req *UnsignedRequest) *UnsignedRequest {
	view := *req
	view.Header = req.Header.Clone()
	view.Header.Del(headers.Authorization)
	view.Header.Del(headers.Token)
	return &view
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the SDK correlation id attached to ctx by Client.Request.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}
