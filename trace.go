package sdk

import (
	"context"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/trace"

	"github.com/ocrsdk/tencentocr/headers"
)

// TraceStage propagates the caller's span as a W3C Traceparent header.
// Because it runs before signing, the header is covered by the signature.
func TraceStage() Stage {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
			injectTraceparent(ctx, req)
			return next(ctx, req)
		}
	}
}

func injectTraceparent(ctx context.Context, req *UnsignedRequest) {
	span := trace.SpanFromContext(ctx)
	sc := span.SpanContext()
	if !sc.IsValid() {
		return
	}
	traceparent := fmt.Sprintf("00-%s-%s-%s", sc.TraceID().String(), sc.SpanID().String(), sc.TraceFlags().String())
	req.Header.Set(headers.Traceparent, traceparent)
}
