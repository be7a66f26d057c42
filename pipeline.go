package sdk

import (
	"bytes"
	"context"
	"errors"
	"net/http"
)

// Transport sends a signed request. *http.Client satisfies it; retries,
// timeouts and connection reuse belong to the transport.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Handler sends a request and returns the raw response.
type Handler func(ctx context.Context, req *UnsignedRequest) (*http.Response, error)

// Stage wraps the next handler. Stages may add headers, observe the call or
// fail it; they run outermost-first in the order given to NewPipeline.
type Stage func(next Handler) Handler

// Pipeline is an ordered chain of stages ending in signing and dispatch.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	stages    []Stage
	signer    *Signer
	transport Transport
}

// NewPipeline builds a pipeline that runs stages in order, signs the request,
// then hands it to transport. A nil transport uses http.DefaultClient.
func NewPipeline(signer *Signer, transport Transport, stages ...Stage) *Pipeline {
	if transport == nil {
		transport = http.DefaultClient
	}
	return &Pipeline{
		stages:    append([]Stage(nil), stages...),
		signer:    signer,
		transport: transport,
	}
}

// With returns a copy of the pipeline with extra stages appended after the
// existing ones (still before signing).
func (p *Pipeline) With(stages ...Stage) *Pipeline {
	combined := make([]Stage, 0, len(p.stages)+len(stages))
	combined = append(combined, p.stages...)
	combined = append(combined, stages...)
	return &Pipeline{stages: combined, signer: p.signer, transport: p.transport}
}

// Send runs req through the chain. Errors from stages that are not already
// SDK errors are reported as TransportError.
func (p *Pipeline) Send(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
	if req == nil {
		return nil, InvalidRequestError{Reason: "request is nil"}
	}
	resp, err := p.handler()(ctx, req)
	if err != nil {
		return nil, asPipelineError(err, req)
	}
	return resp, nil
}

func (p *Pipeline) handler() Handler {
	h := dispatch(p.transport)
	h = SigningStage(p.signer)(h)
	for i := len(p.stages) - 1; i >= 0; i-- {
		if p.stages[i] == nil {
			continue
		}
		h = p.stages[i](h)
	}
	return h
}

func dispatch(transport Transport) Handler {
	return func(ctx context.Context, req *UnsignedRequest) (*http.Response, error) {
		httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(), bytes.NewReader(req.Body))
		if err != nil {
			return nil, TransportError{Kind: TransportErrorOther, Message: "build http request", Method: req.Method, URL: req.URL(), Cause: err}
		}
		// Share the signed header map; the transport sends exactly what was signed.
		httpReq.Header = req.Header
		httpReq.Host = req.Host

		resp, err := transport.Do(httpReq)
		if err != nil {
			return nil, TransportError{
				Kind:    classifyTransportErrorKind(err),
				Message: "request failed",
				Method:  req.Method,
				URL:     req.URL(),
				Cause:   err,
			}
		}
		if resp == nil {
			return nil, TransportError{Kind: TransportErrorOther, Message: "transport returned no response", Method: req.Method, URL: req.URL()}
		}
		return resp, nil
	}
}

func asPipelineError(err error, req *UnsignedRequest) error {
	var (
		se SigningError
		te TransportError
		ie InvalidImageError
		re InvalidRequestError
	)
	switch {
	case errors.As(err, &se), errors.As(err, &te), errors.As(err, &ie), errors.As(err, &re):
		return err
	}
	return TransportError{
		Kind:    classifyTransportErrorKind(err),
		Message: "pipeline stage failed",
		Method:  req.Method,
		URL:     req.URL(),
		Cause:   err,
	}
}
