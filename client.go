package sdk

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ocrsdk/tencentocr/routes"
)

// Config wires credentials, endpoint, transport and telemetry for the API client.
type Config struct {
	Credentials Credentials
	// BaseURL overrides routes.BaseURL, mainly for tests.
	BaseURL string
	// HTTPClient sends signed requests. Defaults to http.DefaultClient.
	HTTPClient Transport
	// Region is used when a call's options carry no region.
	Region    string
	Telemetry TelemetryHooks
	// Stages run before signing, in order, after telemetry and tracing.
	Stages []Stage
	// Service overrides the credential scope service (default "ocr").
	Service string
	// Now overrides the clock used for X-TC-Timestamp.
	Now func() time.Time
}

// Client sends OCR requests. It is safe for concurrent use.
type Client struct {
	endpoint  *url.URL
	region    string
	telemetry TelemetryHooks
	pipeline  *Pipeline
	now       func() time.Time
}

// NewClient validates the configuration and returns a ready-to-use Client.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.Credentials.Validate(); err != nil {
		return nil, err
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = routes.BaseURL
	}
	endpoint, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	stages := make([]Stage, 0, len(cfg.Stages)+2)
	stages = append(stages, TelemetryStage(cfg.Telemetry), TraceStage())
	stages = append(stages, cfg.Stages...)

	signer := NewSigner(cfg.Credentials, WithService(cfg.Service))
	return &Client{
		endpoint:  endpoint,
		region:    strings.TrimSpace(cfg.Region),
		telemetry: cfg.Telemetry,
		pipeline:  NewPipeline(signer, cfg.HTTPClient, stages...),
		now:       now,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ConfigError{Reason: "base URL required"}
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, ConfigError{Reason: fmt.Sprintf("invalid base URL: %v", err)}
	}
	if u.Scheme == "" {
		return nil, ConfigError{Reason: "base URL missing scheme (http/https)"}
	}
	if u.Host == "" {
		return nil, ConfigError{Reason: "base URL missing host"}
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	return u, nil
}

// Endpoint returns the URL requests are POSTed to.
func (c *Client) Endpoint() string { return c.endpoint.String() }

// RequestImage is Request with a single image.
func (c *Client) RequestImage(ctx context.Context, action string, image ImageInput, opts Options) (*Response, error) {
	return c.Request(ctx, action, []ImageInput{image}, opts)
}

// Request invokes action with the first of images. Extra images are
// dropped and reported in Response.Warnings. Image, build and signing
// errors are returned before any network I/O.
func (c *Client) Request(ctx context.Context, action string, images []ImageInput, opts Options) (*Response, error) {
	if c == nil || c.pipeline == nil {
		return nil, ConfigError{Reason: "client not initialized"}
	}
	requestID := uuid.NewString()
	ctx = withRequestID(ctx, requestID)

	image, err := NormalizeImages(images)
	if err != nil {
		c.telemetry.log(ctx, LogLevelError, "normalize_image_failed", map[string]any{"error": err.Error()})
		return nil, err
	}
	var warnings []string
	if w := image.Warning(); w != "" {
		warnings = append(warnings, w)
		c.telemetry.log(ctx, LogLevelWarn, w, map[string]any{"dropped_images": image.Dropped})
	}

	req, err := BuildRequest(c.endpoint, action, image, c.withDefaultRegion(opts), c.now())
	if err != nil {
		return nil, err
	}

	resp, err := c.pipeline.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	//nolint:errcheck // best-effort cleanup on return
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, TransportError{
			Kind:    classifyTransportErrorKind(err),
			Message: "read response body",
			Method:  req.Method,
			URL:     req.URL(),
			Cause:   err,
		}
	}
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		RequestID:  requestID,
		Warnings:   warnings,
	}, nil
}

func (c *Client) withDefaultRegion(opts Options) Options {
	if c.region == "" {
		return opts
	}
	if _, routing := SplitOptions(opts); routing.Region != "" {
		return opts
	}
	merged := make(Options, len(opts)+1)
	for k, v := range opts {
		merged[k] = v
	}
	merged["region"] = c.region
	return merged
}
