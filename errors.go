package sdk

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ConfigError reports an invalid client configuration.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string { return "sdk: config: " + e.Reason }

// InvalidImageError reports an image input that cannot be turned into a
// request payload: no image at all, empty data, or an unreadable local file.
type InvalidImageError struct {
	Reason string
	// Path is the local file involved, if any.
	Path  string
	Cause error
}

func (e InvalidImageError) Error() string {
	msg := "sdk: invalid image: " + e.Reason
	if e.Path != "" {
		msg += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e InvalidImageError) Unwrap() error { return e.Cause }

// InvalidRequestError reports a request that cannot be built, such as an empty action.
type InvalidRequestError struct {
	Reason string
}

func (e InvalidRequestError) Error() string { return "sdk: invalid request: " + e.Reason }

// SigningError reports a request that could not be signed. It is always
// returned before any network I/O.
type SigningError struct {
	Reason string
}

func (e SigningError) Error() string { return "sdk: signing: " + e.Reason }

// TransportErrorKind classifies failures returned by the transport.
type TransportErrorKind string

const (
	TransportErrorTimeout  TransportErrorKind = "timeout"
	TransportErrorCanceled TransportErrorKind = "canceled"
	TransportErrorConnect  TransportErrorKind = "connect"
	TransportErrorOther    TransportErrorKind = "other"
)

// TransportError wraps a failure surfaced by the transport collaborator.
// The SDK never retries; the cause is preserved for errors.Is/As.
type TransportError struct {
	Kind    TransportErrorKind
	Message string
	Method  string
	URL     string
	Cause   error
}

func (e TransportError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Method != "" && e.URL != "" {
		msg = fmt.Sprintf("%s %s: %s", e.Method, e.URL, msg)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return fmt.Sprintf("sdk: transport %s: %s", e.Kind, msg)
}

func (e TransportError) Unwrap() error { return e.Cause }

func classifyTransportErrorKind(err error) TransportErrorKind {
	switch {
	case errors.Is(err, context.Canceled):
		return TransportErrorCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return TransportErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TransportErrorTimeout
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return TransportErrorConnect
	}
	return TransportErrorOther
}

// IsSigningError reports whether err is (or wraps) a SigningError.
func IsSigningError(err error) bool {
	var se SigningError
	return errors.As(err, &se)
}

// IsInvalidImage reports whether err is (or wraps) an InvalidImageError.
func IsInvalidImage(err error) bool {
	var ie InvalidImageError
	return errors.As(err, &ie)
}

// IsTransportError reports whether err is (or wraps) a TransportError.
func IsTransportError(err error) bool {
	var te TransportError
	return errors.As(err, &te)
}
