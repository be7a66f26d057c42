package sdk

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Response is the raw provider response. The SDK does not interpret the
// provider's success or error envelope; callers decode Body themselves.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// RequestID is the SDK-side correlation id also attached to telemetry.
	RequestID string
	// Warnings lists non-fatal adjustments, such as dropped extra images.
	Warnings []string
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if r == nil {
		return errors.New("sdk: nil response")
	}
	if len(r.Body) == 0 {
		return errors.New("sdk: empty response body")
	}
	return json.Unmarshal(r.Body, v)
}
