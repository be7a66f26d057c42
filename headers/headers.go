// Package headers defines HTTP header constants used by the Tencent Cloud API.
// This is the single source of truth for header names set on outbound requests.
package headers

const (
	// Action names the API operation being invoked (e.g. GeneralBasicOCR).
	Action = "X-TC-Action"

	// RequestClient identifies the SDK that built the request.
	RequestClient = "X-TC-RequestClient"

	// Timestamp is the unix timestamp (seconds) the request was signed at.
	// It must match the timestamp used in the signature's string to sign.
	Timestamp = "X-TC-Timestamp"

	// Version is the API version of the product (2018-11-19 for OCR).
	Version = "X-TC-Version"

	// Region routes the request to a specific region. Optional for OCR.
	Region = "X-TC-Region"

	// Token carries a temporary security token when using STS credentials.
	Token = "X-TC-Token" //nolint:gosec // This is a header name, not a credential

	// Authorization carries the TC3-HMAC-SHA256 signature.
	Authorization = "Authorization"

	// ContentType is always JSON for the OCR API.
	ContentType = "Content-Type"

	// Traceparent propagates the W3C trace context of the caller.
	Traceparent = "Traceparent"
)
