package sdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ocrsdk/tencentocr/headers"
	"github.com/ocrsdk/tencentocr/routes"
)

// RequestClient is the X-TC-RequestClient value identifying this SDK.
const RequestClient = "TencentOCR_Go_SDK_" + Version

const contentTypeJSON = "application/json; charset=utf-8"

// Options are per-request parameters. Every key is forwarded verbatim into
// the JSON body except the routing keys "region"/"Region" and
// "version"/"Version", which become headers instead.
type Options map[string]any

// Routing is the metadata extracted from Options.
type Routing struct {
	Region  string
	Version string
}

// SplitOptions separates routing keys from body fields. The lower-case
// spelling wins when both casings are present; both are always stripped.
func SplitOptions(opts Options) (map[string]any, Routing) {
	body := make(map[string]any, len(opts))
	for k, v := range opts {
		body[k] = v
	}
	routing := Routing{
		Region:  firstOption(opts, "region", "Region"),
		Version: firstOption(opts, "version", "Version"),
	}
	for _, k := range []string{"region", "Region", "version", "Version"} {
		delete(body, k)
	}
	return body, routing
}

// firstOption returns the value of the first key present with a non-nil
// value. A present but empty lower-case key still shadows its capitalized
// spelling.
func firstOption(opts Options, keys ...string) string {
	for _, k := range keys {
		if v, ok := opts[k]; ok && v != nil {
			return optionString(v)
		}
	}
	return ""
}

func optionString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// ActionName upper-cases the first letter of an action ("generalBasicOCR" -> "GeneralBasicOCR").
func ActionName(action string) string {
	action = strings.TrimSpace(action)
	r, size := utf8.DecodeRuneInString(action)
	if r == utf8.RuneError {
		return action
	}
	return string(unicode.ToUpper(r)) + action[size:]
}

// BuildRequest assembles the unsigned POST for action against endpoint.
// The image field always wins over a same-named option; any option naming
// the other image field is dropped so exactly one image is sent.
func BuildRequest(endpoint *url.URL, action string, image NormalizedImage, opts Options, now time.Time) (*UnsignedRequest, error) {
	if endpoint == nil || endpoint.Host == "" {
		return nil, InvalidRequestError{Reason: "endpoint host is required"}
	}
	action = ActionName(action)
	if action == "" {
		return nil, InvalidRequestError{Reason: "action is required"}
	}
	if image.Field == "" || image.Value == "" {
		return nil, InvalidImageError{Reason: "no image supplied"}
	}

	body, routing := SplitOptions(opts)
	delete(body, string(ImageFieldURL))
	delete(body, string(ImageFieldBase64))
	body[string(image.Field)] = image.Value

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, InvalidRequestError{Reason: fmt.Sprintf("encode body: %v", err)}
	}

	version := routing.Version
	if version == "" {
		version = routes.DefaultVersion
	}
	ts := now.Unix()

	h := make(http.Header)
	h.Set(headers.ContentType, contentTypeJSON)
	h.Set(headers.Action, action)
	h.Set(headers.RequestClient, RequestClient)
	h.Set(headers.Timestamp, strconv.FormatInt(ts, 10))
	h.Set(headers.Version, version)
	if routing.Region != "" {
		h.Set(headers.Region, routing.Region)
	}

	return &UnsignedRequest{
		Method:    http.MethodPost,
		Scheme:    endpoint.Scheme,
		Host:      endpoint.Host,
		Path:      endpoint.Path,
		Header:    h,
		Body:      encoded,
		Timestamp: ts,
	}, nil
}
