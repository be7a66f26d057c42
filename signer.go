package sdk

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ocrsdk/tencentocr/headers"
	"github.com/ocrsdk/tencentocr/routes"
)

// TC3 signature constants.
const (
	// SigningAlgorithm identifies the Tencent Cloud v3 signature.
	SigningAlgorithm = "TC3-HMAC-SHA256"

	signingKeyPrefix = "TC3"
	scopeTerminator  = "tc3_request"
	scopeDateFormat  = "2006-01-02"
)

// UnsignedRequest is everything the signature covers. Headers must not be
// changed once the request is signed.
type UnsignedRequest struct {
	Method string
	Scheme string
	Host   string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
	// Timestamp is unix seconds; it must equal the X-TC-Timestamp header.
	Timestamp int64
}

// URL returns the absolute request URL.
func (r *UnsignedRequest) URL() string {
	scheme := r.Scheme
	if scheme == "" {
		scheme = "https"
	}
	u := url.URL{Scheme: scheme, Host: r.Host, Path: canonicalURI(r.Path)}
	if len(r.Query) > 0 {
		u.RawQuery = r.Query.Encode()
	}
	return u.String()
}

// Authorization returns the signature header, or "" before signing.
func (r *UnsignedRequest) Authorization() string {
	if r.Header == nil {
		return ""
	}
	return r.Header.Get(headers.Authorization)
}

// Signer computes TC3-HMAC-SHA256 Authorization values. It holds only
// immutable credentials and is safe for concurrent use.
type Signer struct {
	creds   Credentials
	service string
}

// SignerOption customizes a Signer.
type SignerOption func(*Signer)

// WithService overrides the service bound into the credential scope (default "ocr").
func WithService(service string) SignerOption {
	return func(s *Signer) {
		if service = strings.TrimSpace(service); service != "" {
			s.service = service
		}
	}
}

// NewSigner binds credentials to a signer. Credentials are checked on every
// Sign call so a misconfigured signer fails before any request is sent.
func NewSigner(creds Credentials, opts ...SignerOption) *Signer {
	s := &Signer{creds: creds, service: routes.Service}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Service returns the service bound into the credential scope.
func (s *Signer) Service() string { return s.service }

// Sign returns the Authorization value for req without modifying it.
func (s *Signer) Sign(req *UnsignedRequest) (string, error) {
	if s == nil {
		return "", SigningError{Reason: "signer not initialized"}
	}
	if err := s.creds.Validate(); err != nil {
		return "", err
	}
	if err := validateForSigning(req); err != nil {
		return "", err
	}
	canonical, signedHeaders := CanonicalRequest(req)
	scope := CredentialScope(req.Timestamp, s.service)
	toSign := StringToSign(req.Timestamp, scope, canonical)
	key := deriveSigningKey(s.creds.secretKey, scopeDate(req.Timestamp), s.service)
	signature := hex.EncodeToString(hmacSHA256(key, toSign))
	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		SigningAlgorithm, s.creds.secretID, scope, signedHeaders, signature), nil
}

// SignRequest computes the signature and sets the Authorization header on req in place.
// When the credentials carry a session token, X-TC-Token is set first so the
// signature covers it.
func (s *Signer) SignRequest(req *UnsignedRequest) error {
	if s != nil && req != nil && req.Header != nil && s.creds.token != "" {
		req.Header.Set(headers.Token, s.creds.token)
	}
	auth, err := s.Sign(req)
	if err != nil {
		return err
	}
	req.Header.Set(headers.Authorization, auth)
	return nil
}

// Verify recomputes the signature over req and compares it to authorization
// in constant time. Any change to a signed header, the body, or the
// timestamp makes verification fail.
func (s *Signer) Verify(req *UnsignedRequest, authorization string) bool {
	if req == nil || authorization == "" {
		return false
	}
	// The Authorization header is excluded from the canonical form, so the
	// request may be verified with or without it attached.
	expected, err := s.Sign(req)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(authorization))
}

func validateForSigning(req *UnsignedRequest) error {
	if req == nil {
		return SigningError{Reason: "request is nil"}
	}
	if req.Timestamp <= 0 {
		return SigningError{Reason: "request timestamp is required"}
	}
	if strings.TrimSpace(req.Host) == "" {
		return SigningError{Reason: "request host is required"}
	}
	if req.Header == nil {
		return SigningError{Reason: "request headers are required"}
	}
	if ts := req.Header.Get(headers.Timestamp); ts != "" && ts != strconv.FormatInt(req.Timestamp, 10) {
		return SigningError{Reason: fmt.Sprintf("%s header %q does not match request timestamp %d", headers.Timestamp, ts, req.Timestamp)}
	}
	return nil
}

// CanonicalRequest serializes req the way the Tencent gateway reconstructs it:
//
//	METHOD\nURI\nQUERY\nHEADERS\nSIGNED_HEADERS\nhex(sha256(body))
//
// It also returns the semicolon-joined list of signed header names.
func CanonicalRequest(req *UnsignedRequest) (string, string) {
	canonicalHeaders, signedHeaders := canonicalHeaderBlock(req)
	var b strings.Builder
	b.WriteString(strings.ToUpper(strings.TrimSpace(req.Method)))
	b.WriteByte('\n')
	b.WriteString(canonicalURI(req.Path))
	b.WriteByte('\n')
	b.WriteString(canonicalQuery(req.Query))
	b.WriteByte('\n')
	b.WriteString(canonicalHeaders)
	b.WriteByte('\n')
	b.WriteString(signedHeaders)
	b.WriteByte('\n')
	b.WriteString(sha256Hex(req.Body))
	return b.String(), signedHeaders
}

// CredentialScope binds a signature to a UTC date and service.
func CredentialScope(timestamp int64, service string) string {
	return scopeDate(timestamp) + "/" + service + "/" + scopeTerminator
}

// StringToSign assembles the value the derived key signs.
func StringToSign(timestamp int64, scope, canonicalRequest string) string {
	return SigningAlgorithm + "\n" +
		strconv.FormatInt(timestamp, 10) + "\n" +
		scope + "\n" +
		sha256Hex([]byte(canonicalRequest))
}

func canonicalURI(path string) string {
	if path == "" {
		return "/"
	}
	if !strings.HasPrefix(path, "/") {
		return "/" + path
	}
	return path
}

func canonicalQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	sorted := make(url.Values, len(q))
	for k, vs := range q {
		cp := append([]string(nil), vs...)
		sort.Strings(cp)
		sorted[k] = cp
	}
	// Encode sorts by key.
	return sorted.Encode()
}

// canonicalHeaderBlock lower-cases and sorts header names, trims and
// lower-cases values, and always includes host. Authorization is excluded.
func canonicalHeaderBlock(req *UnsignedRequest) (string, string) {
	merged := make(map[string][]string, len(req.Header)+1)
	for name, values := range req.Header {
		lname := strings.ToLower(strings.TrimSpace(name))
		if lname == "" || lname == "authorization" {
			continue
		}
		for _, v := range values {
			// The gateway lower-cases values too, so signatures are blind to value case.
			merged[lname] = append(merged[lname], strings.ToLower(strings.TrimSpace(v)))
		}
	}
	if _, ok := merged["host"]; !ok {
		merged["host"] = []string{strings.ToLower(strings.TrimSpace(req.Host))}
	}

	names := make([]string, 0, len(merged))
	for name := range merged {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(strings.Join(merged[name], ","))
		b.WriteByte('\n')
	}
	return b.String(), strings.Join(names, ";")
}

func deriveSigningKey(secretKey, date, service string) []byte {
	secretDate := hmacSHA256([]byte(signingKeyPrefix+secretKey), date)
	secretService := hmacSHA256(secretDate, service)
	return hmacSHA256(secretService, scopeTerminator)
}

func scopeDate(timestamp int64) string {
	return time.Unix(timestamp, 0).UTC().Format(scopeDateFormat)
}

func hmacSHA256(key []byte, data string) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(data))
	return mac.Sum(nil)
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
