package sdk

import (
	"errors"
	"strings"
	"unicode"
)

// Credentials is a Tencent Cloud SecretId/SecretKey pair, optionally with
// an STS session token.
//
// The value is immutable once constructed. Its String, GoString and JSON
// forms never contain the secret key or the token.
type Credentials struct {
	secretID  string
	secretKey string
	token     string
}

// NewCredentials captures a SecretId/SecretKey pair. It does not validate;
// signing fails with a SigningError when either part is empty or malformed.
func NewCredentials(secretID, secretKey string) Credentials {
	return Credentials{secretID: strings.TrimSpace(secretID), secretKey: strings.TrimSpace(secretKey)}
}

// WithToken returns a copy carrying a temporary STS session token. The
// signer sends it as X-TC-Token.
func (c Credentials) WithToken(token string) Credentials {
	c.token = strings.TrimSpace(token)
	return c
}

// HasToken reports whether a session token is attached.
func (c Credentials) HasToken() bool { return c.token != "" }

// SecretID returns the public half of the pair.
func (c Credentials) SecretID() string { return c.secretID }

// IsZero reports whether both parts are empty.
func (c Credentials) IsZero() bool { return c.secretID == "" && c.secretKey == "" }

// Validate checks that both parts are present and safe to place in a header.
func (c Credentials) Validate() error {
	if c.secretID == "" {
		return SigningError{Reason: "secret id is required"}
	}
	if c.secretKey == "" {
		return SigningError{Reason: "secret key is required"}
	}
	if strings.ContainsAny(c.secretID, "/,;") || strings.IndexFunc(c.secretID, isSpaceOrControl) >= 0 {
		return SigningError{Reason: "secret id contains characters not allowed in a credential scope"}
	}
	if strings.IndexFunc(c.secretKey, unicode.IsControl) >= 0 {
		return SigningError{Reason: "secret key contains control characters"}
	}
	if strings.IndexFunc(c.token, unicode.IsControl) >= 0 {
		return SigningError{Reason: "session token contains control characters"}
	}
	return nil
}

func (c Credentials) String() string {
	if c.secretID == "" {
		return "Credentials{}"
	}
	if c.token != "" {
		return "Credentials{SecretID: " + c.secretID + ", SecretKey: <redacted>, Token: <redacted>}"
	}
	return "Credentials{SecretID: " + c.secretID + ", SecretKey: <redacted>}"
}

func (c Credentials) GoString() string { return c.String() }

// MarshalJSON refuses to serialize credentials.
func (c Credentials) MarshalJSON() ([]byte, error) {
	return nil, errors.New("sdk: credentials are not serializable")
}

func isSpaceOrControl(r rune) bool {
	return unicode.IsSpace(r) || unicode.IsControl(r)
}
