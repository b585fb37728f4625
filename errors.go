package client

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeTokenExpired   = "TOKEN_EXPIRED"
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	TextCodeLoginFailed    = "LOGIN_FAILED"
)

// ErrTokenExpired is returned when a decoded token's exp claim is in
// the past. The session treats it as an implicit logout.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token cannot be decoded. It is
// never surfaced to the UI; malformed tokens degrade to no identity.
var ErrTokenMalformed = goerrors.New("authentication token malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// NewLoginError wraps the human-readable message extracted from a
// failed login response. Login is the only session operation that
// propagates errors to its caller.
func NewLoginError(message string) *goerrors.Error {
	if message == "" {
		message = "Login failed."
	}
	return goerrors.New(message, goerrors.CategoryAuth).
		WithTextCode(TextCodeLoginFailed).
		WithCode(goerrors.CodeUnauthorized)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTokenMalformed {
		return true
	}

	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
