package client

import (
	"context"
	"fmt"
	"time"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStore persists the bearer token across application restarts.
type TokenStore interface {
	// Read returns the stored token, or false if none exists.
	Read() (string, bool)
	// Write stores the token with the expiry and security attributes
	// configured at construction time.
	Write(token string)
	// Delete removes the stored token. Deleting an absent token is
	// not an error.
	Delete()
}

// AuthorityResolver translates a user identifier into the flattened,
// deduplicated set of permission names granted through the user's
// roles. Callers must only invoke Resolve with a present, unexpired
// token and a non-empty user identifier.
type AuthorityResolver interface {
	Resolve(ctx context.Context, token, userUUID string) (AuthoritySet, error)
}

// LoginService is the external login endpoint. A successful call
// returns the issued bearer token.
type LoginService interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Config holds session options
type Config interface {
	GetAPIBaseURL() string
	GetCookieName() string
	GetCookieTTL() time.Duration
	GetLoginRoute() string
	GetRejectedRouteKey() string
	GetRejectedRouteDefault() string
	IsProduction() bool
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] SESSION "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] SESSION "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] SESSION "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] SESSION "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
