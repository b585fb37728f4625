package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// TokenClaims carries the fields the client reads out of a bearer
// token: the subject (username), the custom userUuid claim, and the
// standard expiry.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserUUID string `json:"userUuid,omitempty"`
}

// Subject returns the subject claim, the human-readable username.
func (c *TokenClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the userUuid claim, falling back to the subject.
func (c *TokenClaims) UserID() string {
	if c.UserUUID != "" {
		return c.UserUUID
	}
	return c.RegisteredClaims.Subject
}

// ParseUserUUID parses the userUuid claim as a UUID.
func (c *TokenClaims) ParseUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserUUID)
}

// Expires returns the expiration time, zero when the claim is absent.
func (c *TokenClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// Expired reports whether the exp claim is in the past at the given
// instant. Tokens without an exp claim never expire client-side.
func (c *TokenClaims) Expired(now time.Time) bool {
	if c.RegisteredClaims.ExpiresAt == nil {
		return false
	}
	return c.RegisteredClaims.ExpiresAt.Time.Before(now)
}

// DecodeToken extracts claims from a token string without contacting
// the network and without verifying the signature. The claims are
// trusted for display and UX gating only; authorization of
// consequence is enforced server-side.
//
// Malformed input yields ErrTokenMalformed, never a panic.
func DecodeToken(token string) (*TokenClaims, error) {
	claims := &TokenClaims{}

	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, goerrors.Wrap(err, ErrTokenMalformed.Category, ErrTokenMalformed.Message).
			WithTextCode(ErrTokenMalformed.TextCode)
	}

	return claims, nil
}
