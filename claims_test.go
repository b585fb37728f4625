package client_test

import (
	"testing"
	"time"

	client "github.com/agendanoir/go-client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeToken(t *testing.T) {
	userUUID := uuid.NewString()
	expiry := time.Now().Add(time.Hour).Truncate(time.Second)

	token := mintToken("ada@example.com", userUUID, expiry)

	claims, err := client.DecodeToken(token)
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", claims.Subject())
	assert.Equal(t, userUUID, claims.UserUUID)
	assert.Equal(t, expiry.Unix(), claims.Expires().Unix())

	parsed, err := claims.ParseUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userUUID, parsed.String())
}

func TestDecodeTokenMalformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not a token", "definitely-not-a-jwt"},
		{"two segments", "aaaa.bbbb"},
		{"garbage payload", "aaaa.!!!!.cccc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := client.DecodeToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.True(t, client.IsMalformedError(err))
		})
	}
}

func TestDecodeTokenExpiredStillDecodes(t *testing.T) {
	// Decoding performs no validation; expiry is the session's concern.
	token := mintToken("ada@example.com", uuid.NewString(), time.Now().Add(-time.Hour))

	claims, err := client.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Expired(time.Now()))
}

func TestClaimsExpired(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  time.Time
		expired bool
	}{
		{"future expiry", now.Add(time.Minute), false},
		{"past expiry", now.Add(-time.Minute), true},
		{"no expiry claim", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := mintToken("ada@example.com", "", tt.expiry)
			claims, err := client.DecodeToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.expired, claims.Expired(now))
		})
	}
}

func TestClaimsUserID(t *testing.T) {
	withUUID, err := client.DecodeToken(mintToken("ada@example.com", "11111111-2222-3333-4444-555555555555", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", withUUID.UserID())

	withoutUUID, err := client.DecodeToken(mintToken("ada@example.com", "", time.Time{}))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", withoutUUID.UserID())
}
