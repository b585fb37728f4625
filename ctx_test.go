package client_test

import (
	"context"
	"testing"

	client "github.com/agendanoir/go-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionContextRoundTrip(t *testing.T) {
	manager := client.NewSessionManager(client.NewMemoryTokenStore(), &MockLoginService{}, &MockAuthorityResolver{})

	ctx := client.WithContext(context.Background(), manager)

	found, ok := client.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, manager, found)
}

func TestFromContextMissing(t *testing.T) {
	found, ok := client.FromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, found)
}
