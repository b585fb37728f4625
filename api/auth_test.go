package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agendanoir/go-client/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login/access-token", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"), "login is a public endpoint")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada@example.com", body["username"])
		assert.Equal(t, "Sup3rS3cret!", body["password"])

		json.NewEncoder(w).Encode(api.LoginResponse{Token: "token-one"})
	}))
	defer server.Close()

	client := api.New(server.URL, api.WithTokenSource(func() (string, bool) {
		return "stale-token", true
	}))

	token, err := client.Login(context.Background(), "ada@example.com", "Sup3rS3cret!")
	require.NoError(t, err)
	assert.Equal(t, "token-one", token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(api.MessageResponse{Status: 401, Message: "Invalid credentials"})
	}))
	defer server.Close()

	client := api.New(server.URL)

	token, err := client.Login(context.Background(), "ada@example.com", "wrong-password")
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Equal(t, "Invalid credentials", api.ErrorMessage(err))
}

func TestLoginServerDownUsesFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := api.New(server.URL)

	_, err := client.Login(context.Background(), "ada@example.com", "Sup3rS3cret!")
	require.Error(t, err)
	assert.Equal(t, "Login failed.", api.ErrorMessage(err))
}

func TestRegisterValidation(t *testing.T) {
	client := api.New("http://localhost:0")

	tests := []struct {
		name string
		req  api.RegisterRequest
	}{
		{"empty", api.RegisterRequest{}},
		{"bad email", api.RegisterRequest{Username: "ada", Password: "Sup3rS3cret!", Firstname: "Ada", Lastname: "Lovelace"}},
		{"short password", api.RegisterRequest{Username: "ada@example.com", Password: "Ab1!", Firstname: "Ada", Lastname: "Lovelace"}},
		{"no uppercase", api.RegisterRequest{Username: "ada@example.com", Password: "sup3rs3cret!", Firstname: "Ada", Lastname: "Lovelace"}},
		{"no lowercase", api.RegisterRequest{Username: "ada@example.com", Password: "SUP3RS3CRET!", Firstname: "Ada", Lastname: "Lovelace"}},
		{"no digit", api.RegisterRequest{Username: "ada@example.com", Password: "SuperSecret!", Firstname: "Ada", Lastname: "Lovelace"}},
		{"no special character", api.RegisterRequest{Username: "ada@example.com", Password: "Sup3rS3cret", Firstname: "Ada", Lastname: "Lovelace"}},
		{"missing names", api.RegisterRequest{Username: "ada@example.com", Password: "Sup3rS3cret!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Register(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestRegister(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/open", r.URL.Path)
		json.NewEncoder(w).Encode(api.User{UUID: "user-uuid", Username: "ada@example.com"})
	}))
	defer server.Close()

	client := api.New(server.URL)

	user, err := client.Register(context.Background(), api.RegisterRequest{
		Username:  "ada@example.com",
		Password:  "Sup3rS3cret!",
		Firstname: "Ada",
		Lastname:  "Lovelace",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-uuid", user.UUID)
}

func TestRequestPasswordRecovery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/password-recovery/ada@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(api.MessageResponse{Status: 200, Message: "Recovery email sent"})
	}))
	defer server.Close()

	client := api.New(server.URL)

	res, err := client.RequestPasswordRecovery(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Recovery email sent", res.Message)

	_, err = client.RequestPasswordRecovery(context.Background(), "not-an-email")
	assert.Error(t, err)
}

func TestResetPassword(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/reset-password", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "recovery-token", body["token"])
		assert.Equal(t, "N3wS3cret!", body["newPassword"])

		json.NewEncoder(w).Encode(api.MessageResponse{Status: 200, Message: "Password updated"})
	}))
	defer server.Close()

	client := api.New(server.URL)

	res, err := client.ResetPassword(context.Background(), "recovery-token", "N3wS3cret!")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", res.Message)

	_, err = client.ResetPassword(context.Background(), "", "N3wS3cret!")
	assert.Error(t, err)

	_, err = client.ResetPassword(context.Background(), "recovery-token", "weak")
	assert.Error(t, err)
}

func TestVerifyAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/verify-account", r.URL.Path)
		json.NewEncoder(w).Encode(api.MessageResponse{Status: 200, Message: "Account verified"})
	}))
	defer server.Close()

	client := api.New(server.URL)

	res, err := client.VerifyAccount(context.Background(), "verify-token")
	require.NoError(t, err)
	assert.Equal(t, "Account verified", res.Message)

	_, err = client.VerifyAccount(context.Background(), "")
	assert.Error(t, err)
}
