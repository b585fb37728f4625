package api

import (
	"context"
	"net/http"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	goerrors "github.com/goliatone/go-errors"
)

// passwordRules mirror the server's password policy so the UI can
// reject bad input before a round trip.
var passwordRules = []validation.Rule{
	validation.Required,
	validation.Length(8, 0).Error("password must be at least 8 characters"),
	validation.Match(regexp.MustCompile(`[A-Z]`)).Error("must contain at least one uppercase letter"),
	validation.Match(regexp.MustCompile(`[a-z]`)).Error("must contain at least one lowercase letter"),
	validation.Match(regexp.MustCompile(`[0-9]`)).Error("must contain at least one number"),
	validation.Match(regexp.MustCompile(`[@#$%!^&*]`)).Error("must contain at least one special character"),
}

func validationError(err error) error {
	if err == nil {
		return nil
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid request payload").
		WithCode(goerrors.CodeBadRequest)
}

// LoginResponse carries the bearer token issued on a successful
// login.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. Non-2xx responses
// surface the server's {message} as the error detail.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var out LoginResponse
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/login/access-token",
		body:    body,
		out:     &out,
		public:  true,
		failMsg: "Login failed.",
	})
	if err != nil {
		return "", err
	}

	return out.Token, nil
}

// RegisterRequest is the open-registration payload.
type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (r RegisterRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, is.EmailFormat),
		validation.Field(&r.Password, passwordRules...),
		validation.Field(&r.Firstname, validation.Required),
		validation.Field(&r.Lastname, validation.Required),
	))
}

// Register creates a new account through the open registration
// endpoint. The account still needs verification before login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out User
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/register/open",
		body:    req,
		out:     &out,
		public:  true,
		failMsg: "User registration failed.",
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// RequestPasswordRecovery asks the server to start password recovery
// for the given username.
func (c *Client) RequestPasswordRecovery(ctx context.Context, username string) (*MessageResponse, error) {
	if err := validationError(validation.Validate(username, validation.Required, is.EmailFormat)); err != nil {
		return nil, err
	}

	var out MessageResponse
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/password-recovery/" + url.PathEscape(username),
		out:     &out,
		public:  true,
		failMsg: "Password recovery request failed.",
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// ResetPassword finalizes a password recovery using the token the
// server mailed out.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*MessageResponse, error) {
	if err := validationError(validation.Errors{
		"token":       validation.Validate(token, validation.Required),
		"newPassword": validation.Validate(newPassword, passwordRules...),
	}.Filter()); err != nil {
		return nil, err
	}

	body := struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}{token, newPassword}

	var out MessageResponse
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/reset-password",
		body:    body,
		out:     &out,
		public:  true,
		failMsg: "Password reset after recovery failed.",
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}

// VerifyAccount redeems an account verification token.
func (c *Client) VerifyAccount(ctx context.Context, token string) (*MessageResponse, error) {
	if err := validationError(validation.Validate(token, validation.Required)); err != nil {
		return nil, err
	}

	body := struct {
		Token string `json:"token"`
	}{token}

	var out MessageResponse
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/auth/verify-account",
		body:    body,
		out:     &out,
		public:  true,
		failMsg: "Verification account failed.",
	})
	if err != nil {
		return nil, err
	}

	return &out, nil
}
