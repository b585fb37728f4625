package api

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// User is the account shape returned by the user endpoints.
type User struct {
	ID                           int64  `json:"id"`
	UUID                         string `json:"uuid"`
	Username                     string `json:"username"`
	Firstname                    string `json:"firstname"`
	Lastname                     string `json:"lastname"`
	Enabled                      bool   `json:"enabled"`
	Verified                     bool   `json:"verified"`
	Deleted                      bool   `json:"isDeleted"`
	LoginConsecutiveFailAttempts int    `json:"loginConsecutiveFailAttempts"`
}

// UserUpdate carries the patchable account fields. Nil fields are
// left unchanged by the server.
type UserUpdate struct {
	Username  *string `json:"username,omitempty"`
	Firstname *string `json:"firstname,omitempty"`
	Lastname  *string `json:"lastname,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

// ChangePasswordRequest changes the caller's own password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (r ChangePasswordRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.OldPassword, validation.Required),
		validation.Field(&r.NewPassword, passwordRules...),
	))
}

// GetUser fetches a single user by UUID.
func (c *Client) GetUser(ctx context.Context, userUUID string) (*User, error) {
	var out User
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    "/users/" + userUUID,
		out:     &out,
		failMsg: "Fetch user details failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers fetches one page of users. Pages are one-based.
func (c *Client) ListUsers(ctx context.Context, page, size int) (*Paginated[User], error) {
	var out Paginated[User]
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/users/filtered",
		body:    pageRequest{Page: page - 1, Size: size},
		out:     &out,
		failMsg: "Fetch users details failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUser creates an account on behalf of another user. Requires
// the CREATE_USER authority server-side.
func (c *Client) CreateUser(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out User
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/users",
		body:    req,
		out:     &out,
		failMsg: "User creation failed.",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser patches the given account.
func (c *Client) UpdateUser(ctx context.Context, userUUID string, update UserUpdate) (*User, error) {
	var out User
	err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    "/users/" + userUUID,
		body:    update,
		out:     &out,
		failMsg: "User update failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateUser soft-deletes the given account.
func (c *Client) DeactivateUser(ctx context.Context, userUUID string) error {
	return c.do(ctx, request{
		method:  http.MethodDelete,
		path:    "/users/" + userUUID,
		failMsg: "User's account deactivation failed",
	})
}

// ChangePassword changes the authenticated user's own password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) (*MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out MessageResponse
	err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    "/users/me/change-password",
		body:    req,
		out:     &out,
		failMsg: "Password change failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserRoles fetches the roles assigned to a user. The session
// core's authority resolver consumes the same endpoint.
func (c *Client) GetUserRoles(ctx context.Context, userUUID string) ([]Role, error) {
	var out []Role
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/users/%s/roles", userUUID),
		out:     &out,
		failMsg: "Fetch user roles failed",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SetUserRoles replaces the role assignment of a user.
func (c *Client) SetUserRoles(ctx context.Context, userUUID string, roleNames []string) ([]Role, error) {
	body := struct {
		RoleNames []string `json:"roleNames"`
	}{roleNames}

	var out []Role
	err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    fmt.Sprintf("/users/%s/roles", userUUID),
		body:    body,
		out:     &out,
		failMsg: "Update user roles failed",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
