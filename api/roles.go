package api

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Permission is a grantable capability. Name is the compound
// ACTION_RESOURCE identifier the client gates UI on.
type Permission struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Role groups permissions under a name.
type Role struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// RoleRequest creates or replaces a role's permission list, given as
// permission names.
type RoleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

func (r RoleRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Permissions, validation.Required, validation.Length(1, 0)),
	))
}

// ListRoles fetches every role with its permissions.
func (c *Client) ListRoles(ctx context.Context) ([]Role, error) {
	var out []Role
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    "/roles",
		out:     &out,
		failMsg: "Fetch roles failed",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRole creates a new role.
func (c *Client) CreateRole(ctx context.Context, req RoleRequest) (*Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out Role
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    "/roles",
		body:    req,
		out:     &out,
		failMsg: "Role creation failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRole replaces the permission list of an existing role. The
// role name itself is immutable.
func (c *Client) UpdateRole(ctx context.Context, roleID int64, permissions []string) (*Role, error) {
	if err := validationError(validation.Validate(permissions, validation.Required, validation.Length(1, 0))); err != nil {
		return nil, err
	}

	body := struct {
		Permissions []string `json:"permissions"`
	}{permissions}

	var out Role
	err := c.do(ctx, request{
		method:  http.MethodPut,
		path:    fmt.Sprintf("/roles/%d", roleID),
		body:    body,
		out:     &out,
		failMsg: "Role update failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteRole removes a role.
func (c *Client) DeleteRole(ctx context.Context, roleID int64) error {
	return c.do(ctx, request{
		method:  http.MethodDelete,
		path:    fmt.Sprintf("/roles/%d", roleID),
		failMsg: "Role deletion failed",
	})
}
