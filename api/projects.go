package api

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ProjectStatus string

const (
	ProjectOpen    ProjectStatus = "OPEN"
	ProjectOngoing ProjectStatus = "ON_GOING"
	ProjectClosed  ProjectStatus = "CLOSED"
)

// Project is a user-owned project.
type Project struct {
	ID          int64         `json:"id"`
	UUID        string        `json:"uuid"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	OwnerUUID   string        `json:"ownerUuid"`
	Status      ProjectStatus `json:"status"`
	Deleted     bool          `json:"deleted"`
}

// ProjectRequest creates or patches a project.
type ProjectRequest struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
}

func (r ProjectRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Status, validation.Required, validation.In(ProjectOpen, ProjectOngoing, ProjectClosed)),
	))
}

// ListProjects fetches every project owned by the user.
func (c *Client) ListProjects(ctx context.Context, userUUID string) ([]Project, error) {
	var out []Project
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/users/%s/projects", userUUID),
		out:     &out,
		failMsg: "Fetch user projects failed",
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListProjectsPaginated fetches one page of the user's projects.
// Pages are one-based.
func (c *Client) ListProjectsPaginated(ctx context.Context, userUUID string, page, size int) (*Paginated[Project], error) {
	var out Paginated[Project]
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/users/%s/projects/filtered", userUUID),
		body:    pageRequest{Page: page - 1, Size: size},
		out:     &out,
		failMsg: "Fetch user projects paginated failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProject fetches a single project.
func (c *Client) GetProject(ctx context.Context, userUUID, projectUUID string) (*Project, error) {
	var out Project
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/users/%s/projects/%s", userUUID, projectUUID),
		out:     &out,
		failMsg: "Fetch user project failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a project owned by the user.
func (c *Client) CreateProject(ctx context.Context, userUUID string, req ProjectRequest) (*Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out Project
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/users/%s/projects", userUUID),
		body:    req,
		out:     &out,
		failMsg: "Project creation failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject patches a project.
func (c *Client) UpdateProject(ctx context.Context, userUUID, projectUUID string, req ProjectRequest) (*Project, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out Project
	err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    fmt.Sprintf("/users/%s/projects/%s", userUUID, projectUUID),
		body:    req,
		out:     &out,
		failMsg: "Project update failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project and its tickets.
func (c *Client) DeleteProject(ctx context.Context, userUUID, projectUUID string) error {
	return c.do(ctx, request{
		method:  http.MethodDelete,
		path:    fmt.Sprintf("/users/%s/projects/%s", userUUID, projectUUID),
		failMsg: "Project deletion failed",
	})
}
