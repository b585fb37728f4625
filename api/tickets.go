package api

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type TicketPriority string

const (
	PriorityLow      TicketPriority = "LOW"
	PriorityMedium   TicketPriority = "MEDIUM"
	PriorityHigh     TicketPriority = "HIGH"
	PriorityCritical TicketPriority = "CRITICAL"
)

type TicketStatus string

const (
	TicketOpen    TicketStatus = "OPEN"
	TicketOngoing TicketStatus = "ON_GOING"
	TicketClosed  TicketStatus = "CLOSED"
)

// Ticket is a work item inside a project.
type Ticket struct {
	ID          int64          `json:"id"`
	UUID        string         `json:"uuid"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	ExpiryDate  string         `json:"expiryDate"`
}

// TicketRequest creates or patches a ticket.
type TicketRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	ExpiryDate  string         `json:"expiryDate"`
}

func (r TicketRequest) Validate() error {
	return validationError(validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Description, validation.Required),
		validation.Field(&r.Priority, validation.Required, validation.In(PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical)),
		validation.Field(&r.Status, validation.Required, validation.In(TicketOpen, TicketOngoing, TicketClosed)),
		validation.Field(&r.ExpiryDate, validation.Required, validation.Date("2006-01-02")),
	))
}

// ListTicketsPaginated fetches one page of a project's tickets.
// Pages are one-based.
func (c *Client) ListTicketsPaginated(ctx context.Context, userUUID, projectUUID string, page, size int) (*Paginated[Ticket], error) {
	var out Paginated[Ticket]
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/users/%s/projects/%s/tickets/filtered", userUUID, projectUUID),
		body:    pageRequest{Page: page - 1, Size: size},
		out:     &out,
		failMsg: "Fetch project tickets failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetTicket fetches a single ticket.
func (c *Client) GetTicket(ctx context.Context, userUUID, projectUUID, ticketUUID string) (*Ticket, error) {
	var out Ticket
	err := c.do(ctx, request{
		method:  http.MethodGet,
		path:    fmt.Sprintf("/users/%s/projects/%s/tickets/%s", userUUID, projectUUID, ticketUUID),
		out:     &out,
		failMsg: "Fetch project ticket failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTicket creates a ticket inside a project.
func (c *Client) CreateTicket(ctx context.Context, userUUID, projectUUID string, req TicketRequest) (*Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out Ticket
	err := c.do(ctx, request{
		method:  http.MethodPost,
		path:    fmt.Sprintf("/users/%s/projects/%s/tickets", userUUID, projectUUID),
		body:    req,
		out:     &out,
		failMsg: "Ticket creation failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTicket patches a ticket.
func (c *Client) UpdateTicket(ctx context.Context, userUUID, projectUUID, ticketUUID string, req TicketRequest) (*Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out Ticket
	err := c.do(ctx, request{
		method:  http.MethodPatch,
		path:    fmt.Sprintf("/users/%s/projects/%s/tickets/%s", userUUID, projectUUID, ticketUUID),
		body:    req,
		out:     &out,
		failMsg: "Ticket update failed",
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, userUUID, projectUUID, ticketUUID string) error {
	return c.do(ctx, request{
		method:  http.MethodDelete,
		path:    fmt.Sprintf("/users/%s/projects/%s/tickets/%s", userUUID, projectUUID, ticketUUID),
		failMsg: "Ticket deletion failed",
	})
}
