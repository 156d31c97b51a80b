package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

const (
	pathContacts = "/api/contacts/"
	pathTasks    = "/api/tasks/"
)

func contactPath(id int64) string { return fmt.Sprintf("%s%d/", pathContacts, id) }
func taskPath(id int64) string    { return fmt.Sprintf("%s%d/", pathTasks, id) }

func (c *HTTPClient) ListContacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	if err := c.do(ctx, http.MethodGet, pathContacts, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetContact(ctx context.Context, id int64) (*models.Contact, error) {
	var out models.Contact
	if err := c.do(ctx, http.MethodGet, contactPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateContact(ctx context.Context, in models.Contact) (*models.Contact, error) {
	var out models.Contact
	if err := c.do(ctx, http.MethodPost, pathContacts, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateContact(ctx context.Context, id int64, in models.Contact) (*models.Contact, error) {
	var out models.Contact
	if err := c.do(ctx, http.MethodPut, contactPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteContact(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, contactPath(id), nil, nil)
}

func (c *HTTPClient) ContactPolicies(ctx context.Context, contactID int64) ([]models.Policy, error) {
	var out []models.Policy
	if err := c.do(ctx, http.MethodGet, contactPath(contactID)+"policies/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) ContactTasks(ctx context.Context, contactID int64) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, contactPath(contactID)+"tasks/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreatePolicy(ctx context.Context, contactID int64, in models.Policy) (*models.Policy, error) {
	in.Contact = contactID
	var out models.Policy
	if err := c.do(ctx, http.MethodPost, contactPath(contactID)+"policies/", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, pathTasks, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) UpcomingTasks(ctx context.Context) ([]models.Task, error) {
	var out []models.Task
	if err := c.do(ctx, http.MethodGet, pathTasks+"upcoming/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) CreateTask(ctx context.Context, in models.Task) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, pathTasks, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CompleteTask(ctx context.Context, id int64) (*models.Task, error) {
	var out models.Task
	if err := c.do(ctx, http.MethodPost, taskPath(id)+"complete/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}
