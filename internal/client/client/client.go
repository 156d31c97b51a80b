package client

import (
	"context"

	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

// IdentityService is the Remote Identity Service contract.
type IdentityService interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	CurrentUser(ctx context.Context) (*models.User, error)

	// SetAuthToken attaches token to every subsequent request.
	SetAuthToken(token string)
	// RemoveAuthToken detaches the token.
	RemoveAuthToken()
}

// EnrichmentService serves premium-only derived data.
type EnrichmentService interface {
	LeadScore(ctx context.Context, contactID int64) (int, error)
	FollowUpSuggestions(ctx context.Context, contactID int64) ([]models.Suggestion, error)
}

// CRMService is the plain CRUD surface used by the list and detail views.
type CRMService interface {
	ListContacts(ctx context.Context) ([]models.Contact, error)
	GetContact(ctx context.Context, id int64) (*models.Contact, error)
	CreateContact(ctx context.Context, c models.Contact) (*models.Contact, error)
	UpdateContact(ctx context.Context, id int64, c models.Contact) (*models.Contact, error)
	DeleteContact(ctx context.Context, id int64) error
	ContactPolicies(ctx context.Context, contactID int64) ([]models.Policy, error)
	ContactTasks(ctx context.Context, contactID int64) ([]models.Task, error)
	CreatePolicy(ctx context.Context, contactID int64, p models.Policy) (*models.Policy, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	UpcomingTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, t models.Task) (*models.Task, error)
	CompleteTask(ctx context.Context, id int64) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}
