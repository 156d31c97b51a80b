package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/crmclient/internal/client/cache"
	"github.com/dmitrijs2005/crmclient/internal/client/client"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// ContactDetail is everything the contact detail view shows besides the
// premium panels.
type ContactDetail struct {
	Contact  models.Contact
	Policies []models.Policy
	Tasks    []models.Task
}

// ContactService manages contacts and their policies and tasks.
//
// All methods must honor context cancellation/timeouts.
type ContactService interface {
	List(ctx context.Context) ([]models.Contact, error)
	Get(ctx context.Context, id int64) (*models.Contact, error)
	// Detail loads the contact, its policies and its tasks concurrently.
	Detail(ctx context.Context, id int64) (*ContactDetail, error)
	Create(ctx context.Context, c models.Contact) (*models.Contact, error)
	Update(ctx context.Context, id int64, c models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, id int64) error
	Policies(ctx context.Context, contactID int64) ([]models.Policy, error)
	Tasks(ctx context.Context, contactID int64) ([]models.Task, error)
	AddPolicy(ctx context.Context, contactID int64, p models.Policy) (*models.Policy, error)

	// Cache exposes the contact cache for enrichment write-back.
	Cache() *cache.Collection[int64, models.Contact]
}

type contactService struct {
	api      client.CRMService
	contacts *cache.Collection[int64, models.Contact]

	mu       sync.Mutex
	policies map[int64]*cache.Collection[int64, models.Policy]
	tasks    map[int64]*cache.Collection[int64, models.Task]
}

func NewContactService(api client.CRMService) ContactService {
	return &contactService{
		api:      api,
		contacts: cache.NewCollection(contactID),
		policies: make(map[int64]*cache.Collection[int64, models.Policy]),
		tasks:    make(map[int64]*cache.Collection[int64, models.Task]),
	}
}

func contactID(c models.Contact) int64 { return c.ID }
func policyID(p models.Policy) int64   { return p.ID }
func taskID(t models.Task) int64       { return t.ID }

func (s *contactService) Cache() *cache.Collection[int64, models.Contact] {
	return s.contacts
}

func (s *contactService) policyCache(contactID int64) *cache.Collection[int64, models.Policy] {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.policies[contactID]
	if !ok {
		c = cache.NewCollection(policyID)
		s.policies[contactID] = c
	}
	return c
}

func (s *contactService) taskCache(contactID int64) *cache.Collection[int64, models.Task] {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.tasks[contactID]
	if !ok {
		c = cache.NewCollection(taskID)
		s.tasks[contactID] = c
	}
	return c
}

func (s *contactService) List(ctx context.Context) ([]models.Contact, error) {
	list, err := s.api.ListContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	s.contacts.Replace(list)
	return s.contacts.List(), nil
}

func (s *contactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	c, err := s.api.GetContact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get contact %d: %w", id, err)
	}
	s.contacts.Upsert(*c)
	return c, nil
}

func (s *contactService) Detail(ctx context.Context, id int64) (*ContactDetail, error) {
	var (
		contact  *models.Contact
		policies []models.Policy
		tasks    []models.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		contact, err = s.Get(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		policies, err = s.Policies(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = s.Tasks(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ContactDetail{Contact: *contact, Policies: policies, Tasks: tasks}, nil
}

func (s *contactService) Create(ctx context.Context, c models.Contact) (*models.Contact, error) {
	created, err := s.api.CreateContact(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}
	s.contacts.Upsert(*created)
	return created, nil
}

func (s *contactService) Update(ctx context.Context, id int64, c models.Contact) (*models.Contact, error) {
	updated, err := s.api.UpdateContact(ctx, id, c)
	if err != nil {
		return nil, fmt.Errorf("update contact %d: %w", id, err)
	}
	s.contacts.Upsert(*updated)
	return updated, nil
}

func (s *contactService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("delete contact %d: %w", id, err)
	}
	s.contacts.Remove(id)

	s.mu.Lock()
	delete(s.policies, id)
	delete(s.tasks, id)
	s.mu.Unlock()
	return nil
}

func (s *contactService) Policies(ctx context.Context, contactID int64) ([]models.Policy, error) {
	list, err := s.api.ContactPolicies(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("policies of contact %d: %w", contactID, err)
	}
	c := s.policyCache(contactID)
	c.Replace(list)
	return c.List(), nil
}

func (s *contactService) Tasks(ctx context.Context, contactID int64) ([]models.Task, error) {
	list, err := s.api.ContactTasks(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("tasks of contact %d: %w", contactID, err)
	}
	c := s.taskCache(contactID)
	c.Replace(list)
	return c.List(), nil
}

func (s *contactService) AddPolicy(ctx context.Context, contactID int64, p models.Policy) (*models.Policy, error) {
	p.Contact = contactID
	created, err := s.api.CreatePolicy(ctx, contactID, p)
	if err != nil {
		return nil, fmt.Errorf("add policy to contact %d: %w", contactID, err)
	}
	s.policyCache(contactID).Upsert(*created)
	return created, nil
}
