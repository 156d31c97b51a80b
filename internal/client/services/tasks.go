package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/crmclient/internal/client/cache"
	"github.com/dmitrijs2005/crmclient/internal/client/client"
	"github.com/dmitrijs2005/crmclient/internal/client/models"
)

// TaskService manages the task list.
type TaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	// Upcoming is not cached; it is a server-side filtered view.
	Upcoming(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, t models.Task) (*models.Task, error)
	Complete(ctx context.Context, id int64) (*models.Task, error)
	Delete(ctx context.Context, id int64) error
	Cached() []models.Task
}

type taskService struct {
	api   client.CRMService
	tasks *cache.Collection[int64, models.Task]
}

func NewTaskService(api client.CRMService) TaskService {
	return &taskService{api: api, tasks: cache.NewCollection(taskID)}
}

func (s *taskService) List(ctx context.Context) ([]models.Task, error) {
	list, err := s.api.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	s.tasks.Replace(list)
	return s.tasks.List(), nil
}

func (s *taskService) Upcoming(ctx context.Context) ([]models.Task, error) {
	list, err := s.api.UpcomingTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	return list, nil
}

func (s *taskService) Create(ctx context.Context, t models.Task) (*models.Task, error) {
	created, err := s.api.CreateTask(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.tasks.Upsert(*created)
	return created, nil
}

func (s *taskService) Complete(ctx context.Context, id int64) (*models.Task, error) {
	done, err := s.api.CompleteTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("complete task %d: %w", id, err)
	}
	s.tasks.Upsert(*done)
	return done, nil
}

func (s *taskService) Delete(ctx context.Context, id int64) error {
	if err := s.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	s.tasks.Remove(id)
	return nil
}

func (s *taskService) Cached() []models.Task {
	return s.tasks.List()
}
