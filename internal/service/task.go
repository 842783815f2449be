package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crucial707/todo-api/internal/auth"
	"github.com/crucial707/todo-api/internal/metrics"
	"github.com/crucial707/todo-api/internal/models"
	"github.com/crucial707/todo-api/internal/repo"
)

// TaskStore is the persistence the TaskService needs. Lookups take the owner id so
// the ownership predicate stays inside the query.
type TaskStore interface {
	Create(ctx context.Context, ownerID int, title, description string) (*models.Task, error)
	GetOwned(ctx context.Context, id, ownerID int) (*models.Task, error)
	ListOwned(ctx context.Context, ownerID int, status string) ([]models.Task, error)
	UpdateOwned(ctx context.Context, id, ownerID int, title, description, status *string) (*models.Task, error)
	DeleteOwned(ctx context.Context, id, ownerID int) error
}

// NewTask is the input for TaskService.Create.
type NewTask struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=10000"`
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title" validate:"omitnil,required,max=255"`
	Description *string `json:"description" validate:"omitnil,max=10000"`
	Status      *string `json:"status" validate:"omitnil,oneof=pending in_progress done"`
}

type TaskService struct {
	store  TaskStore
	events events
}

func NewTaskService(store TaskStore, log EventLogger) *TaskService {
	return &TaskService{store: store, events: events{store: log}}
}

// Create persists a pending task owned by actor.
func (s *TaskService) Create(ctx context.Context, actor auth.Identity, in NewTask) (*models.Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if actor.UserID <= 0 {
		s.events.record(ctx, models.LevelError, "task create rejected: owner id missing")
		return nil, invalid("owner_id", "required")
	}
	if err := check(in); err != nil {
		s.events.record(ctx, models.LevelError, "task create rejected for user %d: %v", actor.UserID, err)
		return nil, err
	}

	task, err := s.store.Create(ctx, actor.UserID, in.Title, in.Description)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	metrics.IncTasksCreated()
	s.events.record(ctx, models.LevelInfo, "task %d created for user %d", task.ID, actor.UserID)
	return task, nil
}

// FindOwned returns the task only if actor owns it.
func (s *TaskService) FindOwned(ctx context.Context, actor auth.Identity, id int) (*models.Task, error) {
	task, err := s.store.GetOwned(ctx, id, actor.UserID)
	if err != nil {
		return nil, s.lookupErr(ctx, "find", id, actor, err)
	}
	return task, nil
}

// ListOwned returns actor's tasks, narrowed to status when it is non-empty.
// A status outside the enum matches nothing.
func (s *TaskService) ListOwned(ctx context.Context, actor auth.Identity, status string) ([]models.Task, error) {
	status = strings.TrimSpace(status)
	if status != "" && !models.ValidStatus(status) {
		return []models.Task{}, nil
	}
	tasks, err := s.store.ListOwned(ctx, actor.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	s.events.record(ctx, models.LevelInfo, "listed %d tasks for user %d", len(tasks), actor.UserID)
	return tasks, nil
}

// Update applies patch to actor's task. Any status may follow any other.
func (s *TaskService) Update(ctx context.Context, actor auth.Identity, id int, patch TaskPatch) (*models.Task, error) {
	patch.Title = trimPtr(patch.Title)
	patch.Status = trimPtr(patch.Status)
	if err := check(patch); err != nil {
		return nil, err
	}

	task, err := s.store.UpdateOwned(ctx, id, actor.UserID, patch.Title, patch.Description, patch.Status)
	if err != nil {
		return nil, s.lookupErr(ctx, "update", id, actor, err)
	}
	s.events.record(ctx, models.LevelInfo, "task %d updated by user %d", id, actor.UserID)
	return task, nil
}

// Delete removes actor's task. Deleting twice yields ErrNotFound.
func (s *TaskService) Delete(ctx context.Context, actor auth.Identity, id int) error {
	if err := s.store.DeleteOwned(ctx, id, actor.UserID); err != nil {
		return s.lookupErr(ctx, "delete", id, actor, err)
	}
	s.events.record(ctx, models.LevelInfo, "task %d deleted by user %d", id, actor.UserID)
	return nil
}

func (s *TaskService) lookupErr(ctx context.Context, op string, id int, actor auth.Identity, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		s.events.record(ctx, models.LevelError, "task %d not found or not owned by user %d (%s)", id, actor.UserID, op)
		return ErrNotFound
	}
	return fmt.Errorf("%s task: %w", op, err)
}
