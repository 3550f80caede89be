package ports

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task for a user.
type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
}

// UpdateTaskInput carries a partial update for an existing task.
type UpdateTaskInput struct {
	ID     string
	UserID string
	Patch  TaskPatch
}

// TaskService defines the use-case operations on tasks. The UserID on every
// input comes from the authenticated identity, never from the request body.
type TaskService interface {
	CreateTask(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	ListTasks(ctx context.Context, userID string) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error
}
