package ports

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/core/domain"
)

// TaskPatch carries the fields of a partial task update. Nil fields are left
// untouched.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil
}

// TaskRepository defines persistence operations for tasks. Every operation is
// scoped by the owning user id; a task belonging to another user behaves as
// if it did not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, id, userID string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
