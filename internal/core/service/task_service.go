package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/taskhub-api/internal/core/domain"
	"github.com/taskhub/taskhub-api/internal/core/ports"
)

// TaskService implements the task use cases. All operations are scoped by the
// authenticated user id supplied by the transport layer.
type TaskService struct {
	repo   ports.TaskRepository
	logger zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, logger zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

// CreateTask persists a new task for the given user with status "active".
func (s *TaskService) CreateTask(ctx context.Context, input ports.CreateTaskInput) (*domain.Task, error) {
	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TaskStatusActive,
		UserID:      input.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, task)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", created.ID).Str("user_id", created.UserID).Msg("task created")
	return created, nil
}

// ListTasks returns every task owned by the user, newest first. A user with
// no tasks gets an empty slice, not nil.
func (s *TaskService) ListTasks(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// UpdateTask applies a partial update. An unknown id, or an id owned by a
// different user, surfaces as domain.ErrTaskNotFound.
func (s *TaskService) UpdateTask(ctx context.Context, input ports.UpdateTaskInput) (*domain.Task, error) {
	if input.Patch.Empty() {
		return nil, domain.ErrInvalidTaskPatch
	}
	if input.Patch.Status != nil && !input.Patch.Status.Valid() {
		return nil, domain.ErrInvalidTaskPatch
	}

	updated, err := s.repo.Update(ctx, input.ID, input.UserID, input.Patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("task_id", updated.ID).Str("user_id", updated.UserID).Msg("task updated")
	return updated, nil
}

// DeleteTask removes the task if it exists and belongs to the user.
func (s *TaskService) DeleteTask(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info().Str("task_id", id).Str("user_id", userID).Msg("task deleted")
	return nil
}
