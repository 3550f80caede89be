package handler

import (
	"time"

	"github.com/taskhub/taskhub-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses (rendered by the central error handler).
type errorResponse struct {
	Message string `json:"message"`
}

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// updateTaskRequest is a partial update; nil fields are left untouched.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" validate:"omitempty,oneof=active completed"`
}

// taskResponse is the transport view of a task. Field names are part of the
// wire contract with the front end.
type taskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	UserID      string    `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

// taskEnvelope wraps a single task in the {message, data} shape used by the
// mutating endpoints.
type taskEnvelope struct {
	Message string       `json:"message"`
	Data    taskResponse `json:"data"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt.UTC(),
	}
}

func toTaskListResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}
