package domain

import (
	"errors"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusActive    TaskStatus = "active"
	TaskStatusCompleted TaskStatus = "completed"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidTaskPatch = errors.New("invalid task update")
)

// Valid reports whether s is one of the two legal status values.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusActive || s == TaskStatusCompleted
}

// Task is a to-do item owned by a single user. UserID is a weak reference to
// the owning user; every query against the task store is scoped by it.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      string     `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
}
