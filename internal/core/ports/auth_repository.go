package ports

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// FindByEmail performs a case-sensitive exact match on the stored email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
