package ports

import (
	"context"

	"github.com/taskhub/taskhub-api/internal/core/domain"
)

// AuthService implements the registration and login flows. Both return the
// signed session token alongside the persisted user.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
