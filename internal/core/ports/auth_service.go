package ports

import (
	"context"

	"github.com/authy/user-management-api/internal/core/domain"
)

// AuthService implements the register and login flows.
type AuthService interface {
	// Register creates a self-registered account. The requested role is
	// never honored on this path: anonymous callers always end up as a
	// plain user.
	Register(ctx context.Context, in CreateUserInput) (*domain.User, error)

	// Login verifies credentials and mints a bearer token. Unknown email
	// and wrong password both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
