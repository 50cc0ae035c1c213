package ports

import (
	"context"

	"github.com/authy/user-management-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence. The core never
// touches storage directly; implementations own their own concurrency and
// connection discipline.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, user *domain.User) error
}
