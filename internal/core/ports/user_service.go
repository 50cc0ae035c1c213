package ports

import (
	"context"

	"github.com/authy/user-management-api/internal/core/domain"
)

// CreateUserInput carries the fields accepted when creating an account.
// Role is advisory: it is applied only when the acting principal is an
// admin, otherwise the created user is forced to domain.RoleUser.
type CreateUserInput struct {
	Email    string
	Password string
	Role     domain.Role
}

// UpdateUserInput carries the optional fields of a user update. Nil means
// "leave unchanged". Role is silently ignored unless the actor is an admin.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Role     *domain.Role
}

// UserService implements user CRUD with the ownership rule applied. Every
// method takes the acting principal; actor is nil only on the anonymous
// registration path.
type UserService interface {
	Create(ctx context.Context, actor *domain.Principal, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
