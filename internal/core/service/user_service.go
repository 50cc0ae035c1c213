package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/authy/user-management-api/internal/auth"
	"github.com/authy/user-management-api/internal/core/domain"
	"github.com/authy/user-management-api/internal/core/ports"
)

// UserService implements user CRUD with the self-or-admin ownership rule.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

// Create is the single account-creation path: it decides the effective role,
// hashes the password exactly once, and persists the record. A nil actor is
// the anonymous registration case; only an admin actor can grant a role
// other than user.
func (s *UserService) Create(ctx context.Context, actor *domain.Principal, in ports.CreateUserInput) (*domain.User, error) {
	role := domain.RoleUser
	if actor != nil && actor.IsAdmin() && in.Role.Valid() {
		role = in.Role
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created")
	return created, nil
}

// List returns every user record. RBAC restricts the operation to admins
// before this is reached, so no ownership filtering applies.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// Get returns a single user. The ownership check runs before the lookup so
// a forbidden caller learns nothing about whether the target exists.
func (s *UserService) Get(ctx context.Context, actor domain.Principal, id string) (*domain.User, error) {
	if !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update to a user. The ownership check runs
// first; an email change is checked for uniqueness; a password change is
// re-hashed; the role field is applied only when the actor is an admin and
// silently ignored otherwise.
func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !actor.CanAccess(id) {
		return nil, domain.ErrForbidden
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.repo.FindByEmail(ctx, *in.Email); err == nil {
			return nil, domain.ErrEmailTaken
		} else if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if in.Role != nil && actor.IsAdmin() && in.Role.Valid() {
		user.Role = *in.Role
	}

	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", updated.ID).Str("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// Delete removes a user record. The operation is admin-only by RBAC; no
// ownership rule applies.
func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, user); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}
