package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/authy/user-management-api/internal/auth"
	"github.com/authy/user-management-api/internal/core/domain"
	"github.com/authy/user-management-api/internal/core/ports"
)

// AuthService composes the credential verifier, the token codec and the
// user store into the register and login flows.
type AuthService struct {
	users ports.UserService
	repo  ports.UserRepository
	codec *auth.Codec
	log   zerolog.Logger
}

func NewAuthService(users ports.UserService, repo ports.UserRepository, codec *auth.Codec, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, repo: repo, codec: codec, log: log}
}

// Register creates a self-registered account through the shared creation
// path. The actor is nil, so any role supplied by the caller is discarded
// and the account always comes out as a plain user.
func (s *AuthService) Register(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.users.Create(ctx, nil, in)
}

// Login verifies the credentials and mints a bearer token for the user.
// An unknown email and a wrong password are indistinguishable to the
// caller: both return domain.ErrInvalidCredentials. The real cause goes
// to the log only.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("login failed: unknown email")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		s.log.Debug().Str("user_id", user.ID).Msg("login failed: password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Mint(user.Principal())
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, user, nil
}
