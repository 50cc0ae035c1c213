package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authy/user-management-api/internal/core/domain"
	"github.com/authy/user-management-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubLimiter struct {
	allowed  bool
	allowErr error
	failures []string
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return l.allowed, l.allowErr
}

func (l *stubLimiter) RecordFailure(_ context.Context, email string) error {
	l.failures = append(l.failures, email)
	return nil
}

func openLimiter() *stubLimiter { return &stubLimiter{allowed: true} }

func authTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	now := time.Now().UTC()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.Email != "alice@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{
				ID: "u1", Email: in.Email, PasswordHash: "hash",
				Role: domain.RoleUser, CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	h := NewAuthHandler(stub, openLimiter(), zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"alice@example.com","password":"long-enough","role":"admin"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["email"] != "alice@example.com" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	// The hash must never serialize.
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked into response: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub, openLimiter(), zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"long-enough"}`)

	_ = h.Register(c)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, openLimiter(), zerolog.Nop())

	for name, body := range map[string]string{
		"not json":       "not-json",
		"missing email":  `{"password":"long-enough"}`,
		"bad email":      `{"email":"nope","password":"long-enough"}`,
		"short password": `{"email":"a@x.com","password":"short"}`,
		"bad role":       `{"email":"a@x.com","password":"long-enough","role":"root"}`,
	} {
		c, rec := authTestContext(t, http.MethodPost, "/auth/register", body)
		_ = h.Register(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret-pass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u1", Email: email, Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub, openLimiter(), zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	limiter := openLimiter()
	h := NewAuthHandler(stub, limiter, zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad-pass"}`)

	_ = h.Login(c)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if len(limiter.failures) != 1 || limiter.failures[0] != "alice@example.com" {
		t.Fatalf("expected failure recorded, got %v", limiter.failures)
	}
}

func TestAuthHandler_Login_Throttled(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			t.Fatalf("service must not be called while throttled")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{allowed: false}, zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"whatever1"}`)

	_ = h.Login(c)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_LimiterFailureIsOpen(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "token", &domain.User{ID: "u1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub, &stubLimiter{allowed: false, allowErr: context.DeadlineExceeded}, zerolog.Nop())

	c, rec := authTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret-pass"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("limiter outage must not block logins: got %d", rec.Code)
	}
}
