package handler

import (
	"github.com/authy/user-management-api/internal/core/domain"
	"github.com/authy/user-management-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req registerRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	in := ports.UpdateUserInput{
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	return in
}

// --- Persistence record → public view ---

// toUserResponse is the total mapping from the persistence record to the
// API shape. Adding a field to userResponse is the only way anything new
// can reach a response body.
func toUserResponse(u *domain.User) *userResponse {
	return &userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

func toUserListResponse(users []domain.User) []userResponse {
	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = *toUserResponse(&users[i])
	}
	return out
}
