package port

import (
	"context"

	"tasknotes/internal/core/domain"
	"tasknotes/internal/core/model/request"
	"tasknotes/internal/core/model/response"
)

type AuthService interface {
	Register(ctx context.Context, req request.RegisterRequest) (response.AuthResult, error)
	Login(ctx context.Context, req request.LoginRequest) (response.AuthResult, error)
	GetCurrentUser(ctx context.Context, callerID int) (domain.User, error)
	UpdatePassword(ctx context.Context, callerID int, req request.UpdatePasswordRequest) error
}

// TokenIssuer signs and verifies session tokens carrying a user id.
type TokenIssuer interface {
	Issue(userID int) (string, error)
	Parse(token string) (int, error)
}
