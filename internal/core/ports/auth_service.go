package ports

import (
	"context"

	"github.com/youapp/profile-api/internal/core/domain"
)

// AuthResult is returned by operations that establish a session.
type AuthResult struct {
	Account *domain.Account
	Tokens  *TokenPair
}

// AuthService orchestrates registration, login, logout and token refresh.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, accessToken, accountID string) error
	Refresh(ctx context.Context, accountID, refreshToken string) (*TokenPair, error)
}
