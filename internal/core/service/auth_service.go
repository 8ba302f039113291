package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

// AuthService implements registration, login, logout and refresh as atomic
// business transactions over the account store, token issuer and revocation
// registry.
type AuthService struct {
	accounts ports.AccountRepository
	issuer   ports.TokenIssuer
	revoked  ports.RevocationRegistry
	logger   zerolog.Logger
}

func NewAuthService(accounts ports.AccountRepository, issuer ports.TokenIssuer, revoked ports.RevocationRegistry, logger zerolog.Logger) *AuthService {
	return &AuthService{accounts: accounts, issuer: issuer, revoked: revoked, logger: logger}
}

// Register creates an account, hashes the password and opens a session by
// issuing a token pair and storing the refresh-token hash.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*ports.AuthResult, error) {
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.accounts.FindByUsername(ctx, username); err == nil {
		return nil, fmt.Errorf("username taken: %w", domain.ErrDuplicateIdentity)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if _, err := s.accounts.FindByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email taken: %w", domain.ErrDuplicateIdentity)
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	tokens, err := s.openSession(ctx, created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("username", username).Msg("account registered")
	return &ports.AuthResult{Account: created, Tokens: tokens}, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// produce the same error so callers cannot probe which part failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	tokens, err := s.openSession(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("login")
	return &ports.AuthResult{Account: account, Tokens: tokens}, nil
}

// Logout closes the account's session: the stored refresh-token hash is
// cleared and the presented access token is revoked until its natural expiry.
// Revoking an already revoked or expired token is not an error.
func (s *AuthService) Logout(ctx context.Context, accessToken, accountID string) error {
	if _, err := s.accounts.FindByID(ctx, accountID); err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}

	if err := s.accounts.ClearRefreshTokenHash(ctx, accountID); err != nil {
		return err
	}

	if accessToken != "" {
		expiresAt := time.Now().UTC()
		if claims, err := s.issuer.VerifyAccess(accessToken); err == nil {
			expiresAt = claims.ExpiresAt
		}
		if err := s.revoked.Revoke(ctx, accessToken, expiresAt); err != nil {
			return err
		}
	}

	s.logger.Info().Str("account_id", accountID).Msg("logout")
	return nil
}

// Refresh exchanges a refresh token for a new pair. The presented token must
// match the stored hash; on success the hash is rotated, so each refresh
// token is usable at most once. Concurrent refreshes race on the stored hash
// with last-write-wins semantics; losers are rejected on their next attempt.
func (s *AuthService) Refresh(ctx context.Context, accountID, refreshToken string) (*ports.TokenPair, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrAccessDenied
		}
		return nil, err
	}
	if account.RefreshTokenHash == "" {
		return nil, domain.ErrAccessDenied
	}

	presented := hashToken(refreshToken)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(account.RefreshTokenHash)) != 1 {
		return nil, domain.ErrAccessDenied
	}

	tokens, err := s.openSession(ctx, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Msg("token refreshed")
	return tokens, nil
}

// openSession mints a token pair and stores the refresh-token hash,
// invalidating whatever refresh token was active before.
func (s *AuthService) openSession(ctx context.Context, account *domain.Account) (*ports.TokenPair, error) {
	tokens, err := s.issuer.Issue(account.ID, account.Username, account.Email)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.UpdateRefreshTokenHash(ctx, account.ID, hashToken(tokens.RefreshToken)); err != nil {
		return nil, err
	}
	return tokens, nil
}

// hashToken digests a refresh token for storage. SHA-256 rather than bcrypt:
// signed tokens exceed bcrypt's 72-byte input limit and already carry far
// more entropy than a password.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
