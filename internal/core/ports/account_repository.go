package ports

import (
	"context"

	"github.com/youapp/profile-api/internal/core/domain"
)

// AccountRepository defines the persistence contract for accounts.
// Absent lookups return domain.ErrAccountNotFound; uniqueness violations on
// username or email return domain.ErrDuplicateIdentity.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	UpdateRefreshTokenHash(ctx context.Context, id, hash string) error
	ClearRefreshTokenHash(ctx context.Context, id string) error
	SetProfileID(ctx context.Context, id, profileID string) error
	ClearProfileID(ctx context.Context, id string) error
}
