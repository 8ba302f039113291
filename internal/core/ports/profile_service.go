package ports

import (
	"context"
	"time"

	"github.com/youapp/profile-api/internal/core/domain"
)

// ProfileInput carries caller-supplied profile attributes. Nil pointers mean
// "not provided" so updates can be partial. Image is the already encoded
// payload; nil leaves any stored image untouched.
type ProfileInput struct {
	Name      *string
	Gender    *string
	BirthDate *time.Time
	Height    *int
	Weight    *int
	Interests []string
	Image     *string
}

// ProfileView is the read model for GET: the owning account's public fields
// plus the linked profile, when one exists.
type ProfileView struct {
	Username string          `json:"username"`
	Email    string          `json:"email"`
	Profile  *domain.Profile `json:"profile,omitempty"`
}

// ProfileService implements the profile business rules: one profile per
// account, derived zodiac/horoscope fields, account-link maintenance.
type ProfileService interface {
	Create(ctx context.Context, accountID string, input ProfileInput) (*ProfileView, error)
	Get(ctx context.Context, accountID string) (*ProfileView, error)
	Update(ctx context.Context, accountID string, input ProfileInput) (*ProfileView, error)
	Delete(ctx context.Context, accountID string) (*domain.Profile, error)
}
