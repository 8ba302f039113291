package ports

import (
	"context"
	"time"

	"github.com/youapp/profile-api/internal/core/domain"
)

// ProfileFields carries the mutable subset of a profile for partial updates.
// Nil pointers mean "leave unchanged".
type ProfileFields struct {
	Name      *string
	Gender    *string
	BirthDate *time.Time
	Zodiac    *string
	Horoscope *string
	Height    *int
	Weight    *int
	Interests []string
	Image     *string
}

// ProfileRepository defines the persistence contract for profiles.
// Absent lookups return domain.ErrProfileNotFound.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	Update(ctx context.Context, id string, fields ProfileFields) error
	Delete(ctx context.Context, id string) error
}
