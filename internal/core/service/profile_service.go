package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

// ProfileService implements the one-profile-per-account business rules and
// the derived zodiac/horoscope fields.
type ProfileService struct {
	accounts ports.AccountRepository
	profiles ports.ProfileRepository
	logger   zerolog.Logger
}

func NewProfileService(accounts ports.AccountRepository, profiles ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{accounts: accounts, profiles: profiles, logger: logger}
}

// Create persists a new profile and links it to the account. Fails when the
// account already has one. The profile is persisted before the account link
// is written; a failure in between leaves an unlinked profile, which a
// retried Create simply replaces from the account's point of view.
func (s *ProfileService) Create(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ProfileID != "" {
		return nil, domain.ErrProfileExists
	}

	now := time.Now().UTC()
	profile := &domain.Profile{
		BirthDate: input.BirthDate,
		Interests: input.Interests,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Gender != nil {
		profile.Gender = *input.Gender
	}
	if input.Height != nil {
		profile.Height = *input.Height
	}
	if input.Weight != nil {
		profile.Weight = *input.Weight
	}
	if input.Image != nil {
		profile.Image = *input.Image
	}
	if input.BirthDate != nil {
		profile.Zodiac = domain.ZodiacSign(*input.BirthDate)
		profile.Horoscope = domain.HoroscopeAnimal(input.BirthDate.Year())
	}

	created, err := s.profiles.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	if err := s.accounts.SetProfileID(ctx, accountID, created.ID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Str("profile_id", created.ID).Msg("profile created")
	return &ports.ProfileView{Username: account.Username, Email: account.Email, Profile: created}, nil
}

// Get returns the account's public fields with its linked profile.
func (s *ProfileService) Get(ctx context.Context, accountID string) (*ports.ProfileView, error) {
	account, profile, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &ports.ProfileView{Username: account.Username, Email: account.Email, Profile: profile}, nil
}

// Update applies a partial update to the linked profile. A supplied birth
// date re-derives zodiac and horoscope; an absent image leaves the stored
// image untouched.
func (s *ProfileService) Update(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
	account, profile, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	fields := ports.ProfileFields{
		Name:      input.Name,
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		Height:    input.Height,
		Weight:    input.Weight,
		Interests: input.Interests,
		Image:     input.Image,
	}
	if input.BirthDate != nil {
		zodiac := domain.ZodiacSign(*input.BirthDate)
		horoscope := domain.HoroscopeAnimal(input.BirthDate.Year())
		fields.Zodiac = &zodiac
		fields.Horoscope = &horoscope
	}

	if err := s.profiles.Update(ctx, profile.ID, fields); err != nil {
		return nil, err
	}

	updated, err := s.profiles.FindByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Str("profile_id", profile.ID).Msg("profile updated")
	return &ports.ProfileView{Username: account.Username, Email: account.Email, Profile: updated}, nil
}

// Delete removes the linked profile and clears the account's link. The
// account is free to create a new profile afterwards.
func (s *ProfileService) Delete(ctx context.Context, accountID string) (*domain.Profile, error) {
	_, profile, err := s.load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.profiles.Delete(ctx, profile.ID); err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}
	if err := s.accounts.ClearProfileID(ctx, accountID); err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", accountID).Str("profile_id", profile.ID).Msg("profile deleted")
	return profile, nil
}

func (s *ProfileService) load(ctx context.Context, accountID string) (*domain.Account, *domain.Profile, error) {
	account, err := s.accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}
	if account.ProfileID == "" {
		return nil, nil, domain.ErrProfileNotFound
	}
	profile, err := s.profiles.FindByID(ctx, account.ProfileID)
	if err != nil {
		return nil, nil, err
	}
	return account, profile, nil
}
