package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

type stubProfileRepo struct {
	profiles map[string]*domain.Profile
	nextID   int
}

func newStubProfileRepo() *stubProfileRepo {
	return &stubProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProfileRepo) Create(_ context.Context, profile *domain.Profile) (*domain.Profile, error) {
	copy := cloneProfile(profile)
	r.nextID++
	copy.ID = fmt.Sprintf("prof-%d", r.nextID)
	r.profiles[copy.ID] = cloneProfile(copy)
	return cloneProfile(copy), nil
}

func (r *stubProfileRepo) FindByID(_ context.Context, id string) (*domain.Profile, error) {
	if p, ok := r.profiles[id]; ok {
		return cloneProfile(p), nil
	}
	return nil, domain.ErrProfileNotFound
}

func (r *stubProfileRepo) Update(_ context.Context, id string, fields ports.ProfileFields) error {
	p, ok := r.profiles[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Gender != nil {
		p.Gender = *fields.Gender
	}
	if fields.BirthDate != nil {
		p.BirthDate = fields.BirthDate
	}
	if fields.Zodiac != nil {
		p.Zodiac = *fields.Zodiac
	}
	if fields.Horoscope != nil {
		p.Horoscope = *fields.Horoscope
	}
	if fields.Height != nil {
		p.Height = *fields.Height
	}
	if fields.Weight != nil {
		p.Weight = *fields.Weight
	}
	if fields.Interests != nil {
		p.Interests = fields.Interests
	}
	if fields.Image != nil {
		p.Image = *fields.Image
	}
	return nil
}

func (r *stubProfileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(r.profiles, id)
	return nil
}

func newTestProfileService() (*ProfileService, *stubAccountRepo, *stubProfileRepo) {
	accounts := newStubAccountRepo()
	profiles := newStubProfileRepo()
	return NewProfileService(accounts, profiles, zerolog.Nop()), accounts, profiles
}

func registerAccount(t *testing.T, accounts *stubAccountRepo) *domain.Account {
	t.Helper()
	account, err := accounts.Create(context.Background(), &domain.Account{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	return account
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestProfileService_Create_DerivesZodiacAndHoroscope(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)
	birth := time.Date(1990, time.December, 14, 0, 0, 0, 0, time.UTC)

	view, err := svc.Create(context.Background(), account.ID, ports.ProfileInput{
		Name:      strptr("Alice"),
		Gender:    strptr(domain.GenderWomen),
		BirthDate: &birth,
		Height:    intptr(170),
		Weight:    intptr(60),
		Interests: []string{"music", "hiking"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Profile.Zodiac != "Sagittarius" {
		t.Fatalf("zodiac = %q, want Sagittarius", view.Profile.Zodiac)
	}
	if view.Profile.Horoscope != "Horse" {
		t.Fatalf("horoscope = %q, want Horse", view.Profile.Horoscope)
	}
	if view.Username != "alice" || view.Email != "alice@example.com" {
		t.Fatalf("unexpected account fields: %+v", view)
	}
}

func TestProfileService_Create_NoBirthDateSkipsDerivation(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)

	view, err := svc.Create(context.Background(), account.ID, ports.ProfileInput{Name: strptr("Alice")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Profile.Zodiac != "" || view.Profile.Horoscope != "" {
		t.Fatalf("derived fields set without a birth date: %+v", view.Profile)
	}
}

func TestProfileService_Create_Conflict(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)
	ctx := context.Background()

	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{}); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{}); !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("second create: expected ErrProfileExists, got %v", err)
	}
}

func TestProfileService_DeleteThenCreateSucceeds(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)
	ctx := context.Background()

	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Delete(ctx, account.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, account.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("get after delete: expected ErrProfileNotFound, got %v", err)
	}
	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{}); err != nil {
		t.Fatalf("create after delete: %v", err)
	}
}

func TestProfileService_Update_RederivesOnBirthDate(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)
	ctx := context.Background()

	birth := time.Date(1990, time.December, 14, 0, 0, 0, 0, time.UTC)
	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{BirthDate: &birth}); err != nil {
		t.Fatalf("create: %v", err)
	}

	newBirth := time.Date(1992, time.January, 25, 0, 0, 0, 0, time.UTC)
	view, err := svc.Update(ctx, account.ID, ports.ProfileInput{BirthDate: &newBirth})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Profile.Zodiac != "Aquarius" {
		t.Fatalf("zodiac = %q, want Aquarius", view.Profile.Zodiac)
	}
	if view.Profile.Horoscope != "Monkey" {
		t.Fatalf("horoscope = %q, want Monkey", view.Profile.Horoscope)
	}
}

func TestProfileService_Update_ImageUntouchedWhenAbsent(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)
	ctx := context.Background()

	if _, err := svc.Create(ctx, account.ID, ports.ProfileInput{Image: strptr("aW1hZ2U=")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.Update(ctx, account.ID, ports.ProfileInput{Name: strptr("Alice")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Profile.Image != "aW1hZ2U=" {
		t.Fatalf("image changed on update without upload: %q", view.Profile.Image)
	}
	if view.Profile.Name != "Alice" {
		t.Fatalf("name not updated: %q", view.Profile.Name)
	}
}

func TestProfileService_Get_NotFound(t *testing.T) {
	svc, accounts, _ := newTestProfileService()
	account := registerAccount(t, accounts)

	if _, err := svc.Get(context.Background(), account.ID); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}
