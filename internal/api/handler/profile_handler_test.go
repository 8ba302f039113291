package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

type stubProfileService struct {
	createFn func(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error)
	getFn    func(ctx context.Context, accountID string) (*ports.ProfileView, error)
	updateFn func(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error)
	deleteFn func(ctx context.Context, accountID string) (*domain.Profile, error)
}

func (s *stubProfileService) Create(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
	return s.createFn(ctx, accountID, input)
}

func (s *stubProfileService) Get(ctx context.Context, accountID string) (*ports.ProfileView, error) {
	return s.getFn(ctx, accountID)
}

func (s *stubProfileService) Update(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
	return s.updateFn(ctx, accountID, input)
}

func (s *stubProfileService) Delete(ctx context.Context, accountID string) (*domain.Profile, error) {
	return s.deleteFn(ctx, accountID)
}

func authedContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("account_id", "acc-1")
	return c, rec
}

func TestProfileHandler_Create_JSONBody(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		createFn: func(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
			if accountID != "acc-1" {
				t.Fatalf("unexpected account id %s", accountID)
			}
			if input.Name == nil || *input.Name != "Alice" {
				t.Fatalf("name not bound: %+v", input)
			}
			if input.BirthDate == nil || input.BirthDate.Year() != 1990 {
				t.Fatalf("birth date not parsed: %+v", input.BirthDate)
			}
			return &ports.ProfileView{Username: "alice", Email: "alice@example.com", Profile: &domain.Profile{ID: "prof-1", Name: "Alice"}}, nil
		},
	})

	body := strings.NewReader(`{"name":"Alice","gender":"women","birth_date":"1990-12-14","height":170,"weight":60,"interests":["music"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProfileHandler_Create_MultipartImage(t *testing.T) {
	e := newEcho()
	imageBytes := []byte{0xFF, 0xD8, 0xFF, 0xE0}

	h := NewProfileHandler(&stubProfileService{
		createFn: func(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
			if input.Image == nil {
				t.Fatalf("image upload not bound")
			}
			if *input.Image != base64.StdEncoding.EncodeToString(imageBytes) {
				t.Fatalf("image not base64-encoded: %q", *input.Image)
			}
			if input.Name == nil || *input.Name != "Alice" {
				t.Fatalf("form field not bound: %+v", input)
			}
			return &ports.ProfileView{Profile: &domain.Profile{ID: "prof-1"}}, nil
		},
	})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Alice")
	fw, err := mw.CreateFormFile("image", "avatar.jpg")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(imageBytes); err != nil {
		t.Fatalf("write image: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/profile", &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	c, rec := authedContext(e, req)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestProfileHandler_Create_InvalidGender(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		createFn: func(context.Context, string, ports.ProfileInput) (*ports.ProfileView, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	})

	body := strings.NewReader(`{"gender":"other"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/profile", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := authedContext(e, req)

	err := h.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestProfileHandler_Create_Conflict(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		createFn: func(context.Context, string, ports.ProfileInput) (*ports.ProfileView, error) {
			return nil, domain.ErrProfileExists
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/profile", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := authedContext(e, req)

	if err := h.Create(c); !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestProfileHandler_Get_Success(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		getFn: func(ctx context.Context, accountID string) (*ports.ProfileView, error) {
			return &ports.ProfileView{
				Username: "alice",
				Email:    "alice@example.com",
				Profile:  &domain.Profile{ID: "prof-1", Zodiac: "Sagittarius", Horoscope: "Horse"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	c, rec := authedContext(e, req)

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data ports.ProfileView `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Data.Profile == nil || resp.Data.Profile.Zodiac != "Sagittarius" {
		t.Fatalf("unexpected payload: %+v", resp.Data)
	}
}

func TestProfileHandler_Get_NotFound(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		getFn: func(context.Context, string) (*ports.ProfileView, error) {
			return nil, domain.ErrProfileNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	c, _ := authedContext(e, req)

	if err := h.Get(c); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileHandler_Delete_Success(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		deleteFn: func(ctx context.Context, accountID string) (*domain.Profile, error) {
			return &domain.Profile{ID: "prof-1"}, nil
		},
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/profile", nil)
	c, rec := authedContext(e, req)

	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestProfileHandler_Update_PartialBody(t *testing.T) {
	e := newEcho()
	h := NewProfileHandler(&stubProfileService{
		updateFn: func(ctx context.Context, accountID string, input ports.ProfileInput) (*ports.ProfileView, error) {
			if input.Name == nil || *input.Name != "New Name" {
				t.Fatalf("name not bound: %+v", input)
			}
			if input.Gender != nil || input.BirthDate != nil || input.Image != nil {
				t.Fatalf("absent fields must stay nil: %+v", input)
			}
			return &ports.ProfileView{Profile: &domain.Profile{ID: "prof-1", Name: "New Name"}}, nil
		},
	})

	body := strings.NewReader(`{"name":"New Name"}`)
	req := httptest.NewRequest(http.MethodPut, "/api/profile", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := authedContext(e, req)

	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
