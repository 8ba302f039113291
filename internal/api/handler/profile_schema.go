package handler

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/core/ports"
)

const birthDateLayout = "2006-01-02"

// profileRequest is shared by create and update: every field is optional so
// updates can be partial. Binds from JSON bodies and multipart forms alike;
// an uploaded "image" file takes precedence over the inline image field.
type profileRequest struct {
	Name      *string  `json:"name"       form:"name"       validate:"omitempty,min=1,max=100"`
	Gender    *string  `json:"gender"     form:"gender"     validate:"omitempty,oneof=men women"`
	BirthDate *string  `json:"birth_date" form:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Height    *int     `json:"height"     form:"height"     validate:"omitempty,gt=0"`
	Weight    *int     `json:"weight"     form:"weight"     validate:"omitempty,gt=0"`
	Interests []string `json:"interests"  form:"interests"`
	Image     *string  `json:"image"      form:"-"`
}

// toInput converts the transport shape into the service input, folding in an
// uploaded image when one is present.
func (req *profileRequest) toInput(c echo.Context) (ports.ProfileInput, error) {
	input := ports.ProfileInput{
		Name:      req.Name,
		Gender:    req.Gender,
		Height:    req.Height,
		Weight:    req.Weight,
		Interests: req.Interests,
		Image:     req.Image,
	}

	if req.BirthDate != nil {
		birth, err := time.Parse(birthDateLayout, *req.BirthDate)
		if err != nil {
			return input, fmt.Errorf("invalid birth_date: %w", err)
		}
		input.BirthDate = &birth
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		encoded, err := encodeImage(file)
		if err != nil {
			return input, err
		}
		input.Image = &encoded
	}

	return input, nil
}

// encodeImage reads the uploaded file and returns its base64 payload, the
// storage encoding for profile images.
func encodeImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
