package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/api/metrics"
	"github.com/youapp/profile-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the profile linked to the
// authenticated account.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Create creates the account's profile.
//
// @Summary      Create profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  false  "Profile image"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/profile [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	accountID, input, err := h.bind(c)
	if err != nil {
		return err
	}

	view, err := h.service.Create(c.Request().Context(), accountID, input)
	if err != nil {
		return err
	}

	metrics.ProfileOpsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Profile created successfully",
		Data:    view,
	})
}

// Get returns the account's profile.
//
// @Summary      Get profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	view, err := h.service.Get(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{
		Message: "Profile found successfully",
		Data:    view,
	})
}

// Update applies a partial update to the account's profile.
//
// @Summary      Update profile
// @Tags         profile
// @Security     BearerAuth
// @Accept       mpfd
// @Produce      json
// @Param        image  formData  file  false  "Profile image"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	accountID, input, err := h.bind(c)
	if err != nil {
		return err
	}

	view, err := h.service.Update(c.Request().Context(), accountID, input)
	if err != nil {
		return err
	}

	metrics.ProfileOpsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Profile updated successfully",
		Data:    view,
	})
}

// Delete removes the account's profile.
//
// @Summary      Delete profile
// @Tags         profile
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/profile [delete]
func (h *ProfileHandler) Delete(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.Delete(c.Request().Context(), accountID)
	if err != nil {
		return err
	}

	metrics.ProfileOpsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Profile deleted successfully",
		Data:    deleted,
	})
}

func (h *ProfileHandler) bind(c echo.Context) (string, ports.ProfileInput, error) {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return "", ports.ProfileInput{}, err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return "", ports.ProfileInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", ports.ProfileInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input, err := req.toInput(c)
	if err != nil {
		return "", ports.ProfileInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return accountID, input, nil
}
