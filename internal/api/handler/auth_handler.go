package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/youapp/profile-api/internal/api/metrics"
	"github.com/youapp/profile-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for registration, login, logout and
// token refresh.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=5,max=30"`
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=30"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// messageResponse is the success envelope: a human-readable message plus the
// operation's payload.
type messageResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type sessionData struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new account and opens a session.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Register user successfully",
		Data: sessionData{
			ID:           res.Account.ID,
			Username:     res.Account.Username,
			Email:        res.Account.Email,
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	})
}

// Login authenticates an account and returns a fresh token pair.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{
		Message: "Login successfully",
		Data: sessionData{
			ID:           res.Account.ID,
			Username:     res.Account.Username,
			Email:        res.Account.Email,
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	})
}

// Logout closes the current session and revokes the presented access token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), ctxToken(c, "access_token"), accountID); err != nil {
		return err
	}

	metrics.RevocationsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successfully"})
}

// Refresh rotates the refresh token and returns a new pair.
//
// @Summary      Refresh tokens
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      201   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	accountID, err := ctxAccountID(c)
	if err != nil {
		return err
	}

	tokens, err := h.authService.Refresh(c.Request().Context(), accountID, ctxToken(c, "refresh_token"))
	if err != nil {
		return err
	}

	metrics.TokenRefreshesTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{
		Message: "Refresh token successfully",
		Data:    tokens,
	})
}
