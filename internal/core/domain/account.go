package domain

import (
	"errors"
	"time"
)

var ErrDuplicateIdentity = errors.New("username or email already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccessDenied = errors.New("access denied")
var ErrAccountNotFound = errors.New("account not found")
var ErrTokenInvalid = errors.New("token is invalid")
var ErrTokenExpired = errors.New("token is expired")

// Account models a registered user of the service.
//
// RefreshTokenHash holds a digest of the most recently issued refresh token
// and is set only while a session is active: login/refresh rotate it, logout
// clears it. ProfileID links at most one Profile to the account.
type Account struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	RefreshTokenHash string    `json:"-"`
	ProfileID        string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
