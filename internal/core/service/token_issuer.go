package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/youapp/profile-api/internal/core/domain"
	"github.com/youapp/profile-api/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// TokenIssuer mints and verifies HS256 JWTs. Access and refresh tokens share
// the same claims payload but are signed with independent secrets and TTLs;
// the refresh TTL always exceeds the access TTL.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= accessTTL {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Issue mints an access/refresh pair for the given identity.
func (ti *TokenIssuer) Issue(accountID, username, email string) (*ports.TokenPair, error) {
	now := time.Now().UTC()

	access, err := ti.sign(accountID, username, email, ti.accessSecret, now, ti.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := ti.sign(accountID, username, email, ti.refreshSecret, now, ti.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its claims.
func (ti *TokenIssuer) VerifyAccess(token string) (*ports.Claims, error) {
	return ti.verify(token, ti.accessSecret)
}

// VerifyRefresh validates a refresh token and returns its claims.
func (ti *TokenIssuer) VerifyRefresh(token string) (*ports.Claims, error) {
	return ti.verify(token, ti.refreshSecret)
}

func (ti *TokenIssuer) sign(accountID, username, email string, secret []byte, now time.Time, ttl time.Duration) (string, error) {
	// jti makes every token unique even when two are minted for the same
	// identity within the same second; rotation depends on that.
	claims := jwt.MapClaims{
		"jti":        uuid.NewString(),
		"account_id": accountID,
		"username":   username,
		"email":      email,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func (ti *TokenIssuer) verify(token string, secret []byte) (*ports.Claims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}

	accountID, _ := claims["account_id"].(string)
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	if accountID == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &ports.Claims{AccountID: accountID, Username: username, Email: email}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
