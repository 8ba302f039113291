package ports

import "time"

// Claims is the decoded payload shared by access and refresh tokens.
type Claims struct {
	AccountID string
	Username  string
	Email     string
	ExpiresAt time.Time
}

// TokenPair bundles the two credentials minted on register/login/refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenIssuer mints and verifies signed credentials. Access and refresh
// tokens carry identical claims but are signed with independent secrets and
// expirations.
type TokenIssuer interface {
	Issue(accountID, username, email string) (*TokenPair, error)
	VerifyAccess(token string) (*Claims, error)
	VerifyRefresh(token string) (*Claims, error)
}
