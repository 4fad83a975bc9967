package domain

import "time"

// TokenTypeBearer is the token type reported alongside issued access tokens.
const TokenTypeBearer = "Bearer"

// AccessToken is an issued identity token together with its lifetime.
type AccessToken struct {
	Token     string
	Type      string
	ExpiresIn time.Duration
}

// NewAccessToken builds a bearer access token value.
func NewAccessToken(token string, expiresIn time.Duration) *AccessToken {
	return &AccessToken{
		Token:     token,
		Type:      TokenTypeBearer,
		ExpiresIn: expiresIn,
	}
}

// ExpiresInSeconds reports the lifetime in whole seconds.
func (t *AccessToken) ExpiresInSeconds() int64 {
	return int64(t.ExpiresIn / time.Second)
}
