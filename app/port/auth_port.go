package port

//go:generate mockgen -source=auth_port.go -destination=../mocks/mock_auth_port.go

import (
	"context"
	"time"

	"product-service/app/domain"
)

// AuthUsecase defines the login and registration entry points
type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (*domain.AccessToken, error)
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AccessToken, error)
}

// IdentityResolver maps subjects and bearer tokens to stored users
type IdentityResolver interface {
	ResolveBySubject(ctx context.Context, subject string) (*domain.User, error)
	ResolveFromToken(ctx context.Context, token string) (*domain.User, error)
}

// PasswordHasher hashes and verifies credentials
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenCodec issues and verifies signed identity tokens
type TokenCodec interface {
	// Issue signs a token for subject that expires after exactly ttl.
	Issue(subject string, ttl time.Duration) (*domain.AccessToken, error)
	// IssueAccess signs a token with the configured access lifetime.
	IssueAccess(subject string) (*domain.AccessToken, error)
	// Verify returns the subject of a valid token. Failures wrap
	// domain.ErrTokenExpired or domain.ErrTokenMalformed.
	Verify(token string) (string, error)
}
