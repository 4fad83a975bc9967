package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"product-service/app/domain"
	"product-service/app/port"
)

// IdentityUseCase resolves bearer tokens to stored users. Users are read
// fresh on every call; nothing is cached between requests.
type IdentityUseCase struct {
	users  port.UserRepository
	tokens port.TokenCodec
	logger *slog.Logger
}

// NewIdentityUseCase creates a new IdentityUseCase instance
func NewIdentityUseCase(users port.UserRepository, tokens port.TokenCodec, logger *slog.Logger) *IdentityUseCase {
	return &IdentityUseCase{
		users:  users,
		tokens: tokens,
		logger: logger.With("component", "identity_usecase"),
	}
}

// ResolveBySubject looks up the single user owning subject. It returns
// domain.ErrUserNotFound when no user matches.
func (uc *IdentityUseCase) ResolveBySubject(ctx context.Context, subject string) (*domain.User, error) {
	users, err := uc.users.GetUsers(ctx, domain.UserFilter{Email: &subject})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if len(users) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return users[0], nil
}

// ResolveFromToken verifies token and resolves its subject. Every token
// failure wraps domain.ErrUnauthorized while keeping its expired or
// malformed class.
func (uc *IdentityUseCase) ResolveFromToken(ctx context.Context, token string) (*domain.User, error) {
	subject, err := uc.tokens.Verify(token)
	if err != nil {
		uc.logger.Debug("bearer token rejected", "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	return uc.ResolveBySubject(ctx, subject)
}
