package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"product-service/app/domain"
	"product-service/app/port"
)

// AuthUseCase implements login and registration
type AuthUseCase struct {
	users    port.UserRepository
	identity port.IdentityResolver
	hasher   port.PasswordHasher
	tokens   port.TokenCodec
	logger   *slog.Logger
}

// NewAuthUseCase creates a new AuthUseCase instance
func NewAuthUseCase(
	users port.UserRepository,
	identity port.IdentityResolver,
	hasher port.PasswordHasher,
	tokens port.TokenCodec,
	logger *slog.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:    users,
		identity: identity,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With("component", "auth_usecase"),
	}
}

// Login verifies the credentials of email and issues an access token.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (*domain.AccessToken, error) {
	user, err := uc.identity.ResolveBySubject(ctx, email)
	if err != nil {
		return nil, err
	}

	if !uc.hasher.Verify(password, user.PasswordHash) {
		uc.logger.Info("login rejected", "email", email)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.tokens.IssueAccess(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	uc.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Register creates an account and issues its first access token. The
// duplicate check runs before anything is written.
func (uc *AuthUseCase) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AccessToken, error) {
	_, err := uc.identity.ResolveBySubject(ctx, req.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailAlreadyRegistered
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	id, err := uc.users.InsertUser(ctx, &domain.NewUser{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, fmt.Errorf("failed to register user: %w", domain.ErrPersistenceFailed)
	}

	token, err := uc.tokens.IssueAccess(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	uc.logger.Info("user registered", "user_id", id)
	return token, nil
}
