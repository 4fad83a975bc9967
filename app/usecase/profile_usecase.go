package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"product-service/app/domain"
	"product-service/app/port"
)

// ProfileUseCase updates the profile of the authenticated user
type ProfileUseCase struct {
	users    port.UserRepository
	identity port.IdentityResolver
	hasher   port.PasswordHasher
	tokens   port.TokenCodec
	logger   *slog.Logger
}

// NewProfileUseCase creates a new ProfileUseCase instance
func NewProfileUseCase(
	users port.UserRepository,
	identity port.IdentityResolver,
	hasher port.PasswordHasher,
	tokens port.TokenCodec,
	logger *slog.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		users:    users,
		identity: identity,
		hasher:   hasher,
		tokens:   tokens,
		logger:   logger.With("component", "profile_usecase"),
	}
}

// UpdateProfile applies req to current and returns a token for the
// resulting e-mail. Nil name fields keep the stored values.
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, current *domain.User, req *domain.ProfileUpdateRequest) (*domain.AccessToken, error) {
	email := current.Email
	if req.Email != nil && *req.Email != "" && *req.Email != current.Email {
		_, err := uc.identity.ResolveBySubject(ctx, *req.Email)
		switch {
		case err == nil:
			return nil, domain.ErrEmailAlreadyRegistered
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, err
		}
		email = *req.Email
	}

	var passwordHash *string
	if req.NewPassword != nil {
		if *req.NewPassword == "" {
			return nil, domain.NewValidationError("new_password", "new_password must not be empty")
		}
		if req.CurrentPassword == nil || *req.CurrentPassword == "" {
			return nil, domain.NewValidationError("password", "password is required to change the password")
		}
		if !uc.hasher.Verify(*req.CurrentPassword, current.PasswordHash) {
			return nil, domain.ErrIncorrectPassword
		}
		hash, err := uc.hasher.Hash(*req.NewPassword)
		if err != nil {
			return nil, err
		}
		passwordHash = &hash
	}

	updated, err := uc.users.UpdateUser(ctx, &domain.UserUpdate{
		ID:           current.ID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("failed to update user: %w", domain.ErrPersistenceFailed)
	}

	token, err := uc.tokens.IssueAccess(email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	uc.logger.Info("profile updated", "user_id", current.ID, "password_changed", passwordHash != nil)
	return token, nil
}
