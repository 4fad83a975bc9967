package port

//go:generate mockgen -source=user_port.go -destination=../mocks/mock_user_port.go

import (
	"context"

	"product-service/app/domain"
)

// ProfileUsecase defines profile management for the authenticated user
type ProfileUsecase interface {
	UpdateProfile(ctx context.Context, current *domain.User, req *domain.ProfileUpdateRequest) (*domain.AccessToken, error)
}

// UserRepository defines user data access backed by stored procedures
type UserRepository interface {
	GetUsers(ctx context.Context, filter domain.UserFilter) ([]*domain.User, error)
	// InsertUser returns the new id, or 0 when the store created nothing.
	InsertUser(ctx context.Context, user *domain.NewUser) (int, error)
	UpdateUser(ctx context.Context, update *domain.UserUpdate) (bool, error)
}
