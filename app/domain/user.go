package domain

import (
	"context"
	"time"
)

// User represents a stored account. Email is the stable subject asserted by
// access tokens; PasswordHash is the stored credential and is never rendered.
type User struct {
	ID           int        `json:"id"`
	FirstName    *string    `json:"first_name"`
	LastName     *string    `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Profile returns the public profile view of the user.
func (u *User) Profile() *UserProfile {
	return &UserProfile{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// UserProfile is the profile payload served on /profile/me
type UserProfile struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     string  `json:"email"`
}

// UserFilter selects users; nil fields match every row.
type UserFilter struct {
	FirstName *string
	LastName  *string
	Email     *string
	ID        *int
}

// NewUser carries the fields persisted for a new account. PasswordHash holds
// the already hashed credential.
type NewUser struct {
	FirstName    *string
	LastName     *string
	Email        string
	PasswordHash string
}

// UserUpdate carries the full replacement row for a profile update. A nil
// PasswordHash keeps the stored credential.
type UserUpdate struct {
	ID           int
	FirstName    *string
	LastName     *string
	Email        string
	PasswordHash *string
}

// RegisterRequest holds the new-account fields. Password confirmation is
// checked at the transport boundary and is not carried here.
type RegisterRequest struct {
	FirstName *string
	LastName  *string
	Email     string
	Password  string
}

// ProfileUpdateRequest holds a profile change for the current user.
// CurrentPassword is required whenever NewPassword is set.
type ProfileUpdateRequest struct {
	FirstName       *string
	LastName        *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

type userContextKey struct{}

// WithUser stores the authenticated user in ctx.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*User, error) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	if !ok || user == nil {
		return nil, ErrUnauthorized
	}
	return user, nil
}
