package domain_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-service/app/domain"
)

func TestUser_Profile(t *testing.T) {
	first := "Ada"
	user := &domain.User{
		ID:           7,
		FirstName:    &first,
		Email:        "user@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	profile := user.Profile()

	assert.Equal(t, &first, profile.FirstName)
	assert.Nil(t, profile.LastName)
	assert.Equal(t, "user@example.com", profile.Email)
}

func TestUser_HashIsNeverSerialized(t *testing.T) {
	user := &domain.User{ID: 1, Email: "user@example.com", PasswordHash: "$2a$10$hash"}

	raw, err := json.Marshal(user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "$2a$10$hash")
	assert.NotContains(t, string(raw), "password")
}

func TestUserContext(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		user := &domain.User{ID: 3, Email: "user@example.com"}

		got, err := domain.GetUserFromContext(domain.WithUser(context.Background(), user))

		require.NoError(t, err)
		assert.Same(t, user, got)
	})

	t.Run("absent user is unauthorized", func(t *testing.T) {
		_, err := domain.GetUserFromContext(context.Background())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("nil user is unauthorized", func(t *testing.T) {
		_, err := domain.GetUserFromContext(domain.WithUser(context.Background(), nil))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAccessToken(t *testing.T) {
	tests := []struct {
		name     string
		ttl      time.Duration
		expected int64
	}{
		{name: "minutes", ttl: 15 * time.Minute, expected: 900},
		{name: "sub-second remainder is truncated", ttl: 1500 * time.Millisecond, expected: 1},
		{name: "zero", ttl: 0, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := domain.NewAccessToken("jwt", tt.ttl)

			assert.Equal(t, domain.TokenTypeBearer, token.Type)
			assert.Equal(t, tt.expected, token.ExpiresInSeconds())
		})
	}
}

func TestProductFilters(t *testing.T) {
	single := domain.ProductOwnedBy(3, 11)
	require.NotNil(t, single.UserID)
	require.NotNil(t, single.ID)
	assert.Equal(t, 3, *single.UserID)
	assert.Equal(t, 11, *single.ID)
	assert.Nil(t, single.Name)

	all := domain.ProductsOwnedBy(3)
	require.NotNil(t, all.UserID)
	assert.Equal(t, 3, *all.UserID)
	assert.Nil(t, all.ID)
}

func TestValidationError(t *testing.T) {
	err := domain.NewValidationError("email", "email is required")

	assert.Equal(t, "email is required", err.Error())
	assert.True(t, errors.Is(err, domain.ErrValidationFailed))
}
