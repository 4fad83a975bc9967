package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"product-service/app/domain"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeProductNotFound, "Product not found"),
			expected: "PRODUCT_NOT_FOUND: Product not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternalError, "Error updating user.", errors.New("connection failed")),
			expected: "INTERNAL_ERROR: Error updating user. (caused by: connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	err := Wrap(ErrCodeInternalError, "wrapped error", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAppError_WithMessage(t *testing.T) {
	original := New(ErrCodeInternalError, MsgInternalError)
	changed := original.WithMessage("Error deleting product.")

	assert.Equal(t, "Error deleting product.", changed.Message)
	assert.Equal(t, MsgInternalError, original.Message)
	assert.Equal(t, original.StatusCode, changed.StatusCode)
}

func TestNew_StatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusConflict, New(ErrCodeProductExists, "x").StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, New(ErrCodeRateLimitExceeded, "x").StatusCode)
	assert.Equal(t, http.StatusInternalServerError, New(ErrCodeInternalError, "x").StatusCode)
}

func TestFromDomain(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      ErrorCode
		wantStatus    int
		wantMessage   string
		wantChallenge bool
	}{
		{
			name:          "expired token",
			err:           fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenExpired),
			wantCode:      ErrCodeUnauthorized,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   MsgCouldNotValidate,
			wantChallenge: true,
		},
		{
			name:          "malformed token",
			err:           fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenMalformed),
			wantCode:      ErrCodeUnauthorized,
			wantStatus:    http.StatusUnauthorized,
			wantMessage:   MsgCouldNotValidate,
			wantChallenge: true,
		},
		{
			name:        "wrong password",
			err:         domain.ErrInvalidCredentials,
			wantCode:    ErrCodeInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantMessage: MsgInvalidPassword,
		},
		{
			name:        "user gone",
			err:         domain.ErrUserNotFound,
			wantCode:    ErrCodeUserNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: MsgUserNotExists,
		},
		{
			name:        "email taken",
			err:         domain.ErrEmailAlreadyRegistered,
			wantCode:    ErrCodeEmailRegistered,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgEmailRegistered,
		},
		{
			name:        "old password wrong",
			err:         domain.ErrIncorrectPassword,
			wantCode:    ErrCodeIncorrectPassword,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgOldPasswordIncorrect,
		},
		{
			name:        "product missing",
			err:         domain.ErrProductNotFound,
			wantCode:    ErrCodeProductNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: MsgProductNotFound,
		},
		{
			name:        "duplicate product",
			err:         domain.ErrProductAlreadyExists,
			wantCode:    ErrCodeProductExists,
			wantStatus:  http.StatusConflict,
			wantMessage: MsgProductExists,
		},
		{
			name:        "rename collision",
			err:         domain.ErrProductNameTaken,
			wantCode:    ErrCodeProductNameTaken,
			wantStatus:  http.StatusBadRequest,
			wantMessage: MsgProductNameTaken,
		},
		{
			name:        "validation",
			err:         domain.NewValidationError("email", "email must be a valid email address"),
			wantCode:    ErrCodeValidationFailed,
			wantStatus:  http.StatusUnprocessableEntity,
			wantMessage: "email must be a valid email address",
		},
		{
			name:        "persistence",
			err:         fmt.Errorf("failed to update user: %w", domain.ErrPersistenceFailed),
			wantCode:    ErrCodeInternalError,
			wantStatus:  http.StatusInternalServerError,
			wantMessage: MsgInternalError,
		},
		{
			name:        "app error passes through",
			err:         New(ErrCodeRateLimitExceeded, "slow down"),
			wantCode:    ErrCodeRateLimitExceeded,
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "slow down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromDomain(tt.err)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.StatusCode)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, tt.wantChallenge, appErr.IsTokenFailure())
			assert.ErrorIs(t, appErr, tt.err)
		})
	}
}
