package errors

import (
	"errors"
	"fmt"
	"net/http"

	"product-service/app/domain"
)

// ErrorCode represents specific error types
type ErrorCode string

const (
	// Authentication errors
	ErrCodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"

	// User errors
	ErrCodeUserNotFound      ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailRegistered   ErrorCode = "EMAIL_REGISTERED"
	ErrCodeIncorrectPassword ErrorCode = "INCORRECT_PASSWORD"

	// Product errors
	ErrCodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
	ErrCodeProductExists    ErrorCode = "PRODUCT_EXISTS"
	ErrCodeProductNameTaken ErrorCode = "PRODUCT_NAME_TAKEN"

	// Validation errors
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"

	// System errors
	ErrCodeInternalError     ErrorCode = "INTERNAL_ERROR"
	ErrCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// Client-facing messages
const (
	MsgCouldNotValidate     = "Could not validate credentials"
	MsgInvalidPassword      = "Invalid password."
	MsgEmailNotFound        = "Email not found."
	MsgUserNotExists        = "User not exists!!"
	MsgEmailRegistered      = "Email already registered."
	MsgOldPasswordIncorrect = "Old password is incorrect!!"
	MsgProductNotFound      = "Product not found"
	MsgProductExists        = "Product already exists!!"
	MsgProductNameTaken     = "Product name already registered."
	MsgInternalError        = "Internal Server Error"
)

// AppError represents an application error with additional context
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error unwrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithMessage returns a copy of e carrying a different client message.
func (e *AppError) WithMessage(message string) *AppError {
	cp := *e
	cp.Message = message
	return &cp
}

// IsTokenFailure reports whether the client should be challenged for a
// bearer token.
func (e *AppError) IsTokenFailure() bool {
	return e.Code == ErrCodeUnauthorized
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: getHTTPStatusCode(code),
		Cause:      cause,
	}
}

// AsAppError converts an error to AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// FromDomain classifies err once into the AppError the boundary renders.
// Token expiry and malformation both surface as the same unauthorized
// error so clients cannot tell them apart.
func FromDomain(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrTokenMalformed):
		return Wrap(ErrCodeUnauthorized, MsgCouldNotValidate, err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return Wrap(ErrCodeInvalidCredentials, MsgInvalidPassword, err)
	case errors.Is(err, domain.ErrUserNotFound):
		return Wrap(ErrCodeUserNotFound, MsgUserNotExists, err)
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return Wrap(ErrCodeEmailRegistered, MsgEmailRegistered, err)
	case errors.Is(err, domain.ErrIncorrectPassword):
		return Wrap(ErrCodeIncorrectPassword, MsgOldPasswordIncorrect, err)
	case errors.Is(err, domain.ErrProductNotFound):
		return Wrap(ErrCodeProductNotFound, MsgProductNotFound, err)
	case errors.Is(err, domain.ErrProductAlreadyExists):
		return Wrap(ErrCodeProductExists, MsgProductExists, err)
	case errors.Is(err, domain.ErrProductNameTaken):
		return Wrap(ErrCodeProductNameTaken, MsgProductNameTaken, err)
	case errors.Is(err, domain.ErrValidationFailed):
		return Wrap(ErrCodeValidationFailed, err.Error(), err)
	default:
		return Wrap(ErrCodeInternalError, MsgInternalError, err)
	}
}

// getHTTPStatusCode maps error codes to HTTP status codes
func getHTTPStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeUnauthorized, ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case ErrCodeUserNotFound, ErrCodeProductNotFound:
		return http.StatusNotFound
	case ErrCodeProductExists:
		return http.StatusConflict
	case ErrCodeEmailRegistered, ErrCodeIncorrectPassword, ErrCodeProductNameTaken, ErrCodeBadRequest:
		return http.StatusBadRequest
	case ErrCodeValidationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
