package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"product-service/app/domain"
	"product-service/app/port"
	apperrors "product-service/app/utils/errors"
)

// AuthHandler handles login and registration requests
type AuthHandler struct {
	auth   port.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth port.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger.With("component", "auth_handler"),
	}
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,bcrypt_len"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,bcrypt_len"`
	ConfirmPassword string  `json:"confirm_password" validate:"required,eqfield=Password"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Expire      int64  `json:"expire"`
}

func newTokenResponse(token *domain.AccessToken) TokenResponse {
	return TokenResponse{
		AccessToken: token.Token,
		TokenType:   token.Type,
		Expire:      token.ExpiresInSeconds(),
	}
}

// Login authenticates a user by e-mail and password
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return apperrors.FromDomain(err).WithMessage(apperrors.MsgEmailNotFound)
		}
		return apperrors.FromDomain(err)
	}

	return c.JSON(http.StatusOK, newTokenResponse(token))
}

// Register creates a new account and returns a token for it
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Register(c.Request().Context(), &domain.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return failWith(err, "Error registering user.")
	}

	return c.JSON(http.StatusCreated, newTokenResponse(token))
}
