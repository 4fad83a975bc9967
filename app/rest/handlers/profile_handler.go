package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"product-service/app/domain"
	"product-service/app/port"
	apperrors "product-service/app/utils/errors"
)

// ProfileHandler serves the authenticated user's own profile
type ProfileHandler struct {
	profiles port.ProfileUsecase
	logger   *slog.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles port.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger.With("component", "profile_handler"),
	}
}

// ProfileUpdateRequest is the body of PUT /profile/me. Changing the password
// needs the current password and a matching confirmation.
type ProfileUpdateRequest struct {
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Email              *string `json:"email" validate:"omitempty,email"`
	Password           *string `json:"password" validate:"required_with=NewPassword NewConfirmPassword"`
	NewPassword        *string `json:"new_password" validate:"required_with=NewConfirmPassword,omitempty,bcrypt_len"`
	NewConfirmPassword *string `json:"new_confirm_password" validate:"required_with=NewPassword,omitempty,eqfield=NewPassword"`
}

// checkPasswordChange rejects empty strings that the field tags accept as
// present. Any new password field requires all three to be non-empty.
func (r *ProfileUpdateRequest) checkPasswordChange() error {
	if r.NewPassword == nil && r.NewConfirmPassword == nil {
		return nil
	}
	if isBlank(r.Password) {
		return domain.NewValidationError("password", "password is required to change the password")
	}
	if isBlank(r.NewPassword) || isBlank(r.NewConfirmPassword) {
		return domain.NewValidationError("new_password", "new_password and new_confirm_password must be provided")
	}
	return nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// GetProfile returns the profile of the authenticated user
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user.Profile())
}

// UpdateProfile updates the authenticated user and returns a fresh token
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	user, err := domain.GetUserFromContext(c.Request().Context())
	if err != nil {
		return err
	}

	var req ProfileUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := req.checkPasswordChange(); err != nil {
		return apperrors.FromDomain(err)
	}

	token, err := h.profiles.UpdateProfile(c.Request().Context(), user, &domain.ProfileUpdateRequest{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		CurrentPassword: req.Password,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return failWith(err, "Error updating user.")
	}

	return c.JSON(http.StatusOK, newTokenResponse(token))
}
