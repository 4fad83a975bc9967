package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "product-service/app/utils/errors"
	applog "product-service/app/utils/logger"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// NewHTTPErrorHandler renders errors as {"detail": message}. Token failures
// carry a bearer challenge.
func NewHTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = applog.WithComponent(logger, "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := toAppError(err)

		if appErr.StatusCode >= http.StatusInternalServerError {
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			reqLogger := applog.WithRequest(logger, requestID, c.Request().Method, c.Path())
			applog.LogError(reqLogger, err, "request failed", "status", appErr.StatusCode)
		}

		if appErr.IsTokenFailure() {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(appErr.StatusCode)
		} else {
			writeErr = c.JSON(appErr.StatusCode, ErrorResponse{Detail: appErr.Message})
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

func toAppError(err error) *apperrors.AppError {
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return &apperrors.AppError{
			Code:       httpErrorCode(httpErr.Code),
			Message:    fmt.Sprint(httpErr.Message),
			StatusCode: httpErr.Code,
			Cause:      err,
		}
	}
	return apperrors.FromDomain(err)
}

func httpErrorCode(status int) apperrors.ErrorCode {
	switch {
	case status == http.StatusUnauthorized:
		return apperrors.ErrCodeUnauthorized
	case status == http.StatusTooManyRequests:
		return apperrors.ErrCodeRateLimitExceeded
	case status >= http.StatusInternalServerError:
		return apperrors.ErrCodeInternalError
	default:
		return apperrors.ErrCodeBadRequest
	}
}

// failWith classifies err and replaces the generic internal message with a
// message naming the failed operation.
func failWith(err error, internalMessage string) error {
	appErr := apperrors.FromDomain(err)
	if appErr.StatusCode == http.StatusInternalServerError {
		return appErr.WithMessage(internalMessage)
	}
	return appErr
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	return nil
}
