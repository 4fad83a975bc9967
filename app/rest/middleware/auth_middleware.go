package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"product-service/app/domain"
	"product-service/app/port"
	applog "product-service/app/utils/logger"
)

const bearerScheme = "bearer"

// AuthMiddleware resolves the bearer token of a request to a stored user
type AuthMiddleware struct {
	identity port.IdentityResolver
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(identity port.IdentityResolver, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
		logger:   applog.WithComponent(logger, "auth_middleware"),
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// resolved user in the request context.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := extractBearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.ErrUnauthorized
			}

			ctx := c.Request().Context()
			user, err := m.identity.ResolveFromToken(ctx, token)
			if err != nil {
				m.logger.Debug("bearer token rejected", "path", c.Path(), "error", err)
				return err
			}

			c.SetRequest(c.Request().WithContext(domain.WithUser(ctx, user)))
			c.Set("user_id", user.ID)
			applog.WithUser(m.logger, user.ID).Debug("bearer token accepted", "path", c.Path())

			return next(c)
		}
	}
}

// extractBearerToken returns the credentials of an "Authorization: Bearer"
// header. The scheme is case-insensitive.
func extractBearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
