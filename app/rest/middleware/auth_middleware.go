package middleware

import (
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"blog-service/app/domain"
	"blog-service/app/port"
	apperrors "blog-service/app/utils/errors"
)

// userContextKey is where the resolved user lives on the echo context.
const userContextKey = "current_user"

// AuthMiddleware resolves bearer tokens into users
type AuthMiddleware struct {
	userUsecase port.UserUsecase
	logger      *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(userUsecase port.UserUsecase, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		userUsecase: userUsecase,
		logger:      logger,
	}
}

// OptionalAuth resolves the Authorization header into a user when possible.
// A missing, malformed or expired token never fails the request here; the
// request simply stays anonymous and handlers that need an identity reject
// it themselves.
func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := m.extractBearerToken(c)
			if token == "" {
				return next(c)
			}

			user, err := m.userUsecase.ResolveToken(ctx, token)
			if err != nil {
				m.logger.Debug("token resolution failed", "error", err)
				return next(c)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAuth rejects requests that did not resolve to a user.
func (m *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				return apperrors.ErrUnauthenticated
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user for this request, or nil for
// anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, ok := c.Get(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// SetCurrentUser attaches a user to the request context. Exposed for handler
// tests that bypass the middleware chain.
func SetCurrentUser(c echo.Context, user *domain.User) {
	c.Set(userContextKey, user)
}

// extractBearerToken pulls the token out of "Authorization: <scheme> <token>".
// The scheme is not checked, only the shape.
func (m *AuthMiddleware) extractBearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[1]) == "" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
