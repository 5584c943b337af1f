package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskdash/apigateway/internal/domain"
)

// identityContextKey is where the middleware stores the decoded identity.
const identityContextKey = "auth.identity"

// legacyTokenHeader is the raw-token header the original dashboard client
// sends. New clients should use Authorization: Bearer.
const legacyTokenHeader = "x-auth-token"

// Middleware verifies the bearer credential and attaches the acting user's
// identity to the request context. Missing and invalid tokens both produce a
// 401 with the same generic message so a caller cannot distinguish a
// malformed token from an expired one.
func Middleware(manager *JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token não fornecido")
			}

			identity, err := manager.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "token inválido")
			}

			c.Set(identityContextKey, *identity)
			return next(c)
		}
	}
}

func extractToken(r *http.Request) string {
	if h := r.Header.Get(echo.HeaderAuthorization); h != "" {
		if strings.HasPrefix(h, "Bearer ") {
			return strings.TrimPrefix(h, "Bearer ")
		}
		return ""
	}
	return r.Header.Get(legacyTokenHeader)
}

// IdentityFrom returns the identity the middleware attached. The bool is
// false on routes that never passed through the middleware.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(domain.Identity)
	return identity, ok
}
