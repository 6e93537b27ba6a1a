package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/orderdesk/order-gateway/internal/api/metrics"
	"github.com/orderdesk/order-gateway/internal/core/ports"
)

// userContextKey is where Auth stores the resolved *domain.User.
const userContextKey = "auth.user"

// Auth gates protected routes: it extracts the bearer token, verifies it,
// resolves the subject against the credential store and rejects disabled
// accounts. On success the authenticated user is injected into the echo
// context.
func Auth(tokens ports.TokenService, users ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return unauthenticated(c, "missing bearer token")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_token").Inc()
				return unauthenticated(c, "invalid authorization header")
			}

			username, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return unauthenticated(c, "could not validate credentials")
			}

			// A token can outlive its user record; treat that the same as
			// bad credentials, not as a server error.
			user, err := users.FindByUsername(username)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("unknown_user").Inc()
				return unauthenticated(c, "could not validate credentials")
			}

			if user.Disabled {
				metrics.AuthFailuresTotal.WithLabelValues("disabled").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "inactive user")
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

func unauthenticated(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
