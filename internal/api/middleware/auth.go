package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/uscl/transaction-tracker/internal/core/domain"
)

// Context keys populated by Auth.
const (
	CtxAdminID  = "admin_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth validates the HS256 bearer token and injects its claims into the
// context. Tokens without an expiry are rejected.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, false)
}

// OptionalAuth lets requests without an Authorization header through
// anonymously. A header that is present must still carry a valid token.
func OptionalAuth(jwtSecret string) echo.MiddlewareFunc {
	return authenticate(jwtSecret, true)
}

func authenticate(jwtSecret string, optional bool) echo.MiddlewareFunc {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	keyFunc := func(*jwt.Token) (any, error) { return []byte(jwtSecret), nil }

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" && optional {
				return next(c)
			}
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := parser.ParseWithClaims(strings.TrimSpace(parts[1]), claims, keyFunc)
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role, ok := roleFromClaims(claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			adminID, _ := claims["admin_id"].(float64)
			username, _ := claims["username"].(string)

			c.Set(CtxAdminID, int64(adminID))
			c.Set(CtxUsername, username)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}

// RoleFrom returns the role set by Auth, or "" for an anonymous request.
func RoleFrom(c echo.Context) domain.Role {
	role, _ := c.Get(CtxRole).(domain.Role)
	return role
}

// roleFromClaims prefers the role claim and falls back to the three flags.
func roleFromClaims(claims jwt.MapClaims) (domain.Role, bool) {
	if s, ok := claims["role"].(string); ok {
		role := domain.Role(s)
		return role, role.Valid()
	}
	flag := func(k string) bool { b, _ := claims[k].(bool); return b }
	role, err := domain.RoleFromFlags(domain.RoleFlags{
		IsAdmin:      flag("isAdmin"),
		IsSuperAdmin: flag("isSuperAdmin"),
		IsDemo:       flag("isDemo"),
	})
	return role, err == nil
}
