package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

type contextKey string

const UserIDKey contextKey = "user_id"

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

// Middleware verifies the bearer token with the HS256 secret and places the
// token subject on the request context as the owner identity.
func Middleware(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return key, nil
			}, jwt.WithValidMethods([]string{"HS256"}))
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
			}

			ctx := context.WithValue(c.Request().Context(), UserIDKey, claims.Subject)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// DevMiddleware is a permissive middleware for development that gives
// unauthenticated requests a fixed identity.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := context.WithValue(c.Request().Context(), UserIDKey, "dev-user")
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func UserIDFromContext(ctx context.Context) string {
	uid, _ := ctx.Value(UserIDKey).(string)
	return uid
}
