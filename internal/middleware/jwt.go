// Package middleware contains reusable HTTP middleware: the bearer-token
// authentication gate and the note list cache.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/model"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/repository"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/utils"
)

// userContextKey is the echo context key under which the authenticated
// user is stored.
const userContextKey = "current_user"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves its subject to a live user. This is the single
// authentication gate every protected operation passes through: a
// missing header, an unverifiable token and a subject that no longer
// resolves to a user (deleted after issuance) all produce the same 401.
func JWTAuth(secret string, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return credentialsError(c)
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			username, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return credentialsError(c)
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := users.GetByUsername(ctx, username)
			if err != nil {
				return credentialsError(c)
			}

			SetCurrentUser(c, u)
			return next(c)
		}
	}
}

// SetCurrentUser stores the resolved user on the request context.
func SetCurrentUser(c echo.Context, u model.User) {
	c.Set(userContextKey, u)
}

// CurrentUser returns the authenticated user stored by JWTAuth. The
// boolean is false when the middleware did not run on this route.
func CurrentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(userContextKey).(model.User)
	return u, ok
}

// credentialsError writes the 401 response shared by every token
// failure, including the bearer challenge header.
func credentialsError(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "could not validate credentials"})
}
