// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/handler"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/middleware"
	"github.com/debarnabdas007/Sticky-Notes-Pro/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication.
// The health check is used by load balancers and monitoring systems.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.Health)
}

// RegisterUsers registers the auth endpoints. Register and login are
// open; /users/me requires a valid bearer token.
func RegisterUsers(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, users *repository.UserRepo) {
	e.POST("/users/register", a.Register)
	e.POST("/users/login", a.Login)

	me := e.Group("/users")
	me.Use(middleware.JWTAuth(jwtSecret, users))
	me.GET("/me", a.Me)
}

// RegisterNotes registers the note CRUD endpoints. The whole group runs
// behind JWTAuth, and behind the per-owner list cache when one is
// configured; the cache middleware must come after auth so it can key on
// the resolved user.
func RegisterNotes(e *echo.Echo, n *handler.NoteHandler, jwtSecret string, users *repository.UserRepo, cache *middleware.NotesCache) {
	g := e.Group("/notes")
	g.Use(middleware.JWTAuth(jwtSecret, users))
	if cache != nil {
		g.Use(cache.Middleware())
	}

	// Both the bare and trailing-slash forms are accepted for the
	// collection routes.
	g.POST("", n.Create)
	g.POST("/", n.Create)
	g.GET("", n.List)
	g.GET("/", n.List)
	g.PUT("/:id", n.Update)
	g.DELETE("/:id", n.Delete)
}
