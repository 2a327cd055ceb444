package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/cinebook/cinema-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/cinebook/cinema-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (register, login,
	// refresh, logout) live under /v1/auth.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and issues a new access token.
	g.POST("/refresh", a.Refresh)
	// Logout accepts a JSON body containing a `refresh_token` and
	// invalidates that token.  A valid token yields 204.
	g.POST("/logout", a.Logout)

	// Routes that require a valid access token.  The JWTAuth middleware
	// runs before every handler registered on this group.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("CUSTOMER"))
	// Return the authenticated customer's profile.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  Guests can list movies and open a booking page (movie
// info, showtime, seat map and concessions) without a session; selecting
// seats and checking out require the customer routes below.
func RegisterPublic(e *echo.Echo, b *handler.BookingHandler) {
	// Expose the list of movies currently showing.
	e.GET("/v1/movies", b.ListMovies)
	// The booking page bundle for one showtime of a movie.
	e.GET("/v1/movies/:movie_id/:showtime_id", b.GetBookingPage)
}
