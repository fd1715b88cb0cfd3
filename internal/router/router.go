package router // package router defines how HTTP routes are registered for the gateway

import (
	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/handler"
	"github.com/lfarias/sports-booking-gateway/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterPublic registers the unauthenticated browse surface: scenarios,
// sub-scenarios, per-date availability and the states catalog.  The
// response cache middleware wraps the slow-changing venue endpoints;
// availability is cached under its own contract keys inside the handler.
func RegisterPublic(e *echo.Echo, cat *handler.CatalogHandler, responseCache echo.MiddlewareFunc) {
	e.GET("/v1/scenarios", cat.ListScenarios, responseCache)
	e.GET("/v1/scenarios/:id/sub-scenarios", cat.ListSubScenarios, responseCache)
	e.GET("/v1/sub-scenarios/:id/timeslots", cat.TimeslotsForDate)
	e.GET("/v1/reservations/states", cat.States)
}

// RegisterBooking registers the booking-session surface.  Everything here
// requires a valid bearer token; mutating routes additionally pass the
// rate limiter.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rateLimit echo.MiddlewareFunc) {
	g := e.Group("/v1/booking/session")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleUser, middleware.RoleAdmin))
	g.Use(rateLimit)

	g.POST("", b.OpenSession)
	g.GET("", b.GetSession)
	g.POST("/start-date", b.SetStartDate)
	g.POST("/end-date", b.SetEndDate)
	g.POST("/range-mode", b.SetRangeMode)
	g.POST("/weekday-mode", b.SetWeekdayMode)
	g.POST("/weekdays/toggle", b.ToggleWeekday)
	g.POST("/slots/toggle", b.ToggleSlot)
	g.POST("/shortcut", b.ApplyShortcut)
	g.POST("/period", b.SelectPeriod)
	g.DELETE("/slots", b.ClearSlots)
	g.GET("/availability", b.RangeAvailability)
	g.POST("/submit", b.Submit)
}

// RegisterReservations registers listing and cancellation.
func RegisterReservations(e *echo.Echo, r *handler.ReservationHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleUser, middleware.RoleAdmin))

	g.GET("/users/:id/reservations", r.ListForUser)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.POST("/reservations/cancel", r.CancelMany)
}

// RegisterAdmin registers the staff dashboard operations behind the ADMIN
// role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(middleware.RoleAdmin))

	g.PATCH("/reservations/:id/state", a.SetState)
}
