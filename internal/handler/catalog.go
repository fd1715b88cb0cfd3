package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// CatalogHandler serves the public browse surface: venues, their
// reservable units, availability lookups, and the states catalog.  All
// data comes from the institute backend; availability responses are cached
// under the invalidation contract keys so a create or cancel flushes them.
type CatalogHandler struct {
	API   *backend.Client
	Store *cache.Store
}

// NewCatalogHandler constructs a CatalogHandler.  The store may be nil.
func NewCatalogHandler(api *backend.Client, store *cache.Store) *CatalogHandler {
	if api == nil {
		panic("nil backend client passed to NewCatalogHandler")
	}
	return &CatalogHandler{API: api, Store: store}
}

// ListScenarios handles GET /v1/scenarios?area=&neighborhood=.
func (h *CatalogHandler) ListScenarios(c echo.Context) error {
	scenarios, err := h.API.Scenarios(c.Request().Context(), c.QueryParam("area"), c.QueryParam("neighborhood"))
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load scenarios"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": scenarios})
}

// ListSubScenarios handles GET /v1/scenarios/:id/sub-scenarios.
func (h *CatalogHandler) ListSubScenarios(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	subs, err := h.API.SubScenarios(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load sub-scenarios"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": subs})
}

// TimeslotsForDate handles GET /v1/sub-scenarios/:id/timeslots?date=.
// Responses are cached briefly under the timeslots-{facility}-{date}
// contract key; a reservation create or cancel for that facility deletes
// it before the triggering request reports success.
func (h *CatalogHandler) TimeslotsForDate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	date := c.QueryParam("date")
	if date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date is required"})
	}
	ctx := c.Request().Context()
	key := cache.KeyTimeslots(id, date)

	var slots []model.TimeSlot
	if h.Store.GetJSON(ctx, key, &slots) {
		return c.JSON(http.StatusOK, echo.Map{"data": slots})
	}
	slots, err = h.API.SlotsForDate(ctx, id, date)
	if err != nil {
		// Availability unknown, not "no slots": surface the failure.
		var aqe *backend.AvailabilityQueryError
		if errors.As(err, &aqe) {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "availability is temporarily unknown, please retry"})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load availability"})
	}
	h.Store.SetJSON(ctx, key, slots)
	return c.JSON(http.StatusOK, echo.Map{"data": slots})
}

// States handles GET /v1/reservations/states.
func (h *CatalogHandler) States(c echo.Context) error {
	states, err := h.API.States(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load states"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": states})
}
