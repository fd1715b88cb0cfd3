package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// AdminHandler exposes the staff dashboard operations: moving any
// reservation into another state (confirm, reject, cancel).  Routes using
// it sit behind the ADMIN role middleware.
type AdminHandler struct {
	API *backend.Client
	Bus *cache.Bus
}

// NewAdminHandler constructs an AdminHandler.  Bus may be nil.
func NewAdminHandler(api *backend.Client, bus *cache.Bus) *AdminHandler {
	if api == nil {
		panic("nil backend client passed to NewAdminHandler")
	}
	return &AdminHandler{API: api, Bus: bus}
}

// SetState handles PATCH /v1/admin/reservations/:id/state.  The backend
// owns the transition; this gateway forwards the request and mirrors the
// authoritative result, invalidating the affected caches on success.
func (h *AdminHandler) SetState(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		StateID int    `json:"stateId"`
		Reason  string `json:"reason"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	switch body.StateID {
	case model.StatePendiente, model.StateConfirmada, model.StateRechazada, model.StateCancelada:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown state id"})
	}

	ctx := c.Request().Context()
	res, err := h.API.SetReservationState(ctx, getToken(c), id, body.StateID, body.Reason)
	if err != nil {
		var subErr *backend.SubmissionError
		if errors.As(err, &subErr) {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": subErr.Error()})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "state change failed"})
	}

	dates := []string{res.InitialDate}
	if res.FinalDate != nil && *res.FinalDate != "" {
		dates = append(dates, *res.FinalDate)
	}
	h.Bus.Publish(ctx, cache.Invalidation{
		FacilityID: res.SubScenarioID,
		UserID:     res.UserID,
		Dates:      dates,
	})
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}
