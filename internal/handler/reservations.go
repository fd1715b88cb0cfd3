package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/booking"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// CancelPublisher pushes cancellation events onto the broker.  May be nil.
type CancelPublisher interface {
	ReservationCancelled(ctx context.Context, res *model.Reservation)
}

// ReservationHandler serves a user's reservation list and the cancel
// operations.  Lists are cached under the reservations-user-{id} contract
// key; any successful cancel publishes an invalidation before the response
// is written, so a re-fetch in the same tick sees fresh data.
type ReservationHandler struct {
	API    *backend.Client
	Store  *cache.Store
	Bus    *cache.Bus
	Events CancelPublisher
}

// NewReservationHandler constructs a ReservationHandler.  Store, bus and
// events may be nil.
func NewReservationHandler(api *backend.Client, store *cache.Store, bus *cache.Bus, events CancelPublisher) *ReservationHandler {
	if api == nil {
		panic("nil backend client passed to NewReservationHandler")
	}
	return &ReservationHandler{API: api, Store: store, Bus: bus, Events: events}
}

// ListForUser handles GET /v1/users/:id/reservations.  Reservations are
// classified active/past client-side by comparing now against the
// end-of-slot timestamp on each reservation's relevant date.
func (h *ReservationHandler) ListForUser(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pathUserID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if pathUserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	ctx := c.Request().Context()
	key := cache.KeyUserReservations(userID)

	var list []model.Reservation
	if !h.Store.GetJSON(ctx, key, &list) {
		list, err = h.API.ListForUser(ctx, getToken(c), userID)
		if err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load reservations"})
		}
		h.Store.SetJSON(ctx, key, list)
	}

	classified := booking.Classify(time.Now(), list)
	return c.JSON(http.StatusOK, echo.Map{"data": classified})
}

// Cancel handles POST /v1/reservations/:id/cancel.  The item must not be
// removed from any local view until the backend confirms; on failure the
// caller keeps the listing as is and surfaces the message.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.Bind(&body)

	ctx := c.Request().Context()
	res, err := h.API.CancelReservation(ctx, getToken(c), id, body.Reason)
	if err != nil {
		var subErr *backend.SubmissionError
		if errors.As(err, &subErr) {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": subErr.Error()})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "cancellation failed"})
	}

	h.invalidate(ctx, res)
	return c.JSON(http.StatusOK, echo.Map{"data": res})
}

// CancelMany handles POST /v1/reservations/cancel.  Cancellations run in
// parallel and are independent: the response reports each item's outcome
// and an aggregate flag that is only true when every item succeeded.
func (h *ReservationHandler) CancelMany(c echo.Context) error {
	if _, err := getUserID(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ReservationIDs []uint64 `json:"reservationIds"`
		Reason         string   `json:"reason"`
	}
	if err := c.Bind(&body); err != nil || len(body.ReservationIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "reservationIds is required"})
	}

	ctx := c.Request().Context()
	results := h.API.CancelMany(ctx, getToken(c), body.ReservationIDs, body.Reason)
	for _, r := range results {
		if r.Err == nil && r.Reservation != nil {
			h.invalidate(ctx, r.Reservation)
		}
	}

	status := http.StatusOK
	if !backend.AllSucceeded(results) {
		// Partial failure: the caller must inspect per-item results.
		status = http.StatusMultiStatus
	}
	return c.JSON(status, echo.Map{
		"data":         results,
		"allSucceeded": backend.AllSucceeded(results),
	})
}

func (h *ReservationHandler) invalidate(ctx context.Context, res *model.Reservation) {
	dates := []string{res.InitialDate}
	if res.FinalDate != nil && *res.FinalDate != "" {
		dates = append(dates, *res.FinalDate)
	}
	h.Bus.Publish(ctx, cache.Invalidation{
		FacilityID: res.SubScenarioID,
		UserID:     res.UserID,
		Dates:      dates,
	})
	if h.Events != nil {
		h.Events.ReservationCancelled(ctx, res)
	}
}
