package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfarias/sports-booking-gateway/internal/auth"
	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/booking"
)

// BookingHandler exposes the booking session over HTTP: opening a session
// for a facility, picking dates and slots, reading the summary, and
// submitting the reservation.  All routes require authentication; the
// session is owned by the authenticated user and every mutation is applied
// against that user's single active session.
type BookingHandler struct {
	API      *backend.Client
	Sessions *booking.SessionStore
	Flow     *booking.Flow
}

// NewBookingHandler constructs a BookingHandler.  All dependencies must be
// non-nil.
func NewBookingHandler(api *backend.Client, sessions *booking.SessionStore, flow *booking.Flow) *BookingHandler {
	if api == nil || sessions == nil || flow == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{API: api, Sessions: sessions, Flow: flow}
}

// OpenSession handles POST /v1/booking/session.  It opens (or resets, when
// the facility changed) the user's booking session and loads availability
// for the start date.
func (h *BookingHandler) OpenSession(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		SubScenarioID uint64 `json:"subScenarioId"`
	}
	if err := c.Bind(&body); err != nil || body.SubScenarioID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "subScenarioId is required"})
	}
	sess := h.Sessions.Open(userID, body.SubScenarioID)
	if _, err := h.refreshAvailability(c, sess); err != nil {
		return availabilityError(c, err)
	}
	return c.JSON(http.StatusCreated, sessionView(sess, nil))
}

// GetSession handles GET /v1/booking/session.
func (h *BookingHandler) GetSession(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// SetStartDate handles POST /v1/booking/session/start-date.  Changing the
// date re-fetches availability and reconciles the selection; slots that
// fell out are reported so the UI can tell the user.  When the existing
// end date became invalid it is cleared and reported as reset.
func (h *BookingHandler) SetStartDate(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	endReset, err := sess.SetStartDate(body.Date)
	if err != nil {
		return bookingError(c, err)
	}
	removed, err := h.refreshAvailability(c, sess)
	if err != nil {
		return availabilityError(c, err)
	}
	extra := echo.Map{"endDateReset": endReset}
	if len(removed) > 0 {
		extra["removedSlotIds"] = removed
	}
	return c.JSON(http.StatusOK, sessionView(sess, extra))
}

// SetEndDate handles POST /v1/booking/session/end-date.
func (h *BookingHandler) SetEndDate(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := sess.SetEndDate(body.Date); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// SetRangeMode handles POST /v1/booking/session/range-mode.
func (h *BookingHandler) SetRangeMode(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	sess.SetRangeMode(body.Enabled)
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// SetWeekdayMode handles POST /v1/booking/session/weekday-mode.
func (h *BookingHandler) SetWeekdayMode(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := sess.SetWeekdayMode(body.Enabled); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// ToggleWeekday handles POST /v1/booking/session/weekdays/toggle.
func (h *BookingHandler) ToggleWeekday(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		Day int `json:"day"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	selected, err := sess.ToggleWeekday(body.Day)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, echo.Map{"selected": selected}))
}

// ToggleSlot handles POST /v1/booking/session/slots/toggle.  Toggling is
// synchronous against the last availability snapshot; it never waits on a
// fresh fetch.
func (h *BookingHandler) ToggleSlot(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		SlotID int `json:"slotId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	selected, err := sess.ToggleSlot(body.SlotID)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, echo.Map{"selected": selected}))
}

// ApplyShortcut handles POST /v1/booking/session/shortcut.  Replace
// semantics: the selection becomes the shortcut's available hours.
func (h *BookingHandler) ApplyShortcut(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		ShortcutID string `json:"shortcutId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := sess.ApplyShortcut(body.ShortcutID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// SelectPeriod handles POST /v1/booking/session/period.  Additive
// semantics: the period's available hours are unioned into the selection.
func (h *BookingHandler) SelectPeriod(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	var body struct {
		PeriodID string `json:"periodId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := sess.SelectPeriod(body.PeriodID); err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// ClearSlots handles DELETE /v1/booking/session/slots.
func (h *BookingHandler) ClearSlots(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	sess.ClearSlots()
	return c.JSON(http.StatusOK, sessionView(sess, nil))
}

// RangeAvailability handles GET /v1/booking/session/availability: the
// aggregate availability of the session's date-range configuration.
func (h *BookingHandler) RangeAvailability(c echo.Context) error {
	sess, ok := h.session(c)
	if !ok {
		return nil
	}
	dr, ok := sess.Schedule().(booking.DateRange)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session has no date range configured"})
	}
	agg, err := h.API.SlotsForConfiguration(c.Request().Context(), sess.SubScenarioID, dr.Start, dr.End, dr.Weekdays)
	if err != nil {
		return availabilityError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": agg})
}

// Submit handles POST /v1/booking/session/submit.  It runs the submission
// state machine and maps its terminal outcome onto HTTP.
func (h *BookingHandler) Submit(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sess := h.Sessions.Get(userID)
	if sess == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking session"})
	}
	var body struct {
		Comments string `json:"comments"`
	}
	if err := c.Bind(&body); err == nil && body.Comments != "" {
		sess.SetComments(body.Comments)
	}

	tokens := auth.SessionFromJWT(getToken(c))
	outcome := h.Flow.Submit(c.Request().Context(), sess, tokens)

	if outcome.State == booking.StateSucceeded {
		// The booking intent is fulfilled; drop the session.
		h.Sessions.Close(userID)
		return c.JSON(http.StatusCreated, echo.Map{"data": outcome.Reservation})
	}

	var (
		valErr   *backend.ValidationError
		authErr  *backend.AuthenticationError
		staleErr *backend.StaleSelectionError
		availErr *backend.AvailabilityQueryError
		subErr   *backend.SubmissionError
	)
	switch {
	case errors.As(outcome.Err, &valErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation request", "fields": outcome.FieldErrors})
	case errors.As(outcome.Err, &authErr):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "must log in to reserve"})
	case errors.As(outcome.Err, &staleErr):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":          "some selected slots are no longer available",
			"removedSlotIds": staleErr.RemovedSlotIDs,
		})
	case errors.As(outcome.Err, &availErr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "availability is temporarily unknown, please retry"})
	case errors.As(outcome.Err, &subErr):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": subErr.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reservation failed"})
}

// session loads the caller's active booking session.  When it returns
// false the error response has already been written.
func (h *BookingHandler) session(c echo.Context) (*booking.Session, bool) {
	userID, err := getUserID(c)
	if err != nil {
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		return nil, false
	}
	sess := h.Sessions.Get(userID)
	if sess == nil {
		_ = c.JSON(http.StatusNotFound, echo.Map{"error": "no active booking session"})
		return nil, false
	}
	return sess, true
}

// refreshAvailability fetches a fresh slot catalog for the session's start
// date and installs it under a fetch sequence token, so a response that
// was superseded by a newer fetch is dropped instead of overwriting newer
// state.  It returns the slot ids the reconcile removed.
func (h *BookingHandler) refreshAvailability(c echo.Context, sess *booking.Session) ([]int, error) {
	seq := sess.BeginAvailabilityFetch()
	start, _, _, _, _ := sess.Dates()
	slots, err := h.API.SlotsForDate(c.Request().Context(), sess.SubScenarioID, start)
	if err != nil {
		return nil, err
	}
	if !sess.ApplyAvailability(seq, slots) {
		// A newer fetch won; keep its snapshot.
		return nil, nil
	}
	return sess.Reconcile(), nil
}

// sessionView renders the session for the UI, merged with any extra keys.
func sessionView(sess *booking.Session, extra echo.Map) echo.Map {
	start, end, rangeMode, weekdayMode, weekdays := sess.Dates()
	view := echo.Map{
		"subScenarioId":   sess.SubScenarioID,
		"startDate":       start,
		"endDate":         end,
		"rangeMode":       rangeMode,
		"weekdayMode":     weekdayMode,
		"weekdays":        weekdays,
		"selectedSlotIds": sess.SelectedSlotIDs(),
		"timeslots":       sess.Catalog(),
		"summary":         sess.Summary(),
	}
	for k, v := range extra {
		view[k] = v
	}
	return view
}

// bookingError maps core booking errors onto HTTP responses.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrSlotUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "slot is not available"})
	case errors.Is(err, booking.ErrNoSlotsAvailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no slots available in the requested hours"})
	case errors.Is(err, booking.ErrEndBeforeStart):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end date must not be before start date"})
	case errors.Is(err, booking.ErrInvalidDate):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be an ISO date (YYYY-MM-DD)"})
	case errors.Is(err, booking.ErrRangeModeDisabled):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "range mode is disabled"})
	case errors.Is(err, booking.ErrWeekdayModeDisabled):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekday mode is disabled"})
	case errors.Is(err, booking.ErrInvalidWeekday):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "weekday index must be 0..6"})
	case errors.Is(err, booking.ErrUnknownShortcut), errors.Is(err, booking.ErrUnknownPeriod):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking operation failed"})
}

// availabilityError maps availability fetch failures.  Availability is
// unknown after the retry policy is exhausted, so the answer is "retry",
// never an empty slot list.
func availabilityError(c echo.Context, err error) error {
	var aqe *backend.AvailabilityQueryError
	if errors.As(err, &aqe) {
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "availability is temporarily unknown, please retry"})
	}
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "could not load availability"})
}
