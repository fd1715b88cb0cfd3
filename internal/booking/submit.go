package booking

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/lfarias/sports-booking-gateway/internal/auth"
	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/dateutil"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// SubmitState is a phase of the submission flow.
type SubmitState int

const (
	StateIdle SubmitState = iota
	StateValidating
	StateSubmitting
	StateSucceeded
	StateFailed
)

func (s SubmitState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ReservationAPI is the slice of the backend client the flow depends on.
// *backend.Client satisfies it; tests plug in fakes.
type ReservationAPI interface {
	SlotsForDate(ctx context.Context, subScenarioID uint64, dateISO string) ([]model.TimeSlot, error)
	CreateReservation(ctx context.Context, token string, req *model.ReservationRequest) (*model.Reservation, error)
}

// EventPublisher receives the created reservation after a successful
// submission, e.g. to push it onto the message broker.  May be nil.
type EventPublisher interface {
	ReservationConfirmed(ctx context.Context, res *model.Reservation)
}

// Outcome is the terminal result of one submission attempt.  State is
// always StateSucceeded or StateFailed; the flow never leaves a submission
// hanging in an intermediate state.
type Outcome struct {
	State       SubmitState        `json:"state"`
	Reservation *model.Reservation `json:"reservation,omitempty"`
	FieldErrors map[string]string  `json:"fieldErrors,omitempty"`
	Err         error              `json:"-"`
}

// Flow drives a booking session through
// Idle → Validating → Submitting → Succeeded | Failed.
//
// Validating runs schema validation locally; nothing reaches the network
// on a validation failure.  The selection is reconciled against a fresh
// availability snapshot and the token is acquired fail-closed before the
// transition to Submitting.  The request is sent exactly once.  On success
// the invalidation event is published before the outcome is returned, so a
// read issued right after sees fresh data, and the selection is cleared.
type Flow struct {
	api      ReservationAPI
	bus      *cache.Bus
	events   EventPublisher
	validate *validator.Validate

	// OnTransition, when set, observes every state change.  Used by tests
	// and request logging.
	OnTransition func(from, to SubmitState)
}

// NewFlow wires a submission flow.  bus and events may be nil.
func NewFlow(api ReservationAPI, bus *cache.Bus, events EventPublisher) *Flow {
	return &Flow{
		api:      api,
		bus:      bus,
		events:   events,
		validate: validator.New(),
	}
}

// Submit runs one submission attempt for the session using tokens for
// authentication.  It always returns a terminal outcome.
func (f *Flow) Submit(ctx context.Context, sess *Session, tokens auth.TokenSource) *Outcome {
	state := StateIdle
	move := func(to SubmitState) {
		if f.OnTransition != nil {
			f.OnTransition(state, to)
		}
		state = to
	}

	move(StateValidating)
	req := sess.BuildRequest()
	if fields := f.validateRequest(req); len(fields) > 0 {
		move(StateFailed)
		return &Outcome{State: StateFailed, FieldErrors: fields, Err: &backend.ValidationError{Fields: fields}}
	}

	// Selected slots must still be available right before submission.
	slots, err := f.api.SlotsForDate(ctx, req.SubScenarioID, req.InitialDate)
	if err != nil {
		move(StateFailed)
		return &Outcome{State: StateFailed, Err: err}
	}
	seq := sess.BeginAvailabilityFetch()
	sess.ApplyAvailability(seq, slots)
	if removed := sess.Reconcile(); len(removed) > 0 {
		move(StateFailed)
		return &Outcome{State: StateFailed, Err: &backend.StaleSelectionError{RemovedSlotIDs: removed}}
	}

	token, err := tokens.CurrentToken(ctx)
	if err != nil {
		move(StateFailed)
		return &Outcome{State: StateFailed, Err: &backend.AuthenticationError{Reason: err.Error()}}
	}

	move(StateSubmitting)
	res, err := f.api.CreateReservation(ctx, token, req)
	if err != nil {
		move(StateFailed)
		return &Outcome{State: StateFailed, Err: err}
	}

	// Invalidate before reporting success so subsequent reads in the same
	// tick miss the cache.
	f.bus.Publish(ctx, cache.Invalidation{
		FacilityID: req.SubScenarioID,
		UserID:     sess.UserID,
		Dates:      requestDates(req),
	})
	if f.events != nil {
		f.events.ReservationConfirmed(ctx, res)
	}
	sess.ClearSlots()

	move(StateSucceeded)
	return &Outcome{State: StateSucceeded, Reservation: res}
}

// validateRequest checks the assembled request locally and returns a
// field-level error map, empty when the request is valid.
func (f *Flow) validateRequest(req *model.ReservationRequest) map[string]string {
	fields := make(map[string]string)
	if err := f.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				fields[fieldName(fe.Field())] = fieldMessage(fe)
			}
		} else {
			fields["request"] = err.Error()
		}
	}
	if req.FinalDate != nil && *req.FinalDate != "" &&
		validISO(req.InitialDate) && validISO(*req.FinalDate) &&
		!dateutil.ValidateRange(req.InitialDate, *req.FinalDate) {
		fields["finalDate"] = "final date is before initial date"
	}
	if len(req.WeekDays) > 0 && (req.FinalDate == nil || *req.FinalDate == "") {
		fields["weekDays"] = "weekday restriction requires a date range"
	}
	return fields
}

// requestDates lists the calendar dates the request affects, for cache
// invalidation.
func requestDates(req *model.ReservationRequest) []string {
	if req.FinalDate != nil && *req.FinalDate != "" {
		return dateutil.DatesForRange(req.InitialDate, *req.FinalDate, req.WeekDays)
	}
	return []string{req.InitialDate}
}

func fieldName(structField string) string {
	switch structField {
	case "SubScenarioID":
		return "subScenarioId"
	case "TimeSlotIDs":
		return "timeslotIds"
	case "InitialDate":
		return "initialDate"
	case "FinalDate":
		return "finalDate"
	case "WeekDays":
		return "weekDays"
	case "Comments":
		return "comments"
	}
	return structField
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "min":
		return "is required"
	case "datetime":
		return "must be an ISO date (YYYY-MM-DD)"
	case "gt", "gte", "lte":
		return "is out of range"
	case "max":
		return "is too long"
	}
	return "is invalid"
}
