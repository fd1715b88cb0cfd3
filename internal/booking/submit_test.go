package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/sports-booking-gateway/internal/auth"
	"github.com/lfarias/sports-booking-gateway/internal/backend"
	"github.com/lfarias/sports-booking-gateway/internal/cache"
	"github.com/lfarias/sports-booking-gateway/internal/model"
)

type fakeAPI struct {
	slots       []model.TimeSlot
	slotsErr    error
	slotsCalls  int
	created     *model.Reservation
	createErr   error
	createCalls int
	lastToken   string
	lastReq     *model.ReservationRequest
}

func (f *fakeAPI) SlotsForDate(_ context.Context, _ uint64, _ string) ([]model.TimeSlot, error) {
	f.slotsCalls++
	return f.slots, f.slotsErr
}

func (f *fakeAPI) CreateReservation(_ context.Context, token string, req *model.ReservationRequest) (*model.Reservation, error) {
	f.createCalls++
	f.lastToken = token
	f.lastReq = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

type fakeEvents struct {
	confirmed []*model.Reservation
}

func (f *fakeEvents) ReservationConfirmed(_ context.Context, res *model.Reservation) {
	f.confirmed = append(f.confirmed, res)
}

func slotCatalog() []model.TimeSlot {
	return []model.TimeSlot{
		{ID: 1, StartTime: "08:00", EndTime: "09:00", Available: true},
		{ID: 2, StartTime: "09:00", EndTime: "10:00", Available: true},
	}
}

// sessionWithSlot opens a session for user 7 and facility 99 with slot 1
// selected on 2025-06-21.
func sessionWithSlot(t *testing.T) *Session {
	t.Helper()
	sess := NewSession(7, 99)
	seq := sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, slotCatalog()))
	_, err := sess.SetStartDate("2025-06-21")
	require.NoError(t, err)
	on, err := sess.ToggleSlot(1)
	require.NoError(t, err)
	require.True(t, on)
	return sess
}

func TestSubmitEmptySelectionFailsLocally(t *testing.T) {
	api := &fakeAPI{}
	flow := NewFlow(api, nil, nil)

	sess := NewSession(7, 99)
	_, err := sess.SetStartDate("2025-06-21")
	require.NoError(t, err)

	var transitions [][2]SubmitState
	flow.OnTransition = func(from, to SubmitState) {
		transitions = append(transitions, [2]SubmitState{from, to})
	}

	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))
	require.Equal(t, StateFailed, out.State)
	assert.Equal(t, "is required", out.FieldErrors["timeslotIds"])

	var verr *backend.ValidationError
	require.True(t, errors.As(out.Err, &verr))

	// Validation failures never reach the network.
	assert.Zero(t, api.slotsCalls)
	assert.Zero(t, api.createCalls)
	assert.Equal(t, [][2]SubmitState{
		{StateIdle, StateValidating},
		{StateValidating, StateFailed},
	}, transitions)
}

func TestSubmitFailsClosedWithoutToken(t *testing.T) {
	api := &fakeAPI{slots: slotCatalog()}
	flow := NewFlow(api, nil, nil)
	sess := sessionWithSlot(t)

	out := flow.Submit(context.Background(), sess, &auth.Session{})
	require.Equal(t, StateFailed, out.State)

	var aerr *backend.AuthenticationError
	require.True(t, errors.As(out.Err, &aerr))
	// The create must never be attempted unauthenticated.
	assert.Zero(t, api.createCalls)
	// The selection is kept so the user can log in and retry.
	assert.Equal(t, []int{1}, sess.SelectedSlotIDs())
}

func TestSubmitSuccess(t *testing.T) {
	created := &model.Reservation{ID: 42, SubScenarioID: 99, UserID: 7, StateID: model.StatePendiente}
	api := &fakeAPI{slots: slotCatalog(), created: created}
	events := &fakeEvents{}

	bus := cache.NewBus(nil)
	var published []cache.Invalidation
	bus.Subscribe(func(ev cache.Invalidation) {
		published = append(published, ev)
	})

	flow := NewFlow(api, bus, events)
	var transitions [][2]SubmitState
	flow.OnTransition = func(from, to SubmitState) {
		transitions = append(transitions, [2]SubmitState{from, to})
	}

	sess := sessionWithSlot(t)
	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))

	require.Equal(t, StateSucceeded, out.State)
	assert.Equal(t, created, out.Reservation)
	assert.Nil(t, out.Err)

	// Exactly one authenticated create with the session's payload.
	assert.Equal(t, 1, api.createCalls)
	assert.Equal(t, "tok", api.lastToken)
	require.NotNil(t, api.lastReq)
	assert.Equal(t, uint64(99), api.lastReq.SubScenarioID)
	assert.Equal(t, []int{1}, api.lastReq.TimeSlotIDs)
	assert.Equal(t, "2025-06-21", api.lastReq.InitialDate)
	assert.Nil(t, api.lastReq.FinalDate)

	// Invalidation published before success, event pushed, selection cleared.
	require.Len(t, published, 1)
	assert.Equal(t, cache.Invalidation{FacilityID: 99, UserID: 7, Dates: []string{"2025-06-21"}}, published[0])
	require.Len(t, events.confirmed, 1)
	assert.Equal(t, created, events.confirmed[0])
	assert.Empty(t, sess.SelectedSlotIDs())

	assert.Equal(t, [][2]SubmitState{
		{StateIdle, StateValidating},
		{StateValidating, StateSubmitting},
		{StateSubmitting, StateSucceeded},
	}, transitions)
}

func TestSubmitRangeExpandsInvalidationDates(t *testing.T) {
	api := &fakeAPI{slots: slotCatalog(), created: &model.Reservation{ID: 43}}
	bus := cache.NewBus(nil)
	var published []cache.Invalidation
	bus.Subscribe(func(ev cache.Invalidation) { published = append(published, ev) })

	sess := sessionWithSlot(t)
	sess.SetRangeMode(true)
	require.NoError(t, sess.SetEndDate("2025-06-25"))
	require.NoError(t, sess.SetWeekdayMode(true))
	_, err := sess.ToggleWeekday(1)
	require.NoError(t, err)
	_, err = sess.ToggleWeekday(3)
	require.NoError(t, err)

	flow := NewFlow(api, bus, nil)
	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))
	require.Equal(t, StateSucceeded, out.State)

	require.NotNil(t, api.lastReq.FinalDate)
	assert.Equal(t, "2025-06-25", *api.lastReq.FinalDate)
	assert.Equal(t, []int{1, 3}, api.lastReq.WeekDays)

	// Monday the 23rd and Wednesday the 25th.
	require.Len(t, published, 1)
	assert.Equal(t, []string{"2025-06-23", "2025-06-25"}, published[0].Dates)
}

func TestSubmitStaleSelection(t *testing.T) {
	// Slot 1 was available when selected but the fresh snapshot says taken.
	api := &fakeAPI{slots: []model.TimeSlot{
		{ID: 1, StartTime: "08:00", EndTime: "09:00", Available: false},
		{ID: 2, StartTime: "09:00", EndTime: "10:00", Available: true},
	}}
	flow := NewFlow(api, nil, nil)
	sess := sessionWithSlot(t)

	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))
	require.Equal(t, StateFailed, out.State)

	var serr *backend.StaleSelectionError
	require.True(t, errors.As(out.Err, &serr))
	assert.Equal(t, []int{1}, serr.RemovedSlotIDs)
	assert.Zero(t, api.createCalls)
	// The stale slot was dropped from the selection.
	assert.Empty(t, sess.SelectedSlotIDs())
}

func TestSubmitAvailabilityFetchFailure(t *testing.T) {
	qerr := &backend.AvailabilityQueryError{SubScenarioID: 99, Date: "2025-06-21", Err: errors.New("boom")}
	api := &fakeAPI{slotsErr: qerr}
	flow := NewFlow(api, nil, nil)
	sess := sessionWithSlot(t)

	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))
	require.Equal(t, StateFailed, out.State)
	assert.ErrorIs(t, out.Err, qerr)
	assert.Zero(t, api.createCalls)
}

func TestSubmitBackendRejection(t *testing.T) {
	rejection := &backend.SubmissionError{StatusCode: 409, Message: "Horario no disponible"}
	api := &fakeAPI{slots: slotCatalog(), createErr: rejection}
	flow := NewFlow(api, nil, nil)
	sess := sessionWithSlot(t)

	out := flow.Submit(context.Background(), sess, auth.StaticTokenSource("tok"))
	require.Equal(t, StateFailed, out.State)

	var serr *backend.SubmissionError
	require.True(t, errors.As(out.Err, &serr))
	// The backend's message survives verbatim.
	assert.Equal(t, "Horario no disponible", serr.Message)
	assert.Equal(t, 1, api.createCalls)
	// Selection stays so the user can adjust and resubmit.
	assert.Equal(t, []int{1}, sess.SelectedSlotIDs())
}

func TestSubmitStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "validating", StateValidating.String())
	assert.Equal(t, "submitting", StateSubmitting.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", SubmitState(99).String())
}
