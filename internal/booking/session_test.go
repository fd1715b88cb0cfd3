package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

func TestSessionStaleAvailabilityDropped(t *testing.T) {
	sess := NewSession(7, 99)

	first := sess.BeginAvailabilityFetch()
	second := sess.BeginAvailabilityFetch()

	newer := []model.TimeSlot{{ID: 2, StartTime: "09:00", Available: true}}
	require.True(t, sess.ApplyAvailability(second, newer))

	// The older fetch finished late; its snapshot must not win.
	older := []model.TimeSlot{{ID: 1, StartTime: "08:00", Available: true}}
	assert.False(t, sess.ApplyAvailability(first, older))
	assert.Equal(t, newer, sess.Catalog())
}

func TestSessionToggleAgainstSnapshot(t *testing.T) {
	sess := NewSession(7, 99)
	seq := sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, []model.TimeSlot{
		{ID: 1, StartTime: "08:00", Available: true},
		{ID: 2, StartTime: "09:00", Available: false},
	}))

	on, err := sess.ToggleSlot(1)
	require.NoError(t, err)
	assert.True(t, on)

	_, err = sess.ToggleSlot(2)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, []int{1}, sess.SelectedSlotIDs())
}

func TestSessionReconcileAfterRefresh(t *testing.T) {
	sess := NewSession(7, 99)
	seq := sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, []model.TimeSlot{
		{ID: 1, StartTime: "08:00", Available: true},
		{ID: 2, StartTime: "09:00", Available: true},
	}))
	_, err := sess.ToggleSlot(1)
	require.NoError(t, err)
	_, err = sess.ToggleSlot(2)
	require.NoError(t, err)

	// A refresh says slot 2 got taken.
	seq = sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, []model.TimeSlot{
		{ID: 1, StartTime: "08:00", Available: true},
		{ID: 2, StartTime: "09:00", Available: false},
	}))
	assert.Equal(t, []int{2}, sess.Reconcile())
	assert.Equal(t, []int{1}, sess.SelectedSlotIDs())
}

func TestSessionBuildRequest(t *testing.T) {
	sess := NewSession(7, 99)
	seq := sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, []model.TimeSlot{
		{ID: 1, StartTime: "08:00", Available: true},
	}))
	_, err := sess.SetStartDate("2025-06-21")
	require.NoError(t, err)
	_, err = sess.ToggleSlot(1)
	require.NoError(t, err)
	sess.SetComments("cumpleaños")

	req := sess.BuildRequest()
	assert.Equal(t, uint64(99), req.SubScenarioID)
	assert.Equal(t, []int{1}, req.TimeSlotIDs)
	assert.Equal(t, "2025-06-21", req.InitialDate)
	assert.Nil(t, req.FinalDate)
	assert.Empty(t, req.WeekDays)
	assert.Equal(t, "cumpleaños", req.Comments)

	// Switching to a range carries the end date and weekday set.
	sess.SetRangeMode(true)
	require.NoError(t, sess.SetEndDate("2025-06-25"))
	require.NoError(t, sess.SetWeekdayMode(true))
	_, err = sess.ToggleWeekday(3)
	require.NoError(t, err)

	req = sess.BuildRequest()
	require.NotNil(t, req.FinalDate)
	assert.Equal(t, "2025-06-25", *req.FinalDate)
	assert.Equal(t, []int{3}, req.WeekDays)
}

func TestSessionSummary(t *testing.T) {
	sess := NewSession(7, 99)
	_, err := sess.SetStartDate("2025-06-21")
	require.NoError(t, err)

	// No slots selected yet: nothing to summarize.
	assert.Nil(t, sess.Summary())

	seq := sess.BeginAvailabilityFetch()
	require.True(t, sess.ApplyAvailability(seq, []model.TimeSlot{
		{ID: 1, StartTime: "08:00", Available: true},
	}))
	_, err = sess.ToggleSlot(1)
	require.NoError(t, err)

	sum := sess.Summary()
	require.NotNil(t, sum)
	assert.Equal(t, "21/06/2025 • 1 horario", sum.Text)
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	s1 := store.Open(7, 99)
	require.NotNil(t, s1)
	assert.Same(t, s1, store.Get(7))

	// Reopening for the same facility keeps the session.
	assert.Same(t, s1, store.Open(7, 99))

	// A different facility starts fresh.
	s2 := store.Open(7, 100)
	assert.NotSame(t, s1, s2)
	assert.Equal(t, uint64(100), s2.SubScenarioID)

	store.Close(7)
	assert.Nil(t, store.Get(7))
}
