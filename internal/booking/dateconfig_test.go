package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateConfigDefaultsToToday(t *testing.T) {
	c := NewDateConfig()
	assert.NotEmpty(t, c.StartDate())
	assert.Empty(t, c.EndDate())
	assert.False(t, c.RangeMode())
	assert.False(t, c.WeekdayMode())

	sched := c.Schedule()
	single, ok := sched.(SingleDate)
	require.True(t, ok)
	assert.Equal(t, c.StartDate(), single.Date)
}

func TestDateConfigStartDateResetsInvalidEnd(t *testing.T) {
	c := NewDateConfig()
	c.SetRangeMode(true)
	_, err := c.SetStartDate("2025-06-10")
	require.NoError(t, err)
	require.NoError(t, c.SetEndDate("2025-06-15"))

	// Moving the start past the end clears the end and reports it.
	reset, err := c.SetStartDate("2025-06-20")
	require.NoError(t, err)
	assert.True(t, reset)
	assert.Equal(t, "2025-06-20", c.StartDate())
	assert.Empty(t, c.EndDate())

	// A start that keeps the range valid does not reset.
	require.NoError(t, c.SetEndDate("2025-06-25"))
	reset, err = c.SetStartDate("2025-06-22")
	require.NoError(t, err)
	assert.False(t, reset)
	assert.Equal(t, "2025-06-25", c.EndDate())
}

func TestDateConfigSetStartDateInvalid(t *testing.T) {
	c := NewDateConfig()
	before := c.StartDate()
	_, err := c.SetStartDate("21/06/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
	assert.Equal(t, before, c.StartDate())
}

func TestDateConfigSetEndDate(t *testing.T) {
	c := NewDateConfig()
	_, err := c.SetStartDate("2025-06-10")
	require.NoError(t, err)

	// End date requires range mode.
	err = c.SetEndDate("2025-06-15")
	assert.ErrorIs(t, err, ErrRangeModeDisabled)

	c.SetRangeMode(true)
	assert.ErrorIs(t, c.SetEndDate("bogus"), ErrInvalidDate)
	assert.ErrorIs(t, c.SetEndDate("2025-06-09"), ErrEndBeforeStart)
	assert.Empty(t, c.EndDate())

	// Same day is a valid one-day range.
	require.NoError(t, c.SetEndDate("2025-06-10"))
	assert.Equal(t, "2025-06-10", c.EndDate())
}

func TestDateConfigRangeModeOffClearsState(t *testing.T) {
	c := NewDateConfig()
	_, err := c.SetStartDate("2025-06-10")
	require.NoError(t, err)
	c.SetRangeMode(true)
	require.NoError(t, c.SetEndDate("2025-06-15"))
	require.NoError(t, c.SetWeekdayMode(true))
	_, err = c.ToggleWeekday(1)
	require.NoError(t, err)

	c.SetRangeMode(false)
	assert.Empty(t, c.EndDate())
	assert.False(t, c.WeekdayMode())
	assert.Empty(t, c.Weekdays())
	// Start date survives the mode switch.
	assert.Equal(t, "2025-06-10", c.StartDate())
}

func TestDateConfigWeekdayMode(t *testing.T) {
	c := NewDateConfig()

	// Weekday restriction needs range mode first.
	assert.ErrorIs(t, c.SetWeekdayMode(true), ErrRangeModeDisabled)

	c.SetRangeMode(true)
	require.NoError(t, c.SetWeekdayMode(true))

	_, err := c.ToggleWeekday(7)
	assert.ErrorIs(t, err, ErrInvalidWeekday)
	_, err = c.ToggleWeekday(-1)
	assert.ErrorIs(t, err, ErrInvalidWeekday)

	on, err := c.ToggleWeekday(3)
	require.NoError(t, err)
	assert.True(t, on)
	on, err = c.ToggleWeekday(1)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []int{1, 3}, c.Weekdays())

	on, err = c.ToggleWeekday(3)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []int{1}, c.Weekdays())

	// Turning weekday mode off clears the set.
	require.NoError(t, c.SetWeekdayMode(false))
	assert.Empty(t, c.Weekdays())

	_, err = c.ToggleWeekday(1)
	assert.ErrorIs(t, err, ErrWeekdayModeDisabled)
}

func TestDateConfigSchedule(t *testing.T) {
	c := NewDateConfig()
	_, err := c.SetStartDate("2025-06-21")
	require.NoError(t, err)

	// Range mode without an end date still projects as a single date.
	c.SetRangeMode(true)
	_, ok := c.Schedule().(SingleDate)
	assert.True(t, ok)

	require.NoError(t, c.SetEndDate("2025-06-25"))
	dr, ok := c.Schedule().(DateRange)
	require.True(t, ok)
	assert.Equal(t, "2025-06-21", dr.Start)
	assert.Equal(t, "2025-06-25", dr.End)
	assert.Empty(t, dr.Weekdays)

	require.NoError(t, c.SetWeekdayMode(true))
	_, err = c.ToggleWeekday(1)
	require.NoError(t, err)
	_, err = c.ToggleWeekday(3)
	require.NoError(t, err)
	dr, ok = c.Schedule().(DateRange)
	require.True(t, ok)
	assert.Equal(t, []int{1, 3}, dr.Weekdays)
}
