package booking

import (
	"errors"
	"sort"
	"time"

	"github.com/lfarias/sports-booking-gateway/internal/dateutil"
)

var (
	// ErrInvalidDate is returned for dates that are not valid ISO
	// "YYYY-MM-DD" strings.
	ErrInvalidDate = errors.New("invalid date")
	// ErrEndBeforeStart is returned when the requested end date precedes
	// the configured start date.  The configuration is left unchanged.
	ErrEndBeforeStart = errors.New("end date is before start date")
	// ErrRangeModeDisabled is returned for range-only operations (end
	// date, weekday restriction) while range mode is off.
	ErrRangeModeDisabled = errors.New("range mode is disabled")
	// ErrWeekdayModeDisabled is returned when toggling a weekday while the
	// weekday restriction is off.
	ErrWeekdayModeDisabled = errors.New("weekday mode is disabled")
	// ErrInvalidWeekday is returned for weekday indices outside 0..6.
	ErrInvalidWeekday = errors.New("invalid weekday index")
)

// Schedule is the read side of a date configuration: either a single date
// or a date range with an optional weekday restriction.  The weekday filter
// only exists on the range variant, so "weekday filter without range mode"
// cannot be expressed.
type Schedule interface{ schedule() }

// SingleDate is a one-day schedule.
type SingleDate struct {
	Date string
}

// DateRange spans [Start, End] with an optional weekday restriction
// (0=Sunday..6=Saturday).  An empty Weekdays slice means every day.
type DateRange struct {
	Start    string
	End      string
	Weekdays []int
}

func (SingleDate) schedule() {}
func (DateRange) schedule()  {}

// DateConfig owns the user's in-progress scheduling intent: start/end
// dates, range mode and the weekday restriction.  Invariants are enforced
// on every mutation: the end date exists only while range mode is on, and
// the weekday set only while both range and weekday mode are on.  Not safe
// for concurrent use; the owning session serializes access.
type DateConfig struct {
	startDate   string
	endDate     string
	rangeMode   bool
	weekdayMode bool
	weekdays    map[int]struct{}
}

// NewDateConfig returns a configuration with the start date defaulted to
// today, matching what the booking view shows when it opens.
func NewDateConfig() *DateConfig {
	return &DateConfig{
		startDate: dateutil.Today(),
		weekdays:  make(map[int]struct{}),
	}
}

// SetStartDate sets the start date.  When an end date is set and becomes
// invalid against the new start (end < start), it is cleared and the first
// return value reports the reset so the UI can surface it.
func (c *DateConfig) SetStartDate(dateISO string) (endReset bool, err error) {
	if !validISO(dateISO) {
		return false, ErrInvalidDate
	}
	c.startDate = dateISO
	if c.endDate != "" && !dateutil.ValidateRange(c.startDate, c.endDate) {
		c.endDate = ""
		return true, nil
	}
	return false, nil
}

// SetEndDate sets the end date.  Rejected without a state change when range
// mode is off or the date precedes the start date.
func (c *DateConfig) SetEndDate(dateISO string) error {
	if !c.rangeMode {
		return ErrRangeModeDisabled
	}
	if !validISO(dateISO) {
		return ErrInvalidDate
	}
	if !dateutil.ValidateRange(c.startDate, dateISO) {
		return ErrEndBeforeStart
	}
	c.endDate = dateISO
	return nil
}

// SetRangeMode toggles range mode.  Disabling it clears the end date and
// the whole weekday restriction, since neither is meaningful for a single
// date.
func (c *DateConfig) SetRangeMode(enabled bool) {
	c.rangeMode = enabled
	if !enabled {
		c.endDate = ""
		c.weekdayMode = false
		c.weekdays = make(map[int]struct{})
	}
}

// SetWeekdayMode toggles the weekday restriction.  Enabling it requires
// range mode; disabling clears the restriction set.
func (c *DateConfig) SetWeekdayMode(enabled bool) error {
	if enabled && !c.rangeMode {
		return ErrRangeModeDisabled
	}
	c.weekdayMode = enabled
	if !enabled {
		c.weekdays = make(map[int]struct{})
	}
	return nil
}

// ToggleWeekday adds or removes a weekday index from the restriction set
// and returns whether the day is selected after the call.
func (c *DateConfig) ToggleWeekday(day int) (bool, error) {
	if !c.weekdayMode {
		return false, ErrWeekdayModeDisabled
	}
	if day < 0 || day > 6 {
		return false, ErrInvalidWeekday
	}
	if _, ok := c.weekdays[day]; ok {
		delete(c.weekdays, day)
		return false, nil
	}
	c.weekdays[day] = struct{}{}
	return true, nil
}

// StartDate returns the configured start date.
func (c *DateConfig) StartDate() string { return c.startDate }

// EndDate returns the configured end date, empty while range mode is off
// or no end date has been picked.
func (c *DateConfig) EndDate() string { return c.endDate }

// RangeMode reports whether range mode is on.
func (c *DateConfig) RangeMode() bool { return c.rangeMode }

// WeekdayMode reports whether the weekday restriction is on.
func (c *DateConfig) WeekdayMode() bool { return c.weekdayMode }

// Weekdays returns the restriction set in ascending order.  Empty unless
// weekday mode is on.
func (c *DateConfig) Weekdays() []int {
	out := make([]int, 0, len(c.weekdays))
	for d := range c.weekdays {
		out = append(out, d)
	}
	sort.Ints(out)
	return out
}

// Schedule projects the configuration into its tagged variant.  A range
// configuration without an end date degrades to a single date; the weekday
// restriction is only carried while weekday mode is on.
func (c *DateConfig) Schedule() Schedule {
	if c.rangeMode && c.endDate != "" {
		dr := DateRange{Start: c.startDate, End: c.endDate}
		if c.weekdayMode {
			dr.Weekdays = c.Weekdays()
		}
		return dr
	}
	return SingleDate{Date: c.startDate}
}

func validISO(dateISO string) bool {
	_, err := time.Parse("2006-01-02", dateISO)
	return err == nil
}
