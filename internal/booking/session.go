package booking

import (
	"sync"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// Session is one user's in-progress booking for one facility.  It owns the
// slot selection, the date configuration, and the last availability
// snapshot the selection validates against.  A session is exclusive to its
// user, created when the booking view opens and discarded on successful
// submission or navigation; nothing here is persisted.
//
// Availability refreshes are guarded by a fetch sequence: the handler takes
// a token before fetching and the snapshot is only applied when no newer
// fetch started in the meantime, so a stale response can never overwrite
// newer state.
type Session struct {
	mu            sync.Mutex
	UserID        uint64
	SubScenarioID uint64

	selection *Selection
	dates     *DateConfig
	catalog   []model.TimeSlot
	fetchSeq  uint64
	comments  string
}

// NewSession opens an empty booking session for the user and facility.
func NewSession(userID, subScenarioID uint64) *Session {
	return &Session{
		UserID:        userID,
		SubScenarioID: subScenarioID,
		selection:     NewSelection(),
		dates:         NewDateConfig(),
	}
}

// BeginAvailabilityFetch marks the start of an availability fetch and
// returns its sequence token.  Any fetch started earlier becomes stale.
func (s *Session) BeginAvailabilityFetch() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchSeq++
	return s.fetchSeq
}

// ApplyAvailability installs a fetched slot catalog if the fetch is still
// the latest one.  It returns false when the response was superseded and
// dropped.  Installing a snapshot does not touch the selection; callers
// reconcile separately so removals can be reported.
func (s *Session) ApplyAvailability(seq uint64, slots []model.TimeSlot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		return false
	}
	s.catalog = slots
	return true
}

// Catalog returns the last availability snapshot.
func (s *Session) Catalog() []model.TimeSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog
}

// availableLocked reports availability of a slot id in the current
// snapshot.  Callers hold s.mu.
func (s *Session) availableLocked(slotID int) bool {
	for _, slot := range s.catalog {
		if slot.ID == slotID {
			return slot.Available
		}
	}
	return false
}

// ToggleSlot toggles a slot against the current snapshot.
func (s *Session) ToggleSlot(slotID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(slotID, s.availableLocked)
}

// ApplyShortcut replaces the selection with the shortcut's available hours.
func (s *Session) ApplyShortcut(shortcutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.ApplyShortcut(shortcutID, s.catalog)
}

// SelectPeriod unions the period's available hours into the selection.
func (s *Session) SelectPeriod(periodID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.SelectPeriod(periodID, s.catalog)
}

// ClearSlots empties the selection.
func (s *Session) ClearSlots() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// Reconcile drops selected slots the current snapshot no longer reports as
// available and returns the removed ids.
func (s *Session) Reconcile() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Reconcile(s.availableLocked)
}

// SelectedSlotIDs returns the selected ids in ascending order.
func (s *Session) SelectedSlotIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.IDs()
}

// SetStartDate forwards to the date configuration and reports whether the
// end date was auto-reset.
func (s *Session) SetStartDate(dateISO string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.SetStartDate(dateISO)
}

// SetEndDate forwards to the date configuration.
func (s *Session) SetEndDate(dateISO string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.SetEndDate(dateISO)
}

// SetRangeMode forwards to the date configuration.
func (s *Session) SetRangeMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dates.SetRangeMode(enabled)
}

// SetWeekdayMode forwards to the date configuration.
func (s *Session) SetWeekdayMode(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.SetWeekdayMode(enabled)
}

// ToggleWeekday forwards to the date configuration.
func (s *Session) ToggleWeekday(day int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.ToggleWeekday(day)
}

// SetComments stores the optional free-text note sent with the request.
func (s *Session) SetComments(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = text
}

// Schedule returns the date configuration's tagged variant.
func (s *Session) Schedule() Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.Schedule()
}

// Dates exposes a read-only snapshot of the date configuration for views.
func (s *Session) Dates() (start, end string, rangeMode, weekdayMode bool, weekdays []int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.StartDate(), s.dates.EndDate(), s.dates.RangeMode(), s.dates.WeekdayMode(), s.dates.Weekdays()
}

// Summary builds the pending-reservation summary, nil when there is
// nothing to summarize.
func (s *Session) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return BuildSummary(s.dates.Schedule(), s.selection.Len())
}

// BuildRequest assembles the immutable submission payload from the current
// state.  Validation happens in the submission flow, not here.
func (s *Session) BuildRequest() *model.ReservationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	req := &model.ReservationRequest{
		SubScenarioID: s.SubScenarioID,
		TimeSlotIDs:   s.selection.IDs(),
		InitialDate:   s.dates.StartDate(),
		Comments:      s.comments,
	}
	if dr, ok := s.dates.Schedule().(DateRange); ok {
		end := dr.End
		req.FinalDate = &end
		req.WeekDays = dr.Weekdays
	}
	return req
}
