package booking

import (
	"errors"
	"sort"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// ErrSlotUnavailable is returned when the user tries to select a slot the
// last availability snapshot reports as taken.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrNoSlotsAvailable is returned when a shortcut or period intersects the
// current availability to an empty set.  Shortcuts are never applied
// partially without telling the caller.
var ErrNoSlotsAvailable = errors.New("no available slots in the requested hours")

// Selection owns the set of slot ids the user intends to reserve.  All
// mutations validate against the availability the caller supplies, so the
// selection only ever strays from the available set between an availability
// change and the next Reconcile call.  Not safe for concurrent use; the
// owning session serializes access.
type Selection struct {
	slots map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{slots: make(map[int]struct{})}
}

// Toggle adds the slot when absent and available, removes it when present.
// Toggling an unavailable, unselected slot is rejected with
// ErrSlotUnavailable and changes nothing.  It returns whether the slot is
// selected after the call.
func (s *Selection) Toggle(slotID int, available func(int) bool) (bool, error) {
	if _, ok := s.slots[slotID]; ok {
		delete(s.slots, slotID)
		return false, nil
	}
	if available == nil || !available(slotID) {
		return false, ErrSlotUnavailable
	}
	s.slots[slotID] = struct{}{}
	return true, nil
}

// ApplyShortcut resolves the shortcut to its hour band, intersects with the
// currently available slots of the catalog, and REPLACES the selection with
// that intersection.  An empty intersection leaves the selection untouched
// and returns ErrNoSlotsAvailable.
func (s *Selection) ApplyShortcut(shortcutID string, catalog []model.TimeSlot) error {
	band, ok := ShortcutByID(shortcutID)
	if !ok {
		return ErrUnknownShortcut
	}
	hit := bandSlots(band, catalog)
	if len(hit) == 0 {
		return ErrNoSlotsAvailable
	}
	s.slots = hit
	return nil
}

// SelectPeriod resolves the period to its hour band and UNIONS the
// available matching slots into the existing selection.  Unlike shortcuts,
// periods are additive.  An empty intersection returns ErrNoSlotsAvailable
// without clearing anything.
func (s *Selection) SelectPeriod(periodID string, catalog []model.TimeSlot) error {
	band, ok := PeriodByID(periodID)
	if !ok {
		return ErrUnknownPeriod
	}
	hit := bandSlots(band, catalog)
	if len(hit) == 0 {
		return ErrNoSlotsAvailable
	}
	for id := range hit {
		s.slots[id] = struct{}{}
	}
	return nil
}

// Clear empties the selection unconditionally.
func (s *Selection) Clear() {
	s.slots = make(map[int]struct{})
}

// Reconcile removes every selected slot the predicate no longer reports as
// available and returns the removed ids (sorted) so the caller can notify
// the user.  An empty result means the selection was already consistent.
func (s *Selection) Reconcile(available func(int) bool) []int {
	var removed []int
	for id := range s.slots {
		if available == nil || !available(id) {
			removed = append(removed, id)
			delete(s.slots, id)
		}
	}
	sort.Ints(removed)
	return removed
}

// Has reports whether the slot is currently selected.
func (s *Selection) Has(slotID int) bool {
	_, ok := s.slots[slotID]
	return ok
}

// IDs returns the selected slot ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.slots))
	for id := range s.slots {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of selected slots.
func (s *Selection) Len() int { return len(s.slots) }

func bandSlots(band HourBand, catalog []model.TimeSlot) map[int]struct{} {
	hit := make(map[int]struct{})
	for _, slot := range catalog {
		if slot.Available && band.Contains(slot) {
			hit[slot.ID] = struct{}{}
		}
	}
	return hit
}
