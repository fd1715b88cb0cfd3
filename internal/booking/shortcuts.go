// Package booking holds the reservation configuration core: slot
// selection, date configuration, the pre-submission summary, and the
// submission state machine.  Everything here operates on in-memory session
// state; network access happens through the backend client injected into
// the submission flow.
package booking

import (
	"errors"
	"strconv"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// ErrUnknownShortcut is returned when a shortcut id does not exist in the
// catalog.
var ErrUnknownShortcut = errors.New("unknown shortcut")

// ErrUnknownPeriod is returned when a period id does not exist in the
// catalog.
var ErrUnknownPeriod = errors.New("unknown period")

// HourBand is a named band of start hours.  A slot belongs to the band when
// its start hour falls in [StartHour, EndHour).
type HourBand struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

// Shortcuts are one-click selection aids.  Applying a shortcut REPLACES the
// current selection with the shortcut's available hours.
var Shortcuts = []HourBand{
	{ID: "manana-completa", Name: "Mañana completa", StartHour: 6, EndHour: 12},
	{ID: "tarde-completa", Name: "Tarde completa", StartHour: 12, EndHour: 18},
	{ID: "noche-completa", Name: "Noche completa", StartHour: 18, EndHour: 23},
	{ID: "dia-completo", Name: "Día completo", StartHour: 6, EndHour: 23},
}

// Periods are additive: selecting a period UNIONS its available hours into
// the current selection.
var Periods = []HourBand{
	{ID: "manana", Name: "Mañana", StartHour: 6, EndHour: 12},
	{ID: "tarde", Name: "Tarde", StartHour: 12, EndHour: 18},
	{ID: "noche", Name: "Noche", StartHour: 18, EndHour: 23},
}

// ShortcutByID looks a shortcut up in the catalog.
func ShortcutByID(id string) (HourBand, bool) {
	for _, s := range Shortcuts {
		if s.ID == id {
			return s, true
		}
	}
	return HourBand{}, false
}

// PeriodByID looks a period up in the catalog.
func PeriodByID(id string) (HourBand, bool) {
	for _, p := range Periods {
		if p.ID == id {
			return p, true
		}
	}
	return HourBand{}, false
}

// Contains reports whether the slot's start hour falls inside the band.
// Slots with a malformed start time never match.
func (b HourBand) Contains(slot model.TimeSlot) bool {
	h, ok := slotStartHour(slot)
	return ok && h >= b.StartHour && h < b.EndHour
}

// slotStartHour parses the hour out of a "HH:MM" start time.
func slotStartHour(slot model.TimeSlot) (int, bool) {
	if len(slot.StartTime) < 2 {
		return 0, false
	}
	h, err := strconv.Atoi(slot.StartTime[:2])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	return h, true
}
