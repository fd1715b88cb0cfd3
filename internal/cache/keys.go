// Package cache implements the gateway's read-cache and its invalidation
// contract.  Cached entries live in redis under the logical keys below; a
// successful create or cancel publishes a typed Invalidation on the Bus,
// which deletes every key relevant to the affected facility and user before
// the triggering flow reports success.
package cache

import "fmt"

// KeyReservations is the global reservation-list key.
const KeyReservations = "reservations"

// KeyUserReservations keys one user's reservation list.
func KeyUserReservations(userID uint64) string {
	return fmt.Sprintf("reservations-user-%d", userID)
}

// KeyTimeslots keys the availability response for one facility and date.
func KeyTimeslots(facilityID uint64, dateISO string) string {
	return fmt.Sprintf("timeslots-%d-%s", facilityID, dateISO)
}

// KeyFacilityTimeslots keys facility-wide availability aggregates.
func KeyFacilityTimeslots(facilityID uint64) string {
	return fmt.Sprintf("timeslots-%d", facilityID)
}

// KeyScenarioReservations keys the reservation overview of one facility.
func KeyScenarioReservations(facilityID uint64) string {
	return fmt.Sprintf("scenario-%d-reservations", facilityID)
}

// Invalidation describes a reservation change.  Publishers fill in the
// fields they know; KeysFor expands the event into every contract key it
// touches.
type Invalidation struct {
	FacilityID uint64   `json:"facilityId"`
	UserID     uint64   `json:"userId"`
	Dates      []string `json:"dates,omitempty"`
}

// KeysFor lists the cache keys an invalidation event covers.
func KeysFor(ev Invalidation) []string {
	keys := []string{KeyReservations}
	if ev.UserID != 0 {
		keys = append(keys, KeyUserReservations(ev.UserID))
	}
	if ev.FacilityID != 0 {
		keys = append(keys,
			KeyFacilityTimeslots(ev.FacilityID),
			KeyScenarioReservations(ev.FacilityID),
		)
		for _, d := range ev.Dates {
			keys = append(keys, KeyTimeslots(ev.FacilityID, d))
		}
	}
	return keys
}
