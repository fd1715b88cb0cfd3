// Package queue defines the reservation events exchanged over the message
// broker and the background consumer that applies them.
package queue

// Event actions.
const (
	ActionConfirmed = "confirmed"
	ActionCancelled = "cancelled"
)

// ReservationEvent is published whenever a reservation is created or
// cancelled through this gateway.  It carries enough for downstream
// consumers (cache invalidation, the reservation log, analytics) without a
// backend round trip.
type ReservationEvent struct {
	Action        string   `json:"action"`
	ReservationID uint64   `json:"reservation_id"`
	UserID        uint64   `json:"user_id"`
	SubScenarioID uint64   `json:"sub_scenario_id"`
	InitialDate   string   `json:"initial_date"`
	FinalDate     string   `json:"final_date,omitempty"`
	Dates         []string `json:"dates,omitempty"`
	TimeSlotIDs   []int    `json:"timeslot_ids,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}
