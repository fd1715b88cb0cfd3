package model

import "time"

// Reservation state identifiers as defined by the institute backend's
// states catalog.  The gateway never invents transitions; it only asks the
// backend to move a reservation into one of these states and reflects the
// authoritative response.
const (
	StatePendiente  = 1 // awaiting staff confirmation
	StateConfirmada = 2 // approved
	StateRechazada  = 3 // rejected by staff
	StateCancelada  = 4 // cancelled by the owner or staff
)

// Reservation types distinguishing a one-day booking from a date range.
const (
	TypeSingle = "SINGLE"
	TypeRange  = "RANGE"
)

// ReservationState is one entry of the backend's states catalog
// (PENDIENTE=1, CONFIRMADA=2, RECHAZADA=3, CANCELADA=4).
type ReservationState struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Reservation is the backend's persisted view of a booking as consumed by
// the listing and cancellation flows.  State transitions are backend-owned.
//
// Fields:
//  ID            – reservation identifier.
//  Type          – TypeSingle or TypeRange.
//  SubScenarioID – facility (sub-scenario) being reserved.
//  UserID        – owner of the reservation.
//  InitialDate   – first (or only) calendar date, ISO "YYYY-MM-DD".
//  FinalDate     – last date for range reservations (nil for single).
//  WeekDays      – weekday restriction for ranges, 0=Sunday..6=Saturday.
//  StateID       – current state, one of the State* constants.
//  Comments      – optional free-text note from the requester.
//  TimeSlots     – hourly slots covered by the reservation.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last state change timestamp.
type Reservation struct {
	ID            uint64     `json:"id"`
	Type          string     `json:"type"`
	SubScenarioID uint64     `json:"subScenarioId"`
	UserID        uint64     `json:"userId"`
	InitialDate   string     `json:"initialDate"`
	FinalDate     *string    `json:"finalDate,omitempty"`
	WeekDays      []int      `json:"weekDays,omitempty"`
	StateID       int        `json:"stateId"`
	Comments      string     `json:"comments,omitempty"`
	TimeSlots     []TimeSlot `json:"timeslots,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RelevantDate returns the date that decides whether the reservation is
// still upcoming: the final date for ranges, otherwise the initial date.
func (r *Reservation) RelevantDate() string {
	if r.Type == TypeRange && r.FinalDate != nil && *r.FinalDate != "" {
		return *r.FinalDate
	}
	return r.InitialDate
}

// ReservationRequest is the payload submitted to the institute backend.
// It is assembled once from the booking session at submission time and is
// sent exactly once per attempt; the gateway never retries a create.
// The multi-slot shape is canonical: single-date bookings carry one slot id
// and omit FinalDate/WeekDays.
type ReservationRequest struct {
	SubScenarioID uint64  `json:"subScenarioId" validate:"required,gt=0"`
	TimeSlotIDs   []int   `json:"timeslotIds" validate:"required,min=1,dive,gt=0"`
	InitialDate   string  `json:"initialDate" validate:"required,datetime=2006-01-02"`
	FinalDate     *string `json:"finalDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	WeekDays      []int   `json:"weekDays,omitempty" validate:"omitempty,dive,gte=0,lte=6"`
	Comments      string  `json:"comments,omitempty" validate:"max=500"`
}
