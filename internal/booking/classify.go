package booking

import (
	"time"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// ClassifiedReservations splits a user's reservations into upcoming and
// finished buckets.  The split is a client-side derived view, not a backend
// field: the backend only knows states, not whether the booked hours have
// passed.
type ClassifiedReservations struct {
	Active []model.Reservation `json:"active"`
	Past   []model.Reservation `json:"past"`
}

// Classify buckets reservations by comparing now against each
// reservation's end-of-slot timestamp on its relevant date (the final date
// for ranges, the initial date otherwise).  Cancelled and rejected
// reservations are never active, whatever their dates.  A reservation with
// no slot information is considered to end at the end of its relevant day.
func Classify(now time.Time, list []model.Reservation) ClassifiedReservations {
	var out ClassifiedReservations
	for _, r := range list {
		finished := r.StateID == model.StateCancelada || r.StateID == model.StateRechazada
		if !finished && endOfReservation(&r, now.Location()).After(now) {
			out.Active = append(out.Active, r)
		} else {
			out.Past = append(out.Past, r)
		}
	}
	return out
}

// endOfReservation computes when the reservation's last booked hour ends on
// its relevant date.
func endOfReservation(r *model.Reservation, loc *time.Location) time.Time {
	date, err := time.ParseInLocation("2006-01-02", r.RelevantDate(), loc)
	if err != nil {
		// Unparseable date: treat as already past rather than pinning it
		// to the active bucket forever.
		return time.Time{}
	}
	// Latest slot end time, when slots are attached.
	latest := ""
	for _, s := range r.TimeSlots {
		if s.EndTime > latest {
			latest = s.EndTime
		}
	}
	if latest != "" {
		if t, err := time.ParseInLocation("2006-01-02 15:04", r.RelevantDate()+" "+latest, loc); err == nil {
			return t
		}
	}
	return date.Add(24*time.Hour - time.Minute)
}
