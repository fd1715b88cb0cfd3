package backend

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/lfarias/sports-booking-gateway/internal/model"
)

// CreateReservation submits a reservation request.  The request is sent
// exactly once: creates are not idempotent under slot contention, so a
// failure is surfaced to the caller for a manual re-invoke instead of being
// retried here.  Failures arrive as *SubmissionError carrying the backend's
// own message when one was provided.
func (c *Client) CreateReservation(ctx context.Context, token string, req *model.ReservationRequest) (*model.Reservation, error) {
	var res model.Reservation
	if err := c.do(ctx, http.MethodPost, "/reservations", token, nil, req, &res); err != nil {
		return nil, asSubmissionError(err)
	}
	return &res, nil
}

// SetReservationState asks the backend to move a reservation into the given
// state.  The backend owns the transition; the returned record is its
// authoritative view.
func (c *Client) SetReservationState(ctx context.Context, token string, reservationID uint64, stateID int, reason string) (*model.Reservation, error) {
	body := map[string]any{"stateId": stateID}
	if reason != "" {
		body["reason"] = reason
	}
	var res model.Reservation
	path := fmt.Sprintf("/reservations/%d/state", reservationID)
	if err := c.do(ctx, http.MethodPatch, path, token, nil, body, &res); err != nil {
		return nil, asSubmissionError(err)
	}
	return &res, nil
}

// CancelReservation requests the CANCELADA state for one reservation.
// Never retried; callers must not drop the item from any local view before
// this returns successfully.
func (c *Client) CancelReservation(ctx context.Context, token string, reservationID uint64, reason string) (*model.Reservation, error) {
	return c.SetReservationState(ctx, token, reservationID, model.StateCancelada, reason)
}

// CancelResult is the outcome of one cancellation inside a bulk request.
type CancelResult struct {
	ReservationID uint64             `json:"reservationId"`
	Reservation   *model.Reservation `json:"reservation,omitempty"`
	Err           error              `json:"-"`
	ErrorMessage  string             `json:"error,omitempty"`
}

// CancelMany fans the cancellations out in parallel.  Each one is
// independent: partial failure is possible and is reported per item rather
// than collapsed into a boolean.  The order of results matches the order of
// ids.
func (c *Client) CancelMany(ctx context.Context, token string, reservationIDs []uint64, reason string) []CancelResult {
	results := make([]CancelResult, len(reservationIDs))
	var wg sync.WaitGroup
	for i, id := range reservationIDs {
		wg.Add(1)
		go func(i int, id uint64) {
			defer wg.Done()
			res, err := c.CancelReservation(ctx, token, id, reason)
			results[i] = CancelResult{ReservationID: id, Reservation: res, Err: err}
			if err != nil {
				results[i].ErrorMessage = err.Error()
			}
		}(i, id)
	}
	wg.Wait()
	return results
}

// AllSucceeded reports whether every cancellation in a bulk result went
// through.  Derived, never authoritative; callers still surface the failed
// items.
func AllSucceeded(results []CancelResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return false
		}
	}
	return true
}

// ListForUser fetches every reservation owned by a user.  Active/past
// classification is a client-side derived view and lives in the booking
// package.
func (c *Client) ListForUser(ctx context.Context, token string, userID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	path := fmt.Sprintf("/users/%d/reservations", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, nil, &out); err != nil {
		return nil, asSubmissionError(err)
	}
	return out, nil
}

// States fetches the reservation states catalog
// (PENDIENTE=1, CONFIRMADA=2, RECHAZADA=3, CANCELADA=4).
func (c *Client) States(ctx context.Context) ([]model.ReservationState, error) {
	var out []model.ReservationState
	if err := c.do(ctx, http.MethodGet, "/reservations/states", "", nil, nil, &out); err != nil {
		return nil, asSubmissionError(err)
	}
	return out, nil
}

// asSubmissionError keeps already-typed errors intact and wraps transport
// failures so every write path reports through the same type.
func asSubmissionError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*SubmissionError); ok {
		return err
	}
	return &SubmissionError{Err: err}
}
