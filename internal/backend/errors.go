// Package backend implements the HTTP client for the institute's
// reservations API.  This file defines the error taxonomy shared by the
// adapter and the booking flows.  Typed errors let handlers distinguish
// "fix your input" from "log in first" from "the backend said no" without
// string matching.
package backend

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports a locally rejected reservation request.  It is
// raised before any network call and carries a field-level error map so the
// UI can point at the specific missing or invalid field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid reservation request: " + strings.Join(keys, ", ")
}

// AuthenticationError means no valid token was available at submission
// time.  The flow never attempts the call; the user must log in.
type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Reason
}

// AvailabilityQueryError wraps a failed slot-availability fetch after the
// retry policy is exhausted.  Callers must treat it as "availability
// unknown", never as "no slots exist" or "fully available".
type AvailabilityQueryError struct {
	SubScenarioID uint64
	Date          string
	Err           error
}

func (e *AvailabilityQueryError) Error() string {
	return fmt.Sprintf("availability query failed for facility %d on %s: %v", e.SubScenarioID, e.Date, e.Err)
}

func (e *AvailabilityQueryError) Unwrap() error { return e.Err }

// SubmissionError means the backend rejected or failed to process a
// reservation create or cancel.  Message carries the backend's own text
// verbatim when the error body could be parsed.  Never retried
// automatically: creates are not safe to replay under slot contention.
type SubmissionError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("reservation request failed with status %d", e.StatusCode)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// StaleSelectionError reports slots that were selected earlier but are no
// longer available at submission time.  It is detected by reconciling the
// selection against a fresh availability snapshot, before the request is
// sent, so the user gets an actionable list instead of a generic failure.
type StaleSelectionError struct {
	RemovedSlotIDs []int
}

func (e *StaleSelectionError) Error() string {
	ids := make([]string, len(e.RemovedSlotIDs))
	for i, id := range e.RemovedSlotIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return "slots no longer available: " + strings.Join(ids, ", ")
}
