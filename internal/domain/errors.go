package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound covers any lookup miss surfaced through repositories.
	ErrNotFound = errors.New("not found")

	// ErrInvalidDuration is returned for extension or rental durations <= 0.
	ErrInvalidDuration = errors.New("duration must be greater than zero")

	// ErrNoBasePrice means no rate is resolvable for the vehicle model:
	// neither an active base price record nor a legacy flat vehicle rate.
	// Callers translate it to a requires-manual-entry quote.
	ErrNoBasePrice = errors.New("no base price configured")

	// ErrAlreadyApproved is returned when approving an extension that was
	// approved before. Approval must mutate the rental exactly once.
	ErrAlreadyApproved = errors.New("extension already approved")

	// ErrInvalidStateTransition is returned for approve/reject attempts on
	// extensions that are not pending.
	ErrInvalidStateTransition = errors.New("invalid extension state transition")
)

// Error codes carried in structured quote results.
const (
	ErrorCodeInvalidDuration       = "INVALID_DURATION"
	ErrorCodeNoBasePriceConfigured = "NO_BASE_PRICE_CONFIGURED"
)

// DataInconsistencyError reports a stored financial value that disagrees
// with its recomputed counterpart beyond tolerance. Both values are carried
// so nothing is silently discarded.
type DataInconsistencyError struct {
	Field    string
	Stored   float64
	Computed float64
}

func (e *DataInconsistencyError) Error() string {
	return fmt.Sprintf("data inconsistency on %s: stored %.2f, recomputed %.2f", e.Field, e.Stored, e.Computed)
}
