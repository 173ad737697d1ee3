// Package vigency classifies time-bounded records (course certifications,
// protective-equipment service life, document validity windows) by how
// urgently they need attention.
package vigency

import (
	"errors"
	"time"
)

// Status is the vigency classification of a record
type Status string

const (
	StatusExpired      Status = "EXPIRED"
	StatusNearExpiry   Status = "NEAR_EXPIRY"
	StatusValid        Status = "VALID"
	StatusInactive     Status = "INACTIVE"
	StatusUndetermined Status = "UNDETERMINED"
)

// Statuses lists every classification in dashboard order
var Statuses = []Status{
	StatusExpired,
	StatusNearExpiry,
	StatusValid,
	StatusInactive,
	StatusUndetermined,
}

// ParseStatus parses a status name, reporting whether it is known
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// ManualActive is the only manual status that lets date math run.
// An empty manual status means the record kind has none.
const ManualActive = "ACTIVE"

// maxYear is the last year a persisted DATE column can hold
const maxYear = 9999

// ErrDateOutOfRange is returned when reference date + duration cannot be represented
var ErrDateOutOfRange = errors.New("vigency: expiry date out of range")

// Result is the outcome of a classification
type Result struct {
	Status        Status     `json:"status"`
	DaysRemaining int        `json:"days_remaining"`
	ExpiryDate    *time.Time `json:"expiry_date"`
}

// Classify computes the vigency of a record.
//
// A non-active manual status yields INACTIVE regardless of dates. A missing
// reference date or a missing/negative duration yields UNDETERMINED. Otherwise
// the expiry is referenceDate + durationDays and the record is EXPIRED when
// fewer than zero days remain, NEAR_EXPIRY when 0..alertDays days remain
// (both ends inclusive) and VALID beyond that.
func Classify(referenceDate *time.Time, durationDays *int, manualStatus string, alertDays int, today time.Time) (Result, error) {
	if manualStatus != "" && manualStatus != ManualActive {
		return Result{Status: StatusInactive}, nil
	}
	if referenceDate == nil || referenceDate.IsZero() || durationDays == nil || *durationDays < 0 {
		return Result{Status: StatusUndetermined}, nil
	}

	expiry, err := ExpiryDate(*referenceDate, *durationDays)
	if err != nil {
		return Result{Status: StatusUndetermined}, err
	}

	remaining := DaysBetween(DateOf(today), expiry)

	status := StatusValid
	switch {
	case remaining < 0:
		status = StatusExpired
	case remaining <= alertDays:
		status = StatusNearExpiry
	}

	return Result{
		Status:        status,
		DaysRemaining: remaining,
		ExpiryDate:    &expiry,
	}, nil
}

// ExpiryDate adds durationDays calendar days to the reference date
func ExpiryDate(referenceDate time.Time, durationDays int) (time.Time, error) {
	ref := DateOf(referenceDate)
	// Bound the addition before AddDate so absurd durations cannot wrap.
	if durationDays > (maxYear-ref.Year()+1)*366 {
		return time.Time{}, ErrDateOutOfRange
	}
	expiry := ref.AddDate(0, 0, durationDays)
	if expiry.Year() > maxYear {
		return time.Time{}, ErrDateOutOfRange
	}
	return expiry, nil
}

// DateOf drops the clock part of t, keeping its calendar date in UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative if b is earlier)
func DaysBetween(a, b time.Time) int {
	return int(dayNumber(b) - dayNumber(a))
}

func dayNumber(t time.Time) int64 {
	return DateOf(t).Unix() / 86400
}
