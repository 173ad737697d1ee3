package services

import (
	"errors"
	"slices"
	"time"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"

	"gorm.io/gorm"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// parseDate parses an optional YYYY-MM-DD value; empty means no date
func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return nil, domain.Invalid("%s must be YYYY-MM-DD", field)
	}
	return &t, nil
}

// requireDate parses a mandatory YYYY-MM-DD value
func requireDate(field, value string) (time.Time, error) {
	t, err := parseDate(field, value)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, domain.Invalid("%s is required", field)
	}
	return *t, nil
}

// translate maps gorm's sentinel errors onto domain errors
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEntry
	}
	return err
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func oneOf(value string, allowed []string) bool {
	return slices.Contains(allowed, value)
}

// ============================================================
// Vigency views
// ============================================================

// RecordView pairs a record with its live vigency result
type RecordView[S vigency.Source] struct {
	Record  S              `json:"record"`
	Vigency vigency.Result `json:"vigency"`
}

// viewOf classifies one record; an unclassifiable record is reported UNDETERMINED
func viewOf[S vigency.Source](rec S, p vigency.Policy, today time.Time) *RecordView[S] {
	res, _ := vigency.Evaluate(rec, p, today)
	return &RecordView[S]{Record: rec, Vigency: res}
}

// viewsOf classifies records, keeping only those in status when it is set
func viewsOf[S vigency.Source](e *vigency.Engine, records []S, status *vigency.Status) []*RecordView[S] {
	today := e.Today()
	seq := slices.Values(records)
	if status != nil {
		seq = vigency.Filter(records, *status, e.Policy, today)
	}

	views := make([]*RecordView[S], 0, len(records))
	for rec := range seq {
		views = append(views, viewOf(rec, e.Policy, today))
	}
	return views
}
