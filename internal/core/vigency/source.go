package vigency

import "time"

// Policy holds the alert thresholds for each record kind
type Policy struct {
	EquipmentAlertDays     int
	DocumentAlertDays      int
	DefaultCourseAlertDays int
}

// DefaultPolicy returns the 30-day thresholds used when nothing is configured
func DefaultPolicy() Policy {
	return Policy{
		EquipmentAlertDays:     30,
		DocumentAlertDays:      30,
		DefaultCourseAlertDays: 30,
	}
}

// Input is the shape every vigency-tracked record reduces to
type Input struct {
	ReferenceDate *time.Time
	DurationDays  *int
	ManualStatus  string
	AlertDays     int
}

// Source is implemented by each record kind that carries a validity window
type Source interface {
	VigencyInput(p Policy) Input
}

// ClassifyInput runs Classify over an Input
func ClassifyInput(in Input, today time.Time) (Result, error) {
	return Classify(in.ReferenceDate, in.DurationDays, in.ManualStatus, in.AlertDays, today)
}

// FillExpiry returns the stored expiry when present, otherwise the one
// derivable from the input. Nil means it cannot be derived.
func FillExpiry(stored *time.Time, in Input) (*time.Time, error) {
	if stored != nil && !stored.IsZero() {
		return stored, nil
	}
	if in.ReferenceDate == nil || in.ReferenceDate.IsZero() || in.DurationDays == nil || *in.DurationDays < 0 {
		return nil, nil
	}
	expiry, err := ExpiryDate(*in.ReferenceDate, *in.DurationDays)
	if err != nil {
		return nil, err
	}
	return &expiry, nil
}

// Engine binds a policy and a clock to the pure classification functions
type Engine struct {
	Policy Policy
	Now    func() time.Time
}

// NewEngine creates an engine that reads the wall clock in loc
func NewEngine(policy Policy, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		Policy: policy,
		Now:    func() time.Time { return time.Now().In(loc) },
	}
}

// Today returns the current calendar date
func (e *Engine) Today() time.Time {
	return DateOf(e.Now())
}

// Evaluate classifies a single record against today's date.
// Out-of-range records come back UNDETERMINED together with the error.
func (e *Engine) Evaluate(src Source) (Result, error) {
	return Evaluate(src, e.Policy, e.Today())
}

// Evaluate classifies a single source
func Evaluate(src Source, p Policy, today time.Time) (Result, error) {
	return ClassifyInput(src.VigencyInput(p), today)
}
