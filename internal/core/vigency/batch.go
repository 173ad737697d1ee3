package vigency

import (
	"iter"
	"time"
)

// Summary counts records per status. Every status is present, possibly zero.
type Summary map[Status]int

// NewSummary returns a summary with all buckets at zero
func NewSummary() Summary {
	s := make(Summary, len(Statuses))
	for _, st := range Statuses {
		s[st] = 0
	}
	return s
}

// Total returns the number of records summarized
func (s Summary) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// Filter yields the records whose classification matches target.
// Classification happens while iterating, so each pass sees current field values.
func Filter[S Source](records []S, target Status, p Policy, today time.Time) iter.Seq[S] {
	return func(yield func(S) bool) {
		for _, rec := range records {
			if statusOf(rec, p, today) != target {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Summarize counts records per classification
func Summarize[S Source](records []S, p Policy, today time.Time) Summary {
	summary := NewSummary()
	for _, rec := range records {
		summary[statusOf(rec, p, today)]++
	}
	return summary
}

// statusOf never fails; an unclassifiable record is UNDETERMINED,
// and so is a nil record whose VigencyInput panics.
func statusOf(src Source, p Policy, today time.Time) (status Status) {
	defer func() {
		if recover() != nil {
			status = StatusUndetermined
		}
	}()

	res, err := Evaluate(src, p, today)
	if err != nil {
		return StatusUndetermined
	}
	return res.Status
}

