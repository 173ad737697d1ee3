package vigency

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type fakeRecord struct {
	name     string
	ref      *time.Time
	duration *int
	manual   string
}

func (r *fakeRecord) VigencyInput(p Policy) Input {
	return Input{
		ReferenceDate: r.ref,
		DurationDays:  r.duration,
		ManualStatus:  r.manual,
		AlertDays:     p.EquipmentAlertDays,
	}
}

type BatchSuite struct {
	suite.Suite
	today   time.Time
	policy  Policy
	records []*fakeRecord
}

func TestBatchSuite(t *testing.T) {
	suite.Run(t, new(BatchSuite))
}

func (s *BatchSuite) SetupTest() {
	s.today = date(2024, 6, 1)
	s.policy = DefaultPolicy()
	s.records = []*fakeRecord{
		{name: "valid-a", ref: ptrTime(date(2024, 5, 1)), duration: ptrInt(365)},
		{name: "valid-b", ref: ptrTime(date(2024, 6, 1)), duration: ptrInt(90)},
		{name: "near", ref: ptrTime(date(2024, 5, 1)), duration: ptrInt(40)},
		{name: "expired", ref: ptrTime(date(2023, 1, 1)), duration: ptrInt(180)},
		{name: "unknown", ref: nil, duration: ptrInt(180)},
	}
}

func (s *BatchSuite) names(seq func(func(*fakeRecord) bool)) []string {
	var out []string
	for rec := range seq {
		out = append(out, rec.name)
	}
	return out
}

func (s *BatchSuite) TestSummarize() {
	summary := Summarize(s.records, s.policy, s.today)

	s.Equal(2, summary[StatusValid])
	s.Equal(1, summary[StatusNearExpiry])
	s.Equal(1, summary[StatusExpired])
	s.Equal(1, summary[StatusUndetermined])
	s.Equal(0, summary[StatusInactive])
	s.Len(summary, len(Statuses))
	s.Equal(5, summary.Total())
}

func (s *BatchSuite) TestSummarizeEmpty() {
	summary := Summarize([]*fakeRecord{}, s.policy, s.today)
	s.Equal(0, summary.Total())
	s.Len(summary, len(Statuses))
}

func (s *BatchSuite) TestFilter() {
	s.Run("matches target only", func() {
		got := s.names(Filter(s.records, StatusValid, s.policy, s.today))
		s.Equal([]string{"valid-a", "valid-b"}, got)
	})

	s.Run("re-evaluates on each pass", func() {
		seq := Filter(s.records, StatusInactive, s.policy, s.today)
		s.Empty(s.names(seq))

		s.records[0].manual = "RETURNED"
		s.Equal([]string{"valid-a"}, s.names(seq))
	})

	s.Run("stops when consumer stops", func() {
		var seen int
		for range Filter(s.records, StatusValid, s.policy, s.today) {
			seen++
			break
		}
		s.Equal(1, seen)
	})
}

func (s *BatchSuite) TestMalformedRecordDoesNotAbortBatch() {
	broken := &fakeRecord{name: "broken", ref: ptrTime(date(9999, 12, 30)), duration: ptrInt(10)}
	records := append(slices.Clone(s.records), broken)

	summary := Summarize(records, s.policy, s.today)
	s.Equal(2, summary[StatusUndetermined])
	s.Equal(6, summary.Total())

	got := s.names(Filter(records, StatusUndetermined, s.policy, s.today))
	s.Equal([]string{"unknown", "broken"}, got)
}

func (s *BatchSuite) TestNilRecordDoesNotAbortBatch() {
	records := append(slices.Clone(s.records), nil)

	summary := Summarize(records, s.policy, s.today)
	s.Equal(2, summary[StatusUndetermined])
	s.Equal(2, summary[StatusValid])
	s.Equal(6, summary.Total())

	var valid int
	for range Filter(records, StatusValid, s.policy, s.today) {
		valid++
	}
	s.Equal(2, valid)
}

func TestNewSummaryHasAllBuckets(t *testing.T) {
	s := NewSummary()
	for _, st := range Statuses {
		v, ok := s[st]
		assert.True(t, ok, st)
		assert.Zero(t, v)
	}
}
