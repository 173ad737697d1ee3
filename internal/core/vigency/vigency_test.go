package vigency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(n int) *int              { return &n }

func TestClassifyScenarios(t *testing.T) {
	ref := ptrTime(date(2024, 1, 1))

	tests := []struct {
		name      string
		today     time.Time
		status    Status
		remaining int
	}{
		{"well before expiry", date(2024, 6, 1), StatusValid, 213},
		{"inside alert window", date(2024, 12, 15), StatusNearExpiry, 16},
		{"after expiry", date(2025, 1, 15), StatusExpired, -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(ref, ptrInt(365), "", 30, tt.today)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.remaining, res.DaysRemaining)
			require.NotNil(t, res.ExpiryDate)
			assert.Equal(t, date(2024, 12, 31), *res.ExpiryDate)
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	const alert = 30
	expiry := date(2025, 3, 1)
	ref := ptrTime(expiry.AddDate(0, 0, -100))

	tests := []struct {
		name      string
		remaining int
		status    Status
	}{
		{"one day overdue", -1, StatusExpired},
		{"expires today", 0, StatusNearExpiry},
		{"exactly at threshold", alert, StatusNearExpiry},
		{"one past threshold", alert + 1, StatusValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := expiry.AddDate(0, 0, -tt.remaining)
			res, err := Classify(ref, ptrInt(100), "", alert, today)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.remaining, res.DaysRemaining)
		})
	}
}

func TestClassifyMissingInputs(t *testing.T) {
	today := date(2024, 6, 1)
	ref := ptrTime(date(2024, 1, 1))

	tests := []struct {
		name     string
		ref      *time.Time
		duration *int
	}{
		{"no reference date", nil, ptrInt(365)},
		{"zero reference date", ptrTime(time.Time{}), ptrInt(365)},
		{"no duration", ref, nil},
		{"negative duration", ref, ptrInt(-5)},
		{"nothing at all", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify(tt.ref, tt.duration, "", 30, today)
			require.NoError(t, err)
			assert.Equal(t, StatusUndetermined, res.Status)
			assert.Nil(t, res.ExpiryDate)
		})
	}
}

func TestClassifyManualStatusOverride(t *testing.T) {
	today := date(2024, 6, 1)
	ref := ptrTime(today)

	for _, manual := range []string{"RETURNED", "DAMAGED", "LOST"} {
		t.Run(manual, func(t *testing.T) {
			res, err := Classify(ref, ptrInt(3650), manual, 30, today)
			require.NoError(t, err)
			assert.Equal(t, StatusInactive, res.Status)
			assert.Nil(t, res.ExpiryDate)
		})
	}

	t.Run("inactive wins over missing dates", func(t *testing.T) {
		res, err := Classify(nil, nil, "LOST", 30, today)
		require.NoError(t, err)
		assert.Equal(t, StatusInactive, res.Status)
	})

	t.Run("active runs date math", func(t *testing.T) {
		res, err := Classify(ref, ptrInt(3650), ManualActive, 30, today)
		require.NoError(t, err)
		assert.Equal(t, StatusValid, res.Status)
	})
}

func TestClassifyZeroDurationExpiresOnReferenceDate(t *testing.T) {
	validUntil := date(2024, 7, 1)
	res, err := Classify(&validUntil, ptrInt(0), "", 30, date(2024, 7, 1))
	require.NoError(t, err)
	assert.Equal(t, StatusNearExpiry, res.Status)
	assert.Equal(t, 0, res.DaysRemaining)
}

func TestClassifyIgnoresClockAndZone(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	ref := time.Date(2024, 1, 1, 23, 30, 0, 0, bogota)
	today := time.Date(2024, 12, 31, 1, 0, 0, 0, bogota)

	res, err := Classify(&ref, ptrInt(365), "", 30, today)
	require.NoError(t, err)
	assert.Equal(t, 0, res.DaysRemaining)
	assert.Equal(t, date(2024, 12, 31), *res.ExpiryDate)
}

func TestClassifyOutOfRange(t *testing.T) {
	ref := ptrTime(date(9999, 12, 1))
	_, err := Classify(ref, ptrInt(60), "", 30, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrDateOutOfRange)

	_, err = Classify(ptrTime(date(2024, 1, 1)), ptrInt(1<<40), "", 30, date(2024, 1, 1))
	assert.ErrorIs(t, err, ErrDateOutOfRange)
}

func TestClassifyIsIdempotent(t *testing.T) {
	ref := ptrTime(date(2024, 1, 1))
	today := date(2024, 12, 15)

	first, err := Classify(ref, ptrInt(365), "", 30, today)
	require.NoError(t, err)
	second, err := Classify(ref, ptrInt(365), "", 30, today)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFillExpiry(t *testing.T) {
	ref := ptrTime(date(2024, 1, 1))

	t.Run("keeps stored value", func(t *testing.T) {
		stored := ptrTime(date(2030, 1, 1))
		got, err := FillExpiry(stored, Input{ReferenceDate: ref, DurationDays: ptrInt(365)})
		require.NoError(t, err)
		assert.Equal(t, stored, got)
	})

	t.Run("computes blank value", func(t *testing.T) {
		got, err := FillExpiry(nil, Input{ReferenceDate: ref, DurationDays: ptrInt(365)})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, date(2024, 12, 31), *got)
	})

	t.Run("not derivable", func(t *testing.T) {
		got, err := FillExpiry(nil, Input{ReferenceDate: ref})
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus("NEAR_EXPIRY")
	assert.True(t, ok)
	assert.Equal(t, StatusNearExpiry, st)

	_, ok = ParseStatus("near_expiry")
	assert.False(t, ok)
}

func TestEngineToday(t *testing.T) {
	e := &Engine{
		Policy: DefaultPolicy(),
		Now:    func() time.Time { return time.Date(2024, 3, 5, 18, 45, 0, 0, time.UTC) },
	}
	assert.Equal(t, date(2024, 3, 5), e.Today())
}
