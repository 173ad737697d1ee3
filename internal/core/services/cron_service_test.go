package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lineStub records what the sweep posts to LINE Notify
type lineStub struct {
	server  *httptest.Server
	status  int
	calls   int
	auth    string
	message string
}

func newLineStub(t *testing.T, status int) *lineStub {
	stub := &lineStub{status: status}
	stub.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stub.calls++
		stub.auth = r.Header.Get("Authorization")
		_ = r.ParseForm()
		stub.message = r.PostForm.Get("message")
		w.WriteHeader(stub.status)
	}))
	t.Cleanup(stub.server.Close)
	return stub
}

func (s *lineStub) notifier() *NotificationService {
	n := NewNotificationService("test-token")
	n.endpoint = s.server.URL
	return n
}

func TestNewCronServiceRejectsBadSchedule(t *testing.T) {
	_, err := NewCronService(newVigencyFixture().service(), nil, "every morning", time.UTC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sweep schedule")
}

func TestCronServiceRunNow(t *testing.T) {
	ctx := context.Background()

	t.Run("fills blank expiries and sends the digest", func(t *testing.T) {
		fixture := newVigencyFixture()
		fixture.courses.rows[3].ExpiryDate = day(2026, 3, 1)
		stub := newLineStub(t, http.StatusOK)

		cronService, err := NewCronService(fixture.service(), stub.notifier(), "0 7 * * *", time.UTC)
		require.NoError(t, err)

		result, err := cronService.RunNow(ctx)
		require.NoError(t, err)

		// course 3 already cached, course 4 has no validity
		assert.Equal(t, 2, result.Filled[domain.KindCourses])
		assert.Equal(t, 2, result.Filled[domain.KindEquipment])
		assert.Zero(t, result.FillFailures)
		assert.Equal(t, *day(2024, 12, 31), *fixture.courses.expiryWrites[1])
		assert.Equal(t, *day(2025, 7, 1), *fixture.courses.expiryWrites[2])
		assert.NotContains(t, fixture.courses.expiryWrites, uint(3))
		assert.NotContains(t, fixture.courses.expiryWrites, uint(4))
		assert.Equal(t, *day(2025, 4, 1), *fixture.issuances.expiryWrites[1])

		assert.Equal(t, 2, result.Summary.Total[vigency.StatusExpired])
		assert.True(t, result.Notified)
		assert.Equal(t, 1, stub.calls)
		assert.Equal(t, "Bearer test-token", stub.auth)
		assert.Contains(t, stub.message, "2025-06-15")
	})

	t.Run("second run has nothing left to fill", func(t *testing.T) {
		fixture := newVigencyFixture()
		cronService, err := NewCronService(fixture.service(), nil, "0 7 * * *", time.UTC)
		require.NoError(t, err)

		_, err = cronService.RunNow(ctx)
		require.NoError(t, err)
		result, err := cronService.RunNow(ctx)
		require.NoError(t, err)

		assert.Empty(t, result.Filled)
		assert.False(t, result.Notified)
	})

	t.Run("store failures are counted, not fatal", func(t *testing.T) {
		fixture := newVigencyFixture()
		fixture.courses.expiryErr = errors.New("lock wait timeout")

		cronService, err := NewCronService(fixture.service(), nil, "0 7 * * *", time.UTC)
		require.NoError(t, err)

		result, err := cronService.RunNow(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, result.FillFailures)
		assert.Zero(t, result.Filled[domain.KindCourses])
		assert.Equal(t, 2, result.Filled[domain.KindEquipment])
	})

	t.Run("LINE failure leaves the sweep successful", func(t *testing.T) {
		stub := newLineStub(t, http.StatusUnauthorized)
		cronService, err := NewCronService(newVigencyFixture().service(), stub.notifier(), "0 7 * * *", time.UTC)
		require.NoError(t, err)

		result, err := cronService.RunNow(ctx)
		require.NoError(t, err)
		assert.False(t, result.Notified)
		assert.Equal(t, 1, stub.calls)
	})

	t.Run("load failure aborts", func(t *testing.T) {
		fixture := newVigencyFixture()
		fixture.documents.err = errors.New("connection reset")

		cronService, err := NewCronService(fixture.service(), nil, "0 7 * * *", time.UTC)
		require.NoError(t, err)

		_, err = cronService.RunNow(ctx)
		assert.Error(t, err)
	})
}

func TestDigestMessage(t *testing.T) {
	t.Run("nothing to report", func(t *testing.T) {
		_, ok := digestMessage(nil)
		assert.False(t, ok)

		_, ok = digestMessage(&VigencySummary{Date: "2025-06-15", Total: vigency.NewSummary()})
		assert.False(t, ok)
	})

	t.Run("lists every kind", func(t *testing.T) {
		summary, err := newVigencyFixture().service().Summary(context.Background())
		require.NoError(t, err)

		msg, ok := digestMessage(summary)
		require.True(t, ok)
		assert.Contains(t, msg, "Vigency digest 2025-06-15")
		assert.Contains(t, msg, "courses: ⚠️ 1 near expiry, ❌ 1 expired")
		assert.Contains(t, msg, "equipment: ⚠️ 0 near expiry, ❌ 1 expired")
		assert.Contains(t, msg, "documents: ⚠️ 1 near expiry, ❌ 0 expired")
	})

	t.Run("disabled service sends nothing", func(t *testing.T) {
		summary, err := newVigencyFixture().service().Summary(context.Background())
		require.NoError(t, err)

		sent, err := NewNotificationService("").NotifyVigencyDigest(summary)
		require.NoError(t, err)
		assert.False(t, sent)
	})
}
