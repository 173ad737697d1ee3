package services

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"
)

// LineNotifyURL is the LINE Notify endpoint
const LineNotifyURL = "https://notify-api.line.me/api/notify"

// NotificationService handles LINE notifications
type NotificationService struct {
	lineNotifyToken string
	endpoint        string
	client          *http.Client
	enabled         bool
}

// NewNotificationService creates a new notification service; an empty token disables it
func NewNotificationService(token string) *NotificationService {
	return &NotificationService{
		lineNotifyToken: token,
		endpoint:        LineNotifyURL,
		client:          &http.Client{Timeout: 10 * time.Second},
		enabled:         token != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// sendLineNotify sends a message via LINE Notify
func (s *NotificationService) sendLineNotify(message string) error {
	if !s.enabled {
		return nil
	}

	data := url.Values{}
	data.Set("message", message)

	req, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewBufferString(data.Encode()))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.lineNotifyToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("line notify: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// NotifyVigencyDigest sends the daily near-expiry / expired counts and
// reports whether a message went out. Nothing is sent when no record needs attention.
func (s *NotificationService) NotifyVigencyDigest(summary *VigencySummary) (bool, error) {
	message, ok := digestMessage(summary)
	if !ok || !s.enabled {
		return false, nil
	}
	if err := s.sendLineNotify(message); err != nil {
		return false, err
	}
	return true, nil
}

func digestMessage(summary *VigencySummary) (string, bool) {
	if summary == nil {
		return "", false
	}
	if summary.Total[vigency.StatusNearExpiry] == 0 && summary.Total[vigency.StatusExpired] == 0 {
		return "", false
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n📅 Vigency digest %s\n", summary.Date)
	for _, kind := range domain.RecordKinds {
		counts := summary.Kinds[kind]
		fmt.Fprintf(&b, "\n• %s: ⚠️ %d near expiry, ❌ %d expired",
			kind,
			counts[vigency.StatusNearExpiry],
			counts[vigency.StatusExpired],
		)
	}
	b.WriteString("\n\nPlease renew before the due dates.")
	return b.String(), true
}
