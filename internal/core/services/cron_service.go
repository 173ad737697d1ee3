package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"tentworks-records/internal/core/domain"
	"tentworks-records/internal/core/vigency"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/robfig/cron/v3"
)

// Sweep metrics
var (
	vigencyRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "tentworks_vigency_records",
		Help: "Records per kind and vigency status at the last sweep",
	}, []string{"kind", "status"})

	expiryFilledTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tentworks_vigency_expiry_filled_total",
		Help: "Blank cached expiry dates filled by the sweep",
	}, []string{"kind"})

	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tentworks_vigency_sweep_duration_seconds",
		Help:    "Duration of the vigency sweep",
		Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
	})
)

// CronService runs the daily vigency sweep
type CronService struct {
	vigencyService *VigencyService
	notifyService  *NotificationService
	cron           *cron.Cron
	spec           string
	mu             sync.Mutex
}

// NewCronService creates the sweep scheduler; the schedule is evaluated in loc
func NewCronService(vigencyService *VigencyService, notifyService *NotificationService, spec string, loc *time.Location) (*CronService, error) {
	if loc == nil {
		loc = time.Local
	}
	s := &CronService{
		vigencyService: vigencyService,
		notifyService:  notifyService,
		cron:           cron.New(cron.WithLocation(loc)),
		spec:           spec,
	}

	if _, err := s.cron.AddFunc(spec, s.runScheduled); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule '%s': %w", spec, err)
	}
	return s, nil
}

// Start starts the scheduler in its own goroutine
func (s *CronService) Start() {
	s.cron.Start()
	log.Printf("🚀 CronService started [vigency sweep: %s]", s.spec)
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := s.RunNow(ctx); err != nil {
		log.Printf("❌ Vigency sweep failed: %v", err)
	}
}

// SweepResult represents what a sweep did
type SweepResult struct {
	Summary      *VigencySummary           `json:"summary"`
	Filled       map[domain.RecordKind]int `json:"filled"`
	Notified     bool                      `json:"notified"`
	FillFailures int                       `json:"fill_failures"`
}

// RunNow runs the sweep synchronously: fill blank cached expiries, publish
// gauges and send the LINE digest
func (s *CronService) RunNow(ctx context.Context) (*SweepResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := prometheus.NewTimer(sweepDuration)
	defer timer.ObserveDuration()

	snap, err := s.vigencyService.load(ctx)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{Filled: map[domain.RecordKind]int{}}
	policy := s.vigencyService.engine.Policy

	for _, course := range snap.courses {
		filled, err := s.fill(ctx, domain.KindCourses, course.ExpiryDate, course.VigencyInput(policy), course.ID,
			s.vigencyService.courseRepo.UpdateExpiry)
		if err != nil {
			result.FillFailures++
			continue
		}
		if filled != nil {
			course.ExpiryDate = filled
			result.Filled[domain.KindCourses]++
		}
	}
	for _, issuance := range snap.issuances {
		filled, err := s.fill(ctx, domain.KindEquipment, issuance.ExpiryDate, issuance.VigencyInput(policy), issuance.ID,
			s.vigencyService.issuanceRepo.UpdateExpiry)
		if err != nil {
			result.FillFailures++
			continue
		}
		if filled != nil {
			issuance.ExpiryDate = filled
			result.Filled[domain.KindEquipment]++
		}
	}

	result.Summary = s.vigencyService.summarize(snap)
	publishGauges(result.Summary)

	if s.notifyService != nil && s.notifyService.IsEnabled() {
		sent, err := s.notifyService.NotifyVigencyDigest(result.Summary)
		if err != nil {
			log.Printf("⚠️ Failed to send vigency digest: %v", err)
		}
		result.Notified = sent
	}

	log.Printf("✅ Vigency sweep done [date: %s, filled: %v, near expiry: %d, expired: %d]",
		result.Summary.Date,
		result.Filled,
		result.Summary.Total[vigency.StatusNearExpiry],
		result.Summary.Total[vigency.StatusExpired],
	)
	return result, nil
}

// fill persists a derived expiry when the cached one is blank. It returns nil
// when nothing had to be written.
func (s *CronService) fill(
	ctx context.Context,
	kind domain.RecordKind,
	stored *time.Time,
	in vigency.Input,
	id uint,
	persist func(ctx context.Context, id uint, expiry *time.Time) error,
) (*time.Time, error) {
	if stored != nil && !stored.IsZero() {
		return nil, nil
	}
	expiry, err := vigency.FillExpiry(stored, in)
	if err != nil {
		if errors.Is(err, vigency.ErrDateOutOfRange) {
			log.Printf("⚠️ %s #%d: expiry out of range", kind, id)
		}
		return nil, err
	}
	if expiry == nil {
		return nil, nil
	}
	if err := persist(ctx, id, expiry); err != nil {
		log.Printf("⚠️ %s #%d: failed to store expiry: %v", kind, id, err)
		return nil, err
	}
	expiryFilledTotal.WithLabelValues(string(kind)).Inc()
	return expiry, nil
}

func publishGauges(summary *VigencySummary) {
	for kind, counts := range summary.Kinds {
		for _, status := range vigency.Statuses {
			vigencyRecords.WithLabelValues(string(kind), string(status)).Set(float64(counts[status]))
		}
	}
}
