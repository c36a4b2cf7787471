package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clouddictionary/domain/core/entities"
	"clouddictionary/infrastructure/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Rotator performs one definition-of-the-day rotation.
type Rotator interface {
	Rotate(ctx context.Context) (*entities.Definition, error)
}

// RotationScheduler runs the daily rotation in-process for the local server.
// In Lambda the same job is driven by an EventBridge schedule instead.
type RotationScheduler struct {
	rotator  Rotator
	schedule string
	timeout  time.Duration
	logger   *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc

	// runMu guards isRotating separately so Stop can wait for a running
	// job while holding mu.
	runMu      sync.Mutex
	isRotating bool
}

// NewRotationScheduler creates a scheduler for the given six-field cron schedule
func NewRotationScheduler(rotator Rotator, schedule string, logger *zap.Logger) *RotationScheduler {
	return &RotationScheduler{
		rotator:  rotator,
		schedule: schedule,
		timeout:  time.Minute,
		logger:   logger,
		cron:     cron.New(cron.WithParser(config.RotationScheduleParser)),
	}
}

// Start registers the job and starts the cron loop. Cancelling ctx stops it.
func (s *RotationScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_ = s.RunNow(context.Background())
	})
	if err != nil {
		return fmt.Errorf("invalid rotation schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Rotation scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("nextRun", s.cron.Entry(entryID).Next),
	)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running rotation and stops the cron loop
func (s *RotationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.logger.Info("Rotation scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *RotationScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next rotation will occur, or nil when stopped
func (s *RotationScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

// RunNow performs a rotation immediately. Overlapping runs are skipped.
func (s *RotationScheduler) RunNow(ctx context.Context) error {
	s.runMu.Lock()
	if s.isRotating {
		s.runMu.Unlock()
		s.logger.Warn("Rotation skipped, previous run still in progress")
		return nil
	}
	s.isRotating = true
	s.runMu.Unlock()

	defer func() {
		s.runMu.Lock()
		s.isRotating = false
		s.runMu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	d, err := s.rotator.Rotate(ctx)
	if err != nil {
		s.logger.Error("Failed to rotate definition of the day", zap.Error(err))
		return err
	}

	s.logger.Info("Definition of the day rotated", zap.String("word", d.Word))
	return nil
}
