package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// cleanupTimeout bounds a single run so a stuck store cannot pile up jobs.
const cleanupTimeout = 2 * time.Minute

// AuditCleaner starts a purge of audit events older than retention.
// tasks.Client satisfies it by queueing a cleanup_audit_events task.
type AuditCleaner interface {
	EnqueueAuditCleanup(ctx context.Context, retention time.Duration) error
}

// CleanupFunc adapts a plain function to AuditCleaner, for running the purge
// inline when the task queue is disabled.
type CleanupFunc func(ctx context.Context, retention time.Duration) error

func (f CleanupFunc) EnqueueAuditCleanup(ctx context.Context, retention time.Duration) error {
	return f(ctx, retention)
}

// AuditCleanupScheduler triggers audit trail retention on a cron schedule.
type AuditCleanupScheduler struct {
	cleaner   AuditCleaner
	schedule  string
	retention time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewAuditCleanupScheduler accepts five-field expressions and descriptors such as @daily.
func NewAuditCleanupScheduler(cleaner AuditCleaner, schedule string, retention time.Duration) (*AuditCleanupScheduler, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return &AuditCleanupScheduler{
		cleaner:   cleaner,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(cron.WithParser(parser)),
	}, nil
}

func (s *AuditCleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule audit cleanup: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Audit cleanup scheduler: started with schedule '%s', retention %s. Next run: %v",
		s.schedule, s.retention, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running cleanup to return. Safe to call more than once.
func (s *AuditCleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Audit cleanup scheduler: stopped")
}

// RunNow purges synchronously, independent of the schedule.
func (s *AuditCleanupScheduler) RunNow(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, cleanupTimeout)
	defer cancel()
	return s.cleaner.EnqueueAuditCleanup(ctx, s.retention)
}

func (s *AuditCleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun is nil while the scheduler is stopped.
func (s *AuditCleanupScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	return &next
}

func (s *AuditCleanupScheduler) runCleanup() {
	if err := s.RunNow(context.Background()); err != nil {
		log.Printf("Audit cleanup scheduler: run failed: %v", err)
	}
}
