package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/hirehub/internal/config"
)

// DefaultAuditRetention applies when AUDIT_RETENTION_DAYS is unset or not positive.
const DefaultAuditRetention = 90 * 24 * time.Hour

var errNoCutoff = errors.New("audit cleanup task has no cutoff")

// AuditEventPurger deletes audit events recorded before a point in time.
type AuditEventPurger interface {
	DeleteOldEvents(ctx context.Context, olderThan time.Time) (int64, error)
}

// AuditCleanupTask purges the audit trail up to Cutoff. The cutoff is fixed
// when the task is enqueued so retries delete the same window.
type AuditCleanupTask struct {
	Cutoff    time.Time     `json:"cutoff"`
	Retention time.Duration `json:"retention"`
}

// NewAuditCleanupTask builds a task that keeps the last retention worth of events.
func NewAuditCleanupTask(now time.Time, retention time.Duration) AuditCleanupTask {
	if retention <= 0 {
		retention = DefaultAuditRetention
	}
	return AuditCleanupTask{Cutoff: now.Add(-retention).UTC(), Retention: retention}
}

// AuditRetention converts the configured day count into a duration.
func AuditRetention(cfg config.Tasks) time.Duration {
	if cfg.AuditRetentionDays <= 0 {
		return DefaultAuditRetention
	}
	return time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour
}

func (t AuditCleanupTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cleanup_audit_events",
		MaxAttempts: 3,
		Backoff:     5 * time.Minute,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration: 7 * 24 * time.Hour,
			Data:     &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func auditCleanupProcessor(purger AuditEventPurger) backlite.QueueProcessor[AuditCleanupTask] {
	return func(ctx context.Context, task AuditCleanupTask) error {
		if task.Cutoff.IsZero() {
			return errNoCutoff
		}
		if task.Cutoff.After(time.Now()) {
			return fmt.Errorf("audit cleanup cutoff %s is in the future", task.Cutoff.Format(time.RFC3339))
		}

		deleted, err := purger.DeleteOldEvents(ctx, task.Cutoff)
		if err != nil {
			return fmt.Errorf("purge audit events before %s: %w", task.Cutoff.Format(time.RFC3339), err)
		}

		log.Printf("[TASK] Purged %d audit events recorded before %s (retention %s)",
			deleted, task.Cutoff.Format(time.RFC3339), task.Retention)
		return nil
	}
}

// NewAuditCleanupQueue creates the backlite queue that runs AuditCleanupTask.
func NewAuditCleanupQueue(purger AuditEventPurger) backlite.Queue {
	return backlite.NewQueue(auditCleanupProcessor(purger))
}

// EnqueueAuditCleanup queues a purge of events older than retention.
func (c *Client) EnqueueAuditCleanup(ctx context.Context, retention time.Duration) error {
	task := NewAuditCleanupTask(time.Now(), retention)
	if _, err := c.client.Add(task).Ctx(ctx).Save(); err != nil {
		return fmt.Errorf("failed to enqueue audit cleanup: %w", err)
	}
	return nil
}
