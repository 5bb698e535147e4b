package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// ObjectDeleter removes stored upload objects. Satisfied by storage.Client.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// DeleteUploadTask removes an uploaded object that no account references,
// left behind when signup fails after the upload pipeline stored it.
type DeleteUploadTask struct {
	Key string `json:"key"`
}

// Config returns the queue configuration for upload deletion tasks.
func (t DeleteUploadTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "delete_upload",
		MaxAttempts: 5,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// DeleteUploadProcessor creates a processor function for DeleteUploadTask.
func DeleteUploadProcessor(deleter ObjectDeleter) backlite.QueueProcessor[DeleteUploadTask] {
	return func(ctx context.Context, task DeleteUploadTask) error {
		if deleter == nil {
			return fmt.Errorf("object storage not configured")
		}
		if err := deleter.Delete(ctx, task.Key); err != nil {
			return fmt.Errorf("delete upload %s: %w", task.Key, err)
		}
		log.Printf("[TASK] Deleted orphaned upload %s", task.Key)
		return nil
	}
}

// NewDeleteUploadQueue creates a backlite queue for upload deletion tasks.
func NewDeleteUploadQueue(deleter ObjectDeleter) backlite.Queue {
	return backlite.NewQueue(DeleteUploadProcessor(deleter))
}
