package audit

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mrlokans/hirehub/internal/entities"
)

const writeTimeout = 5 * time.Second

// EventStore persists and lists audit events. Implemented by database/audit.Repository.
type EventStore interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
	GetEvents(ctx context.Context, userID string, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// Service provides high-level audit logging functionality.
type Service struct {
	store   EventStore
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(store EventStore) *Service {
	return &Service{store: store}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.store.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// Write failures are only logged.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.store.LogEvent(ctx, event); err != nil {
			log.Printf("Failed to log audit event %s: %v", event.Action, err)
		}
	}()
}

// LogAuth records an account event. reason must be a client-safe message.
func (s *Service) LogAuth(userID string, action entities.AuditAction, ipAddr, userAgent string, reason string) {
	event := &entities.AuditEvent{
		UserID:    userID,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
	}

	if reason != "" {
		event.Status = entities.AuditStatusFailed
		event.Reason = truncate(reason, 255)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events for a user.
func (s *Service) GetEvents(ctx context.Context, userID string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.store.GetEvents(ctx, userID, limit, offset)
}

// Wait blocks until all background writes have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
