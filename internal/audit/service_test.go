package audit

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/hirehub/internal/database/audit"
	"github.com/mrlokans/hirehub/internal/entities"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	svc := NewService(auditRepo.NewRepository(db))
	return svc, db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID: "user-1",
		Action: entities.AuditActionSignup,
		Status: entities.AuditStatusSuccess,
	}

	err := svc.Log(context.Background(), event)
	require.NoError(t, err)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditActionSignup, saved.Action)
}

func TestService_LogAuth(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful login", func(t *testing.T) {
		svc.LogAuth("user-1", entities.AuditActionLogin, "10.0.0.1", "curl/8.0", "")
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("user_id = ? AND action = ?", "user-1", entities.AuditActionLogin).First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
		assert.Equal(t, "10.0.0.1", event.IPAddress)
		assert.Empty(t, event.Reason)
	})

	t.Run("failed login keeps the reason", func(t *testing.T) {
		svc.LogAuth("", entities.AuditActionLogin, "10.0.0.2", strings.Repeat("a", 600), "Invalid credentials")
		svc.Wait()

		var event entities.AuditEvent
		err := db.Where("ip_address = ?", "10.0.0.2").First(&event).Error
		require.NoError(t, err)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Equal(t, "Invalid credentials", event.Reason)
		assert.Len(t, event.UserAgent, 500)
	})
}

type failingWriter struct {
	mu    sync.Mutex
	calls int
}

func (w *failingWriter) LogEvent(context.Context, *entities.AuditEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.calls++
	return errors.New("disk full")
}

func (w *failingWriter) GetEvents(context.Context, string, int, int) ([]entities.AuditEvent, int64, error) {
	return nil, 0, errors.New("disk full")
}

func TestService_LogAsync_WriteFailureIsSwallowed(t *testing.T) {
	writer := &failingWriter{}
	svc := NewService(writer)

	svc.LogAuth("user-1", entities.AuditActionLogout, "", "", "")
	svc.Wait()

	assert.Equal(t, 1, writer.calls)
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: "user-1", Action: entities.AuditActionLogin, Status: entities.AuditStatusSuccess}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: "user-2", Action: entities.AuditActionLogin, Status: entities.AuditStatusSuccess}))

	events, total, err := svc.GetEvents(ctx, "user-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "user-1", events[0].UserID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
}
