// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - auth.UserStore: credential lookup and creation (internal/auth/service.go)
//   - audit.EventStore: account audit trail (internal/audit/service.go)
//   - tasks.AuditEventPurger: audit retention (internal/tasks/cleanup_audit.go)
//
// ## Object Storage
//
//   - storage.Client: upload, delete and address stored objects (internal/storage/client.go)
//   - tasks.ObjectDeleter: background removal of orphaned uploads (internal/tasks/delete_upload.go)
//
// ## Request Pipeline
//
//   - auth.UploadedFiles: signup file references and release (internal/auth/handlers.go)
//   - auth.AuditLogger: account event recording (internal/auth/handlers.go)
//   - uploads.Cleaner: deferred deletion of orphaned uploads (internal/uploads/pipeline.go)
//   - scheduler.AuditCleaner: periodic audit retention runs (internal/scheduler/audit_cleanup.go)
//
// ## External Service Interfaces
//
//   - http.Geocoder: reverse geocoding (internal/http/location.go)
//
// # Adding a New Storage Provider
//
//  1. Create a sub-package under internal/storage/providers/
//
//     type Client struct { ... }
//
//     func (c *Client) Upload(ctx context.Context, key string, content io.Reader, size int64, contentType string) error
//     func (c *Client) Delete(ctx context.Context, key string) error
//     func (c *Client) URL(key string) string
//
//     var _ storage.Client = (*Client)(nil)
//
//  2. Add a backend value to config.UploadBackend and select it in entrypoint.newStorage
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
