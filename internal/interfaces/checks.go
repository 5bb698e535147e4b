package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/hirehub/internal/audit"
	"github.com/mrlokans/hirehub/internal/auth"
	auditRepo "github.com/mrlokans/hirehub/internal/database/audit"
	"github.com/mrlokans/hirehub/internal/database/users"
	"github.com/mrlokans/hirehub/internal/geocoding"
	"github.com/mrlokans/hirehub/internal/http"
	"github.com/mrlokans/hirehub/internal/scheduler"
	"github.com/mrlokans/hirehub/internal/storage"
	"github.com/mrlokans/hirehub/internal/storage/providers/local"
	"github.com/mrlokans/hirehub/internal/storage/providers/s3"
	"github.com/mrlokans/hirehub/internal/tasks"
	"github.com/mrlokans/hirehub/internal/uploads"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)
var _ audit.EventStore = (*auditRepo.Repository)(nil)
var _ tasks.AuditEventPurger = (*auditRepo.Repository)(nil)

// =============================================================================
// Object Storage
// =============================================================================

var _ storage.Client = (*local.Client)(nil)
var _ storage.Client = (*s3.Client)(nil)
var _ tasks.ObjectDeleter = (storage.Client)(nil)

// =============================================================================
// Request Pipeline
// =============================================================================

var _ auth.UploadedFiles = (*uploads.Pipeline)(nil)
var _ auth.AuditLogger = (*audit.Service)(nil)
var _ uploads.Cleaner = (*tasks.Client)(nil)
var _ scheduler.AuditCleaner = (*tasks.Client)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ http.Geocoder = (*geocoding.Client)(nil)
