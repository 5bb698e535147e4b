package http

import (
	"github.com/mrlokans/hirehub/internal/audit"
	"github.com/mrlokans/hirehub/internal/auth"
	"github.com/mrlokans/hirehub/internal/database"
	"github.com/mrlokans/hirehub/internal/uploads"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Account API
	AuthController *auth.AuthController
	Guard          *auth.Guard
	UploadPipeline *uploads.Pipeline // optional, multipart signups are rejected without it
	AuditService   *audit.Service    // optional, enables GET /user/me/activity

	// Reverse geocoding (optional)
	Geocoder Geocoder

	// Health check
	Database *database.Database
	Version  string

	// Browser access
	CORSAllowedOrigins []string
	EnableHSTS         bool

	// Local upload backend, served back as static files
	UploadsDir        string
	UploadsPublicPath string
}
