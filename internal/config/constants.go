package config

import "time"

const (
	// DefaultDatabasePath is the default path for the SQLite credential store
	DefaultDatabasePath = "./hirehub.db"

	// DefaultTokenTTL is the session token lifetime when AUTH_TOKEN_TTL is not set
	DefaultTokenTTL = 7 * 24 * time.Hour

	// DefaultBcryptCost matches the cost the account records were originally hashed with
	DefaultBcryptCost = 10

	// DefaultCookieName is the name of the session cookie
	DefaultCookieName = "token"

	// DefaultMaxUploadSize limits each uploaded image (5 MiB)
	DefaultMaxUploadSize = 5 << 20

	// DefaultAuditCleanupSchedule purges expired audit events daily at 03:00
	DefaultAuditCleanupSchedule = "0 3 * * *"
)
