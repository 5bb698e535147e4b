// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (SQLite or Postgres) and migrations
//	├── users/           # Credential store: user lookup and creation
//	└── audit/           # Account audit trail
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	usersRepo := users.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	user, err := usersRepo.FindByEmail(ctx, "a@example.com")
//
// # Interface Implementations
//
//   - users.Repository: implements auth.UserStore
//   - audit.Repository: implements audit.EventStore
//
// Compile-time checks live next to each repository and in internal/interfaces:
//
//	var _ auth.UserStore = (*Repository)(nil)
package database
