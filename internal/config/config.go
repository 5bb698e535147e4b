package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"
	DriverPostgres DatabaseDriver = "postgres"
)

type UploadBackend string

const (
	UploadBackendLocal UploadBackend = "local"
	UploadBackendS3    UploadBackend = "s3"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Auth
		Uploads
		Geocoding
		Tasks
	}

	HTTP struct {
		Port               int32
		Host               string
		CORSAllowedOrigins []string
	}
	Global struct {
		Environment              Environment
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver DatabaseDriver
		Path   string // SQLite file
		DSN    string // Postgres connection string
	}
	Auth struct {
		TokenSecret    string
		TokenTTL       time.Duration
		BcryptCost     int
		CookieName     string
		CookieSameSite string // "none", "lax" or "strict"
		SecureCookies  bool   // HTTPS-only session cookie
	}
	Uploads struct {
		Backend     UploadBackend
		LocalDir    string
		PublicPath  string // URL prefix the local backend is served under
		MaxFileSize int64
		S3Bucket    string
		S3Region    string
		S3Endpoint  string // Custom endpoint for S3-compatible stores (MinIO etc.)
		S3AccessKey string
		S3SecretKey string
		S3PublicURL string // Base URL used to build object references
	}
	Geocoding struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}
	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		// Audit events older than this are purged on AuditCleanupSchedule
		AuditRetentionDays int
		// Five-field cron expression or descriptor; empty purges only at startup
		AuditCleanupSchedule string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_allowed_origins", "")
	v.SetDefault("app_env", string(EnvDevelopment))
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")

	// Auth defaults
	v.SetDefault("auth_token_secret", "") // Generated at startup outside production
	v.SetDefault("auth_token_ttl", DefaultTokenTTL.String())
	v.SetDefault("auth_bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("auth_cookie_name", DefaultCookieName)
	v.SetDefault("auth_cookie_samesite", "none")

	// Upload defaults
	v.SetDefault("upload_backend", string(UploadBackendLocal))
	v.SetDefault("upload_local_dir", "./uploads")
	v.SetDefault("upload_public_path", "/uploads")
	v.SetDefault("upload_max_file_size", DefaultMaxUploadSize)
	v.SetDefault("s3_region", "us-east-1")

	// Geocoding defaults
	v.SetDefault("geocoding_base_url", "https://us1.locationiq.com/v1")
	v.SetDefault("geocoding_timeout", "10s")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("audit_retention_days", 90)
	v.SetDefault("audit_cleanup_schedule", DefaultAuditCleanupSchedule)

	env := Environment(strings.ToLower(v.GetString("APP_ENV")))

	// Secure cookies follow the environment unless explicitly overridden
	secureCookies := env == EnvProduction
	if v.IsSet("AUTH_SECURE_COOKIES") {
		secureCookies = v.GetBool("AUTH_SECURE_COOKIES")
	}

	return &Config{
		HTTP: HTTP{
			Port:               v.GetInt32("PORT"),
			Host:               v.GetString("HOST"),
			CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Global: Global{
			Environment:              env,
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver: DatabaseDriver(strings.ToLower(v.GetString("DATABASE_DRIVER"))),
			Path:   v.GetString("DATABASE_PATH"),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Auth: Auth{
			TokenSecret:    v.GetString("AUTH_TOKEN_SECRET"),
			TokenTTL:       v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost:     v.GetInt("AUTH_BCRYPT_COST"),
			CookieName:     v.GetString("AUTH_COOKIE_NAME"),
			CookieSameSite: strings.ToLower(v.GetString("AUTH_COOKIE_SAMESITE")),
			SecureCookies:  secureCookies,
		},
		Uploads: Uploads{
			Backend:     UploadBackend(strings.ToLower(v.GetString("UPLOAD_BACKEND"))),
			LocalDir:    v.GetString("UPLOAD_LOCAL_DIR"),
			PublicPath:  v.GetString("UPLOAD_PUBLIC_PATH"),
			MaxFileSize: v.GetInt64("UPLOAD_MAX_FILE_SIZE"),
			S3Bucket:    v.GetString("S3_BUCKET"),
			S3Region:    v.GetString("S3_REGION"),
			S3Endpoint:  v.GetString("S3_ENDPOINT"),
			S3AccessKey: v.GetString("S3_ACCESS_KEY"),
			S3SecretKey: v.GetString("S3_SECRET_KEY"),
			S3PublicURL: v.GetString("S3_PUBLIC_BASE_URL"),
		},
		Geocoding: Geocoding{
			APIKey:  v.GetString("LOCATIONIQ_API_KEY"),
			BaseURL: v.GetString("GEOCODING_BASE_URL"),
			Timeout: v.GetDuration("GEOCODING_TIMEOUT"),
		},
		Tasks: Tasks{
			Enabled:              v.GetBool("TASKS_ENABLED"),
			Workers:              v.GetInt("TASK_WORKERS"),
			ReleaseAfter:         v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:      v.GetDuration("TASK_CLEANUP_INTERVAL"),
			AuditRetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			AuditCleanupSchedule: strings.TrimSpace(v.GetString("AUDIT_CLEANUP_SCHEDULE")),
		},
	}
}

// IsProduction reports whether the service runs in a production-like deployment.
func (c *Config) IsProduction() bool {
	return c.Global.Environment == EnvProduction
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.Global.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown APP_ENV %q", c.Global.Environment))
	}

	if c.IsProduction() && c.Auth.TokenSecret == "" {
		errs = append(errs, errors.New("AUTH_TOKEN_SECRET is required in production"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("AUTH_TOKEN_TTL must be positive"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Auth.CookieName == "" {
		errs = append(errs, errors.New("AUTH_COOKIE_NAME must not be empty"))
	}
	switch c.Auth.CookieSameSite {
	case "none", "lax", "strict":
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_COOKIE_SAMESITE %q", c.Auth.CookieSameSite))
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required for sqlite"))
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("DATABASE_DSN is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown DATABASE_DRIVER %q", c.Database.Driver))
	}

	switch c.Uploads.Backend {
	case UploadBackendLocal:
		if c.Uploads.LocalDir == "" {
			errs = append(errs, errors.New("UPLOAD_LOCAL_DIR is required for the local backend"))
		}
	case UploadBackendS3:
		if c.Uploads.S3Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required for the s3 backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown UPLOAD_BACKEND %q", c.Uploads.Backend))
	}
	if c.Uploads.MaxFileSize <= 0 {
		errs = append(errs, errors.New("UPLOAD_MAX_FILE_SIZE must be positive"))
	}

	if c.Tasks.AuditCleanupSchedule != "" {
		if _, err := cron.ParseStandard(c.Tasks.AuditCleanupSchedule); err != nil {
			errs = append(errs, fmt.Errorf("invalid AUDIT_CLEANUP_SCHEDULE: %w", err))
		}
	}

	return errors.Join(errs...)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
