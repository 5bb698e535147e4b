package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Global:   Global{Environment: EnvDevelopment},
		Database: Database{Driver: DriverSQLite, Path: "./test.db"},
		Auth: Auth{
			TokenTTL:       DefaultTokenTTL,
			BcryptCost:     DefaultBcryptCost,
			CookieName:     DefaultCookieName,
			CookieSameSite: "none",
		},
		Uploads: Uploads{Backend: UploadBackendLocal, LocalDir: "./uploads", MaxFileSize: DefaultMaxUploadSize},
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Empty(t, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, EnvDevelopment, cfg.Global.Environment)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "token", cfg.Auth.CookieName)
	assert.Equal(t, "none", cfg.Auth.CookieSameSite)
	assert.False(t, cfg.Auth.SecureCookies, "secure cookies are off outside production")
	assert.Equal(t, UploadBackendLocal, cfg.Uploads.Backend)
	assert.Equal(t, int64(DefaultMaxUploadSize), cfg.Uploads.MaxFileSize)
	assert.Equal(t, "https://us1.locationiq.com/v1", cfg.Geocoding.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Geocoding.Timeout)
	assert.True(t, cfg.Tasks.Enabled)
	assert.Equal(t, 2, cfg.Tasks.Workers)
	assert.Equal(t, 90, cfg.Tasks.AuditRetentionDays)
	assert.Equal(t, "0 3 * * *", cfg.Tasks.AuditCleanupSchedule)
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_TOKEN_SECRET", "s3cr3t")
	t.Setenv("AUTH_TOKEN_TTL", "1h")
	t.Setenv("AUTH_COOKIE_SAMESITE", "Lax")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("UPLOAD_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "images")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Auth.SecureCookies, "production implies secure cookies")
	assert.Equal(t, "s3cr3t", cfg.Auth.TokenSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "lax", cfg.Auth.CookieSameSite)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CORSAllowedOrigins)
	assert.Equal(t, UploadBackendS3, cfg.Uploads.Backend)
	assert.Equal(t, "images", cfg.Uploads.S3Bucket)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_SecureCookiesOverride(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_SECURE_COOKIES", "false")

	cfg := NewConfig()
	assert.False(t, cfg.Auth.SecureCookies)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "production without secret",
			mutate:  func(c *Config) { c.Global.Environment = EnvProduction },
			wantErr: "AUTH_TOKEN_SECRET is required in production",
		},
		{
			name:    "non-positive ttl",
			mutate:  func(c *Config) { c.Auth.TokenTTL = 0 },
			wantErr: "AUTH_TOKEN_TTL must be positive",
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 2 },
			wantErr: "AUTH_BCRYPT_COST must be between",
		},
		{
			name:    "unknown samesite",
			mutate:  func(c *Config) { c.Auth.CookieSameSite = "sometimes" },
			wantErr: "unknown AUTH_COOKIE_SAMESITE",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Database.Driver = DriverPostgres },
			wantErr: "DATABASE_DSN is required for postgres",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "unknown DATABASE_DRIVER",
		},
		{
			name:    "s3 without bucket",
			mutate:  func(c *Config) { c.Uploads.Backend = UploadBackendS3 },
			wantErr: "S3_BUCKET is required",
		},
		{
			name:    "malformed audit cleanup schedule",
			mutate:  func(c *Config) { c.Tasks.AuditCleanupSchedule = "every day" },
			wantErr: "invalid AUDIT_CLEANUP_SCHEDULE",
		},
		{
			name:   "descriptor audit cleanup schedule",
			mutate: func(c *Config) { c.Tasks.AuditCleanupSchedule = "@daily" },
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Global.Environment = "staging" },
			wantErr: "unknown APP_ENV",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
