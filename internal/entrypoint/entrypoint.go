package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/audit"
	"github.com/mrlokans/hirehub/internal/auth"
	"github.com/mrlokans/hirehub/internal/config"
	"github.com/mrlokans/hirehub/internal/database"
	auditRepo "github.com/mrlokans/hirehub/internal/database/audit"
	"github.com/mrlokans/hirehub/internal/database/users"
	"github.com/mrlokans/hirehub/internal/geocoding"
	"github.com/mrlokans/hirehub/internal/scheduler"
	http_controllers "github.com/mrlokans/hirehub/internal/http"
	"github.com/mrlokans/hirehub/internal/storage"
	"github.com/mrlokans/hirehub/internal/storage/providers/local"
	s3store "github.com/mrlokans/hirehub/internal/storage/providers/s3"
	"github.com/mrlokans/hirehub/internal/tasks"
	"github.com/mrlokans/hirehub/internal/uploads"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting HireHub v%s (%s)", version, cfg.Global.Environment)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Auth.TokenSecret == "" {
		secret, err := auth.GenerateTokenSecret()
		if err != nil {
			log.Fatalf("Failed to generate token secret: %v", err)
		}
		cfg.Auth.TokenSecret = secret
		log.Printf("WARNING: AUTH_TOKEN_SECRET is not set. Generated a random one; sessions will not survive a restart.")
	}
	if !cfg.Auth.SecureCookies && cfg.Auth.CookieSameSite == "none" {
		log.Printf("WARNING: SameSite=None cookies without Secure are rejected by browsers. Set AUTH_COOKIE_SAMESITE=lax for plain HTTP.")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	userStore := users.NewRepository(db.DB)
	auditStore := auditRepo.NewRepository(db.DB)
	auditService := audit.NewService(auditStore)

	// Object storage for signup uploads
	store, err := newStorage(context.Background(), cfg.Uploads)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	// Initialize task queue if enabled
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(
			tasks.NewDeleteUploadQueue(store),
			tasks.NewAuditCleanupQueue(auditStore),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Audit retention: purge once now, then on AUDIT_CLEANUP_SCHEDULE
	var auditCleaner scheduler.AuditCleaner = scheduler.CleanupFunc(func(ctx context.Context, retention time.Duration) error {
		deleted, err := auditStore.DeleteOldEvents(ctx, time.Now().Add(-retention))
		if err == nil {
			log.Printf("Purged %d audit events older than %s", deleted, retention)
		}
		return err
	})
	if taskClient != nil {
		auditCleaner = taskClient
	}
	var cleanupScheduler *scheduler.AuditCleanupScheduler
	if schedule := cfg.Tasks.AuditCleanupSchedule; schedule != "" {
		cleanupScheduler, err = scheduler.NewAuditCleanupScheduler(auditCleaner, schedule, tasks.AuditRetention(cfg.Tasks))
		if err != nil {
			log.Fatalf("Failed to initialize audit cleanup scheduler: %v", err)
		}
		if err := cleanupScheduler.Start(context.Background()); err != nil {
			log.Fatalf("Failed to start audit cleanup scheduler: %v", err)
		}
	}
	if err := auditCleaner.EnqueueAuditCleanup(context.Background(), tasks.AuditRetention(cfg.Tasks)); err != nil {
		log.Printf("WARNING: Failed to run startup audit cleanup: %v", err)
	}

	var cleaner uploads.Cleaner
	if taskClient != nil {
		cleaner = taskClient
	}
	pipeline := uploads.NewPipeline(store, cfg.Uploads.MaxFileSize, cleaner)

	// Authentication
	tokens, err := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to initialize token issuer: %v", err)
	}
	cookie := auth.NewSessionCookie(cfg.Auth, tokens.TTL())
	guard := auth.NewGuard(cookie, tokens, userStore)
	authService := auth.NewService(userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), tokens)
	authController := auth.NewAuthController(authService, cookie, guard, pipeline, auditService)

	if cfg.Geocoding.APIKey == "" {
		log.Printf("WARNING: LOCATIONIQ_API_KEY is not set. /get-location will answer with upstream errors.")
	}

	routerCfg := http_controllers.RouterConfig{
		AuthController:     authController,
		Guard:              guard,
		UploadPipeline:     pipeline,
		AuditService:       auditService,
		Geocoder:           geocoding.NewClient(cfg.Geocoding),
		Database:           db,
		Version:            version,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		EnableHSTS:         cfg.IsProduction(),
	}
	if localStore, ok := store.(*local.Client); ok {
		routerCfg.UploadsDir = localStore.Root()
		routerCfg.UploadsPublicPath = localStore.PublicPath()
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if cleanupScheduler != nil {
			cleanupScheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)

	// Flush pending audit writes before the database is closed
	auditService.Wait()
}

func newStorage(ctx context.Context, cfg config.Uploads) (storage.Client, error) {
	switch cfg.Backend {
	case config.UploadBackendS3:
		client, err := s3store.NewClient(ctx, s3store.Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("Uploads stored in S3 bucket %s", cfg.S3Bucket)
		return client, nil
	default:
		client, err := local.NewClient(cfg.LocalDir, cfg.PublicPath)
		if err != nil {
			return nil, err
		}
		log.Printf("Uploads stored in %s", client.Root())
		return client, nil
	}
}
