package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/hirehub/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.EnableHSTS {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// Browsers need an explicit origin echo to send the session cookie cross-origin
	if len(cfg.CORSAllowedOrigins) > 0 {
		router.Use(auth.CORSMiddleware(cfg.CORSAllowedOrigins))
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Account endpoints
	if cfg.AuthController != nil {
		var signupChain []gin.HandlerFunc
		if cfg.UploadPipeline != nil {
			signupChain = append(signupChain, cfg.UploadPipeline.Middleware())
		}
		cfg.AuthController.RegisterRoutes(router, signupChain...)
	}

	if cfg.AuditService != nil && cfg.Guard != nil {
		activity := NewActivityController(cfg.AuditService)
		router.GET("/user/me/activity", cfg.Guard.Handler(), activity.GetActivity)
	}

	// Reverse geocoding
	if cfg.Geocoder != nil {
		location := NewLocationController(cfg.Geocoder)
		router.GET("/get-location", location.GetLocation)
	}

	// Uploaded files of the local backend
	if cfg.UploadsDir != "" && cfg.UploadsPublicPath != "" {
		router.Static(cfg.UploadsPublicPath, cfg.UploadsDir)
	}

	return router
}
