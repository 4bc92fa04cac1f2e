package router

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/proffreport/profreport-backend/internal/config"
	"github.com/proffreport/profreport-backend/internal/handler"
	"github.com/proffreport/profreport-backend/internal/middleware"
	"github.com/proffreport/profreport-backend/internal/response"
	"github.com/proffreport/profreport-backend/internal/service"
	"github.com/rs/zerolog"
)

const catalogMaxAge = 300 // seconds

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Health  *handler.HealthHandler
	Catalog *handler.CatalogHandler
	Contact *handler.ContactHandler
	Wizard  *handler.WizardHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// Rate limiter janitors stop when ctx is cancelled.
func SetupRouter(
	ctx context.Context,
	tokens *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Request ID first so the request log and every envelope carry it.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Brotli())

	router.GET("/health", handlers.Health.Health)

	// Form endpoints: 5 requests per minute per IP.
	contactLimiter := middleware.NewRateLimiter(ctx, 5, time.Minute)
	paymentLimiter := middleware.NewRateLimiter(ctx, 5, time.Minute)

	api := router.Group("/api/v1")

	// ─── 1. Public content ─────────────────────────────────────────────
	content := api.Group("")
	content.Use(middleware.CacheControl(catalogMaxAge))
	{
		content.GET("/tests", handlers.Catalog.ListTests)
		content.GET("/tests/:test_type", handlers.Catalog.GetTest)
		content.GET("/faq", handlers.Catalog.GetFAQ)
	}

	api.POST("/contact", contactLimiter.Middleware(), handlers.Contact.Submit)
	api.POST("/tests/:test_type/sessions", middleware.NoStore(), handlers.Wizard.CreateSession)

	// ─── 2. Wizard (session token) ─────────────────────────────────────
	wizard := api.Group("/wizard")
	wizard.Use(middleware.NoStore(), middleware.RequireWizardToken(tokens))
	{
		wizard.GET("", handlers.Wizard.GetState)
		wizard.POST("/start", handlers.Wizard.Start)
		wizard.PUT("/answer", handlers.Wizard.Answer)
		wizard.POST("/next", handlers.Wizard.Next)
		wizard.POST("/back", handlers.Wizard.Back)
		wizard.POST("/exit", handlers.Wizard.Exit)
		wizard.POST("/payment", paymentLimiter.Middleware(), handlers.Wizard.Payment)
	}

	return router
}
