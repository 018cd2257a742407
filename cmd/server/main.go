package main

import (
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/greenops/lawncare-api/internal/config"
	"github.com/greenops/lawncare-api/internal/database"
	"github.com/greenops/lawncare-api/internal/handlers"
	"github.com/greenops/lawncare-api/internal/middleware"
	"github.com/greenops/lawncare-api/internal/rbac"
	"github.com/greenops/lawncare-api/internal/repository"
	"github.com/greenops/lawncare-api/internal/services"
)

func main() {
	cfg := config.Load()
	log := newLogger(cfg.LogLevel)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	identityRepo := repository.NewIdentityRepository(db)
	syncSvc := services.NewSyncService(identityRepo, log)
	identitySvc := services.NewIdentityService(identityRepo, syncSvc)

	customerHandler := handlers.NewCustomerHandler(repository.NewCustomerRepository(db))
	refs := repository.NewReferenceChecker(db)
	quoteHandler := handlers.NewQuoteHandler(repository.NewQuoteRepository(db), refs)
	invoiceHandler := handlers.NewInvoiceHandler(repository.NewInvoiceRepository(db), refs)
	visitHandler := handlers.NewVisitHandler(repository.NewVisitRepository(db))

	webhookHandler, err := handlers.NewWebhookHandler(syncSvc, cfg.WebhookSigningSecret, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize webhook handler")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/webhooks/clerk", webhookHandler.HandleClerkEvent)

	authed := api.Group("", middleware.RequireIdentity(cfg.SessionJWTSecret))

	customers := authed.Group("/customers")
	customers.GET("", middleware.RequirePermission(identitySvc, rbac.PermCustomersRead), customerHandler.List)
	customers.POST("", middleware.RequirePermission(identitySvc, rbac.PermCustomersWrite), customerHandler.Create)
	customers.GET("/:id", middleware.RequirePermission(identitySvc, rbac.PermCustomersRead), customerHandler.Get)
	customers.PATCH("/:id", middleware.RequirePermission(identitySvc, rbac.PermCustomersWrite), customerHandler.Update)
	customers.DELETE("/:id", middleware.RequirePermission(identitySvc, rbac.PermCustomersWrite), customerHandler.Delete)

	quotes := authed.Group("/quotes")
	quotes.GET("", middleware.RequirePermission(identitySvc, rbac.PermQuotesRead), quoteHandler.List)
	quotes.POST("", middleware.RequirePermission(identitySvc, rbac.PermQuotesWrite), quoteHandler.Create)
	quotes.GET("/:id", middleware.RequirePermission(identitySvc, rbac.PermQuotesRead), quoteHandler.Get)

	invoices := authed.Group("/invoices")
	invoices.GET("", middleware.RequirePermission(identitySvc, rbac.PermInvoicesRead), invoiceHandler.List)
	invoices.POST("", middleware.RequirePermission(identitySvc, rbac.PermInvoicesWrite), invoiceHandler.Create)
	invoices.GET("/:id", middleware.RequirePermission(identitySvc, rbac.PermInvoicesRead), invoiceHandler.Get)

	visits := authed.Group("/visits")
	visits.GET("", middleware.RequirePermission(identitySvc, rbac.PermScheduleRead), visitHandler.List)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("starting server")
	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
