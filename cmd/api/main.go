package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/reception-api/internal/application/service"
	"github.com/dukahub/reception-api/internal/config"
	"github.com/dukahub/reception-api/internal/infrastructure/inventoryapi"
	"github.com/dukahub/reception-api/internal/infrastructure/repository"
	"github.com/dukahub/reception-api/internal/infrastructure/sessionstore"
	"github.com/dukahub/reception-api/internal/presentation/http/handler"
	"github.com/dukahub/reception-api/internal/presentation/http/routes"
	"github.com/dukahub/reception-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Remote inventory API client
	inventory := inventoryapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	// Form session store
	sessions := sessionstore.NewStore(sessionstore.Config{
		SessionTTL:      cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
	})
	defer sessions.Close()

	// Idempotency key store with a periodic sweep of expired keys
	idempotencyRepo := repository.NewMemoryIdempotencyRepository()
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				log.Printf("Warning: idempotency sweep failed: %v", err)
			}
		}
	}()

	// Initialize services
	formService := service.NewFormService(sessions, inventory)
	receptionService := service.NewReceptionService(inventory)

	// Initialize handlers
	handlers := &routes.Handlers{
		Form:      handler.NewFormHandler(formService),
		Reception: handler.NewReceptionHandler(receptionService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s, upstream: %s", cfg.App.Env, cfg.Upstream.BaseURL)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
