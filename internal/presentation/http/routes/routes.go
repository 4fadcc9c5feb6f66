package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dukahub/reception-api/internal/config"
	domainRepo "github.com/dukahub/reception-api/internal/domain/repository"
	"github.com/dukahub/reception-api/internal/presentation/http/handler"
	"github.com/dukahub/reception-api/internal/presentation/http/middleware"
	"github.com/dukahub/reception-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Form      *handler.FormHandler
	Reception *handler.ReceptionHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: deps.Cfg.RateLimit.RequestsPerSecond,
			BurstSize:         deps.Cfg.RateLimit.BurstSize,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerShopRoutes(protected, h, deps)
	}

	return router
}

func registerShopRoutes(g *gin.RouterGroup, h *Handlers, deps *Deps) {
	shop := g.Group("/shops/:shop_id")
	{
		// Persisted receptions
		receptions := shop.Group("/receptions")
		{
			receptions.GET("", h.Reception.List)
			receptions.GET("/:reception_id", h.Reception.Get)
			receptions.DELETE("/:reception_id", h.Reception.Delete)
		}

		// Reception form sessions
		forms := shop.Group("/reception-forms")
		{
			forms.POST("", h.Form.Open)
			forms.GET("/:form_id", h.Form.Get)
			forms.DELETE("/:form_id", h.Form.Close)
			forms.PATCH("/:form_id", h.Form.UpdateHeader)

			forms.POST("/:form_id/lines", h.Form.AddLine)
			forms.PATCH("/:form_id/lines/:line_id", h.Form.UpdateLine)
			forms.DELETE("/:form_id/lines/:line_id", h.Form.RemoveLine)

			forms.GET("/:form_id/products", h.Form.ProductOptions)
			forms.GET("/:form_id/suppliers", h.Form.SupplierOptions)
			forms.POST("/:form_id/suppliers", h.Form.CreateSupplier)

			forms.POST("/:form_id/product-creations", h.Form.BeginProductCreate)
			forms.POST("/:form_id/product-creations/complete", h.Form.CompleteProductCreate)
			forms.DELETE("/:form_id/product-creations", h.Form.CancelProductCreate)

			// Submit hits the remote API, so it carries replay protection.
			forms.POST("/:form_id/submit", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
				Repo: deps.IdempotencyRepo,
			}), h.Form.Submit)
		}
	}
}
