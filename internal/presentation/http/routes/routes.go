package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tillpoint/pos-api/internal/config"
	"github.com/tillpoint/pos-api/internal/domain/enum"
	domainRepo "github.com/tillpoint/pos-api/internal/domain/repository"
	"github.com/tillpoint/pos-api/internal/presentation/http/handler"
	"github.com/tillpoint/pos-api/internal/presentation/http/middleware"
	"github.com/tillpoint/pos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Sale     *handler.SaleHandler
	Customer *handler.CustomerHandler
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

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		protected.GET("/auth/profile", h.Auth.Profile)

		adminOnly := middleware.RequireRole(enum.UserRoleAdmin)

		products := protected.Group("/products")
		{
			products.GET("", h.Product.List)
			products.POST("", adminOnly, h.Product.Create)
			products.GET("/low-stock", h.Product.LowStock)
			products.GET("/barcode/:barcode", h.Product.GetByBarcode)
			products.GET("/:id", h.Product.Get)
			products.PUT("/:id", adminOnly, h.Product.Update)
			products.DELETE("/:id", adminOnly, h.Product.Delete)
			products.POST("/:id/stock", adminOnly, h.Product.AdjustStock)
			products.GET("/:id/stock-logs", h.Product.StockHistory)
		}

		// Checkout is idempotent: a retried request with the same
		// Idempotency-Key replays the original response
		sales := protected.Group("/sales")
		sales.Use(middleware.Idempotency(deps.IdempotencyRepo))
		{
			sales.POST("", h.Sale.Create)
			sales.GET("", h.Sale.List)
			sales.GET("/:id", h.Sale.Get)
		}

		customers := protected.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PUT("/:id", h.Customer.Update)
			customers.DELETE("/:id", adminOnly, h.Customer.Delete)
			customers.GET("/:id/loyalty-transactions", h.Customer.LoyaltyTransactions)
		}
	}

	return router
}
