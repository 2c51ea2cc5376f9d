package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	limitermem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/nabung-ai/tabungan_backend/cmd/docs"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/middleware"
	"github.com/nabung-ai/tabungan_backend/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		return err
	}
	rateLimiter := limiter.New(limitermem.NewStore(), rate)

	// Setup API v1 routes behind the rate limiter; deposits cost oracle calls.
	setupAPIV1Routes(r, services, rateLimiter)

	// Legacy single-endpoint routes still called by the shipped frontend.
	setupLegacyRoutes(r, services, rateLimiter)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer, rateLimiter *limiter.Limiter) {
	v1 := r.Group("/api/v1", middleware.RateLimit(rateLimiter))

	registerTransactionRoutes(v1, services.Transaction)
	registerLedgerRoutes(v1, services.Transaction)
}

// setupLegacyRoutes keeps the original /api/check contract alive: POST
// dispatches on the type field, GET fetches (and lazily creates) a ledger.
func setupLegacyRoutes(r *gin.Engine, services *portssvc.ServiceContainer, rateLimiter *limiter.Limiter) {
	transactionH := newTransactionHandler(services.Transaction)
	ledgerH := newLedgerHandler(services.Transaction)

	legacy := r.Group("/api", middleware.RateLimit(rateLimiter))
	legacy.POST("/check", transactionH.submitTransaction)
	legacy.GET("/check", ledgerH.getLedgerLegacy)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
