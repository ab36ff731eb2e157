package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/bank_simulator/cmd/docs"
	portssvc "github.com/SscSPs/bank_simulator/internal/core/ports/services"
	"github.com/SscSPs/bank_simulator/internal/middleware"
	"github.com/SscSPs/bank_simulator/internal/platform/config"
	"github.com/SscSPs/bank_simulator/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Limiters groups the rate limiters applied to the API. A nil limiter disables that limit.
type Limiters struct {
	// API is a per-IP limit over the whole /api/v1 group.
	API *limiter.Limiter
	// Payments is a per-user limit on the payment routes.
	Payments *limiter.Limiter
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiters Limiters,
	posthogClient *utils.PosthogClientWrapper,
) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendBaseURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, limiters, posthogClient)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	limiters Limiters,
	posthogClient *utils.PosthogClientWrapper,
) {
	var chain []gin.HandlerFunc
	if limiters.API != nil {
		chain = append(chain, middleware.IPRateLimit(limiters.API))
	}
	chain = append(chain, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer), middleware.PosthogMiddleware(posthogClient))
	v1 := r.Group("/api/v1", chain...)

	var paymentMiddleware []gin.HandlerFunc
	if limiters.Payments != nil {
		paymentMiddleware = append(paymentMiddleware, middleware.RateLimit(limiters.Payments))
	}

	RegisterAccountRoutes(v1, services.Account, services.Payment)
	RegisterPaymentRoutes(v1, services.Payment, posthogClient, paymentMiddleware...)
	RegisterBillRoutes(v1, services.Bill)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
