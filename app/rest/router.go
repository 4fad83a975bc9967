package rest

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"product-service/app/port"
	"product-service/app/rest/handlers"
	custommw "product-service/app/rest/middleware"
	"product-service/app/utils/validator"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger            *slog.Logger
	AuthUsecase       port.AuthUsecase
	ProfileUsecase    port.ProfileUsecase
	ProductUsecase    port.ProductUsecase
	Identity          port.IdentityResolver
	Database          handlers.HealthChecker
	CORS              custommw.CORSConfig
	RateLimiter       *custommw.RateLimiter
	Metrics           *custommw.Metrics
	Version           string
	EnableDebug       bool
	LoginRateLimit    custommw.RateLimitPolicy
	RegisterRateLimit custommw.RateLimitPolicy
}

// NewRouter creates and configures the Echo router. A nil Metrics disables
// instrumentation and the /metrics endpoint; a nil RateLimiter gets a
// limiter bound to the background context.
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = config.EnableDebug
	e.Validator = validator.New()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(config.Logger)

	authHandler := handlers.NewAuthHandler(config.AuthUsecase, config.Logger)
	profileHandler := handlers.NewProfileHandler(config.ProfileUsecase, config.Logger)
	productHandler := handlers.NewProductHandler(config.ProductUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.Database, config.Version, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.Identity, config.Logger)

	rateLimiter := config.RateLimiter
	if rateLimiter == nil {
		rateLimiter = custommw.NewRateLimiter(context.Background())
	}

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(custommw.RequestID())
	e.Use(custommw.RequestLogger(config.Logger))
	if config.Metrics != nil {
		e.Use(config.Metrics.Middleware())
	}
	e.Use(custommw.NewCORSMiddleware(config.CORS))
	e.Use(custommw.SecurityHeaders())

	// Operational endpoints
	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/health/ready", healthHandler.ReadinessCheck)
	e.GET("/health/live", healthHandler.LivenessCheck)
	if config.Metrics != nil {
		e.GET("/metrics", config.Metrics.Handler())
	}

	// Authentication endpoints
	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login, rateLimiter.Limit(policyOr(config.LoginRateLimit, custommw.LoginRateLimit)))
	auth.POST("/register", authHandler.Register, rateLimiter.Limit(policyOr(config.RegisterRateLimit, custommw.RegisterRateLimit)))

	// Profile endpoints
	profile := e.Group("/profile", authMiddleware.RequireAuth())
	profile.GET("/me", profileHandler.GetProfile)
	profile.PUT("/me", profileHandler.UpdateProfile)

	// Product endpoints
	products := e.Group("/products", authMiddleware.RequireAuth())
	products.GET("", productHandler.ListProducts)
	products.POST("", productHandler.CreateProduct)
	products.POST("/filter", productHandler.SearchProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)

	return e
}

func policyOr(policy, fallback custommw.RateLimitPolicy) custommw.RateLimitPolicy {
	if policy.Burst == 0 {
		return fallback
	}
	return policy
}
