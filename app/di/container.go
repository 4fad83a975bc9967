package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"product-service/app/config"
	"product-service/app/driver/password"
	"product-service/app/driver/postgres"
	"product-service/app/driver/token"
	"product-service/app/port"
	"product-service/app/rest"
	"product-service/app/rest/handlers"
	custommw "product-service/app/rest/middleware"
	"product-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Version string

	// Drivers
	DB     *postgres.DB
	Hasher port.PasswordHasher
	Tokens port.TokenCodec

	// Repositories
	UserRepository    port.UserRepository
	ProductRepository port.ProductRepository

	// Usecases
	Identity       port.IdentityResolver
	AuthUsecase    port.AuthUsecase
	ProfileUsecase port.ProfileUsecase
	ProductUsecase port.ProductUsecase

	rateLimiter *custommw.RateLimiter
	stop        context.CancelFunc
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, version string) (*Container, error) {
	db, err := postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container, err := newContainer(cfg, db, db.Pool(), logger, version)
	if err != nil {
		db.Close()
		return nil, err
	}
	return container, nil
}

func newContainer(cfg *config.Config, db *postgres.DB, pool postgres.DatabaseIface, logger *slog.Logger, version string) (*Container, error) {
	container := &Container{
		Config:  cfg,
		Logger:  logger,
		Version: version,
		DB:      db,
	}

	codec, err := token.NewJWTCodec(token.JWTConfig{
		Secret:    cfg.SecretKeyJWT,
		AccessTTL: cfg.AccessTokenExpire,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token codec: %w", err)
	}
	container.Tokens = codec
	container.Hasher = password.NewBcryptHasher(bcrypt.DefaultCost)

	// Repositories
	container.UserRepository = postgres.NewUserRepository(pool, logger)
	container.ProductRepository = postgres.NewProductRepository(pool, logger)

	// Usecases
	identity := usecase.NewIdentityUseCase(container.UserRepository, container.Tokens, logger)
	container.Identity = identity
	container.AuthUsecase = usecase.NewAuthUseCase(container.UserRepository, identity, container.Hasher, container.Tokens, logger)
	container.ProfileUsecase = usecase.NewProfileUseCase(container.UserRepository, identity, container.Hasher, container.Tokens, logger)
	container.ProductUsecase = usecase.NewProductUseCase(container.ProductRepository, logger)

	ctx, stop := context.WithCancel(context.Background())
	container.rateLimiter = custommw.NewRateLimiter(ctx)
	container.stop = stop

	logger.Info("Container initialized",
		"access_token_ttl", cfg.AccessTokenExpire.String(),
		"metrics_enabled", cfg.EnableMetrics)

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	var metrics *custommw.Metrics
	if c.Config.EnableMetrics {
		metrics = custommw.NewMetrics()
	}

	var database handlers.HealthChecker
	if c.DB != nil {
		database = c.DB
	}

	return rest.NewRouter(rest.RouterConfig{
		Logger:         c.Logger,
		AuthUsecase:    c.AuthUsecase,
		ProfileUsecase: c.ProfileUsecase,
		ProductUsecase: c.ProductUsecase,
		Identity:       c.Identity,
		Database:       database,
		CORS:           custommw.CORSConfigFrom(c.Config),
		RateLimiter:    c.rateLimiter,
		Metrics:        metrics,
		Version:        c.Version,
		EnableDebug:    c.Config.LogLevel == "debug",
	})
}

// Close closes all resources
func (c *Container) Close() error {
	if c.stop != nil {
		c.stop()
	}
	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("Container closed successfully")
	return nil
}
