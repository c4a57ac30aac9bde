package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"blog-service/app/config"
	"blog-service/app/driver/cache"
	"blog-service/app/driver/postgres"
	"blog-service/app/driver/token"
	"blog-service/app/port"
	"blog-service/app/rest"
	"blog-service/app/usecase"
)

// Container holds all dependencies for the application
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB        *postgres.DB
	ListCache *cache.ListingCache

	// Usecases
	UserUsecase    port.UserUsecase
	ArticleUsecase port.ArticleUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error
	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.ListCache = cache.NewListingCache(cfg.ListCacheTTL)

	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	articleRepository := postgres.NewArticleRepository(container.DB.Pool(), logger)

	tokenService := token.NewJWTService(token.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: "blog-service",
		TTL:    cfg.TokenTTL,
	})

	container.UserUsecase = usecase.NewUserUseCase(userRepository, tokenService, logger)
	container.ArticleUsecase = usecase.NewArticleUseCase(articleRepository, container.ListCache, logger)

	logger.Info("container initialized")
	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	return rest.NewRouter(rest.RouterConfig{
		Logger:          c.Logger,
		UserUsecase:     c.UserUsecase,
		ArticleUsecase:  c.ArticleUsecase,
		DB:              c.DB,
		EnableRateLimit: c.Config.EnableRateLimit,
	})
}

// Close releases held resources.
func (c *Container) Close() {
	if c.ListCache != nil {
		c.ListCache.Stop()
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
