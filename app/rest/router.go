package rest

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blog-service/app/port"
	"blog-service/app/rest/handlers"
	custommw "blog-service/app/rest/middleware"
	apperrors "blog-service/app/utils/errors"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger          *slog.Logger
	UserUsecase     port.UserUsecase
	ArticleUsecase  port.ArticleUsecase
	DB              handlers.Pinger
	EnableRateLimit bool
}

// NewRouter creates and configures the Echo router
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = newErrorHandler(config.Logger)

	userHandler := handlers.NewUserHandler(config.UserUsecase, config.Logger)
	articleHandler := handlers.NewArticleHandler(config.ArticleUsecase, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.DB, config.Logger)

	authMiddleware := custommw.NewAuthMiddleware(config.UserUsecase, config.Logger)

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))
	e.Use(custommw.DefaultCORS())
	e.Use(custommw.SecurityHeaders())

	if config.EnableRateLimit {
		rateLimiter := custommw.NewRateLimiter()
		e.Use(rateLimiter.RateLimit())
	}

	// Every request may carry a token; failures leave it anonymous
	e.Use(authMiddleware.OptionalAuth())

	// Health endpoints
	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/health/ready", healthHandler.ReadinessCheck)

	// User endpoints
	user := e.Group("/user")
	user.POST("/sign-up", userHandler.SignUp)
	user.POST("/sign-in", userHandler.SignIn)
	user.GET("/profile", userHandler.GetProfile, authMiddleware.RequireAuth())
	user.PATCH("/profile", userHandler.UpdateProfile, authMiddleware.RequireAuth())

	// Article endpoints
	article := e.Group("/article")
	article.GET("", articleHandler.List)
	article.GET("/:slug", articleHandler.GetBySlug)
	article.POST("", articleHandler.Create, authMiddleware.RequireAuth())
	article.PATCH("/:id", articleHandler.Update, authMiddleware.RequireAuth())
	article.DELETE("/:id", articleHandler.Delete, authMiddleware.RequireAuth())
	article.POST("/:slug/comment", articleHandler.CreateComment, authMiddleware.RequireAuth())

	return e
}

// newErrorHandler maps application errors onto the {error: message} wire
// shape. Internal errors are logged with their cause but answered with a
// generic message.
func newErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "internal server error"
		details := ""

		if appErr, ok := apperrors.AsAppError(err); ok {
			status = appErr.StatusCode
			message = appErr.Message
			details = appErr.Details
			if status >= http.StatusInternalServerError {
				logger.Error("request failed", "error", err, "path", c.Path())
				message = "internal server error"
				details = ""
			}
		} else if httpErr, ok := err.(*echo.HTTPError); ok {
			status = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				message = msg
			}
		} else {
			logger.Error("unhandled error", "error", err, "path", c.Path())
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, handlers.ErrorResponse{Error: message, Details: details})
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}
