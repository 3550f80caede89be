package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskhub/taskhub-api/docs"
	"github.com/taskhub/taskhub-api/internal/api/handler"
	"github.com/taskhub/taskhub-api/internal/api/middleware"
	"github.com/taskhub/taskhub-api/internal/core/ports"
	"github.com/taskhub/taskhub-api/internal/infrastructure/http/handlers"
)

// Dependencies carries the collaborators the router wires together. They are
// constructed once in main and passed in explicitly; no package-level state.
type Dependencies struct {
	Auth   ports.AuthService
	Tokens ports.TokenService
	Tasks  ports.TaskService

	// DB and Redis back the readiness probe only. When either is nil the
	// probe route is not registered (used by tests).
	DB    *mongo.Database
	Redis *redis.Client

	// SecureCookies turns on the Secure flag of the session cookie.
	SecureCookies bool

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskhub"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Tokens, deps.SecureCookies)
	taskHandler := handler.NewTaskHandler(deps.Tasks)
	gate := middleware.Auth(deps.Tokens)

	// --- Auth routes (no gate: verify is informational, not enforcing) ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/verify", authHandler.Verify)

	// --- Task routes (identity required) ---
	tasks := e.Group("/api/tasks", gate)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if deps.DB != nil && deps.Redis != nil {
		readiness := handlers.NewHealthDependenciesHandler(deps.DB, deps.Redis)
		e.GET("/health/ready", readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
