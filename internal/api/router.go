package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/authy/user-management-api/docs"
	"github.com/authy/user-management-api/internal/api/handler"
	"github.com/authy/user-management-api/internal/api/middleware"
	"github.com/authy/user-management-api/internal/auth"
	"github.com/authy/user-management-api/internal/core/domain"
	"github.com/authy/user-management-api/internal/core/service"
	"github.com/authy/user-management-api/internal/infrastructure/config"
	mongodb "github.com/authy/user-management-api/internal/infrastructure/db/mongo"
	redisdb "github.com/authy/user-management-api/internal/infrastructure/db/redis"
	"github.com/authy/user-management-api/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The allowed-role set of every operation is declared here, next to its
// route, and nowhere else.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("authy"))

	// --- Dependencies ---
	codec := auth.NewCodec([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userRepo := mongodb.NewUserRepository(db)
	userService := service.NewUserService(userRepo, log)
	authService := service.NewAuthService(userService, userRepo, codec, log)
	limiter := redisdb.NewLoginLimiter(rdb)

	authHandler := handler.NewAuthHandler(authService, limiter, log)
	userHandler := handler.NewUserHandler(userService)
	authenticated := middleware.Auth(codec, log)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/users", authenticated)
	users.POST("", userHandler.Create, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin))
	users.GET("/:id", userHandler.Get, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.PATCH("/:id", userHandler.Update, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
