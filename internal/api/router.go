package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dealerdesk/identity-service/internal/api/handler"
	"github.com/dealerdesk/identity-service/internal/api/middleware"
	"github.com/dealerdesk/identity-service/internal/core/domain"
	"github.com/dealerdesk/identity-service/internal/core/ports"
)

// Dependencies carries the wired services the router exposes. The caller owns
// the lifecycle of everything here, the router only registers routes.
type Dependencies struct {
	Auth   ports.AuthService
	Users  ports.UserService
	Roles  ports.RoleService
	Audit  ports.AuditRepository
	Tokens ports.TokenIssuer

	Mongo  *mongo.Database
	Redis  *redis.Client
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users)
	roleHandler := handler.NewRoleHandler(deps.Roles)
	auditHandler := handler.NewAuditHandler(deps.Audit)

	authenticated := middleware.Auth(deps.Tokens)
	adminOnly := middleware.RBAC(domain.TypeAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/login/:type", authHandler.LoginWithType)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout, authenticated)

	// --- User routes (role assignment registered before :id) ---
	users := e.Group("/users", authenticated)
	users.PATCH("/role", userHandler.AssignRole, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.PATCH("/:id", userHandler.Update, adminOnly)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Role routes ---
	roles := e.Group("/roles", authenticated)
	roles.POST("", roleHandler.Create, adminOnly)
	roles.GET("", roleHandler.List)
	roles.GET("/:id", roleHandler.Get)
	roles.PATCH("/:id", roleHandler.Update, adminOnly)
	roles.DELETE("/:id", roleHandler.Delete, adminOnly)

	// --- Audit trail ---
	e.GET("/audit", auditHandler.List, authenticated, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational surfaces ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
