// Package httpserver provides HTTP server and routing.
package httpserver

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-locator-service/internal/app/service"
	"store-locator-service/internal/transport/httpserver/handler"
	"store-locator-service/internal/transport/httpserver/middleware"
	"store-locator-service/internal/validator"
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port      int
	BodyLimit int
	Debug     bool
}

// Services bundles the application services the router wires up.
type Services struct {
	Users     *service.UserService
	Auth      *service.AuthService
	Stores    *service.StoreService
	Locations *service.LocationService
	Favorites *service.FavoriteService
}

// Server wraps Fiber app with handlers.
type Server struct {
	App    *fiber.App
	Logger *zap.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	cfg ServerConfig,
	svcs Services,
	db *gorm.DB,
	rdb *redis.Client,
	v *validator.Validator,
	logger *zap.Logger,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "store-locator-service",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: errorHandler(logger),
	})

	// Health check middleware MUST be registered BEFORE other middleware
	// for Kubernetes probes to work even during high load
	app.Use(middleware.NewHealthCheck(db, rdb))

	// Global middleware
	app.Use(requestid.New())
	app.Use(middleware.Recover(logger))
	app.Use(middleware.Logger(logger))
	app.Use(cors.New())
	app.Use(compress.New())

	// Create handlers
	authHandler := handler.NewAuthHandler(svcs.Users, svcs.Auth, v, logger)
	userHandler := handler.NewUserHandler(svcs.Users, v, logger)
	storeHandler := handler.NewStoreHandler(svcs.Stores, v, logger)
	locationHandler := handler.NewLocationHandler(svcs.Locations, v, logger)
	favoriteHandler := handler.NewFavoriteHandler(svcs.Favorites, v, logger)

	registerRoutes(app, svcs.Auth, authHandler, userHandler, storeHandler, locationHandler, favoriteHandler)

	return &Server{
		App:    app,
		Logger: logger,
	}
}

// registerRoutes sets up all API routes.
func registerRoutes(
	app *fiber.App,
	authSvc *service.AuthService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	storeHandler *handler.StoreHandler,
	locationHandler *handler.LocationHandler,
	favoriteHandler *handler.FavoriteHandler,
) {
	// Health checks are handled by middleware (/livez, /readyz)

	v1 := app.Group("/api/v1")

	// Auth (public)
	auth := v1.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/password-reset", authHandler.RequestPasswordReset)
	auth.Post("/password-reset/confirm", authHandler.ConfirmPasswordReset)

	requireAuth := middleware.RequireAuth(authSvc)

	// Stores (authenticated)
	stores := v1.Group("/stores", requireAuth)
	stores.Get("/", storeHandler.List)
	stores.Get("/search", storeHandler.Search)
	stores.Get("/nearby", storeHandler.SearchNearby)
	stores.Get("/:id", storeHandler.GetByID)

	// Current user (authenticated)
	me := v1.Group("/users/me", requireAuth)
	me.Get("/", userHandler.Me)
	me.Get("/location", locationHandler.Get)
	me.Put("/location", locationHandler.Update)
	me.Get("/favorites", favoriteHandler.List)
	me.Post("/favorites", favoriteHandler.Add)
	me.Delete("/favorites/:storeID", favoriteHandler.Remove)

	// Admin routes
	admin := v1.Group("/admin", requireAuth, middleware.RequireAdmin())
	admin.Get("/users", userHandler.List)
	admin.Delete("/users/:id", userHandler.Deactivate)
	admin.Post("/stores", storeHandler.Create)
	admin.Put("/stores/:id", storeHandler.Update)
	admin.Delete("/stores/:id", storeHandler.Deactivate)
}

// errorHandler returns a custom error handler that logs based on HTTP status code.
// 404s are logged at DEBUG level (expected client behavior), 4xx at WARN, 5xx at ERROR.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		// Log based on status code - 404s are common and not server errors
		switch {
		case code == fiber.StatusNotFound:
			logger.Debug("resource not found",
				zap.String("path", c.Path()),
				zap.String("method", c.Method()),
			)
		case code >= 500:
			logger.Error("server error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		case code >= 400:
			logger.Warn("client error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		default:
			logger.Error("unhandled error",
				zap.Error(err),
				zap.Int("status", code),
				zap.String("path", c.Path()),
			)
		}

		return c.Status(code).JSON(fiber.Map{
			"error": err.Error(),
			"code":  "UNHANDLED_ERROR",
		})
	}
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	s.Logger.Info("starting HTTP server", zap.Int("port", port))

	return s.App.Listen(fmt.Sprintf(":%d", port))
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	s.Logger.Info("shutting down HTTP server")

	return s.App.Shutdown()
}
