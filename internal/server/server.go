// Package server assembles the Fiber application from its dependencies.
package server

import (
	"context"
	"time"

	"produtos/internal/handlers"
	"produtos/internal/middleware"
	"produtos/internal/repositories"
	"produtos/internal/services"
	"produtos/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Dependencies are the collaborators the app is built from.
type Dependencies struct {
	Logger      *zap.Logger
	ProdutoRepo repositories.ProdutoRepository
	UserRepo    repositories.UserRepository
	// Publisher is optional; nil disables produto events.
	Publisher services.Publisher
	// Ping reports database health; nil means there is no database.
	Ping         func(ctx context.Context) error
	JWTSecret    string
	AuthRequired bool
	// AccessLog enables Fiber's request logger.
	AccessLog bool
}

// App bundles the Fiber app with the services behind it.
type App struct {
	*fiber.App
	ProdutoService *services.ProdutoService
	AuthService    *services.AuthService
}

// NewApp wires services and handlers and registers every route.
func NewApp(deps Dependencies) *App {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	validator := validation.New()
	produtoService := services.NewProdutoService(deps.ProdutoRepo, deps.Publisher, log)
	authService := services.NewAuthService(deps.UserRepo, deps.JWTSecret, log)

	produtoHandler := handlers.NewProdutoHandler(produtoService, validator)
	authHandler := handlers.NewAuthHandler(authService, validator, log)

	app := fiber.New(fiber.Config{
		AppName:      "produtos",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}

	app.Get("/health", healthHandler(deps.Ping))

	requireAuth := middleware.AuthRequired(authService, log)

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, requireAuth)

	var guards []fiber.Handler
	if deps.AuthRequired {
		guards = append(guards, requireAuth)
	}
	produtoHandler.RegisterRoutes(api, guards...)

	return &App{
		App:            app,
		ProdutoService: produtoService,
		AuthService:    authService,
	}
}

func healthHandler(ping func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status, database, code := "healthy", "disabled", fiber.StatusOK
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				status, database, code = "unhealthy", "down", fiber.StatusServiceUnavailable
			} else {
				database = "up"
			}
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": database,
		})
	}
}
