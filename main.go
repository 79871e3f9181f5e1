package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"produtos/internal/config"
	"produtos/internal/database"
	"produtos/internal/events"
	"produtos/internal/repositories"
	"produtos/internal/server"
	"produtos/pkg/rabbitmq"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	application, err := newApplication(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
		if err := application.app.Listen(cfg.AppPort); err != nil {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	wait := gfshutdown.GracefulShutdown(context.Background(), cfg.ShutdownTimeout, application.shutdownOperations())
	exitCode := <-wait
	logger.Info("Server stopped", zap.Int("exit_code", exitCode))
	logger.Sync()
	os.Exit(exitCode)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// application owns the infrastructure behind the HTTP app so it can be
// closed on shutdown.
type application struct {
	app    *server.App
	db     *gorm.DB
	mq     *rabbitmq.Client
	logger *zap.Logger
}

// newApplication connects the configured store and broker and builds the app.
func newApplication(cfg *config.Config, logger *zap.Logger) (*application, error) {
	a := &application{logger: logger}

	deps := server.Dependencies{
		Logger:       logger,
		JWTSecret:    cfg.JWTSecret,
		AuthRequired: cfg.AuthRequired,
		AccessLog:    true,
	}

	if cfg.DBDriver == config.DriverMemory {
		deps.ProdutoRepo = repositories.NewInMemoryProdutoRepository()
		deps.UserRepo = repositories.NewInMemoryUserRepository()
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		deps.ProdutoRepo = repositories.NewGORMProdutoRepository(db)
		deps.UserRepo = repositories.NewGORMUserRepository(db)
		deps.Ping = func(ctx context.Context) error { return database.Ping(ctx, db) }
	}

	if cfg.RabbitMQURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL}, logger)
		if err != nil {
			a.close()
			return nil, err
		}
		a.mq = mq
		deps.Publisher = mq

		if err := mq.ConsumeProdutoEvents(events.AuditHandler(logger)); err != nil {
			logger.Warn("Produto event consumer not started", zap.Error(err))
		}
	} else {
		logger.Info("RABBITMQ_URL not set, produto events disabled")
	}

	a.app = server.NewApp(deps)
	return a, nil
}

// shutdownOperations stops the HTTP server before closing the broker and the
// database it depends on.
func (a *application) shutdownOperations() map[string]gfshutdown.Operation {
	return map[string]gfshutdown.Operation{
		"produtos-app": func(ctx context.Context) error {
			a.logger.Info("Shutting down server...")
			if err := a.app.ShutdownWithContext(ctx); err != nil {
				a.logger.Error("Error during Fiber shutdown", zap.Error(err))
			}
			return a.close()
		},
	}
}

func (a *application) close() error {
	var firstErr error
	if a.mq != nil {
		if err := a.mq.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ client", zap.Error(err))
			firstErr = err
		}
		a.mq = nil
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Error("Error closing database", zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
		a.db = nil
	}
	return firstErr
}
