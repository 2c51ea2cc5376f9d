package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nabung-ai/tabungan_backend/internal/adapters/database/memory"
	"github.com/nabung-ai/tabungan_backend/internal/adapters/database/pgsql"
	eventskafka "github.com/nabung-ai/tabungan_backend/internal/adapters/events/kafka"
	eventsnoop "github.com/nabung-ai/tabungan_backend/internal/adapters/events/noop"
	"github.com/nabung-ai/tabungan_backend/internal/adapters/oracle/gemini"
	portsrepo "github.com/nabung-ai/tabungan_backend/internal/core/ports/repositories"
	portssvc "github.com/nabung-ai/tabungan_backend/internal/core/ports/services"
	"github.com/nabung-ai/tabungan_backend/internal/core/services"
	"github.com/nabung-ai/tabungan_backend/internal/handlers"
	"github.com/nabung-ai/tabungan_backend/internal/middleware"
	"github.com/nabung-ai/tabungan_backend/internal/platform/config"
	"github.com/nabung-ai/tabungan_backend/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Tabungan AI Backend API
// @version 1.0
// @description AI-validated savings ledger: deposits are credited only after a vision model confirms the submitted currency photo.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Ledger storage: PostgreSQL when configured, in-memory otherwise.
	var repos portsrepo.RepositoryProvider
	if cfg.DatabaseURL != "" {
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
			os.Exit(1)
		}

		repos.LedgerRepo = pgsql.NewLedgerRepository(dbPool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory ledger store")
		repos.LedgerRepo = memory.NewLedgerRepository()
	}

	// Vision oracle
	if cfg.GeminiAPIKey == "" {
		logger.Error("GEMINI_API_KEY not set, deposits cannot be validated")
		os.Exit(1)
	}
	oracle, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("Failed to create gemini client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer oracle.Close()

	// Transaction event publishing (optional)
	var publisher portssvc.TransactionEventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventskafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka transaction events enabled", slog.String("topic", cfg.KafkaTopic))
	} else {
		publisher = eventsnoop.NewPublisher()
	}

	serviceContainer := services.NewServiceContainer(cfg, repos, oracle, publisher)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection, compatible with the pgx pool used at runtime.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
