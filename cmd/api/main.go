package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vaultapi/docs"
	"vaultapi/internal/config"
	"vaultapi/internal/database"
	"vaultapi/internal/database/migration"
	handlers "vaultapi/internal/http/handler"
	"vaultapi/internal/http/middleware"
	appotel "vaultapi/internal/otel"
	"vaultapi/internal/repository/postgres"
	"vaultapi/internal/service"
	"vaultapi/internal/storage"
)

// @title Personal Vault API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Initialize tracing (noop when OTEL_SDK_DISABLED=true)
	shutdownTracing, err := appotel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(shutdownCtx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Ensure the vault schema exists before accepting requests
	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize blob storage: local flat directory by default, MinIO when configured
	blobStore, err := newBlobStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	// Initialize services with their repositories
	authSvc, err := service.NewAuthService(cfg.AuthPassword)
	if err != nil {
		log.Fatalf("failed to initialize auth: %v", err)
	}
	fileSvc := service.NewFileService(blobStore, postgres.NewFilePostgres(db))
	noteSvc := service.NewNoteService(postgres.NewNotePostgres(db))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Browser client is served from a different origin
	app.Use(cors.New())
	// Trace every request
	app.Use(otelfiber.Middleware())

	// Prometheus request metrics and the /metrics endpoint
	promReg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(promReg)
	if err != nil {
		log.Fatalf("failed to initialize metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, authSvc, fileSvc, noteSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newBlobStorage selects the blob storage backend from configuration.
func newBlobStorage(cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Backend {
	case "minio":
		return storage.NewMinIO(cfg.MinIO)
	default:
		return storage.NewLocal(cfg.UploadDir)
	}
}
