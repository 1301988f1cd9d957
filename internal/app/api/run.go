package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	billinghttp "github.com/Apurer/go-pos-api-server/internal/domains/billing/adapters/http"
	billingmemory "github.com/Apurer/go-pos-api-server/internal/domains/billing/adapters/memory"
	billingpostgres "github.com/Apurer/go-pos-api-server/internal/domains/billing/adapters/persistence/postgres"
	billingrenderer "github.com/Apurer/go-pos-api-server/internal/domains/billing/adapters/renderer"
	billingapp "github.com/Apurer/go-pos-api-server/internal/domains/billing/application"
	billingports "github.com/Apurer/go-pos-api-server/internal/domains/billing/ports"

	cataloghttp "github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/http"
	catalogmemory "github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-pos-api-server/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-pos-api-server/internal/domains/catalog/ports"

	inventoryhttp "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/http"
	inventorymemory "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/memory"
	inventoryobs "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/observability"
	inventorypostgres "github.com/Apurer/go-pos-api-server/internal/domains/inventory/adapters/persistence/postgres"
	inventoryapp "github.com/Apurer/go-pos-api-server/internal/domains/inventory/application"
	inventoryports "github.com/Apurer/go-pos-api-server/internal/domains/inventory/ports"

	orderscollab "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/collaborators"
	ordershttp "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/http"
	ordersmemory "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/memory"
	ordersobs "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/go-pos-api-server/internal/domains/orders/application"
	ordersports "github.com/Apurer/go-pos-api-server/internal/domains/orders/ports"

	reportingcollab "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/collaborators"
	reportinghttp "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/http"
	reportingmemory "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/memory"
	reportingpostgres "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/persistence/postgres"
	reportingapp "github.com/Apurer/go-pos-api-server/internal/domains/reporting/application"
	reportingports "github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"

	"github.com/Apurer/go-pos-api-server/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-pos-api-server/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-pos-api-server/internal/platform/postgres"
	"github.com/Apurer/go-pos-api-server/internal/platform/sequence"
)

// Run boots the POS HTTP API with observability, repositories, and all
// bounded contexts wired.
func Run(ctx context.Context) error {
	const serviceName = "pos-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	db, cleanupDB := buildDB(ctx, cfg, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	counter := buildSequenceCounter(cfg, db, logger)

	inventoryService := inventoryobs.New(
		inventoryapp.NewService(buildInventoryRepository(db)),
		inventoryobs.WithLogger(logger),
		inventoryobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		inventoryobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)
	catalogService := catalogapp.NewService(buildCatalogRepository(db), inventoryService)

	orderRepo, lineRepo := buildOrderRepositories(db)
	engine := ordersapp.NewService(
		orderRepo,
		lineRepo,
		orderscollab.NewProductLookup(catalogService),
		orderscollab.NewStockKeeper(inventoryService),
		orderscollab.NewSequenceCounter(counter),
	)
	orderService := ordersobs.New(
		engine,
		engine,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	renderer, err := billingrenderer.NewFileRenderer(cfg.InvoiceDir)
	if err != nil {
		return err
	}
	billingService := billingapp.NewService(
		buildInvoiceRepository(db),
		orderService,
		orderService,
		orderscollab.NewSequenceCounter(counter),
		renderer,
	)

	reportingService := reportingapp.NewService(
		buildReportingRepository(db),
		reportingcollab.NewOrderSource(orderService),
		reportingcollab.NewClientResolver(catalogService),
	)

	router := newRouter(serviceName, orderService, catalogService, inventoryService, billingService, reportingService)
	addr := ":" + cfg.Port
	logger.Info("POS API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("POS API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func newRouter(
	serviceName string,
	orders ordersports.Service,
	catalog catalogports.Service,
	inventory inventoryports.Service,
	billing billingports.Service,
	reporting reportingports.Service,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))

	api := router.Group("/api")
	ordershttp.NewHandler(orders).Register(api)
	cataloghttp.NewHandler(catalog).Register(api)
	inventoryhttp.NewHandler(inventory).Register(api)
	billinghttp.NewHandler(billing).Register(api)
	reportinghttp.NewHandler(reporting).Register(api)
	return router
}

func buildDB(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("repositories configured with postgres")
	return db, func() { _ = sqlDB.Close() }
}

func buildSequenceCounter(cfg Config, db *gorm.DB, logger *slog.Logger) sequence.Counter {
	if cfg.RedisAddr != "" {
		logger.Info("sequence counter configured with redis", slog.String("addr", cfg.RedisAddr))
		return sequence.NewRedisCounter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), "pos")
	}
	if db != nil {
		return sequence.NewPostgresCounter(db)
	}
	logger.Warn("sequence counter falling back to memory")
	return sequence.NewMemoryCounter()
}

func buildCatalogRepository(db *gorm.DB) catalogports.Repository {
	if db != nil {
		return catalogpostgres.NewRepository(db)
	}
	return catalogmemory.NewRepository()
}

func buildInventoryRepository(db *gorm.DB) inventoryports.Repository {
	if db != nil {
		return inventorypostgres.NewRepository(db)
	}
	return inventorymemory.NewRepository()
}

func buildOrderRepositories(db *gorm.DB) (ordersports.Repository, ordersports.LineRepository) {
	if db != nil {
		return orderspostgres.NewRepository(db), orderspostgres.NewLineRepository(db)
	}
	return ordersmemory.NewRepository(), ordersmemory.NewLineRepository()
}

func buildInvoiceRepository(db *gorm.DB) billingports.Repository {
	if db != nil {
		return billingpostgres.NewRepository(db)
	}
	return billingmemory.NewRepository()
}

func buildReportingRepository(db *gorm.DB) reportingports.Repository {
	if db != nil {
		return reportingpostgres.NewRepository(db)
	}
	return reportingmemory.NewRepository()
}
