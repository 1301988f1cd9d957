// Command sales-aggregator recomputes the daily sales rollup on a cron
// schedule. It aggregates yesterday's invoiced orders by default so the
// figures settle after midnight.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron"
	"gorm.io/gorm"

	catalogpostgres "github.com/Apurer/go-pos-api-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-pos-api-server/internal/domains/catalog/application"
	orderspostgres "github.com/Apurer/go-pos-api-server/internal/domains/orders/adapters/persistence/postgres"
	reportingcollab "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/collaborators"
	reportingpostgres "github.com/Apurer/go-pos-api-server/internal/domains/reporting/adapters/persistence/postgres"
	reportingapp "github.com/Apurer/go-pos-api-server/internal/domains/reporting/application"
	reportingports "github.com/Apurer/go-pos-api-server/internal/domains/reporting/ports"
	platformpostgres "github.com/Apurer/go-pos-api-server/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot aggregate sales")
	}

	service := buildReportingService(db)

	runOnce := func() {
		runCtx, runCancel := context.WithTimeout(ctx, 2*time.Minute)
		defer runCancel()
		date := time.Now().UTC().Add(-24 * time.Hour)
		rows, err := service.AggregateForDate(runCtx, date)
		if err != nil {
			logger.Error("daily sales aggregation failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("daily sales aggregation completed",
			slog.String("date", date.Format("2006-01-02")), slog.Int("rows", len(rows)))
	}

	if os.Getenv("AGGREGATE_ONCE") == "1" {
		runOnce()
		return
	}

	schedule := strings.TrimSpace(os.Getenv("AGGREGATE_SCHEDULE"))
	if schedule == "" {
		schedule = "0 15 0 * * *"
	}
	c := cron.New()
	if err := c.AddFunc(schedule, runOnce); err != nil {
		log.Fatalf("invalid AGGREGATE_SCHEDULE %q: %v", schedule, err)
	}
	c.Start()
	defer c.Stop()
	logger.Info("sales aggregator scheduled", slog.String("schedule", schedule))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
}

func buildReportingService(db *gorm.DB) reportingports.Service {
	catalogService := catalogapp.NewService(catalogpostgres.NewRepository(db), nil)
	return reportingapp.NewService(
		reportingpostgres.NewRepository(db),
		reportingcollab.NewRepositoryOrderSource(
			orderspostgres.NewRepository(db),
			orderspostgres.NewLineRepository(db),
		),
		reportingcollab.NewClientResolver(catalogService),
	)
}
