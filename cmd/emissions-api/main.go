package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pcaf/vehicle-finance/emissions-backend/internal/config"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/factors"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/portfolio"
	"pcaf/vehicle-finance/emissions-backend/internal/emissions/quality"
	"pcaf/vehicle-finance/emissions-backend/internal/worker"
	"pcaf/vehicle-finance/emissions-backend/pkg/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Reference data: database-backed when configured, embedded defaults otherwise
	var store factors.ReferenceStore = factors.NewDefaultStore()
	var repo emissions.Repository

	if cfg.Database.Host != "" {
		db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}

		gormStore := factors.NewGormStore(db)
		if err := gormStore.Migrate(); err != nil {
			logger.Fatal("Failed to migrate reference tables", zap.Error(err))
		}
		if err := gormStore.Seed(context.Background()); err != nil {
			logger.Fatal("Failed to seed reference data", zap.Error(err))
		}
		store = gormStore

		gormRepo := emissions.NewGormRepository(db)
		if err := gormRepo.Migrate(); err != nil {
			logger.Fatal("Failed to migrate results table", zap.Error(err))
		}
		repo = gormRepo

		logger.Info("Connected to database", zap.String("host", cfg.Database.Host))
	} else {
		logger.Warn("No database configured, running with embedded reference data and no persistence")
	}

	// Calculation service
	opts := []emissions.ServiceOption{
		emissions.WithScoreTable(scoreTable(cfg.PCAF.ScoreTable)),
		emissions.WithBatchConcurrency(cfg.PCAF.BatchConcurrency),
		emissions.WithDaysPerMonth(cfg.PCAF.DaysPerMonth),
		emissions.WithFacilityHorizon(cfg.PCAF.FacilityHorizonYears),
	}
	if repo != nil {
		opts = append(opts, emissions.WithRepository(repo))
	}
	if cfg.Authoritative.URL != "" {
		client := emissions.NewHTTPAuthoritativeClient(cfg.Authoritative.URL, cfg.Authoritative.Timeout, logger)
		opts = append(opts, emissions.WithAuthoritativeClient(client))
		logger.Info("Authoritative calculation service enabled", zap.String("url", cfg.Authoritative.URL))
	}
	service := emissions.NewService(store, logger, opts...)

	// Portfolio aggregation and background refresh need persistence
	var portfolios *emissions.PortfolioService
	var refreshWorker *worker.RefreshWorker
	if repo != nil {
		aggregator := portfolio.NewAggregator()
		aggregator.CompliantThreshold = cfg.PCAF.CompliantThreshold
		aggregator.NeedsImprovementThreshold = cfg.PCAF.NeedsImprovementThreshold
		portfolios = emissions.NewPortfolioService(repo, aggregator, cfg.PCAF.SummaryCacheTTL, logger)
		defer portfolios.Close()

		var archive storage.ObjectStore
		if cfg.Export.S3Bucket != "" {
			s3Store, err := storage.NewS3Store(context.Background(), cfg.Export.S3Bucket, cfg.Export.S3Region)
			if err != nil {
				logger.Error("Failed to initialize S3 archive, snapshots disabled", zap.Error(err))
			} else {
				archive = s3Store
			}
		}

		refreshWorker = worker.NewRefreshWorker(portfolios, repo, archive, cfg.PCAF.RefreshSchedule, logger)
		if err := refreshWorker.Start(); err != nil {
			logger.Fatal("Failed to start refresh worker", zap.Error(err))
		}
	}

	handler := emissions.NewHandler(service, portfolios, store, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	api := router.Group("/api/v1")
	{
		handler.RegisterRoutes(api)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	srv := &http.Server{
		Addr:         cfg.Server.GetServerAddr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	if refreshWorker != nil {
		refreshWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// scoreTable converts the config mapping to the classifier's table; a nil or
// empty mapping falls back to the PCAF defaults.
func scoreTable(m map[string]int) quality.ScoreTable {
	if len(m) == 0 {
		return nil
	}
	table := make(quality.ScoreTable, len(m))
	for opt, score := range m {
		table[quality.Option(opt)] = score
	}
	return table
}
