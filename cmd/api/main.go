package main

import (
	"context"
	"expvar"
	"fmt"
	"os"
	"runtime"

	"dogparks/internal/db"
	"dogparks/internal/domain/storage"
	"dogparks/internal/observability"
	"dogparks/internal/parks"
	"dogparks/internal/ratelimiter"
	"dogparks/internal/yelp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	core := zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stdout), zapcore.InfoLevel)

	return zap.New(core).Sugar(), nil
}

var version = "1.0.0"

func main() {
	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		logger.Fatal(err)
	}

	ctx := context.Background()

	// Database. A failed first connection aborts startup.
	pool, err := db.New(ctx, cfg.DB.pool())
	if err != nil {
		logger.Fatalw("database connection failed", "error", err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	store := storage.NewContainer(pool)
	if cfg.DB.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			logger.Fatal(err)
		}
		logger.Info("database schema is up to date")
	}

	metrics := observability.NewMetrics()

	yelpClient := yelp.NewClient(cfg.Yelp.APIKey, cfg.Yelp.BaseURL, cfg.Yelp.Timeout, metrics)

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.RateLimiter.RequestsPerTimeFrame,
		cfg.RateLimiter.TimeFrame,
	)
	defer rateLimiter.Stop()

	templates, err := newTemplateCache()
	if err != nil {
		logger.Fatal(err)
	}

	app := &application{
		config:      cfg,
		logger:      logger,
		store:       store,
		parks:       parks.NewService(store.Ratings, yelpClient, cfg.EnrichmentTimeout),
		templates:   templates,
		rateLimiter: rateLimiter,
		metrics:     metrics,
	}

	// Metrics collected at /debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		s := pool.Stat()
		return map[string]any{
			"total_conns":    s.TotalConns(),
			"idle_conns":     s.IdleConns(),
			"acquired_conns": s.AcquiredConns(),
		}
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Fatal(err)
	}
}
