// README: Entry point; loads config, wires the generation pipeline and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	httptransport "wanderplan/internal/http"
	"wanderplan/internal/infra"
	"wanderplan/internal/logging"
	"wanderplan/internal/maps"
	"wanderplan/internal/metrics"
	"wanderplan/internal/modules/usage"
	"wanderplan/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, closeModel, err := newModel(ctx, cfg.AI)
	if err != nil {
		logger.Error("ai provider init", "error", err)
		os.Exit(1)
	}
	defer closeModel()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Error("db init", "error", err)
		os.Exit(1)
	}
	if dbPool != nil {
		defer dbPool.Close()
	}
	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		logger.Error("redis init", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var usageStore *usage.Store
	if dbPool != nil {
		usageStore = usage.NewStore(dbPool)
	}
	var usageCounter *usage.Counter
	if redisClient != nil {
		usageCounter = usage.NewCounter(redisClient)
	}
	usageSvc := usage.NewService(usageStore, usageCounter)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithUsage(usageSvc),
	}
	if cfg.Maps.APIKey != "" {
		geocoder, err := maps.NewGeocodeService(cfg.Maps.APIKey)
		if err != nil {
			logger.Error("maps init", "error", err)
			os.Exit(1)
		}
		opts = append(opts, service.WithGeocoder(geocoder))
	}
	planner := service.NewTripPlanner(model, opts...)

	handler := httptransport.NewServer(httptransport.ServerDeps{
		Planner:         planner,
		Usage:           usageSvc,
		Metrics:         m,
		Logger:          logger,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		GenerateTimeout: cfg.AI.GenerateTimeout,
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.HTTP.Addr, "provider", model.Provider(), "model", model.ModelName())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// newModel builds the configured provider and its cleanup.
func newModel(ctx context.Context, cfg config.AIConfig) (ai.Model, func(), error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		p, err := ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel)
		return p, func() {}, err
	default:
		p, err := ai.NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	}
}
