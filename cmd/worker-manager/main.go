// cmd/worker-manager/main.go
package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	api "publication-rewards/internal/api/http"
	"publication-rewards/internal/common/cache"
	"publication-rewards/internal/common/camunda"
	"publication-rewards/internal/common/config"
	"publication-rewards/internal/common/errors"
	"publication-rewards/internal/common/logger"
	"publication-rewards/internal/common/observability"
	"publication-rewards/internal/journals"
	"publication-rewards/pkg/registry"

	sj "publication-rewards/internal/workers/journals/search-journals"
	brc "publication-rewards/internal/workers/reward/build-reward-curve"
	cr "publication-rewards/internal/workers/reward/calculate-reward"
)

func main() {
	zapLog, err := logger.New("info", "json")
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	if zapLog, err = logger.New(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		panic(err)
	}
	zapLog = zapLog.With(zap.String("service", cfg.App.Name))
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting worker manager",
		zap.String("environment", cfg.App.Environment),
		zap.Bool("camundaEnabled", cfg.Camunda.Enabled),
		zap.Bool("cacheEnabled", cfg.Redis.Enabled()),
	)

	obs, err := observability.New(cfg.App.Name, cfg.App.Environment, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	// --- Catalog & registry ---
	catalog, err := journals.LoadCatalog()
	if err != nil {
		stdErr := errors.NewCatalogInvalidError(err)
		zapLog.Fatal("journal catalog invalid", zap.String("errorCode", string(stdErr.Code)), zap.Error(err))
	}
	zapLog.Info("journal catalog loaded",
		zap.Int("journals", catalog.Len()),
		zap.String("version", catalog.Version()),
	)

	reg, err := registry.LoadRegistry(cfg.RegistryPath)
	if err != nil {
		zapLog.Fatal("activity registry load failed", zap.String("path", cfg.RegistryPath), zap.Error(err))
	}
	if err := reg.Validate(); err != nil {
		zapLog.Fatal("activity registry invalid", zap.Error(err))
	}

	readiness := map[string]api.ReadinessCheck{}

	// --- Search cache (optional) ---
	var searchCache sj.ResultCache
	if cfg.Redis.Enabled() {
		client := cache.NewClient(cfg.Redis)
		defer client.Close()

		c := cache.New(client, cfg.Redis.Prefix, time.Duration(cfg.Redis.CacheTTL)*time.Second)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := c.Ping(pingCtx)
		cancel()
		if err != nil {
			stdErr := errors.NewCacheUnavailableError("ping", err)
			zapLog.Warn("redis unreachable, search cache disabled",
				zap.String("address", cfg.Redis.Address),
				zap.String("errorCode", string(stdErr.Code)),
				zap.Error(err),
			)
		} else {
			searchCache = c
			readiness["cache"] = c.Ping
			zapLog.Info("redis connected", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", c.TTL()))
		}
	}

	// --- Handlers ---
	activity := func(taskType string) *registry.Activity {
		a, ok := reg.Find(taskType)
		if !ok {
			zapLog.Fatal("activity missing from registry", zap.String("taskType", taskType))
		}
		return a
	}

	calcActivity := activity(cr.TaskType)
	calcHandler, err := cr.NewHandler(
		cr.NewConfig(cfg.Reward, calcActivity.WorkerConfig(cfg)),
		calcActivity, log,
	)
	if err != nil {
		zapLog.Fatal("handler init failed", zap.String("taskType", cr.TaskType), zap.Error(err))
	}

	curveActivity := activity(brc.TaskType)
	curveHandler, err := brc.NewHandler(
		brc.NewConfig(cfg.Reward, curveActivity.WorkerConfig(cfg)),
		curveActivity, log,
	)
	if err != nil {
		zapLog.Fatal("handler init failed", zap.String("taskType", brc.TaskType), zap.Error(err))
	}

	searchActivity := activity(sj.TaskType)
	searchHandler, err := sj.NewHandler(
		sj.NewConfig(searchActivity.WorkerConfig(cfg)),
		catalog, searchCache, searchActivity, log,
	)
	if err != nil {
		zapLog.Fatal("handler init failed", zap.String("taskType", sj.TaskType), zap.Error(err))
	}

	// --- Zeebe workers (optional) ---
	var workers []*camunda.CamundaWorker
	var zeebe *camunda.Client
	if cfg.Camunda.Enabled {
		connectCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		zeebe, err = camunda.Connect(connectCtx, camunda.ClientConfigFrom(cfg.Camunda), log)
		cancel()
		if err != nil {
			zapLog.Fatal("zeebe connection failed", zap.Error(err))
		}
		readiness["zeebe"] = zeebe.HealthCheck

		handlers := map[*registry.Activity]camunda.JobHandler{
			calcActivity:   calcHandler,
			curveActivity:  curveHandler,
			searchActivity: searchHandler,
		}
		for a, handler := range handlers {
			if !config.IsWorkerEnabled(cfg, a.TaskType) {
				zapLog.Info("worker disabled", zap.String("taskType", a.TaskType))
				continue
			}
			workers = append(workers, camunda.NewWorker(
				zeebe.GetClient(), a.TaskType, a.WorkerConfig(cfg), handler, log, obs,
			))
		}
		zapLog.Info("workers registered", zap.Int("count", len(workers)))
	}

	// --- HTTP API, health & metrics ---
	server := &http.Server{
		Addr: cfg.HTTP.Address,
		Handler: api.NewRouter(api.Config{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RequestTimeout: config.GetDuration(cfg.HTTP.RequestTimeout),
			Calculator:     calcHandler,
			Curves:         curveHandler,
			Journals:       searchHandler,
			SearchInput:    searchActivity,
			Readiness:      readiness,
			Logger:         log,
			Observability:  obs,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("http server listening", zap.String("address", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("shutdown signal received, stopping")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLog.Error("http server shutdown failed", zap.Error(err))
	}
	for _, w := range workers {
		w.Stop()
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("error closing zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("worker manager stopped")
}
