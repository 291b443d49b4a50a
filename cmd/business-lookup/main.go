// cmd/business-lookup/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"business-lookup/internal/common/camunda"
	"business-lookup/internal/common/config"
	"business-lookup/internal/common/database"
	"business-lookup/internal/common/logger"
	"business-lookup/internal/common/observability"
	"business-lookup/internal/llm"
	"business-lookup/internal/providers/azuremaps"
	"business-lookup/internal/providers/places"
	"business-lookup/internal/providers/yelp"
	"business-lookup/internal/results"
	"business-lookup/internal/server"

	queryllm "business-lookup/internal/workers/ai-conversation/query-llm"
	checkbusiness "business-lookup/internal/workers/business/check-business"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// pingWithRetry reuses one client across attempts and retries only the ping.
func pingWithRetry(ctx context.Context, p pinger, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	return retryWithBackoff(func() error {
		return p.Ping(ctx)
	}, maxRetries, initialDelay, log, operationName)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting business lookup service...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()
	var checkers []server.Checker
	var closers []func() error

	// --- Result sinks ---
	var sinks []results.Sink
	if cfg.Results.Enabled {
		if cfg.Results.HasBackend(config.BackendFile) {
			fileSink := results.NewFileSink(cfg.Results.Dir, cfg.Results.File, log)
			if err := fileSink.Init(); err != nil {
				zapLog.Fatal("results dir init failed", zap.Error(err))
			}
			sinks = append(sinks, fileSink)
		}

		if cfg.Results.HasBackend(config.BackendRedis) {
			rdb, err := database.NewRedis(cfg.Database.Redis)
			if err != nil {
				zapLog.Fatal("redis client setup failed", zap.Error(err))
			}
			err = pingWithRetry(ctx, rdb, 10, 2*time.Second, zapLog, "Redis connection")
			if err != nil {
				zapLog.Fatal("redis failed after retries", zap.Error(err))
			}
			zapLog.Info("Redis connected successfully")
			checkers = append(checkers, rdb)
			closers = append(closers, rdb.Close)
			sinks = append(sinks, results.NewRedisSink(rdb.Client, cfg.Results.RedisKey))
		}

		if cfg.Results.HasBackend(config.BackendPostgres) {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				zapLog.Fatal("postgres client setup failed", zap.Error(err))
			}
			err = pingWithRetry(ctx, pg, 15, 2*time.Second, zapLog, "PostgreSQL connection")
			if err != nil {
				zapLog.Fatal("postgres failed after retries", zap.Error(err))
			}
			zapLog.Info("PostgreSQL connected successfully")

			pgSink := results.NewPostgresSink(pg.DB, cfg.Results.PostgresTable)
			if err := pgSink.EnsureSchema(ctx); err != nil {
				zapLog.Fatal("postgres schema setup failed", zap.Error(err))
			}
			checkers = append(checkers, pg)
			closers = append(closers, pg.Close)
			sinks = append(sinks, pgSink)
		}

		if cfg.Results.HasBackend(config.BackendElasticsearch) {
			esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				zapLog.Fatal("elasticsearch client setup failed", zap.Error(err))
			}
			err = pingWithRetry(ctx, esClient, 15, 2*time.Second, zapLog, "Elasticsearch connection")
			if err != nil {
				zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
			}
			zapLog.Info("Elasticsearch connected successfully")
			checkers = append(checkers, esClient)
			closers = append(closers, esClient.Close)
			sinks = append(sinks, results.NewElasticsearchSink(esClient.Client, cfg.Results.ElasticsearchIndex))
		}
	}
	resultLogger := results.NewLogger(log, sinks...)
	zapLog.Info("result logging configured",
		zap.Bool("enabled", resultLogger.Enabled()),
		zap.Strings("backends", cfg.Results.Backends),
	)

	snapshots := results.NewSnapshotWriter(cfg.Results.Dir)
	if err := snapshots.Init(); err != nil {
		zapLog.Fatal("results dir init failed", zap.Error(err))
	}

	// --- Services ---
	providerTimeout := config.GetDuration(cfg.Providers.Timeout)
	businessService := checkbusiness.NewService(checkbusiness.ServiceDependencies{
		Google:  places.NewClient(cfg.Providers.Google, providerTimeout),
		Yelp:    yelp.NewClient(cfg.Providers.Yelp, providerTimeout),
		POI:     azuremaps.NewClient(cfg.Providers.AzureMaps, providerTimeout),
		Results: resultLogger,
		Logger:  log,
	})

	llmTimeout := config.GetDuration(cfg.LLM.Timeout)
	llmService := queryllm.NewService(queryllm.ServiceDependencies{
		Cohere:    llm.NewCohereClient(cfg.LLM.Cohere, llmTimeout, log),
		Anthropic: llm.NewAnthropicClient(cfg.LLM.Anthropic, llmTimeout, log),
		Gemini:    llm.NewGeminiClient(cfg.LLM.Gemini, llmTimeout, log),
		OpenAI:    llm.NewOpenAIClient(cfg.LLM.OpenAI, llmTimeout, log),
		Snapshots: snapshots,
		Logger:    log,
	})

	// --- Zeebe workers (optional) ---
	var workers []*camunda.CamundaWorker
	if cfg.Camunda.Enabled() {
		var zeebe *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
				GatewayAddress:         cfg.Camunda.BrokerAddress,
				UsePlaintextConnection: true,
				ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
			})
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		zapLog.Info("Zeebe client connected successfully")
		checkers = append(checkers, zeebe)
		closers = append(closers, zeebe.Close)

		if wcfg := config.GetWorkerConfig(cfg, checkbusiness.TaskType); wcfg.Enabled {
			handler := checkbusiness.NewHandler(
				&checkbusiness.Config{Timeout: config.GetDuration(wcfg.Timeout)},
				businessService, log,
			)
			workers = append(workers, startWorker(zeebe, checkbusiness.TaskType, wcfg, handler, log))
		} else {
			zapLog.Info("worker disabled", zap.String("taskType", checkbusiness.TaskType))
		}

		if wcfg := config.GetWorkerConfig(cfg, queryllm.TaskType); wcfg.Enabled {
			qcfg := queryllm.DefaultConfig()
			qcfg.Timeout = config.GetDuration(wcfg.Timeout)
			handler := queryllm.NewHandler(qcfg, llmService, log)
			workers = append(workers, startWorker(zeebe, queryllm.TaskType, wcfg, handler, log))
		} else {
			zapLog.Info("worker disabled", zap.String("taskType", queryllm.TaskType))
		}
	}

	// --- HTTP ---
	router := server.NewRouter(server.Dependencies{
		CheckBusiness: checkbusiness.NewHTTPHandler(businessService, log),
		LLM:           queryllm.NewHTTPHandler(llmService, log),
		Checkers:      checkers,
		Observability: obs,
		Logger:        log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	for _, w := range workers {
		w.Stop()
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			zapLog.Warn("close failed", zap.Error(err))
		}
	}

	zapLog.Info("Shutdown complete")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log logger.Logger) *camunda.CamundaWorker {
	return camunda.NewWorker(client.GetClient(), taskType, camunda.WorkerOptions{
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       config.GetDuration(wcfg.Timeout),
	}, handler, log)
}
