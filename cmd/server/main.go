// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"counsel/internal/advisor"
	advisorcache "counsel/internal/advisor/cache"
	advisorhandler "counsel/internal/advisor/handler"
	advisormetrics "counsel/internal/advisor/metrics"
	"counsel/internal/audit"
	"counsel/internal/history"
	"counsel/internal/platform/config"
	"counsel/internal/platform/httpserver"
	"counsel/internal/platform/kafka"
	"counsel/internal/platform/logger"
	"counsel/internal/platform/metrics"
	"counsel/internal/platform/redis"
	"counsel/internal/registry"
	httptransport "counsel/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := registry.New()
	if cfg.Engine.KnowledgeFile != "" {
		data, err := os.ReadFile(cfg.Engine.KnowledgeFile)
		if err != nil {
			log.Error("reading knowledge file", "path", cfg.Engine.KnowledgeFile, "error", err)
			os.Exit(1)
		}
		records, err := registry.ParseKnowledge(data)
		if err != nil {
			log.Error("parsing knowledge file", "path", cfg.Engine.KnowledgeFile, "error", err)
			os.Exit(1)
		}
		if err := reg.LoadKnowledge(records); err != nil {
			log.Error("loading knowledge records", "error", err)
			os.Exit(1)
		}
		log.Info("knowledge file loaded", "path", cfg.Engine.KnowledgeFile, "records", len(records))
	}

	hist, err := history.New(cfg.Engine.HistoryCapacity)
	if err != nil {
		log.Error("creating history store", "error", err)
		os.Exit(1)
	}

	advisorMetrics := advisormetrics.New()
	options := []advisor.Option{
		advisor.WithLogger(log),
		advisor.WithMetrics(advisorMetrics),
		advisor.WithDefaults(advisor.Options{
			MaxRecommendations:  cfg.Engine.MaxRecommendations,
			ConfidenceThreshold: cfg.Engine.ConfidenceThreshold,
		}),
	}

	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("connecting to redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		options = append(options, advisor.WithCache(
			advisorcache.New(redisClient, cfg.Redis.ResultTTL, log)))
		log.Info("result cache enabled", "ttl", cfg.Redis.ResultTTL)
	}

	auditStore, auditChecker, cleanup, err := buildAuditStore(ctx, cfg, log)
	if err != nil {
		log.Error("creating audit store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditInbox := make(chan audit.Event, cfg.Engine.AuditQueueSize)
	auditWorker := audit.NewWorker(auditStore, auditInbox, log)
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	options = append(options, advisor.WithAuditPublisher(audit.NewPublisher(auditInbox)))

	service, err := advisor.New(reg, hist, options...)
	if err != nil {
		log.Error("creating advisor service", "error", err)
		os.Exit(1)
	}

	checkers := map[string]httptransport.HealthChecker{}
	if redisClient != nil {
		checkers["redis"] = redisClient
	} else {
		checkers["redis"] = nil
	}
	checkers["kafka"] = auditChecker

	router := httptransport.NewRouter(
		metrics.New(),
		checkers,
		advisorhandler.New(service, log, advisorMetrics),
	)
	srv := httpserver.New(cfg.Server.Addr, router)

	go func() {
		log.Info("starting counsel", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildAuditStore prefers the broker when configured. The bounded in-memory
// store serves both as the broker-less default and as the circuit-breaker
// fallback during broker outages.
func buildAuditStore(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Store, httptransport.HealthChecker, func(), error) {
	memory, err := audit.NewMemoryStore(cfg.Engine.AuditCapacity)
	if err != nil {
		return nil, nil, func() {}, err
	}
	if len(cfg.Kafka.Brokers) == 0 {
		return memory, nil, func() {}, nil
	}

	producer, err := kafka.NewProducer(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
	if err != nil {
		return nil, nil, func() {}, err
	}
	log.Info("audit stream enabled", "topic", cfg.Kafka.Topic, "brokers", len(cfg.Kafka.Brokers))
	return audit.NewKafkaStore(producer, memory, log), producer, producer.Close, nil
}
