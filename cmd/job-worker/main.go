// Package main 后台分析执行器入口（job-worker）
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"foligo-api/internal/application/assistant"
	appcontent "foligo-api/internal/application/content"
	"foligo-api/internal/config"
	"foligo-api/internal/infrastructure/llm"
	"foligo-api/internal/infrastructure/messaging"
	"foligo-api/internal/infrastructure/persistence/postgres"
	"foligo-api/internal/infrastructure/persistence/redis"
	einoobs "foligo-api/internal/observability/eino"
	"foligo-api/internal/workflow/chain"
	"foligo-api/pkg/logger"
	"foligo-api/pkg/tracer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
	ctx := context.Background()

	shutdown, err := tracer.Init(ctx, tracer.Config{
		ServiceName: "job-worker",
		Endpoint:    cfg.Observability.Tracing.Endpoint,
		SampleRate:  cfg.Observability.Tracing.SampleRate,
		Enabled:     cfg.Observability.Tracing.Enabled,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init tracer", err)
	}
	defer func() { _ = shutdown(ctx) }()

	einoobs.Init()

	pgClient, err := postgres.NewClient(&cfg.Database.Postgres)
	if err != nil {
		logger.Fatal(ctx, "failed to init postgres", err)
	}
	defer func() { _ = pgClient.Close() }()

	redisClient, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Fatal(ctx, "failed to init redis", err)
	}
	defer func() { _ = redisClient.Close() }()

	contentRepo := postgres.NewContentRepository(pgClient)
	skillRepo := postgres.NewSkillRepository(pgClient)
	tagRepo := postgres.NewTagRepository(pgClient)

	factory := llm.NewEinoFactory(cfg)
	retrier := llm.NewRetrier(cfg)
	classifier := assistant.NewClassifier(chain.NewClassifyChain(factory, retrier))
	resolver := appcontent.NewEntityResolver(skillRepo, tagRepo)
	analyzer := appcontent.NewAnalyzer(contentRepo, resolver, classifier)

	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamContentAnalyze,
		Group:         messaging.ConsumerGroupAnalyzer,
		ConsumerName:  hostnameConsumerName(),
		BlockTimeout:  cfg.Messaging.RedisStream.BlockTimeout,
		ClaimInterval: cfg.Messaging.RedisStream.ClaimInterval,
		RetryLimit:    cfg.Messaging.RedisStream.RetryLimit,
		Backoff: messaging.BackoffConfig{
			Initial:    cfg.Messaging.RedisStream.RetryBackoff.Initial,
			Max:        cfg.Messaging.RedisStream.RetryBackoff.Max,
			Multiplier: cfg.Messaging.RedisStream.RetryBackoff.Multiplier,
		},
	})

	consumer.RegisterHandler(messaging.MessageTypeContentAnalyze, analyzer.HandleMessage)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := consumer.Start(runCtx); err != nil {
		logger.Fatal(ctx, "failed to start consumer", err)
	}
	logger.Info(ctx, "job-worker started",
		"stream", string(messaging.StreamContentAnalyze),
		"group", string(messaging.ConsumerGroupAnalyzer),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "shutting down job-worker...")
	cancel()
	consumer.Stop()
	logger.Info(ctx, "job-worker exited")
}

// hostnameConsumerName 生成稳定的消费者名（主机名 + pid）
func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "worker"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}
