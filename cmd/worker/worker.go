package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"StudyCheck/config"
	"StudyCheck/internal/queue"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/metrics"
	"StudyCheck/pkg/snowflake"
	"StudyCheck/storage"
)

func main() {

	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Logger.Info("Received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}

	// 消费前先保证交换机和队列存在
	if err := queue.DeclareTopology(); err != nil {
		logger.Logger.Fatal("Failed to declare MQ topology", zap.Error(err))
	}

	logger.Logger.Info("Worker service starting",
		zap.String("service", "studycheck-worker"),
		zap.String("environment", config.Cfg.Environment),
	)

	// 启动所有的消费者部分
	queue.StartAllConsumers(ctx)

	logger.Logger.Info("Worker service shutting down gracefully")
}
