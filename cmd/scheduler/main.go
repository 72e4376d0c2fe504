package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"StudyCheck/config"
	"StudyCheck/internal/queue"
	"StudyCheck/internal/schedule"
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

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	if err := metrics.InitMetrics(); err != nil {
		logger.Logger.Warn("Failed to initialize business metrics", zap.Error(err))
	}

	if err := queue.DeclareTopology(); err != nil {
		logger.Logger.Fatal("Failed to declare MQ topology", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "studycheck-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runDailySweepLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runDailySweepLoop 每日结算调度循环
// 在 development 环境下改为每 1 分钟执行一次，方便本地调试
func runDailySweepLoop(ctx context.Context) {
	s := schedule.GetScheduler()

	if config.Cfg.Environment == "development" {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		logger.Logger.Info("Daily sweep scheduler running in development mode with 1m interval")

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
				if err := s.ScheduleDailySweeps(runCtx); err != nil {
					logger.Logger.Error("Daily sweep scheduler run failed (development interval)", zap.Error(err))
				}
				cancel()
			}
		}
	}

	s.RunDaily(ctx)
}
