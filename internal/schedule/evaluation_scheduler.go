package schedule

// 结算调度器：每天 00:00 扫描全部启用槽位，为当天的认证日
// 投放"窗口关闭 + 宽限"后到期的延迟结算消息

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudyCheck/config"
	"StudyCheck/internal/cache"
	"StudyCheck/internal/model"
	"StudyCheck/internal/queue"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

var (
	schedulerOnce sync.Once
	schedulerInst *EvaluationScheduler
)

type EvaluationScheduler struct {
	logger         *zap.Logger
	sweepJobMu     sync.Mutex
	sweepJobActive bool
	lastSweepJob   time.Time
}

func GetScheduler() *EvaluationScheduler {
	schedulerOnce.Do(func() {
		schedulerInst = &EvaluationScheduler{
			logger: logger.Logger,
		}
	})
	return schedulerInst
}

// slotKey 有规则的 (group, slot) 组合
type slotKey struct {
	GroupID int64 `gorm:"column:group_id"`
	Slot    int   `gorm:"column:slot"`
}

// ScheduleDailySweeps 逐槽位投放当天的结算消息，可重入（Redis 标记去重）
func (s *EvaluationScheduler) ScheduleDailySweeps(ctx context.Context) error {
	s.sweepJobMu.Lock()
	if s.sweepJobActive {
		s.sweepJobMu.Unlock()
		s.logger.Info("Sweep job already running, skipping")
		return nil
	}
	s.sweepJobActive = true
	s.sweepJobMu.Unlock()

	defer func() {
		s.sweepJobMu.Lock()
		s.sweepJobActive = false
		s.sweepJobMu.Unlock()
	}()

	startTime := time.Now()
	s.lastSweepJob = startTime

	s.logger.Info("Starting daily evaluation sweep scheduler",
		zap.Time("start_time", startTime),
	)

	db := database.DB().WithContext(ctx)

	var slots []slotKey
	if err := db.Model(&model.VerificationRule{}).
		Distinct("group_id", "slot").
		Scan(&slots).Error; err != nil {
		s.logger.Error("Failed to list rule slots", zap.Error(err))
		return fmt.Errorf("failed to list rule slots: %w", err)
	}

	if len(slots) == 0 {
		s.logger.Info("No verification rules configured")
		return nil
	}

	var failed int
	for _, slot := range slots {
		if err := s.scheduleSlot(ctx, slot.GroupID, slot.Slot, startTime); err != nil {
			failed++
			s.logger.Error("Failed to schedule slot sweep",
				zap.Int64("group_id", slot.GroupID),
				zap.Int("slot", slot.Slot),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Daily evaluation sweep scheduler completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("slot_count", len(slots)),
		zap.Int("error_count", failed),
	)

	if failed > 0 {
		return fmt.Errorf("scheduler completed with %d errors", failed)
	}
	return nil
}

// scheduleSlot 为单个槽位投放当天的延迟结算消息
func (s *EvaluationScheduler) scheduleSlot(ctx context.Context, groupID int64, slot int, now time.Time) error {
	// 用 UTC 今天探活跃规则，再换算规则时区的认证日
	rule, err := service.Rule().ActiveRule(ctx, groupID, slot, utils.DateOnly(now.UTC()))
	if err != nil {
		if err == errors.RuleNotFound {
			return nil
		}
		return err
	}

	date, err := service.LocalToday(rule, now)
	if err != nil {
		return fmt.Errorf("failed to resolve local date: %w", err)
	}

	if !service.IsScheduledDay(rule, date) {
		return nil
	}

	dateStr := utils.FormatDate(date)

	scheduled, err := cache.IsSweepScheduled(ctx, dateStr, groupID, slot)
	if err != nil {
		s.logger.Warn("Failed to check sweep scheduled status",
			zap.Int64("group_id", groupID),
			zap.Int("slot", slot),
			zap.Error(err),
		)
	} else if scheduled {
		return nil
	}

	window, err := service.ResolveWindow(rule, date)
	if err != nil {
		return fmt.Errorf("failed to resolve window: %w", err)
	}

	// 调度器晚启动时 delay 归零立即结算
	delay := time.Until(window.Deadline().Add(config.Cfg.EvaluationGrace()))
	if delay < 0 {
		delay = 0
	}

	msg := model.EvaluationSweepMessage{
		GroupID:          groupID,
		Slot:             slot,
		VerificationDate: dateStr,
		ScheduledAt:      now.Format(time.RFC3339),
		DelaySeconds:     int(delay.Seconds()),
	}

	if err := queue.PublishEvaluationSweep(msg); err != nil {
		return err
	}

	if err := cache.MarkSweepScheduled(ctx, dateStr, groupID, slot); err != nil {
		s.logger.Warn("Failed to mark sweep scheduled after publishing message",
			zap.Int64("group_id", groupID),
			zap.Int("slot", slot),
			zap.Error(err),
		)
		// 标记失败不影响主流程，消费端还有消息级幂等兜底
	}

	return nil
}

// RunDaily 阻塞运行，每天规则时区无关的 00:05 UTC 触发一次扫描，
// 启动时先补跑一次
func (s *EvaluationScheduler) RunDaily(ctx context.Context) {
	if err := s.ScheduleDailySweeps(ctx); err != nil {
		s.logger.Error("Initial sweep scheduling failed", zap.Error(err))
	}

	for {
		next := nextRunTime(time.Now().UTC())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Evaluation scheduler stopped")
			return
		case <-timer.C:
			if err := s.ScheduleDailySweeps(ctx); err != nil {
				s.logger.Error("Sweep scheduling failed", zap.Error(err))
			}
		}
	}
}

// nextRunTime 下一个 00:05 UTC
func nextRunTime(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 5, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
