package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"StudyCheck/internal/cache"
	"StudyCheck/internal/model"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/storage/mq"
	"StudyCheck/utils"
)

// StartEvaluationSweepConsumer 启动结算扫描消费者。
// 延迟消息到期即表示该组该槽位的窗口（含宽限）已关闭
func StartEvaluationSweepConsumer(ctx context.Context) error {
	handler := func(body []byte) error {
		var msg model.EvaluationSweepMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal evaluation sweep message: %w", err)
		}

		// 【幂等性检查】使用 SETNX 原子性地检查并标记消息正在处理
		processed, err := cache.TryMarkMessageProcessing(ctx, msg.MessageID, 24*time.Hour)
		if err != nil {
			logger.Logger.Warn("Failed to check message processed status",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
			// 检查失败时继续处理，结算本身有唯一索引兜底幂等
		} else if !processed {
			logger.Logger.Info("Message already processed or being processed, skipping",
				zap.String("message_id", msg.MessageID),
				zap.Int64("group_id", msg.GroupID),
			)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("Message %s already processed", msg.MessageID)}
		}

		logger.Logger.Info("Processing evaluation sweep",
			zap.String("message_id", msg.MessageID),
			zap.Int64("group_id", msg.GroupID),
			zap.Int("slot", msg.Slot),
			zap.String("date", msg.VerificationDate),
		)

		date, err := utils.ParseDate(msg.VerificationDate)
		if err != nil {
			// 日期损坏的消息重试也无意义，直接丢弃
			cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour)
			return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed verification date %q", msg.VerificationDate)}
		}

		if err := service.Evaluation().EvaluateGroup(ctx, msg.GroupID, msg.Slot, date, time.Now()); err != nil {
			// 处理失败，取消标记，允许重试
			cache.UnmarkMessageProcessing(ctx, msg.MessageID)
			return fmt.Errorf("failed to process evaluation sweep: %w", err)
		}

		// 【幂等性标记】处理完成后标记消息已处理（延长 TTL）
		if err := cache.MarkMessageProcessed(ctx, msg.MessageID, 48*time.Hour); err != nil {
			logger.Logger.Warn("Failed to mark message as processed",
				zap.String("message_id", msg.MessageID),
				zap.Error(err),
			)
		}

		return nil
	}

	return mq.Consume(mq.ConsumeOptions{
		Queue:         sweepQueue,
		ConsumerTag:   "evaluation_sweep_consumer",
		PrefetchCount: 10,
		Handler:       handler,
	})
}

// handleGithubVerifyResult 处理外部轮询器的核验回执。
// 回写是幂等的 UPDATE，不需要消息级去重
func handleGithubVerifyResult(ctx context.Context, body []byte) error {
	var msg model.GithubVerifyResultMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed github verify result: %v", err)}
	}

	if !msg.Verified {
		// 轮询器没查到活动，claim 保持原样等结算
		logger.Logger.Info("Github activity not confirmed by verifier",
			zap.String("message_id", msg.MessageID),
			zap.Int64("group_id", msg.GroupID),
			zap.Int64("member_id", msg.MemberID),
			zap.String("detail", msg.Detail),
		)
		return nil
	}

	if msg.GroupID <= 0 || msg.MemberID <= 0 {
		return &errors.SkipMessageError{Reason: "github verify result missing group or member"}
	}

	date, err := utils.ParseDate(msg.VerificationDate)
	if err != nil {
		return &errors.SkipMessageError{Reason: fmt.Sprintf("malformed verification date %q", msg.VerificationDate)}
	}

	if err := service.Submission().MarkGithubVerified(ctx, msg.GroupID, msg.Slot, msg.MemberID, date); err != nil {
		return fmt.Errorf("failed to apply github verify result: %w", err)
	}

	logger.Logger.Info("Github submission marked verified",
		zap.String("message_id", msg.MessageID),
		zap.Int64("group_id", msg.GroupID),
		zap.Int("slot", msg.Slot),
		zap.Int64("member_id", msg.MemberID),
		zap.String("date", msg.VerificationDate),
	)

	return nil
}

// StartGithubVerifyResultConsumer 启动核验回执消费者
func StartGithubVerifyResultConsumer(ctx context.Context) error {
	return mq.Consume(mq.ConsumeOptions{
		Queue:         githubVerifyResultQueue,
		ConsumerTag:   "github_verify_result_consumer",
		PrefetchCount: 10,
		Handler: func(body []byte) error {
			return handleGithubVerifyResult(ctx, body)
		},
	})
}

// StartAllConsumers 启动所有消费者（worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"evaluation_sweep", StartEvaluationSweepConsumer},
		{"github_verify_result", StartGithubVerifyResultConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()

	logger.Logger.Info("All consumers stopped")
}
