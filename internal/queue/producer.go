package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/metrics"
	"StudyCheck/pkg/snowflake"
	"StudyCheck/storage/mq"
)

const (
	delayedExchange = "scheduler.delayed"
	verifyExchange  = "verify.topic"

	sweepRoutingKey        = "scheduler.evaluation.sweep"
	githubVerifyRoutingKey = "verify.github"
	githubVerifyResultKey  = "verify.github.result"
)

// PublishEvaluationSweep 发布结算扫描消息（延迟消息），
// 窗口关闭 + 宽限时间后由 worker 触发批量结算
func PublishEvaluationSweep(msg model.EvaluationSweepMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID(snowflake.GeneratorTypeMessage)
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("group_id", msg.GroupID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("eval_sweep_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second

	// RabbitMQ 延迟消息插件上限 24 小时，扫描器逐日投放不会超过
	if delay > 24*time.Hour {
		return fmt.Errorf("delay %v exceeds 24 hours limit", delay)
	}

	err := mq.PublishDelayedMessage(
		delayedExchange,
		sweepRoutingKey,
		delay,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish evaluation sweep message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("group_id", msg.GroupID),
			zap.Int("slot", msg.Slot),
			zap.String("date", msg.VerificationDate),
			zap.Error(err),
		)
		return err
	}

	metrics.RecordSweepPublished(context.Background())
	logger.Logger.Info("Published evaluation sweep message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("group_id", msg.GroupID),
		zap.Int("slot", msg.Slot),
		zap.String("date", msg.VerificationDate),
		zap.Duration("delay", delay),
	)

	return nil
}

// PublishGithubVerify 投递 GitHub 活动核验请求给外部轮询器，fire-and-forget
func PublishGithubVerify(msg model.GithubVerifyMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID(snowflake.GeneratorTypeMessage)
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("gh_verify_%d", id)
	}

	err := mq.PublishMessage(
		verifyExchange,
		githubVerifyRoutingKey,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish github verify message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("group_id", msg.GroupID),
			zap.Int64("member_id", msg.MemberID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published github verify message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("group_id", msg.GroupID),
		zap.Int64("member_id", msg.MemberID),
		zap.String("repo", msg.Repo),
	)

	return nil
}
