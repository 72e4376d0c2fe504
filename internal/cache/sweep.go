package cache

import (
	"context"
	"fmt"
	"time"

	"StudyCheck/storage/redis"
)

const (
	// 调度器投放标记，避免重复投放同一天同一槽位的结算消息
	sweepScheduledPrefix = "sweep:scheduled"
	// 消费者处理标记，吸收 MQ 的 at-least-once 重复投递
	messageProcessedPrefix = "message:processed"

	scheduledTTL = 48 * time.Hour
	processedTTL = 48 * time.Hour
)

func sweepKey(date string, groupID int64, slot int) string {
	return redis.Key(sweepScheduledPrefix, date, fmt.Sprintf("%d", groupID), fmt.Sprintf("%d", slot))
}

// IsSweepScheduled 检查某天某槽位的结算消息是否已投放
func IsSweepScheduled(ctx context.Context, date string, groupID int64, slot int) (bool, error) {
	result, err := redis.Client().Exists(ctx, sweepKey(date, groupID, slot)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check sweep scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkSweepScheduled 标记已投放
func MarkSweepScheduled(ctx context.Context, date string, groupID int64, slot int) error {
	return redis.Client().Set(ctx, sweepKey(date, groupID, slot), "1", scheduledTTL).Err()
}

// UnmarkSweepScheduled 清除标记（投放失败回滚用）
func UnmarkSweepScheduled(ctx context.Context, date string, groupID int64, slot int) error {
	return redis.Client().Del(ctx, sweepKey(date, groupID, slot)).Err()
}

// TryMarkMessageProcessing 尝试原子性地标记消息正在处理（SETNX）
// 返回 true 表示首次处理，false 表示重复消息或正在处理
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing 取消处理标记（处理失败时调用，允许重试）
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed 标记消息已处理（处理成功时调用，延长 TTL）
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}
