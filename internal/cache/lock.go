package cache

import (
	"context"
	"fmt"
	"time"

	"StudyCheck/storage/redis"
)

// 通过 SetNX 实现的分布式锁，同一 (group, slot, member, date) 的并发提交
// 在这里串行化，保证窗口关闭前 last-write-wins 语义明确

const (
	lockPrefix = "lock"
)

func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullkey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullkey, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return result, nil
}

func Unlock(ctx context.Context, key string) error {
	fullkey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullkey).Err()
}

// SubmissionLockKey 提交锁的键
func SubmissionLockKey(groupID int64, slot int, memberID int64, date string) string {
	return fmt.Sprintf("submit:%d:%d:%d:%s", groupID, slot, memberID, date)
}
