package cache

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"StudyCheck/config"
	"StudyCheck/internal/model"
	"StudyCheck/storage/redis"
)

// 活跃规则缓存。规则读多写少，提交与结算路径都要先取规则，
// 新版本规则写入时整体失效该 (group, slot)

const (
	rulePrefix = "rule:active"
)

func ruleKey(groupID int64, slot int, date string) string {
	return redis.Key(rulePrefix, fmt.Sprintf("%d", groupID), fmt.Sprintf("%d", slot), date)
}

// GetActiveRule 读缓存，未命中返回 (nil, nil)
func GetActiveRule(ctx context.Context, groupID int64, slot int, date string) (*model.VerificationRule, error) {
	raw, err := redis.Client().Get(ctx, ruleKey(groupID, slot, date)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active rule cache: %w", err)
	}

	var rule model.VerificationRule
	if err := json.Unmarshal(raw, &rule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached rule: %w", err)
	}
	return &rule, nil
}

// SetActiveRule 写缓存
func SetActiveRule(ctx context.Context, groupID int64, slot int, date string, rule *model.VerificationRule) error {
	raw, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("failed to marshal rule: %w", err)
	}

	return redis.Client().Set(ctx, ruleKey(groupID, slot, date), raw, config.Cfg.RuleCacheTTL()).Err()
}

// InvalidateRules 新规则生效时清掉该槽位的全部日期缓存
func InvalidateRules(ctx context.Context, groupID int64, slot int) error {
	pattern := redis.Key(rulePrefix, fmt.Sprintf("%d", groupID), fmt.Sprintf("%d", slot), "*")

	iter := redis.Client().Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan rule cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}
	return redis.Client().Del(ctx, keys...).Err()
}
