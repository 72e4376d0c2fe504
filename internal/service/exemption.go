package service

import (
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StudyCheck/internal/model"
)

type ExemptionService struct{}

var (
	exemptionService *ExemptionService
	exemptionOnce    sync.Once
)

func Exemption() *ExemptionService {
	exemptionOnce.Do(func() {
		exemptionService = &ExemptionService{}
	})

	return exemptionService
}

// PeriodKey 按额度周期推导计数键。
// TOTAL 全部落在同一个键上，WEEK 用 ISO 周（跨年周归属 ISO 年），MONTH 用自然月
func PeriodKey(unit model.LimitUnit, date time.Time) string {
	switch unit {
	case model.LimitWeek:
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case model.LimitMonth:
		return date.Format("2006-01")
	default:
		return "total"
	}
}

// TryConsume 尝试消耗一次豁免额度，必须在外层事务内调用。
// 先保证计数行存在（冲突即忽略），再用条件 UPDATE 原子自增：
// 只有 consumed_cnt < limit 时才会有行被更新，返回 false 表示额度耗尽
func (s *ExemptionService) TryConsume(
	tx *gorm.DB,
	groupID int64,
	slot int,
	memberID int64,
	rule *model.VerificationRule,
	date time.Time,
) (bool, error) {
	if !rule.ExemptionEnabled || rule.ExemptionLimitCnt <= 0 {
		return false, nil
	}

	periodKey := PeriodKey(rule.ExemptionLimitUnit, date)

	usage := &model.ExemptionUsage{
		GroupID:     groupID,
		Slot:        slot,
		MemberID:    memberID,
		PeriodKey:   periodKey,
		ConsumedCnt: 0,
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(usage).Error; err != nil {
		return false, fmt.Errorf("failed to ensure exemption usage row: %w", err)
	}

	result := tx.Model(&model.ExemptionUsage{}).
		Where("group_id = ? AND slot = ? AND member_id = ? AND period_key = ? AND consumed_cnt < ?",
			groupID, slot, memberID, periodKey, rule.ExemptionLimitCnt).
		Update("consumed_cnt", gorm.Expr("consumed_cnt + 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to consume exemption quota: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// Remaining 查询当前周期剩余额度，供客户端展示
func (s *ExemptionService) Remaining(
	db *gorm.DB,
	groupID int64,
	slot int,
	memberID int64,
	rule *model.VerificationRule,
	date time.Time,
) (int, error) {
	if !rule.ExemptionEnabled {
		return 0, nil
	}

	periodKey := PeriodKey(rule.ExemptionLimitUnit, date)

	var usage model.ExemptionUsage
	err := db.Where("group_id = ? AND slot = ? AND member_id = ? AND period_key = ?",
		groupID, slot, memberID, periodKey).
		First(&usage).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return rule.ExemptionLimitCnt, nil
		}
		return 0, fmt.Errorf("failed to query exemption usage: %w", err)
	}

	remaining := rule.ExemptionLimitCnt - usage.ConsumedCnt
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}
