package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

type ChecklistService struct{}

var (
	checklistService *ChecklistService
	checklistOnce    sync.Once
)

func Checklist() *ChecklistService {
	checklistOnce.Do(func() {
		checklistService = &ChecklistService{}
	})

	return checklistService
}

// createItemGate 建条目准入：显式指定非今天的日期按回填拒绝
// （CHECKLIST_NOT_TODAY），今天但过了 endTime 按窗口关闭拒绝（OUT_OF_WINDOW）
func createItemGate(rule *model.VerificationRule, requestedDate *time.Time, today, now time.Time) error {
	if requestedDate != nil && !requestedDate.Equal(today) {
		return errors.ChecklistNotToday
	}

	within, err := IsWithinSubmissionWindow(rule, today, now)
	if err != nil {
		return errors.InvalidTimezone
	}
	if !within {
		return errors.OutOfWindow
	}
	return nil
}

// CreateItem 新增当天的清单条目。只允许创建"今天"（规则时区）的条目，
// 且必须在提交窗口（endTime 前）内；requestedDate 为 nil 时默认今天
func (s *ChecklistService) CreateItem(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	content string,
	sortOrder int,
	requestedDate *time.Time,
	now time.Time,
) (*model.ChecklistItem, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	rule, err := Rule().ActiveRule(ctx, groupID, slot, utils.DateOnly(now.UTC()))
	if err != nil {
		return nil, err
	}
	if rule.MethodCode != model.MethodChecklist {
		return nil, errors.MethodMismatch
	}

	today, err := LocalToday(rule, now)
	if err != nil {
		return nil, errors.InvalidTimezone
	}

	if err := createItemGate(rule, requestedDate, today, now); err != nil {
		return nil, err
	}

	item := &model.ChecklistItem{
		GroupID:          groupID,
		Slot:             slot,
		MemberID:         memberID,
		VerificationDate: today,
		SortOrder:        sortOrder,
		Content:          content,
	}

	db := database.DB().WithContext(ctx)
	if err := db.Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to create checklist item: %w", err)
	}

	logger.Logger.Info("Checklist item created",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.Int64("member_id", memberID),
		zap.String("date", utils.FormatDate(today)),
	)

	return item, nil
}

// ListItems 某天的清单条目，按 sort_order 排序
func (s *ChecklistService) ListItems(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
) ([]*model.ChecklistItem, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	var items []*model.ChecklistItem
	if err := db.Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ?",
		groupID, slot, memberID, date).
		Order("sort_order ASC, id ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list checklist items: %w", err)
	}
	return items, nil
}

// CheckItem 勾选/取消勾选，幂等。勾选窗口延伸到 checkEndTime，
// 结算同样认到 checkEndTime 前完成的勾选
func (s *ChecklistService) CheckItem(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	itemID int64,
	checked bool,
	now time.Time,
) (*model.ChecklistItem, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	var item model.ChecklistItem
	err := db.Where("id = ? AND group_id = ? AND slot = ? AND member_id = ?",
		itemID, groupID, slot, memberID).
		First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ChecklistItemNotFound
		}
		return nil, fmt.Errorf("failed to query checklist item: %w", err)
	}

	rule, err := Rule().ActiveRule(ctx, groupID, slot, item.VerificationDate)
	if err != nil {
		return nil, err
	}

	within, err := IsWithinCheckWindow(rule, item.VerificationDate, now)
	if err != nil {
		return nil, errors.InvalidTimezone
	}
	if !within {
		return nil, errors.OutOfWindow
	}

	// 幂等：状态未变化时不动 checked_at
	if item.Checked == checked {
		return &item, nil
	}

	updates := map[string]interface{}{"checked": checked}
	if checked {
		checkedAt := now.UTC()
		updates["checked_at"] = &checkedAt
		item.CheckedAt = &checkedAt
	} else {
		updates["checked_at"] = nil
		item.CheckedAt = nil
	}
	item.Checked = checked

	if err := db.Model(&model.ChecklistItem{}).
		Where("id = ?", item.ID).
		Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update checklist item: %w", err)
	}

	return &item, nil
}

// CountCheckedInWindow 统计结算口径下有效的勾选数：
// 条目在 createdBy（endTime）前创建，勾选在 checkedBy（checkEndTime，
// 缺省 endTime）前完成
func (s *ChecklistService) CountCheckedInWindow(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
	createdBy time.Time,
	checkedBy time.Time,
) (int64, error) {
	db := database.DB().WithContext(ctx)

	var count int64
	err := db.Model(&model.ChecklistItem{}).
		Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ?",
			groupID, slot, memberID, date).
		Where("created_at <= ?", createdBy).
		Where("checked = ? AND checked_at IS NOT NULL AND checked_at <= ?", true, checkedBy).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count checked items: %w", err)
	}
	return count, nil
}
