package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"StudyCheck/internal/cache"
	"StudyCheck/internal/model"
	"StudyCheck/internal/model/dto"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

type RuleService struct{}

var (
	ruleService *RuleService
	ruleOnce    sync.Once
)

func Rule() *RuleService {
	ruleOnce.Do(func() {
		ruleService = &RuleService{}
	})

	return ruleService
}

// CreateRule 追加一条新版本规则。历史规则不可改写，
// 修改通过更晚 effective_from 的新版本覆盖未来日期实现
func (s *RuleService) CreateRule(
	ctx context.Context,
	groupID int64,
	slot int,
	operatorID int64,
	req *dto.CreateRuleRequest,
) (*model.VerificationRule, error) {
	if slot != 1 && slot != 2 {
		return nil, errors.InvalidSlot
	}

	if err := Group().RequireOwner(ctx, groupID, operatorID); err != nil {
		return nil, err
	}

	group, err := Group().GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	rule, err := s.buildRule(groupID, slot, group.Timezone, req)
	if err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)
	if err := db.Create(rule).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification rule: %w", err)
	}

	// 新版本生效后旧缓存全部作废
	if err := cache.InvalidateRules(ctx, groupID, slot); err != nil {
		logger.Logger.Warn("Failed to invalidate rule cache",
			zap.Int64("group_id", groupID),
			zap.Int("slot", slot),
			zap.Error(err),
		)
	}

	logger.Logger.Info("Verification rule created",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.String("method", string(rule.MethodCode)),
		zap.String("effective_from", utils.FormatDate(rule.EffectiveFrom)),
	)

	return rule, nil
}

// buildRule 校验并组装规则实体，任何不一致都归为 InvalidRule 族错误
func (s *RuleService) buildRule(
	groupID int64,
	slot int,
	groupTimezone string,
	req *dto.CreateRuleRequest,
) (*model.VerificationRule, error) {
	method, ok := model.ParseMethodCode(req.MethodCode)
	if !ok {
		return nil, errors.InvalidRule
	}

	if !utils.ValidateClock(req.EndTime) {
		return nil, errors.InvalidRule
	}
	if req.CheckEndTime != nil && *req.CheckEndTime != "" && !utils.ValidateClock(*req.CheckEndTime) {
		return nil, errors.InvalidRule
	}

	daysCSV := strings.ToUpper(strings.Join(req.DaysOfWeek, ","))
	if _, ok := model.ParseDaysOfWeek(daysCSV); !ok {
		return nil, errors.InvalidRule
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = groupTimezone
	}
	if !utils.ValidateTimezone(timezone) {
		return nil, errors.InvalidTimezone
	}

	frequencyUnit := model.FrequencyUnit(strings.ToUpper(req.FrequencyUnit))
	if frequencyUnit == "" {
		frequencyUnit = model.FrequencyDay
	}
	if frequencyUnit != model.FrequencyDay && frequencyUnit != model.FrequencyWeek {
		return nil, errors.InvalidRule
	}

	// 省略（零值）默认 1，显式负数是规则错误
	if req.RequiredCnt < 0 {
		return nil, errors.InvalidRule
	}
	requiredCnt := req.RequiredCnt
	if requiredCnt == 0 {
		requiredCnt = 1
	}

	rule := &model.VerificationRule{
		GroupID:       groupID,
		Slot:          slot,
		MethodCode:    method,
		EndTime:       req.EndTime,
		CheckEndTime:  req.CheckEndTime,
		DaysOfWeek:    daysCSV,
		Timezone:      timezone,
		FrequencyUnit: frequencyUnit,
		RequiredCnt:   requiredCnt,
	}

	switch method {
	case model.MethodPhoto:
		minFiles, maxFiles := req.MinFiles, req.MaxFiles
		if minFiles <= 0 {
			minFiles = 1
		}
		if maxFiles <= 0 {
			maxFiles = minFiles
		}
		if maxFiles < minFiles {
			return nil, errors.InvalidRule
		}
		rule.MinFiles = minFiles
		rule.MaxFiles = maxFiles
		rule.PhotoSource = req.PhotoSource

	case model.MethodGps:
		radiusMode := model.RadiusMode(strings.ToUpper(req.RadiusMode))
		if radiusMode == "" {
			radiusMode = model.RadiusCommon
		}
		if radiusMode != model.RadiusCommon && radiusMode != model.RadiusPerLocation {
			return nil, errors.InvalidRule
		}
		if req.RadiusM <= 0 {
			return nil, errors.InvalidRule
		}
		rule.RadiusMode = radiusMode
		rule.RadiusM = req.RadiusM

	case model.MethodGithub:
		if req.GithubRepo == "" {
			return nil, errors.InvalidRule
		}
		rule.GithubRepo = req.GithubRepo
		rule.GithubBranch = req.GithubBranch
	}

	if req.ExemptionEnabled {
		limitUnit := model.LimitUnit(strings.ToUpper(req.ExemptionLimitUnit))
		switch limitUnit {
		case model.LimitTotal, model.LimitWeek, model.LimitMonth:
		default:
			return nil, errors.InvalidRule
		}
		// 额度 0 合法（启用但当前周期没有可用豁免），负数是规则错误
		if req.ExemptionLimitCnt < 0 {
			return nil, errors.InvalidRule
		}
		rule.ExemptionEnabled = true
		rule.ExemptionLimitUnit = limitUnit
		rule.ExemptionLimitCnt = req.ExemptionLimitCnt
	}

	if req.EffectiveFrom != "" {
		effectiveFrom, err := utils.ParseDate(req.EffectiveFrom)
		if err != nil {
			return nil, errors.InvalidRule
		}
		rule.EffectiveFrom = effectiveFrom
	} else {
		rule.EffectiveFrom = utils.DateOnly(time.Now().UTC())
	}

	return rule, nil
}

// ActiveRule 取某日的活跃规则：effective_from <= date 的最新一条。
// 先查缓存，未命中回源数据库并回填
func (s *RuleService) ActiveRule(ctx context.Context, groupID int64, slot int, date time.Time) (*model.VerificationRule, error) {
	dateStr := utils.FormatDate(date)

	cached, err := cache.GetActiveRule(ctx, groupID, slot, dateStr)
	if err != nil {
		logger.Logger.Warn("Failed to read rule cache", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	db := database.DB().WithContext(ctx)

	var rule model.VerificationRule
	err = db.Where("group_id = ? AND slot = ? AND effective_from <= ?", groupID, slot, date).
		Order("effective_from DESC, id DESC").
		First(&rule).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.RuleNotFound
		}
		return nil, fmt.Errorf("failed to query active rule: %w", err)
	}

	if err := cache.SetActiveRule(ctx, groupID, slot, dateStr, &rule); err != nil {
		logger.Logger.Warn("Failed to write rule cache", zap.Error(err))
	}

	return &rule, nil
}

// ListRules 列出某槽位的全部规则版本，新版本在前
func (s *RuleService) ListRules(ctx context.Context, groupID int64, slot int, memberID int64) ([]*model.VerificationRule, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	var rules []*model.VerificationRule
	if err := db.Where("group_id = ? AND slot = ?", groupID, slot).
		Order("effective_from DESC, id DESC").
		Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("failed to list verification rules: %w", err)
	}
	return rules, nil
}

// AddLocation owner 配置 GPS 集合点
func (s *RuleService) AddLocation(
	ctx context.Context,
	groupID int64,
	slot int,
	operatorID int64,
	req *dto.CreateLocationRequest,
) (*model.GpsLocation, error) {
	if err := Group().RequireOwner(ctx, groupID, operatorID); err != nil {
		return nil, err
	}

	location := &model.GpsLocation{
		GroupID:   groupID,
		Slot:      slot,
		Name:      req.Name,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	db := database.DB().WithContext(ctx)
	if err := db.Create(location).Error; err != nil {
		return nil, fmt.Errorf("failed to create gps location: %w", err)
	}

	logger.Logger.Info("GPS location added",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.String("name", location.Name),
	)

	return location, nil
}

// ListLocations 成员可见的集合点列表
func (s *RuleService) ListLocations(ctx context.Context, groupID int64, slot int, memberID int64) ([]*model.GpsLocation, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	db := database.DB().WithContext(ctx)

	var locations []*model.GpsLocation
	if err := db.Where("group_id = ? AND slot = ?", groupID, slot).
		Order("id ASC").
		Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("failed to list gps locations: %w", err)
	}
	return locations, nil
}

// ToRuleResponse 规则实体转响应视图
func ToRuleResponse(rule *model.VerificationRule) *dto.RuleResponse {
	days := strings.Split(rule.DaysOfWeek, ",")
	sort.SliceStable(days, func(i, j int) bool {
		order := map[string]int{"SUN": 0, "MON": 1, "TUE": 2, "WED": 3, "THU": 4, "FRI": 5, "SAT": 6}
		return order[days[i]] < order[days[j]]
	})

	resp := &dto.RuleResponse{
		RuleID:        rule.ID,
		GroupID:       rule.GroupID,
		Slot:          rule.Slot,
		MethodCode:    string(rule.MethodCode),
		EndTime:       rule.EndTime,
		CheckEndTime:  rule.CheckEndTime,
		DaysOfWeek:    days,
		Timezone:      rule.Timezone,
		FrequencyUnit: string(rule.FrequencyUnit),
		RequiredCnt:   rule.RequiredCnt,
		EffectiveFrom: utils.FormatDate(rule.EffectiveFrom),

		ExemptionEnabled:   rule.ExemptionEnabled,
		ExemptionLimitUnit: string(rule.ExemptionLimitUnit),
		ExemptionLimitCnt:  rule.ExemptionLimitCnt,
	}
	return resp
}
