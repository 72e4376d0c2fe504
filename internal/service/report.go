package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"StudyCheck/internal/model"
	"StudyCheck/internal/model/dto"
	"StudyCheck/pkg/errors"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

type ReportService struct{}

var (
	reportService *ReportService
	reportOnce    sync.Once
)

func Report() *ReportService {
	reportOnce.Do(func() {
		reportService = &ReportService{}
	})

	return reportService
}

// Percentage 出勤率：passed / (opportunity - exempted) * 100，保留一位小数。
// 豁免日同时从分子机会与分母机会中剔除，分母为零或负时出勤率记 0
func Percentage(passed, opportunity, exempted int) float64 {
	denominator := opportunity - exempted
	if denominator <= 0 {
		return 0
	}
	return math.Round(float64(passed)/float64(denominator)*1000) / 10
}

// BuildReport 期间报表。机会数 = 区间内截止时间已过的认证日数量，
// 逐日取活跃规则以兼容期间内的规则版本切换
func (s *ReportService) BuildReport(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	start, end time.Time,
	now time.Time,
) (*dto.ReportResponse, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, errors.InvalidRule
	}

	opportunities, err := s.countOpportunities(ctx, groupID, slot, start, end, now)
	if err != nil {
		return nil, err
	}

	members, err := Group().ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}

	stats, err := s.loadEvaluationStats(ctx, groupID, slot, start, end)
	if err != nil {
		return nil, err
	}

	report := &dto.ReportResponse{
		GroupID:          groupID,
		Slot:             slot,
		StartDate:        utils.FormatDate(start),
		EndDate:          utils.FormatDate(end),
		OpportunityCount: opportunities,
		Members:          make([]dto.MemberReport, 0, len(members)),
	}

	for _, member := range members {
		st := stats[member.MemberID]
		report.Members = append(report.Members, dto.MemberReport{
			MemberID:   member.MemberID,
			Nickname:   member.Nickname,
			Role:       string(member.Role),
			PassedDays: st.passed,
			Exempted:   st.exempted,
			Percentage: Percentage(st.passed, opportunities, st.exempted),
		})
	}

	return report, nil
}

// countOpportunities 逐日判断是否是已截止的认证日。
// 没有活跃规则的日期不算机会（规则生效前的日子）
func (s *ReportService) countOpportunities(
	ctx context.Context,
	groupID int64,
	slot int,
	start, end time.Time,
	now time.Time,
) (int, error) {
	count := 0
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		rule, err := Rule().ActiveRule(ctx, groupID, slot, date)
		if err != nil {
			if err == errors.RuleNotFound {
				continue
			}
			return 0, err
		}

		if !IsScheduledDay(rule, date) {
			continue
		}

		window, err := ResolveWindow(rule, date)
		if err != nil {
			return 0, errors.InvalidTimezone
		}
		if now.Before(window.Deadline()) {
			continue
		}
		count++
	}
	return count, nil
}

type memberStats struct {
	passed   int
	exempted int
}

// loadEvaluationStats 聚合区间内的判定结果，豁免日不计入通过数
func (s *ReportService) loadEvaluationStats(
	ctx context.Context,
	groupID int64,
	slot int,
	start, end time.Time,
) (map[int64]memberStats, error) {
	db := database.DB().WithContext(ctx)

	var records []*model.EvaluationRecord
	if err := db.Where("group_id = ? AND slot = ? AND verification_date >= ? AND verification_date <= ?",
		groupID, slot, start, end).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load evaluation records: %w", err)
	}

	stats := make(map[int64]memberStats)
	for _, record := range records {
		st := stats[record.MemberID]
		if record.Exempted {
			st.exempted++
		} else if record.Passed {
			st.passed++
		}
		stats[record.MemberID] = st
	}
	return stats, nil
}
