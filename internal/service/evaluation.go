package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/metrics"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

type EvaluationService struct{}

var (
	evaluationService *EvaluationService
	evaluationOnce    sync.Once

	// 并发结算时输给唯一索引的一方用这个哨兵回滚事务，然后重读赢家
	errLostEvaluationRace = stderrors.New("evaluation race lost")
)

func Evaluation() *EvaluationService {
	evaluationOnce.Do(func() {
		evaluationService = &EvaluationService{}
	})

	return evaluationService
}

// GetResult 查询某天的判定结果，窗口未关时按需触发结算。
// 成员只允许查本组的结果
func (s *EvaluationService) GetResult(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	targetMemberID int64,
	date time.Time,
	now time.Time,
) (*model.EvaluationRecord, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, err
	}

	return s.EvaluateIfDue(ctx, groupID, slot, targetMemberID, date, now)
}

// EvaluateIfDue 幂等结算入口。已有记录直接返回；
// 截止时间未到返回 NOT_YET_EVALUABLE；到点后判定并落库，
// 唯一索引吃掉并发重复，竞争失败方重读赢家的记录
func (s *EvaluationService) EvaluateIfDue(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
	now time.Time,
) (*model.EvaluationRecord, error) {
	db := database.DB().WithContext(ctx)

	// 先查已有记录，结算是一次性的
	var existing model.EvaluationRecord
	err := db.Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ?",
		groupID, slot, memberID, date).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to query evaluation record: %w", err)
	}

	rule, err := Rule().ActiveRule(ctx, groupID, slot, date)
	if err != nil {
		return nil, err
	}

	// 非认证日没有判定机会
	if !IsScheduledDay(rule, date) {
		return nil, errors.NotYetEvaluable
	}

	window, err := ResolveWindow(rule, date)
	if err != nil {
		return nil, errors.InvalidTimezone
	}

	if now.Before(window.Deadline()) {
		return nil, errors.NotYetEvaluable
	}

	started := time.Now()

	passed, err := s.decideOutcome(ctx, rule, groupID, slot, memberID, date, window)
	if err != nil {
		return nil, err
	}

	record := &model.EvaluationRecord{
		GroupID:          groupID,
		Slot:             slot,
		MemberID:         memberID,
		VerificationDate: date,
		Passed:           passed,
		Exempted:         false,
		EvaluatedAt:      now.UTC(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// 未通过且启用豁免时先尝试消耗额度，消耗成功则记豁免。
		// 额度消耗与结果写入同事务，竞争失败回滚时额度一并退回
		if !passed && rule.ExemptionEnabled {
			consumed, err := Exemption().TryConsume(tx, groupID, slot, memberID, rule, date)
			if err != nil {
				return err
			}
			if consumed {
				record.Exempted = true
			}
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(record)
		if result.Error != nil {
			return fmt.Errorf("failed to create evaluation record: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return errLostEvaluationRace
		}
		return nil
	})

	if err != nil {
		if stderrors.Is(err, errLostEvaluationRace) {
			var winner model.EvaluationRecord
			if err := db.Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ?",
				groupID, slot, memberID, date).
				First(&winner).Error; err != nil {
				return nil, fmt.Errorf("failed to reread winning evaluation: %w", err)
			}
			return &winner, nil
		}
		return nil, err
	}

	metrics.RecordEvaluation(ctx, string(rule.MethodCode), record.Passed, record.Exempted, time.Since(started).Seconds())
	logger.Logger.Info("Evaluation settled",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.Int64("member_id", memberID),
		zap.String("date", utils.FormatDate(date)),
		zap.Bool("passed", record.Passed),
		zap.Bool("exempted", record.Exempted),
	)

	return record, nil
}

// outcomeFacts 判定所需的事实集合，读库与判定分离
type outcomeFacts struct {
	CheckedCnt int64
	Submission *model.SubmissionRecord
}

// decideOutcome 收集某成员某天的事实并判定通过与否，纯读不写
func (s *EvaluationService) decideOutcome(
	ctx context.Context,
	rule *model.VerificationRule,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
	window *Window,
) (bool, error) {
	var facts outcomeFacts

	switch rule.MethodCode {
	case model.MethodChecklist:
		// 条目须在 endTime 前建好，勾选放宽到 checkEndTime（缺省 endTime）
		count, err := Checklist().CountCheckedInWindow(ctx, groupID, slot, memberID, date, window.EndsAt, window.Deadline())
		if err != nil {
			return false, err
		}
		facts.CheckedCnt = count

	case model.MethodPhoto, model.MethodGps, model.MethodGithub:
		record, err := Submission().FindSubmission(ctx, groupID, slot, memberID, date, rule.MethodCode)
		if err != nil {
			return false, err
		}
		facts.Submission = record
	}

	return evaluateFacts(rule, facts)
}

// evaluateFacts 各认证方式的通过判定，RequiredCnt 为清单的通过线
func evaluateFacts(rule *model.VerificationRule, facts outcomeFacts) (bool, error) {
	switch rule.MethodCode {
	case model.MethodChecklist:
		return facts.CheckedCnt >= int64(rule.RequiredCnt), nil

	case model.MethodPhoto:
		record := facts.Submission
		return record != nil && record.PhotoCount >= rule.MinFiles && record.PhotoCount <= rule.MaxFiles, nil

	case model.MethodGps:
		return facts.Submission != nil && facts.Submission.WithinRadius, nil

	case model.MethodGithub:
		// claim 即算提交，外部核验为加强信号而非必要条件
		record := facts.Submission
		return record != nil && (record.Verified || record.CommitRef != ""), nil
	}

	return false, fmt.Errorf("unknown method code: %s", rule.MethodCode)
}

// EvaluateGroup 结算扫描：窗口关闭后对组内所有成员逐个结算。
// 单个成员失败不阻断其余成员，最后汇总返回
func (s *EvaluationService) EvaluateGroup(
	ctx context.Context,
	groupID int64,
	slot int,
	date time.Time,
	now time.Time,
) error {
	members, err := Group().ListMembers(ctx, groupID)
	if err != nil {
		return err
	}

	var failed int
	for _, member := range members {
		_, err := s.EvaluateIfDue(ctx, groupID, slot, member.MemberID, date, now)
		if err != nil {
			if stderrors.Is(err, errors.NotYetEvaluable) {
				// 扫描消息早到或规则换了版本，留给下一轮
				continue
			}
			failed++
			logger.Logger.Error("Failed to evaluate member",
				zap.Int64("group_id", groupID),
				zap.Int("slot", slot),
				zap.Int64("member_id", member.MemberID),
				zap.String("date", utils.FormatDate(date)),
				zap.Error(err),
			)
		}
	}

	if failed > 0 {
		return fmt.Errorf("evaluation sweep finished with %d failed members", failed)
	}
	return nil
}
