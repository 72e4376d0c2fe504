package service

import (
	"time"

	"StudyCheck/internal/model"
	"StudyCheck/utils"
)

// Window 某条规则在某个认证日的提交窗口。
// OpensAt 为本地零点，EndsAt 为 end_time，CheckEndsAt 仅清单规则使用。
// 三个时间都带规则时区，比较前由调用方统一用 UTC 时刻对比
type Window struct {
	OpensAt     time.Time
	EndsAt      time.Time
	CheckEndsAt *time.Time
}

// ResolveWindow 按规则时区解析某认证日的窗口。
// date 必须是 UTC 零点形态的日期（utils.DateOnly 产物）
func ResolveWindow(rule *model.VerificationRule, date time.Time) (*Window, error) {
	loc, err := time.LoadLocation(rule.Timezone)
	if err != nil {
		return nil, err
	}

	localMidnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	endsAt, err := utils.ParseClock(rule.EndTime, localMidnight)
	if err != nil {
		return nil, err
	}

	window := &Window{
		OpensAt: localMidnight,
		EndsAt:  endsAt,
	}

	if rule.CheckEndTime != nil && *rule.CheckEndTime != "" {
		checkEndsAt, err := utils.ParseClock(*rule.CheckEndTime, localMidnight)
		if err != nil {
			return nil, err
		}
		window.CheckEndsAt = &checkEndsAt
	}

	return window, nil
}

// Deadline 结算触发时刻：清单规则用勾选截止，其余用提交截止
func (w *Window) Deadline() time.Time {
	if w.CheckEndsAt != nil {
		return *w.CheckEndsAt
	}
	return w.EndsAt
}

// IsScheduledDay 判断 date 是否是该规则的认证日（按规则时区的星期几）
func IsScheduledDay(rule *model.VerificationRule, date time.Time) bool {
	loc, err := time.LoadLocation(rule.Timezone)
	if err != nil {
		return false
	}
	localDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return rule.ScheduledOn(localDay.Weekday())
}

// IsWithinSubmissionWindow 判断 now（任意时区）是否落在提交窗口内。
// 非认证日恒为 false，窗口为 [OpensAt, EndsAt] 闭区间
func IsWithinSubmissionWindow(rule *model.VerificationRule, date, now time.Time) (bool, error) {
	if !IsScheduledDay(rule, date) {
		return false, nil
	}

	window, err := ResolveWindow(rule, date)
	if err != nil {
		return false, err
	}

	return !now.Before(window.OpensAt) && !now.After(window.EndsAt), nil
}

// IsWithinCheckWindow 判断 now 是否仍可勾选清单项。
// 勾选窗口延伸到 check_end_time（未配置时与提交窗口一致）
func IsWithinCheckWindow(rule *model.VerificationRule, date, now time.Time) (bool, error) {
	if !IsScheduledDay(rule, date) {
		return false, nil
	}

	window, err := ResolveWindow(rule, date)
	if err != nil {
		return false, err
	}

	deadline := window.EndsAt
	if window.CheckEndsAt != nil {
		deadline = *window.CheckEndsAt
	}

	return !now.Before(window.OpensAt) && !now.After(deadline), nil
}

// LocalToday 规则时区下 now 对应的认证日（UTC 零点形态）
func LocalToday(rule *model.VerificationRule, now time.Time) (time.Time, error) {
	loc, err := time.LoadLocation(rule.Timezone)
	if err != nil {
		return time.Time{}, err
	}
	local := now.In(loc)
	return utils.DateOnly(local), nil
}
