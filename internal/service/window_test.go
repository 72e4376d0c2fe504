package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyCheck/internal/model"
	"StudyCheck/utils"
)

func seoulRule() *model.VerificationRule {
	return &model.VerificationRule{
		MethodCode: model.MethodPhoto,
		EndTime:    "22:00",
		DaysOfWeek: "MON,WED",
		Timezone:   "Asia/Seoul",
	}
}

func TestResolveWindow(t *testing.T) {
	rule := seoulRule()
	// 2025-03-03 是周一
	date := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))

	window, err := ResolveWindow(rule, date)
	require.NoError(t, err)

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	assert.True(t, window.OpensAt.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, seoul)))
	assert.True(t, window.EndsAt.Equal(time.Date(2025, 3, 3, 22, 0, 0, 0, seoul)))
	assert.Nil(t, window.CheckEndsAt)
}

func TestResolveWindowInvalidTimezone(t *testing.T) {
	rule := seoulRule()
	rule.Timezone = "Mars/Olympus"

	_, err := ResolveWindow(rule, utils.DateOnly(time.Now().UTC()))
	assert.Error(t, err)
}

func TestWindowDeadline(t *testing.T) {
	rule := seoulRule()
	date := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))

	window, err := ResolveWindow(rule, date)
	require.NoError(t, err)
	// 没有勾选截止时退回提交截止
	assert.True(t, window.Deadline().Equal(window.EndsAt))

	checkEnd := "23:30"
	rule.CheckEndTime = &checkEnd

	window, err = ResolveWindow(rule, date)
	require.NoError(t, err)
	require.NotNil(t, window.CheckEndsAt)
	assert.True(t, window.Deadline().Equal(*window.CheckEndsAt))
	assert.True(t, window.Deadline().After(window.EndsAt))
}

func TestIsScheduledDay(t *testing.T) {
	rule := seoulRule()

	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	tuesday := utils.DateOnly(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	wednesday := utils.DateOnly(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))

	assert.True(t, IsScheduledDay(rule, monday))
	assert.False(t, IsScheduledDay(rule, tuesday))
	assert.True(t, IsScheduledDay(rule, wednesday))
}

func TestIsWithinSubmissionWindow(t *testing.T) {
	rule := seoulRule()
	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	tuesday := utils.DateOnly(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	cases := []struct {
		name string
		date time.Time
		now  time.Time
		want bool
	}{
		{"before end", monday, time.Date(2025, 3, 3, 21, 59, 0, 0, seoul), true},
		{"exactly at end", monday, time.Date(2025, 3, 3, 22, 0, 0, 0, seoul), true},
		{"after end", monday, time.Date(2025, 3, 3, 22, 1, 0, 0, seoul), false},
		{"at local midnight", monday, time.Date(2025, 3, 3, 0, 0, 0, 0, seoul), true},
		{"before local midnight", monday, time.Date(2025, 3, 2, 23, 59, 0, 0, seoul), false},
		{"unscheduled day", tuesday, time.Date(2025, 3, 4, 12, 0, 0, 0, seoul), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := IsWithinSubmissionWindow(rule, tc.date, tc.now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsWithinSubmissionWindowUTCCaller(t *testing.T) {
	rule := seoulRule()
	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))

	// 21:59 KST == 12:59 UTC，调用方传 UTC 时刻也要落在窗口内
	got, err := IsWithinSubmissionWindow(rule, monday, time.Date(2025, 3, 3, 12, 59, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsWithinSubmissionWindow(rule, monday, time.Date(2025, 3, 3, 13, 1, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestIsWithinCheckWindow(t *testing.T) {
	rule := seoulRule()
	rule.MethodCode = model.MethodChecklist
	checkEnd := "23:30"
	rule.CheckEndTime = &checkEnd

	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 提交窗口已关，勾选窗口未关
	got, err := IsWithinCheckWindow(rule, monday, time.Date(2025, 3, 3, 22, 30, 0, 0, seoul))
	require.NoError(t, err)
	assert.True(t, got)

	got, err = IsWithinCheckWindow(rule, monday, time.Date(2025, 3, 3, 23, 31, 0, 0, seoul))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestLocalToday(t *testing.T) {
	rule := seoulRule()

	// 16:00 UTC 已是首尔的次日凌晨
	now := time.Date(2025, 3, 3, 16, 0, 0, 0, time.UTC)
	date, err := LocalToday(rule, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", utils.FormatDate(date))

	now = time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	date, err = LocalToday(rule, now)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", utils.FormatDate(date))
}
