package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyCheck/internal/model"
	"StudyCheck/utils"
)

func TestEvaluateFactsChecklist(t *testing.T) {
	rule := &model.VerificationRule{
		MethodCode:  model.MethodChecklist,
		RequiredCnt: 2,
	}

	cases := []struct {
		name       string
		checkedCnt int64
		want       bool
	}{
		{"below threshold", 1, false},
		{"exactly threshold", 2, true},
		{"above threshold", 3, true},
		{"nothing checked", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			passed, err := evaluateFacts(rule, outcomeFacts{CheckedCnt: tc.checkedCnt})
			require.NoError(t, err)
			assert.Equal(t, tc.want, passed)
		})
	}

	rule.RequiredCnt = 3
	passed, err := evaluateFacts(rule, outcomeFacts{CheckedCnt: 2})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestEvaluateFactsPhoto(t *testing.T) {
	rule := &model.VerificationRule{
		MethodCode: model.MethodPhoto,
		MinFiles:   1,
		MaxFiles:   3,
	}

	cases := []struct {
		name       string
		submission *model.SubmissionRecord
		want       bool
	}{
		{"no submission", nil, false},
		{"count within bounds", &model.SubmissionRecord{PhotoCount: 2}, true},
		{"count at minimum", &model.SubmissionRecord{PhotoCount: 1}, true},
		{"count above maximum", &model.SubmissionRecord{PhotoCount: 4}, false},
		{"zero photos", &model.SubmissionRecord{PhotoCount: 0}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			passed, err := evaluateFacts(rule, outcomeFacts{Submission: tc.submission})
			require.NoError(t, err)
			assert.Equal(t, tc.want, passed)
		})
	}
}

func TestEvaluateFactsGps(t *testing.T) {
	rule := &model.VerificationRule{MethodCode: model.MethodGps}

	passed, err := evaluateFacts(rule, outcomeFacts{Submission: nil})
	require.NoError(t, err)
	assert.False(t, passed)

	passed, err = evaluateFacts(rule, outcomeFacts{Submission: &model.SubmissionRecord{WithinRadius: true}})
	require.NoError(t, err)
	assert.True(t, passed)

	passed, err = evaluateFacts(rule, outcomeFacts{Submission: &model.SubmissionRecord{WithinRadius: false}})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestEvaluateFactsGithub(t *testing.T) {
	rule := &model.VerificationRule{MethodCode: model.MethodGithub}

	passed, err := evaluateFacts(rule, outcomeFacts{Submission: nil})
	require.NoError(t, err)
	assert.False(t, passed)

	// claim 即算提交
	passed, err = evaluateFacts(rule, outcomeFacts{Submission: &model.SubmissionRecord{CommitRef: "abc123"}})
	require.NoError(t, err)
	assert.True(t, passed)

	// 外部核验通过但 claim 为空也算
	passed, err = evaluateFacts(rule, outcomeFacts{Submission: &model.SubmissionRecord{Verified: true}})
	require.NoError(t, err)
	assert.True(t, passed)

	passed, err = evaluateFacts(rule, outcomeFacts{Submission: &model.SubmissionRecord{}})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestEvaluateFactsUnknownMethod(t *testing.T) {
	rule := &model.VerificationRule{MethodCode: model.MethodCode("TELEPATHY")}
	_, err := evaluateFacts(rule, outcomeFacts{})
	assert.Error(t, err)
}

// 勾选窗口内接受的任何时刻都不晚于结算口径的勾选截止（Deadline），
// endTime 与 checkEndTime 之间完成的勾选必须计入结算
func TestCheckWindowAcceptanceCountsAtEvaluation(t *testing.T) {
	rule := seoulRule()
	rule.MethodCode = model.MethodChecklist
	checkEnd := "23:30"
	rule.CheckEndTime = &checkEnd

	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	window, err := ResolveWindow(rule, monday)
	require.NoError(t, err)

	// 22:30：提交截止已过、勾选窗口未关
	lateCheck := time.Date(2025, 3, 3, 22, 30, 0, 0, seoul)

	within, err := IsWithinCheckWindow(rule, monday, lateCheck)
	require.NoError(t, err)
	require.True(t, within)

	assert.True(t, lateCheck.After(window.EndsAt))
	assert.False(t, lateCheck.After(window.Deadline()))
}
