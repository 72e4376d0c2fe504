package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyCheck/internal/model"
	"StudyCheck/internal/model/dto"
	"StudyCheck/pkg/errors"
)

func validPhotoRequest() *dto.CreateRuleRequest {
	return &dto.CreateRuleRequest{
		MethodCode: "PHOTO",
		EndTime:    "08:00",
		DaysOfWeek: []string{"MON", "WED", "FRI"},
	}
}

func TestBuildRuleDefaults(t *testing.T) {
	rule, err := Rule().buildRule(1, 1, "Asia/Seoul", validPhotoRequest())
	require.NoError(t, err)

	assert.Equal(t, model.MethodPhoto, rule.MethodCode)
	assert.Equal(t, "MON,WED,FRI", rule.DaysOfWeek)
	// 缺省继承小组时区
	assert.Equal(t, "Asia/Seoul", rule.Timezone)
	assert.Equal(t, model.FrequencyDay, rule.FrequencyUnit)
	assert.Equal(t, 1, rule.RequiredCnt)
	assert.Equal(t, 1, rule.MinFiles)
	assert.Equal(t, 1, rule.MaxFiles)
	assert.False(t, rule.ExemptionEnabled)
	assert.False(t, rule.EffectiveFrom.IsZero())
}

func TestBuildRuleLegacyMethodAlias(t *testing.T) {
	req := validPhotoRequest()
	req.MethodCode = "TODO"

	rule, err := Rule().buildRule(1, 1, "Asia/Seoul", req)
	require.NoError(t, err)
	assert.Equal(t, model.MethodChecklist, rule.MethodCode)
}

func TestBuildRuleValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*dto.CreateRuleRequest)
		wantErr error
	}{
		{
			"unknown method",
			func(r *dto.CreateRuleRequest) { r.MethodCode = "TELEPATHY" },
			errors.InvalidRule,
		},
		{
			"bad end time",
			func(r *dto.CreateRuleRequest) { r.EndTime = "25:00" },
			errors.InvalidRule,
		},
		{
			"bad check end time",
			func(r *dto.CreateRuleRequest) {
				bad := "9:5"
				r.CheckEndTime = &bad
			},
			errors.InvalidRule,
		},
		{
			"unknown weekday",
			func(r *dto.CreateRuleRequest) { r.DaysOfWeek = []string{"FUNDAY"} },
			errors.InvalidRule,
		},
		{
			"empty weekdays",
			func(r *dto.CreateRuleRequest) { r.DaysOfWeek = nil },
			errors.InvalidRule,
		},
		{
			"bad timezone",
			func(r *dto.CreateRuleRequest) { r.Timezone = "Mars/Olympus" },
			errors.InvalidTimezone,
		},
		{
			"bad frequency unit",
			func(r *dto.CreateRuleRequest) { r.FrequencyUnit = "YEAR" },
			errors.InvalidRule,
		},
		{
			"photo max below min",
			func(r *dto.CreateRuleRequest) {
				r.MinFiles = 3
				r.MaxFiles = 2
			},
			errors.InvalidRule,
		},
		{
			"gps without radius",
			func(r *dto.CreateRuleRequest) {
				r.MethodCode = "GPS"
				r.RadiusM = 0
			},
			errors.InvalidRule,
		},
		{
			"gps bad radius mode",
			func(r *dto.CreateRuleRequest) {
				r.MethodCode = "GPS"
				r.RadiusM = 100
				r.RadiusMode = "NEAREST"
			},
			errors.InvalidRule,
		},
		{
			"github without repo",
			func(r *dto.CreateRuleRequest) { r.MethodCode = "GITHUB" },
			errors.InvalidRule,
		},
		{
			"negative required count",
			func(r *dto.CreateRuleRequest) { r.RequiredCnt = -1 },
			errors.InvalidRule,
		},
		{
			"exemption bad unit",
			func(r *dto.CreateRuleRequest) {
				r.ExemptionEnabled = true
				r.ExemptionLimitUnit = "QUARTER"
				r.ExemptionLimitCnt = 2
			},
			errors.InvalidRule,
		},
		{
			"exemption negative count",
			func(r *dto.CreateRuleRequest) {
				r.ExemptionEnabled = true
				r.ExemptionLimitUnit = "WEEK"
				r.ExemptionLimitCnt = -1
			},
			errors.InvalidRule,
		},
		{
			"bad effective from",
			func(r *dto.CreateRuleRequest) { r.EffectiveFrom = "03/15/2025" },
			errors.InvalidRule,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validPhotoRequest()
			tc.mutate(req)

			_, err := Rule().buildRule(1, 1, "Asia/Seoul", req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBuildRuleGps(t *testing.T) {
	req := validPhotoRequest()
	req.MethodCode = "GPS"
	req.RadiusM = 150

	rule, err := Rule().buildRule(1, 2, "Asia/Seoul", req)
	require.NoError(t, err)

	assert.Equal(t, model.MethodGps, rule.MethodCode)
	assert.Equal(t, model.RadiusCommon, rule.RadiusMode)
	assert.Equal(t, 150, rule.RadiusM)
	assert.Equal(t, 2, rule.Slot)
}

// 额度 0 合法：启用豁免但没有可消耗次数
func TestBuildRuleExemptionZeroQuota(t *testing.T) {
	req := validPhotoRequest()
	req.ExemptionEnabled = true
	req.ExemptionLimitUnit = "TOTAL"
	req.ExemptionLimitCnt = 0

	rule, err := Rule().buildRule(1, 1, "Asia/Seoul", req)
	require.NoError(t, err)

	assert.True(t, rule.ExemptionEnabled)
	assert.Equal(t, model.LimitTotal, rule.ExemptionLimitUnit)
	assert.Equal(t, 0, rule.ExemptionLimitCnt)
}

func TestBuildRuleExemption(t *testing.T) {
	req := validPhotoRequest()
	req.ExemptionEnabled = true
	req.ExemptionLimitUnit = "month"
	req.ExemptionLimitCnt = 2
	req.EffectiveFrom = "2025-04-01"

	rule, err := Rule().buildRule(1, 1, "Asia/Seoul", req)
	require.NoError(t, err)

	assert.True(t, rule.ExemptionEnabled)
	assert.Equal(t, model.LimitMonth, rule.ExemptionLimitUnit)
	assert.Equal(t, 2, rule.ExemptionLimitCnt)
	assert.Equal(t, "2025-04-01", rule.EffectiveFrom.Format("2006-01-02"))
}
