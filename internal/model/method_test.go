package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseMethodCode(t *testing.T) {
	cases := []struct {
		input string
		want  MethodCode
		ok    bool
	}{
		{"PHOTO", MethodPhoto, true},
		{"photo", MethodPhoto, true},
		{" gps ", MethodGps, true},
		{"CHECKLIST", MethodChecklist, true},
		{"GITHUB", MethodGithub, true},

		// 旧客户端的自由字符串在边界处翻译一次
		{"TODO", MethodChecklist, true},
		{"WAKE", MethodPhoto, true},
		{"사진", MethodPhoto, true},
		{"할일", MethodChecklist, true},
		{"깃허브", MethodGithub, true},

		{"TELEPATHY", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseMethodCode(tc.input)
		assert.Equal(t, tc.ok, ok, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestMethodCodeValid(t *testing.T) {
	assert.True(t, MethodPhoto.Valid())
	assert.True(t, MethodGithub.Valid())
	assert.False(t, MethodCode("TODO").Valid())
	assert.False(t, MethodCode("").Valid())
}

func TestParseDaysOfWeek(t *testing.T) {
	set, ok := ParseDaysOfWeek("MON,WED,fri")
	assert.True(t, ok)
	assert.True(t, set[time.Monday])
	assert.True(t, set[time.Wednesday])
	assert.True(t, set[time.Friday])
	assert.False(t, set[time.Sunday])

	_, ok = ParseDaysOfWeek("MON,FUNDAY")
	assert.False(t, ok)

	_, ok = ParseDaysOfWeek("")
	assert.False(t, ok)

	_, ok = ParseDaysOfWeek(" , ,")
	assert.False(t, ok)
}

func TestScheduledOn(t *testing.T) {
	rule := &VerificationRule{DaysOfWeek: "SAT,SUN"}
	assert.True(t, rule.ScheduledOn(time.Saturday))
	assert.False(t, rule.ScheduledOn(time.Monday))

	broken := &VerificationRule{DaysOfWeek: "NOPE"}
	assert.False(t, broken.ScheduledOn(time.Monday))
}

func TestCheckDeadline(t *testing.T) {
	rule := &VerificationRule{EndTime: "22:00"}
	assert.Equal(t, "22:00", rule.CheckDeadline())

	checkEnd := "23:30"
	rule.CheckEndTime = &checkEnd
	assert.Equal(t, "23:30", rule.CheckDeadline())
}
