package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/utils"
)

func TestCreateItemGate(t *testing.T) {
	rule := seoulRule()
	rule.MethodCode = model.MethodChecklist

	monday := utils.DateOnly(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC))
	sunday := utils.DateOnly(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))

	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	inWindow := time.Date(2025, 3, 3, 10, 0, 0, 0, seoul)
	afterEnd := time.Date(2025, 3, 3, 22, 30, 0, 0, seoul)

	// 窗口内，日期缺省
	assert.NoError(t, createItemGate(rule, nil, monday, inWindow))

	// 窗口内，显式传今天
	assert.NoError(t, createItemGate(rule, &monday, monday, inWindow))

	// 回填昨天的条目是规则违反，不是窗口问题
	err = createItemGate(rule, &sunday, monday, inWindow)
	assert.ErrorIs(t, err, errors.ChecklistNotToday)

	// 今天但 endTime 已过是窗口关闭
	err = createItemGate(rule, nil, monday, afterEnd)
	assert.ErrorIs(t, err, errors.OutOfWindow)

	err = createItemGate(rule, &monday, monday, afterEnd)
	assert.ErrorIs(t, err, errors.OutOfWindow)
}
