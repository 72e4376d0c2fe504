package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"StudyCheck/internal/model"
)

func TestPeriodKey(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "total", PeriodKey(model.LimitTotal, date))
	assert.Equal(t, "2025-03", PeriodKey(model.LimitMonth, date))
	assert.Equal(t, "2025-W11", PeriodKey(model.LimitWeek, date))
}

func TestPeriodKeyWeekYearBoundary(t *testing.T) {
	// 2024-12-30 是周一，ISO 周归属 2025 年第 1 周
	date := time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-W01", PeriodKey(model.LimitWeek, date))

	// 2026-01-01 是周四，仍是 2026 年第 1 周
	date = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-W01", PeriodKey(model.LimitWeek, date))
}

func TestPeriodKeyUnknownUnitFallsBackToTotal(t *testing.T) {
	date := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "total", PeriodKey(model.LimitUnit(""), date))
}
