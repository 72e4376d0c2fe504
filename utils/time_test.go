package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	base := time.Date(2025, 3, 3, 0, 0, 0, 0, seoul)

	got, err := ParseClock("22:30", base)
	require.NoError(t, err)
	assert.Equal(t, 22, got.Hour())
	assert.Equal(t, 30, got.Minute())
	// 沿用基准日期所在时区
	assert.Equal(t, seoul, got.Location())

	// 空字符串原样返回基准时间
	got, err = ParseClock("", base)
	require.NoError(t, err)
	assert.True(t, got.Equal(base))

	_, err = ParseClock("25:99", base)
	assert.Error(t, err)
}

func TestDateOnly(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 只取年月日字段，统一落到 UTC 零点
	got := DateOnly(time.Date(2025, 3, 3, 23, 59, 0, 0, seoul))
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2025-03-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("03/03/2025")
	assert.Error(t, err)

	assert.Equal(t, "2025-03-03", FormatDate(got))
}
