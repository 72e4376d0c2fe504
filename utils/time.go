package utils

import (
	"time"
)

const DateLayout = "2006-01-02"

// ParseClock 解析 HH:MM 并应用到指定日期（沿用该日期所在时区）
func ParseClock(clock string, date time.Time) (time.Time, error) {
	if clock == "" {
		return date, nil
	}

	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return date, err
	}

	return time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		parsed.Hour(),
		parsed.Minute(),
		0,
		0,
		date.Location(),
	), nil
}

// DateOnly 把时间截断到当日零点（UTC），日期字段统一用这个形态入库
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate 解析 2006-01-02 形式的日期为 UTC 零点
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOnly(t), nil
}

// FormatDate 输出 2006-01-02
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
