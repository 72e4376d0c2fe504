package utils

import (
	"regexp"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateClock 校验 HH:MM 格式
func ValidateClock(clock string) bool {
	return clockPattern.MatchString(clock)
}

// ValidateTimezone 校验 IANA 时区名是否可加载
func ValidateTimezone(name string) bool {
	if name == "" {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}
