package model

import "strings"

// MethodCode 认证方式枚举，引擎内部只允许这四个封闭值
type MethodCode string

const (
	MethodPhoto     MethodCode = "PHOTO"     // 照片认证
	MethodChecklist MethodCode = "CHECKLIST" // 待办清单认证
	MethodGps       MethodCode = "GPS"       // 到场定位认证
	MethodGithub    MethodCode = "GITHUB"    // GitHub 提交认证
)

// legacyMethodAliases 旧客户端/旧数据里出现过的自由字符串，
// 仅在 API 边界翻译一次，引擎内部不允许出现这些原始值
var legacyMethodAliases = map[string]MethodCode{
	"TODO": MethodChecklist,
	"WAKE": MethodPhoto, // 起床打卡走照片认证
	"사진":   MethodPhoto,
	"할일":   MethodChecklist,
	"깃허브":  MethodGithub,
}

// ParseMethodCode 在 API 边界把外部字符串规整为封闭枚举
func ParseMethodCode(s string) (MethodCode, bool) {
	switch MethodCode(strings.ToUpper(strings.TrimSpace(s))) {
	case MethodPhoto:
		return MethodPhoto, true
	case MethodChecklist:
		return MethodChecklist, true
	case MethodGps:
		return MethodGps, true
	case MethodGithub:
		return MethodGithub, true
	}

	if code, ok := legacyMethodAliases[strings.TrimSpace(s)]; ok {
		return code, true
	}

	return "", false
}

// Valid 判断是否为合法枚举值
func (m MethodCode) Valid() bool {
	switch m {
	case MethodPhoto, MethodChecklist, MethodGps, MethodGithub:
		return true
	}
	return false
}
