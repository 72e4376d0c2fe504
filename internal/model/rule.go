package model

import (
	"strings"
	"time"
)

// FrequencyUnit 认证频率单位
type FrequencyUnit string

const (
	FrequencyDay  FrequencyUnit = "DAY"
	FrequencyWeek FrequencyUnit = "WEEK"
)

// LimitUnit 豁免额度的计算周期
type LimitUnit string

const (
	LimitTotal LimitUnit = "TOTAL" // 终身额度
	LimitWeek  LimitUnit = "WEEK"  // ISO 周
	LimitMonth LimitUnit = "MONTH" // 自然月
)

// RadiusMode GPS 判定模式
type RadiusMode string

const (
	RadiusCommon      RadiusMode = "COMMON"       // 共用一个集合点
	RadiusPerLocation RadiusMode = "PER_LOCATION" // 多地点取最近
)

// weekdayNames 与 time.Weekday 的映射，DaysOfWeek 字段按 CSV 存储
var weekdayNames = map[string]time.Weekday{
	"SUN": time.Sunday,
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
}

// ParseDaysOfWeek 解析 "MON,WED,FRI" 形式的星期集合
func ParseDaysOfWeek(csv string) (map[time.Weekday]bool, bool) {
	set := make(map[time.Weekday]bool)
	for _, part := range strings.Split(csv, ",") {
		part = strings.ToUpper(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		day, ok := weekdayNames[part]
		if !ok {
			return nil, false
		}
		set[day] = true
	}
	if len(set) == 0 {
		return nil, false
	}
	return set, true
}

// VerificationRule 认证规则。规则一经生效即不可改写历史，
// 修改通过追加一条更晚 effective_from 的新版本实现
type VerificationRule struct {
	BaseModel
	GroupID    int64      `gorm:"not null;index:idx_rules_group_slot_effective" json:"group_id"`
	Slot       int        `gorm:"not null;index:idx_rules_group_slot_effective" json:"slot"`
	MethodCode MethodCode `gorm:"type:varchar(16);not null" json:"method_code"`

	// 时间窗口，本地时间 HH:MM，按 Timezone 解释
	EndTime      string  `gorm:"type:varchar(5);not null" json:"end_time"`
	CheckEndTime *string `gorm:"type:varchar(5)" json:"check_end_time,omitempty"`
	DaysOfWeek   string  `gorm:"type:varchar(32);not null" json:"days_of_week"` // CSV: MON,WED
	Timezone     string  `gorm:"type:varchar(64);not null" json:"timezone"`

	// 频率要求
	FrequencyUnit FrequencyUnit `gorm:"type:varchar(8);not null;default:'DAY'" json:"frequency_unit"`
	RequiredCnt   int           `gorm:"not null;default:1" json:"required_cnt"`

	// 照片认证参数
	MinFiles    int    `gorm:"not null;default:1" json:"min_files"`
	MaxFiles    int    `gorm:"not null;default:1" json:"max_files"`
	PhotoSource string `gorm:"type:varchar(16)" json:"photo_source"` // camera, album

	// GPS 认证参数
	RadiusMode RadiusMode `gorm:"type:varchar(16)" json:"radius_mode"`
	RadiusM    int        `gorm:"not null;default:0" json:"radius_m"`

	// GitHub 认证参数
	GithubRepo   string `gorm:"type:varchar(256)" json:"github_repo"`
	GithubBranch string `gorm:"type:varchar(128)" json:"github_branch"`

	// 豁免策略
	ExemptionEnabled   bool      `gorm:"not null;default:false" json:"exemption_enabled"`
	ExemptionLimitUnit LimitUnit `gorm:"type:varchar(8)" json:"exemption_limit_unit"`
	ExemptionLimitCnt  int       `gorm:"not null;default:0" json:"exemption_limit_cnt"`

	// 生效日期（含当日），活跃规则 = effective_from <= 目标日期的最新一条
	EffectiveFrom time.Time `gorm:"type:date;not null;index:idx_rules_group_slot_effective,sort:desc" json:"effective_from"`
}

// TableName 指定表名
func (VerificationRule) TableName() string {
	return "verification_rules"
}

// ScheduledOn 判断某个星期几是否在认证日程内
func (r *VerificationRule) ScheduledOn(day time.Weekday) bool {
	set, ok := ParseDaysOfWeek(r.DaysOfWeek)
	if !ok {
		return false
	}
	return set[day]
}

// CheckDeadline 清单勾选的截止时间字符串，没配单独截止时退回 EndTime
func (r *VerificationRule) CheckDeadline() string {
	if r.CheckEndTime != nil && *r.CheckEndTime != "" {
		return *r.CheckEndTime
	}
	return r.EndTime
}

// GpsLocation 规则配置的集合点（owner 管理）
type GpsLocation struct {
	BaseModel
	GroupID   int64   `gorm:"not null;index:idx_gps_locations_group_slot" json:"group_id"`
	Slot      int     `gorm:"not null;index:idx_gps_locations_group_slot" json:"slot"`
	Name      string  `gorm:"type:varchar(128);not null" json:"name"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
}

// TableName 指定表名
func (GpsLocation) TableName() string {
	return "gps_locations"
}
