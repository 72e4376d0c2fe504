package dto

// CreateRuleRequest 创建规则请求，methodCode 接受旧别名，入库前规整为枚举
type CreateRuleRequest struct {
	MethodCode   string   `json:"methodCode" vd:"len($)>0"`
	EndTime      string   `json:"endTime" vd:"len($)>0"` // HH:MM
	CheckEndTime *string  `json:"checkEndTime,omitempty"`
	DaysOfWeek   []string `json:"daysOfWeek" vd:"len($)>0"`
	Timezone     string   `json:"timezone,omitempty"` // 缺省继承小组时区

	FrequencyUnit string `json:"frequencyUnit,omitempty"` // DAY, WEEK
	RequiredCnt   int    `json:"requiredCnt,omitempty"`

	MinFiles    int    `json:"minFiles,omitempty"`
	MaxFiles    int    `json:"maxFiles,omitempty"`
	PhotoSource string `json:"photoSource,omitempty"`

	RadiusMode string `json:"radiusMode,omitempty"`
	RadiusM    int    `json:"radiusM,omitempty"`

	GithubRepo   string `json:"githubRepo,omitempty"`
	GithubBranch string `json:"githubBranch,omitempty"`

	ExemptionEnabled   bool   `json:"exemptionEnabled,omitempty"`
	ExemptionLimitUnit string `json:"exemptionLimitUnit,omitempty"`
	ExemptionLimitCnt  int    `json:"exemptionLimitCnt,omitempty"`

	EffectiveFrom string `json:"effectiveFrom,omitempty"` // 2006-01-02，缺省为今天
}

// RuleResponse 规则视图
type RuleResponse struct {
	RuleID        int64    `json:"ruleId"`
	GroupID       int64    `json:"groupId"`
	Slot          int      `json:"slot"`
	MethodCode    string   `json:"methodCode"`
	EndTime       string   `json:"endTime"`
	CheckEndTime  *string  `json:"checkEndTime,omitempty"`
	DaysOfWeek    []string `json:"daysOfWeek"`
	Timezone      string   `json:"timezone"`
	FrequencyUnit string   `json:"frequencyUnit"`
	RequiredCnt   int      `json:"requiredCnt"`
	EffectiveFrom string   `json:"effectiveFrom"`

	ExemptionEnabled   bool   `json:"exemptionEnabled"`
	ExemptionLimitUnit string `json:"exemptionLimitUnit,omitempty"`
	ExemptionLimitCnt  int    `json:"exemptionLimitCnt"`
}

// CreateLocationRequest 新增 GPS 集合点请求（owner only）
type CreateLocationRequest struct {
	Name      string  `json:"name" vd:"len($)>0"`
	Latitude  float64 `json:"latitude" vd:"$>=-90 && $<=90"`
	Longitude float64 `json:"longitude" vd:"$>=-180 && $<=180"`
}

// LocationResponse 集合点视图
type LocationResponse struct {
	LocationID int64   `json:"locationId"`
	Name       string  `json:"name"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}
