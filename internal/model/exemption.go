package model

// ExemptionUsage 豁免额度消耗。period_key 由 LimitUnit 推导：
// TOTAL -> "total"，WEEK -> "2026-W35"，MONTH -> "2026-08"。
// consumed_cnt 只通过条件 UPDATE 自增，见 service/exemption.go
type ExemptionUsage struct {
	BaseModel
	GroupID     int64  `gorm:"not null;uniqueIndex:idx_exemption_usage_key" json:"group_id"`
	Slot        int    `gorm:"not null;uniqueIndex:idx_exemption_usage_key" json:"slot"`
	MemberID    int64  `gorm:"not null;uniqueIndex:idx_exemption_usage_key" json:"member_id"`
	PeriodKey   string `gorm:"type:varchar(16);not null;uniqueIndex:idx_exemption_usage_key" json:"period_key"`
	ConsumedCnt int    `gorm:"not null;default:0" json:"consumed_cnt"`
}

// TableName 指定表名
func (ExemptionUsage) TableName() string {
	return "exemption_usages"
}
