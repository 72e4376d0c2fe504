package model

import "time"

// EvaluationRecord 每个 (group, slot, member, date) 至多一条的判定结果，
// 唯一索引是幂等性的最终保证，竞争失败方重读赢家的记录
type EvaluationRecord struct {
	BaseModel
	GroupID          int64     `gorm:"not null;uniqueIndex:idx_evaluations_day_key" json:"group_id"`
	Slot             int       `gorm:"not null;uniqueIndex:idx_evaluations_day_key" json:"slot"`
	MemberID         int64     `gorm:"not null;uniqueIndex:idx_evaluations_day_key" json:"member_id"`
	VerificationDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_evaluations_day_key" json:"verification_date"`

	Passed      bool      `gorm:"not null" json:"passed"`
	Exempted    bool      `gorm:"not null;default:false" json:"exempted"`
	EvaluatedAt time.Time `gorm:"type:timestamptz;not null" json:"evaluated_at"`
}

// TableName 指定表名
func (EvaluationRecord) TableName() string {
	return "evaluation_records"
}
