package model

import "time"

// ChecklistItem 待办清单条目。创建只允许在认证日当天且早于 endTime，
// 勾选状态可以改到 checkEndTime 为止
type ChecklistItem struct {
	BaseModel
	GroupID          int64     `gorm:"not null;index:idx_checklist_items_day" json:"group_id"`
	Slot             int       `gorm:"not null;index:idx_checklist_items_day" json:"slot"`
	MemberID         int64     `gorm:"not null;index:idx_checklist_items_day" json:"member_id"`
	VerificationDate time.Time `gorm:"type:date;not null;index:idx_checklist_items_day" json:"verification_date"`

	SortOrder int        `gorm:"not null;default:0" json:"sort_order"`
	Content   string     `gorm:"type:varchar(512);not null" json:"content"`
	Checked   bool       `gorm:"not null;default:false" json:"checked"`
	CheckedAt *time.Time `gorm:"type:timestamptz" json:"checked_at,omitempty"`
}

// TableName 指定表名
func (ChecklistItem) TableName() string {
	return "checklist_items"
}
