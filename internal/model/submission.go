package model

import "time"

// SubmissionRecord 原始提交事件。同一 (group, slot, member, date, method)
// 只保留一条，窗口关闭前重复提交按 last-write-wins 覆盖
type SubmissionRecord struct {
	BaseModel
	RecordID int64 `gorm:"not null;uniqueIndex" json:"record_id"` // 对外暴露的 snowflake ID

	GroupID          int64      `gorm:"not null;uniqueIndex:idx_submissions_day_key" json:"group_id"`
	Slot             int        `gorm:"not null;uniqueIndex:idx_submissions_day_key" json:"slot"`
	MemberID         int64      `gorm:"not null;uniqueIndex:idx_submissions_day_key" json:"member_id"`
	VerificationDate time.Time  `gorm:"type:date;not null;uniqueIndex:idx_submissions_day_key" json:"verification_date"`
	MethodCode       MethodCode `gorm:"type:varchar(16);not null;uniqueIndex:idx_submissions_day_key" json:"method_code"`

	// 照片认证载荷
	FilePaths  string `gorm:"type:text" json:"file_paths,omitempty"` // JSON 数组
	PhotoCount int    `gorm:"not null;default:0" json:"photo_count"`

	// GPS 认证载荷
	Latitude     float64 `json:"latitude,omitempty"`
	Longitude    float64 `json:"longitude,omitempty"`
	DistanceM    float64 `json:"distance_m,omitempty"`
	WithinRadius bool    `gorm:"not null;default:false" json:"within_radius"`

	// GitHub 认证载荷
	CommitRef string `gorm:"type:varchar(256)" json:"commit_ref,omitempty"`
	// 外部轮询器确认仓库确有活动后回写
	Verified bool `gorm:"not null;default:false" json:"verified"`

	SubmittedAt time.Time `gorm:"type:timestamptz;not null" json:"submitted_at"`
}

// TableName 指定表名
func (SubmissionRecord) TableName() string {
	return "submission_records"
}
