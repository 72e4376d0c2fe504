package model

// GroupRole 组内角色枚举
type GroupRole string

const (
	GroupRoleOwner  GroupRole = "owner"  // 群主
	GroupRoleMember GroupRole = "member" // 普通成员
)

// StudyGroup 学习小组，成员管理由外部系统负责，这里只读
type StudyGroup struct {
	BaseModel
	Name     string `gorm:"type:varchar(128);not null" json:"name"`
	Timezone string `gorm:"type:varchar(64);not null;default:'Asia/Seoul'" json:"timezone"`
	OwnerID  int64  `gorm:"not null;index" json:"owner_id"`
}

// TableName 指定表名
func (StudyGroup) TableName() string {
	return "study_groups"
}

// GroupMember 小组成员读模型
type GroupMember struct {
	BaseModel
	GroupID  int64     `gorm:"not null;uniqueIndex:idx_group_members_group_member" json:"group_id"`
	MemberID int64     `gorm:"not null;uniqueIndex:idx_group_members_group_member" json:"member_id"`
	Role     GroupRole `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	Nickname string    `gorm:"type:varchar(64)" json:"nickname"`
}

// TableName 指定表名
func (GroupMember) TableName() string {
	return "group_members"
}
