package service

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/storage/database"
)

type GroupService struct{}

var (
	groupService *GroupService
	groupOnce    sync.Once
)

func Group() *GroupService {
	groupOnce.Do(func() {
		groupService = &GroupService{}
	})

	return groupService
}

// GetGroup 读取小组，小组与成员由外部系统同步进来，这里只读
func (s *GroupService) GetGroup(ctx context.Context, groupID int64) (*model.StudyGroup, error) {
	db := database.DB().WithContext(ctx)

	var group model.StudyGroup
	if err := db.Where("id = ?", groupID).First(&group).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.GroupNotFound
		}
		return nil, fmt.Errorf("failed to query study group: %w", err)
	}
	return &group, nil
}

// RequireMember 校验成员身份，非成员返回 NotGroupMember
func (s *GroupService) RequireMember(ctx context.Context, groupID, memberID int64) (*model.GroupMember, error) {
	db := database.DB().WithContext(ctx)

	var member model.GroupMember
	err := db.Where("group_id = ? AND member_id = ?", groupID, memberID).First(&member).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotGroupMember
		}
		return nil, fmt.Errorf("failed to query group member: %w", err)
	}
	return &member, nil
}

// RequireOwner 规则与集合点管理只允许 owner 操作
func (s *GroupService) RequireOwner(ctx context.Context, groupID, memberID int64) error {
	member, err := s.RequireMember(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if member.Role != model.GroupRoleOwner {
		return errors.NotGroupOwner
	}
	return nil
}

// ListMembers 报表按成员维度聚合时使用
func (s *GroupService) ListMembers(ctx context.Context, groupID int64) ([]*model.GroupMember, error) {
	db := database.DB().WithContext(ctx)

	var members []*model.GroupMember
	if err := db.Where("group_id = ?", groupID).
		Order("role DESC, member_id ASC").
		Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return members, nil
}
