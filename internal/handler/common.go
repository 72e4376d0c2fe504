package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/middleware"
	"StudyCheck/pkg/errors"
	"StudyCheck/utils"
)

// pathScope 所有认证接口共享的路径三元组
type pathScope struct {
	GroupID  int64
	Slot     int
	MemberID int64
}

// parseScope 解析 group_id/slot 路径参数并取出登录成员
func parseScope(ctx context.Context, c *app.RequestContext) (*pathScope, error) {
	memberID, ok := middleware.GetMemberID(ctx, c)
	if !ok {
		return nil, errors.Unauthorized
	}

	groupID, err := strconv.ParseInt(c.Param("group_id"), 10, 64)
	if err != nil || groupID <= 0 {
		return nil, errors.GroupNotFound
	}

	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil || (slot != 1 && slot != 2) {
		return nil, errors.InvalidSlot
	}

	return &pathScope{GroupID: groupID, Slot: slot, MemberID: memberID}, nil
}

// parseDateQuery 解析日期查询参数，规范名 verificationDate，
// 兼容旧客户端的 date，缺省为 UTC 今天
func parseDateQuery(c *app.RequestContext) (time.Time, error) {
	raw := c.Query("verificationDate")
	if raw == "" {
		raw = c.Query("date")
	}
	if raw == "" {
		return utils.DateOnly(time.Now().UTC()), nil
	}
	return utils.ParseDate(raw)
}
