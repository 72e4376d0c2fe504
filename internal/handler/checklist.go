package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/model"
	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/response"
	"StudyCheck/utils"
)

func toItemResponse(item *model.ChecklistItem) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ItemID:           item.ID,
		VerificationDate: utils.FormatDate(item.VerificationDate),
		SortOrder:        item.SortOrder,
		Content:          item.Content,
		Checked:          item.Checked,
	}
	if item.CheckedAt != nil {
		resp.CheckedAt = item.CheckedAt.Format(time.RFC3339)
	}
	return resp
}

// CreateChecklistItem 新增当天的清单条目
// POST /v1/study-groups/:group_id/verification/slots/:slot/checklist/items
func CreateChecklistItem(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateItemRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	var requestedDate *time.Time
	if req.VerificationDate != "" {
		date, err := utils.ParseDate(req.VerificationDate)
		if err != nil {
			response.BindError(ctx, c, err)
			return
		}
		requestedDate = &date
	}

	item, err := service.Checklist().CreateItem(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		req.Content, req.SortOrder, requestedDate, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, toItemResponse(item))
}

// ListChecklistItems 某天的清单条目，?verificationDate= 缺省为今天
// GET /v1/study-groups/:group_id/verification/slots/:slot/checklist/items
func ListChecklistItems(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	date, err := parseDateQuery(c)
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	items, err := service.Checklist().ListItems(ctx, scope.GroupID, scope.Slot, scope.MemberID, date)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	views := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		views = append(views, toItemResponse(item))
	}
	response.Success(ctx, c, views)
}

// CheckChecklistItem 勾选/取消勾选，幂等
// PUT /v1/study-groups/:group_id/verification/slots/:slot/checklist/check
func CheckChecklistItem(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CheckRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	item, err := service.Checklist().CheckItem(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		req.ItemID, req.Checked, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toItemResponse(item))
}
