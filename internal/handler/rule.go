package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/response"
)

// CreateRule 创建规则（追加新版本，owner only）
// POST /v1/study-groups/:group_id/verification/slots/:slot/rules
func CreateRule(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateRuleRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	rule, err := service.Rule().CreateRule(ctx, scope.GroupID, scope.Slot, scope.MemberID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, service.ToRuleResponse(rule))
}

// ListRules 列出规则版本历史
// GET /v1/study-groups/:group_id/verification/slots/:slot/rules
func ListRules(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	rules, err := service.Rule().ListRules(ctx, scope.GroupID, scope.Slot, scope.MemberID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	views := make([]*dto.RuleResponse, 0, len(rules))
	for _, rule := range rules {
		views = append(views, service.ToRuleResponse(rule))
	}
	response.Success(ctx, c, views)
}

// AddGpsLocation 新增 GPS 集合点（owner only）
// POST /v1/study-groups/:group_id/verification/slots/:slot/gps/locations
func AddGpsLocation(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.CreateLocationRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	location, err := service.Rule().AddLocation(ctx, scope.GroupID, scope.Slot, scope.MemberID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, &dto.LocationResponse{
		LocationID: location.ID,
		Name:       location.Name,
		Latitude:   location.Latitude,
		Longitude:  location.Longitude,
	})
}

// ListGpsLocations 集合点列表
// GET /v1/study-groups/:group_id/verification/slots/:slot/gps/locations
func ListGpsLocations(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	locations, err := service.Rule().ListLocations(ctx, scope.GroupID, scope.Slot, scope.MemberID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	views := make([]*dto.LocationResponse, 0, len(locations))
	for _, location := range locations {
		views = append(views, &dto.LocationResponse{
			LocationID: location.ID,
			Name:       location.Name,
			Latitude:   location.Latitude,
			Longitude:  location.Longitude,
		})
	}
	response.Success(ctx, c, views)
}
