package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/response"
	"StudyCheck/utils"
)

// GetResult 查询某天的判定结果。?verificationDate= 缺省今天，
// ?memberId= 缺省查自己，窗口未关返回 NOT_YET_EVALUABLE
// GET /v1/study-groups/:group_id/verification/slots/:slot/result
func GetResult(ctx context.Context, c *app.RequestContext) {
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

	targetMemberID := scope.MemberID
	if raw := c.Query("memberId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			response.BindError(ctx, c, err)
			return
		}
		targetMemberID = id
	}

	record, err := service.Evaluation().GetResult(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		targetMemberID, date, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, &dto.ResultResponse{
		GroupID:          record.GroupID,
		Slot:             record.Slot,
		MemberID:         record.MemberID,
		VerificationDate: utils.FormatDate(record.VerificationDate),
		Passed:           record.Passed,
		Exempted:         record.Exempted,
		EvaluatedAt:      record.EvaluatedAt.Format(time.RFC3339),
	})
}

// GetReport 期间出勤报表
// GET /v1/study-groups/:group_id/verification/slots/:slot/report?start=&end=
func GetReport(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	start, err := utils.ParseDate(c.Query("start"))
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}
	end, err := utils.ParseDate(c.Query("end"))
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	report, err := service.Report().BuildReport(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		start, end, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, report)
}
