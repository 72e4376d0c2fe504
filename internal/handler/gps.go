package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/response"
)

// SubmitGps 到场定位提交
// POST /v1/study-groups/:group_id/verification/slots/:slot/gps
func SubmitGps(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.GpsSubmissionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, locationName, err := service.Gps().SubmitGps(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		req.Latitude, req.Longitude, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Created(ctx, c, &dto.GpsSubmissionResponse{
		RecordID:         record.RecordID,
		GroupID:          record.GroupID,
		Slot:             record.Slot,
		VerificationDate: record.VerificationDate.Format("2006-01-02"),
		DistanceM:        record.DistanceM,
		LocationName:     locationName,
	})
}
