package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/response"
	"StudyCheck/utils"
)

// SubmitPhoto 照片认证提交，multipart 字段名 files
// POST /v1/study-groups/:group_id/verification/slots/:slot/photo
func SubmitPhoto(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.BindError(ctx, c, err)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.Error(ctx, c, errors.InvalidFileCount)
		return
	}

	record, err := service.Submission().SubmitPhoto(ctx, scope.GroupID, scope.Slot, scope.MemberID, files, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var paths []string
	if err := json.Unmarshal([]byte(record.FilePaths), &paths); err != nil {
		paths = nil
	}

	response.Created(ctx, c, &dto.PhotoSubmissionResponse{
		RecordID:         record.RecordID,
		GroupID:          record.GroupID,
		Slot:             record.Slot,
		VerificationDate: utils.FormatDate(record.VerificationDate),
		PhotoCount:       record.PhotoCount,
		FilePaths:        paths,
	})
}
