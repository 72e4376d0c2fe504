package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"go.uber.org/zap"

	"StudyCheck/config"
	"StudyCheck/internal/model"
	"StudyCheck/internal/model/dto"
	"StudyCheck/internal/queue"
	"StudyCheck/internal/service"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/response"
	"StudyCheck/utils"
)

// SubmitGithub GitHub 认证提交。记录 claim 后异步投递核验请求，
// 投递失败不影响提交结果
// POST /v1/study-groups/:group_id/verification/slots/:slot/github
func SubmitGithub(ctx context.Context, c *app.RequestContext) {
	scope, err := parseScope(ctx, c)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	var req dto.GithubSubmissionRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, rule, err := service.Submission().SubmitGithub(
		ctx, scope.GroupID, scope.Slot, scope.MemberID,
		req.CommitRef, time.Now(),
	)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	if config.Cfg.GithubVerifyEnabled {
		msg := model.GithubVerifyMessage{
			GroupID:          record.GroupID,
			Slot:             record.Slot,
			MemberID:         record.MemberID,
			VerificationDate: utils.FormatDate(record.VerificationDate),
			Repo:             rule.GithubRepo,
			Branch:           rule.GithubBranch,
			CommitRef:        record.CommitRef,
		}
		if err := queue.PublishGithubVerify(msg); err != nil {
			logger.Logger.Warn("Failed to publish github verify message",
				zap.Int64("group_id", record.GroupID),
				zap.Int64("member_id", record.MemberID),
				zap.Error(err),
			)
		}
	}

	response.Created(ctx, c, &dto.GithubSubmissionResponse{
		RecordID:         record.RecordID,
		GroupID:          record.GroupID,
		Slot:             record.Slot,
		VerificationDate: utils.FormatDate(record.VerificationDate),
		CommitRef:        record.CommitRef,
	})
}
