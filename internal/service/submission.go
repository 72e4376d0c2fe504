package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"StudyCheck/config"
	"StudyCheck/internal/cache"
	"StudyCheck/internal/model"
	"StudyCheck/pkg/errors"
	"StudyCheck/pkg/logger"
	"StudyCheck/pkg/metrics"
	"StudyCheck/pkg/snowflake"
	"StudyCheck/storage/database"
	"StudyCheck/utils"
)

type SubmissionService struct{}

var (
	submissionService *SubmissionService
	submissionOnce    sync.Once
)

func Submission() *SubmissionService {
	submissionOnce.Do(func() {
		submissionService = &SubmissionService{}
	})

	return submissionService
}

// prepare 提交公共前置：成员校验、活跃规则、方式匹配、窗口判断。
// 返回规则与认证日（UTC 零点形态）
func (s *SubmissionService) prepare(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	method model.MethodCode,
	now time.Time,
) (*model.VerificationRule, time.Time, error) {
	if _, err := Group().RequireMember(ctx, groupID, memberID); err != nil {
		return nil, time.Time{}, err
	}

	// 认证日以规则时区的"今天"为准，先用小组槽位任取一条规则确定时区
	probe, err := Rule().ActiveRule(ctx, groupID, slot, utils.DateOnly(now.UTC()))
	if err != nil {
		return nil, time.Time{}, err
	}

	date, err := LocalToday(probe, now)
	if err != nil {
		return nil, time.Time{}, errors.InvalidTimezone
	}

	// 跨日边界上 UTC 今天和本地今天可能不同，按本地日期重取活跃规则
	rule := probe
	if !date.Equal(utils.DateOnly(now.UTC())) {
		rule, err = Rule().ActiveRule(ctx, groupID, slot, date)
		if err != nil {
			return nil, time.Time{}, err
		}
	}

	if rule.MethodCode != method {
		return nil, time.Time{}, errors.MethodMismatch
	}

	within, err := IsWithinSubmissionWindow(rule, date, now)
	if err != nil {
		return nil, time.Time{}, errors.InvalidTimezone
	}
	if !within {
		metrics.RecordSubmission(ctx, string(method), false)
		return nil, time.Time{}, errors.OutOfWindow
	}

	return rule, date, nil
}

// upsert 以 (group, slot, member, date, method) 为键写入提交记录，
// 窗口内重复提交 last-write-wins。Redis 锁只是把并发覆盖串行化，
// 唯一索引才是正确性保证
func (s *SubmissionService) upsert(ctx context.Context, record *model.SubmissionRecord) error {
	lockKey := cache.SubmissionLockKey(record.GroupID, record.Slot, record.MemberID, utils.FormatDate(record.VerificationDate))
	locked, err := cache.TryLock(ctx, lockKey, 10*time.Second)
	if err != nil {
		logger.Logger.Warn("Failed to acquire submission lock", zap.Error(err))
	} else if !locked {
		return errors.SubmissionLocked
	} else {
		defer func() {
			if err := cache.Unlock(ctx, lockKey); err != nil {
				logger.Logger.Warn("Failed to release submission lock", zap.Error(err))
			}
		}()
	}

	db := database.DB().WithContext(ctx)

	err = db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "group_id"}, {Name: "slot"}, {Name: "member_id"},
			{Name: "verification_date"}, {Name: "method_code"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"record_id", "file_paths", "photo_count",
			"latitude", "longitude", "distance_m", "within_radius",
			"commit_ref", "verified", "submitted_at", "updated_at",
		}),
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert submission record: %w", err)
	}

	return nil
}

// SubmitPhoto 照片认证提交。文件数必须落在 [minFiles, maxFiles]，
// 文件落盘后才写记录，重复提交覆盖旧记录（旧文件保留，由离线清理回收）
func (s *SubmissionService) SubmitPhoto(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	files []*multipart.FileHeader,
	now time.Time,
) (*model.SubmissionRecord, error) {
	rule, date, err := s.prepare(ctx, groupID, slot, memberID, model.MethodPhoto, now)
	if err != nil {
		return nil, err
	}

	if len(files) < rule.MinFiles || len(files) > rule.MaxFiles {
		metrics.RecordSubmission(ctx, string(model.MethodPhoto), false)
		return nil, errors.InvalidFileCount
	}
	for _, file := range files {
		if file.Size > config.Cfg.UploadMaxSize {
			metrics.RecordSubmission(ctx, string(model.MethodPhoto), false)
			return nil, errors.FileTooLarge
		}
	}

	paths, err := s.saveFiles(groupID, slot, memberID, date, files)
	if err != nil {
		return nil, err
	}

	pathsJSON, err := json.Marshal(paths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal file paths: %w", err)
	}

	recordID, err := snowflake.NextID(snowflake.GeneratorTypeRecord)
	if err != nil {
		return nil, fmt.Errorf("failed to generate record ID: %w", err)
	}

	record := &model.SubmissionRecord{
		RecordID:         recordID,
		GroupID:          groupID,
		Slot:             slot,
		MemberID:         memberID,
		VerificationDate: date,
		MethodCode:       model.MethodPhoto,
		FilePaths:        string(pathsJSON),
		PhotoCount:       len(paths),
		SubmittedAt:      now.UTC(),
	}

	if err := s.upsert(ctx, record); err != nil {
		return nil, err
	}

	metrics.RecordSubmission(ctx, string(model.MethodPhoto), true)
	logger.Logger.Info("Photo submission accepted",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.Int64("member_id", memberID),
		zap.String("date", utils.FormatDate(date)),
		zap.Int("photo_count", len(paths)),
	)

	return record, nil
}

// saveFiles 落盘上传文件，文件名用 UUID 防止覆盖与路径猜测
func (s *SubmissionService) saveFiles(
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
	files []*multipart.FileHeader,
) ([]string, error) {
	dir := filepath.Join(
		config.Cfg.UploadDir,
		fmt.Sprintf("%d", groupID),
		fmt.Sprintf("%d", slot),
		utils.FormatDate(date),
		fmt.Sprintf("%d", memberID),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		ext := strings.ToLower(filepath.Ext(file.Filename))
		name := uuid.New().String() + ext
		dst := filepath.Join(dir, name)

		if err := saveMultipartFile(file, dst); err != nil {
			return nil, fmt.Errorf("failed to save uploaded file: %w", err)
		}
		paths = append(paths, dst)
	}

	return paths, nil
}

func saveMultipartFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.ReadFrom(src); err != nil {
		return err
	}
	return nil
}

// SubmitGithub GitHub 认证提交。这里只记录 claim，
// 实际仓库活动由外部轮询器异步核验后回写 verified
func (s *SubmissionService) SubmitGithub(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	commitRef string,
	now time.Time,
) (*model.SubmissionRecord, *model.VerificationRule, error) {
	rule, date, err := s.prepare(ctx, groupID, slot, memberID, model.MethodGithub, now)
	if err != nil {
		return nil, nil, err
	}

	commitRef = strings.TrimSpace(commitRef)
	if commitRef == "" || len(commitRef) > 256 {
		metrics.RecordSubmission(ctx, string(model.MethodGithub), false)
		return nil, nil, errors.InvalidCommitRef
	}

	recordID, err := snowflake.NextID(snowflake.GeneratorTypeRecord)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate record ID: %w", err)
	}

	record := &model.SubmissionRecord{
		RecordID:         recordID,
		GroupID:          groupID,
		Slot:             slot,
		MemberID:         memberID,
		VerificationDate: date,
		MethodCode:       model.MethodGithub,
		CommitRef:        commitRef,
		SubmittedAt:      now.UTC(),
	}

	if err := s.upsert(ctx, record); err != nil {
		return nil, nil, err
	}

	metrics.RecordSubmission(ctx, string(model.MethodGithub), true)
	logger.Logger.Info("GitHub submission accepted",
		zap.Int64("group_id", groupID),
		zap.Int("slot", slot),
		zap.Int64("member_id", memberID),
		zap.String("date", utils.FormatDate(date)),
		zap.String("commit_ref", commitRef),
	)

	return record, rule, nil
}

// MarkGithubVerified 外部轮询器确认仓库活动后回写
func (s *SubmissionService) MarkGithubVerified(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
) error {
	db := database.DB().WithContext(ctx)

	result := db.Model(&model.SubmissionRecord{}).
		Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ? AND method_code = ?",
			groupID, slot, memberID, date, model.MethodGithub).
		Update("verified", true)
	if result.Error != nil {
		return fmt.Errorf("failed to mark github submission verified: %w", result.Error)
	}
	return nil
}

// FindSubmission 读取某天某方式的提交记录，不存在时返回 (nil, nil)
func (s *SubmissionService) FindSubmission(
	ctx context.Context,
	groupID int64,
	slot int,
	memberID int64,
	date time.Time,
	method model.MethodCode,
) (*model.SubmissionRecord, error) {
	db := database.DB().WithContext(ctx)

	var record model.SubmissionRecord
	err := db.Where("group_id = ? AND slot = ? AND member_id = ? AND verification_date = ? AND method_code = ?",
		groupID, slot, memberID, date, method).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query submission record: %w", err)
	}
	return &record, nil
}
