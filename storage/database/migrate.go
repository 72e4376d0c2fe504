package database

import (
	"StudyCheck/internal/model"
	"StudyCheck/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Migrate 运行数据库迁移，创建所有表
func Migrate() error {
	db := DB()
	if db == nil {
		return gorm.ErrInvalidDB
	}

	logger.Logger.Info("Starting database migration...")

	// 迁移所有模型
	err := db.AutoMigrate(
		&model.StudyGroup{},
		&model.GroupMember{},
		&model.VerificationRule{},
		&model.GpsLocation{},
		&model.SubmissionRecord{},
		&model.ChecklistItem{},
		&model.EvaluationRecord{},
		&model.ExemptionUsage{},
	)

	if err != nil {
		logger.Logger.Error("Database migration failed", zap.Error(err))
		return err
	}

	logger.Logger.Info("Database migration completed successfully")
	return nil
}
