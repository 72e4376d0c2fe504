package repository

import (
	"errors"
	"fmt"
	"os"

	"gorm.io/gen"

	"StudyCheck/internal/model"
	"StudyCheck/storage/database"
)

// ========== VerificationRule 相关查询接口 ==========

// RuleQuerier 认证规则查询接口
type RuleQuerier interface {
	// GetActiveRule 查询指定日期生效的最新规则版本
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND effective_from <= @date::date
	// ORDER BY effective_from DESC, id DESC
	// LIMIT 1
	GetActiveRule(groupID int64, slot int, date string) (*gen.T, error)

	// ListByGroupAndSlot 列出槽位的全部规则版本（新版本在前）
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot
	// ORDER BY effective_from DESC, id DESC
	ListByGroupAndSlot(groupID int64, slot int) ([]*gen.T, error)

	// ListDistinctSlots 列出配置过规则的 (group_id, slot) 组合（定时任务用）
	//
	// SELECT DISTINCT group_id, slot FROM @@table
	ListDistinctSlots() ([]gen.M, error)
}

// ========== SubmissionRecord 相关查询接口 ==========

// SubmissionQuerier 提交记录查询接口
type SubmissionQuerier interface {
	// GetByScopeAndDate 查询成员某天某方式的提交记录
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND verification_date = @date::date AND method_code = @methodCode
	// LIMIT 1
	GetByScopeAndDate(groupID int64, slot int, memberID int64, date string, methodCode string) (*gen.T, error)

	// ListByGroupAndDate 查询群组某天全部提交（结算扫描用）
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND verification_date = @date::date
	ListByGroupAndDate(groupID int64, slot int, date string) ([]*gen.T, error)
}

// ========== EvaluationRecord 相关查询接口 ==========

// EvaluationQuerier 判定结果查询接口
type EvaluationQuerier interface {
	// GetByScopeAndDate 查询成员某天的判定结果
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND verification_date = @date::date
	// LIMIT 1
	GetByScopeAndDate(groupID int64, slot int, memberID int64, date string) (*gen.T, error)

	// ListByGroupAndRange 查询群组一段时间的判定结果（报表用）
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot
	//   AND verification_date >= @fromDate::date
	//   AND verification_date <= @toDate::date
	ListByGroupAndRange(groupID int64, slot int, fromDate, toDate string) ([]*gen.T, error)

	// CountPassedByMember 统计成员通过次数
	//
	// SELECT COUNT(*) FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND passed = true
	//   AND verification_date >= @fromDate::date
	//   AND verification_date <= @toDate::date
	CountPassedByMember(groupID int64, slot int, memberID int64, fromDate, toDate string) (int, error)
}

// ========== ChecklistItem 相关查询接口 ==========

// ChecklistQuerier 待办清单查询接口
type ChecklistQuerier interface {
	// ListByScopeAndDate 查询成员某天的全部清单项
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND verification_date = @date::date
	// ORDER BY sort_order, id
	ListByScopeAndDate(groupID int64, slot int, memberID int64, date string) ([]*gen.T, error)

	// CountCheckedInWindow 统计结算口径下有效的勾选数：
	// 条目在提交截止前创建，勾选在勾选截止前完成
	//
	// SELECT COUNT(*) FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND verification_date = @date::date
	//   AND created_at <= @createdBy
	//   AND checked = true AND checked_at IS NOT NULL AND checked_at <= @checkedBy
	CountCheckedInWindow(groupID int64, slot int, memberID int64, date string, createdBy, checkedBy string) (int, error)
}

// ========== ExemptionUsage 相关查询接口 ==========

// ExemptionQuerier 豁免额度查询接口
type ExemptionQuerier interface {
	// GetByPeriod 查询成员某周期的额度使用行
	//
	// SELECT * FROM @@table
	// WHERE group_id = @groupID AND slot = @slot AND member_id = @memberID
	//   AND period_key = @periodKey
	// LIMIT 1
	GetByPeriod(groupID int64, slot int, memberID int64, periodKey string) (*gen.T, error)
}

func Generate() error {
	if err := database.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	// 运行数据库迁移（确保表存在）
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migration: %w", err)
	}

	db := database.DB()
	if db == nil {
		return errors.New("database connection is nil")
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./internal/repository/query", // 生成代码的输出路径
		ModelPkgPath:      "StudyCheck/internal/model",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true, // 字段可以为 null
		FieldCoverable:    false,
		FieldSignable:     false,
		FieldWithIndexTag: false,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	// 注册现有的 model，GORM Gen 会使用这些 model 而不是生成新的
	g.ApplyBasic(
		&model.StudyGroup{},
		&model.GroupMember{},
		&model.VerificationRule{},
		&model.GpsLocation{},
		&model.ChecklistItem{},
		&model.SubmissionRecord{},
		&model.EvaluationRecord{},
		&model.ExemptionUsage{},
	)

	// 直接应用接口，GORM Gen 会根据接口中的类型自动匹配已注册的 model
	g.ApplyInterface(func(RuleQuerier) {}, &model.VerificationRule{})
	g.ApplyInterface(func(SubmissionQuerier) {}, &model.SubmissionRecord{})
	g.ApplyInterface(func(EvaluationQuerier) {}, &model.EvaluationRecord{})
	g.ApplyInterface(func(ChecklistQuerier) {}, &model.ChecklistItem{})
	g.ApplyInterface(func(ExemptionQuerier) {}, &model.ExemptionUsage{})

	g.Execute()

	return nil
}

func RunGenerate() {
	if err := Generate(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate code: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Code generation completed successfully!")
}
