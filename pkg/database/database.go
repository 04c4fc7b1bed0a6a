package database

import (
	"fmt"
	"hr_learning_backend/internal/config"
	"hr_learning_backend/internal/model"
	applog "hr_learning_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=UTC",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	applog.Log.Info("Database connection established", zap.String("host", cfg.Host), zap.String("db", cfg.DBName))
	return db, nil
}

// Models 需要自动迁移的全部表
func Models() []interface{} {
	return []interface{}{
		&model.Employee{},
		&model.Course{},
		&model.CourseProgress{},
		&model.LearningActivity{},
		&model.PracticeQuizResult{},
		&model.GeneratedQuiz{},
		&model.QuizAttempt{},
		&model.SessionAttendance{},
		&model.MeetingParticipant{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")

	// 空库时写入一门示例课程，便于联调
	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count == 0 {
		sample := &model.Course{
			Title:                   "新员工入职培训",
			Description:             "公司制度与信息安全基础",
			CompletionDurationValue: 2,
			CompletionDurationUnit:  model.DurationWeeks,
			QualificationScore:      80,
			Lessons: []model.Lesson{
				{
					Title: "公司制度",
					Order: 1,
					Materials: []model.QuizMaterial{
						{ID: "handbook", Order: 1, Type: model.MaterialPDF, Title: "员工手册", Content: "考勤、休假与报销流程说明。"},
					},
				},
				{
					Title: "信息安全",
					Order: 2,
					Materials: []model.QuizMaterial{
						{ID: "security-intro", Order: 1, Type: model.MaterialYouTube, Title: "信息安全入门", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"},
					},
				},
			},
			AssessmentQuestions: []model.AssessmentQuestion{
				{ID: "q1", LessonTitle: "公司制度", Question: "哪些事项需要提前审批？", Options: []string{"休假", "报销", "午餐"}, Marks: 5, CorrectAnswers: []string{"休假", "报销"}},
				{ID: "q2", LessonTitle: "信息安全", Question: "收到可疑邮件应当？", Options: []string{"直接打开附件", "上报安全团队"}, Marks: 5, CorrectAnswers: []string{"上报安全团队"}},
			},
		}
		if err := db.Create(sample).Error; err != nil {
			applog.Log.Warn("Failed to seed sample course", zap.Error(err))
		}
	}
	return nil
}
