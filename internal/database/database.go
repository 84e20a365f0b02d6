package database

import (
	"fmt"

	"github.com/revyse/core/internal/config"
	"github.com/revyse/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.DSN,
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}

	return db, nil
}

// migrate runs GORM auto-migration for all models.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.CourseModel{},
		&models.MaterialModel{},
		&models.SummaryModel{},
		&models.FlashcardModel{},
		&models.QuizModel{},
		&models.QuizQuestionModel{},
		&models.QuizSubmissionModel{},
		&models.SubmissionAnswerModel{},
		&models.ReadingStreakModel{},
		&models.NudgeModel{},
		&models.UsageEventModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		if err := db.Exec("ALTER TABLE `materials` MODIFY COLUMN `extracted_text` LONGTEXT NULL").Error; err != nil {
			return err
		}
		if err := db.Exec("ALTER TABLE `summaries` MODIFY COLUMN `content` LONGTEXT NULL").Error; err != nil {
			return err
		}
	}

	return nil
}
