package database

import (
	"fmt"
	"log/slog"
	"time"

	"listinghub/internal/catalog"
	"listinghub/internal/config"
	"listinghub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected")
	return nil
}

// Migrate runs AutoMigrate for the shared models plus one item table per
// registered category.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Review{},
		&models.ReviewReport{},
		&models.Rating{},
		&models.UpdateRequest{},
		&models.Attachment{},
		&models.SystemLog{},
	); err != nil {
		return err
	}

	for _, cat := range catalog.All() {
		if err := db.Table(cat.Table).AutoMigrate(&models.Item{}); err != nil {
			return fmt.Errorf("migrate %s: %w", cat.Table, err)
		}
	}
	return nil
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
