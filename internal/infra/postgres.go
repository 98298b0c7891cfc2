package infra

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wayfarer/internal/config"
	"wayfarer/internal/models/db_models"
)

func InitPostgresql(cfg *config.Config) (*gorm.DB, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required")
	}

	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	connectionPool, err := gorm.Open(postgres.Open(cfg.Database.URL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if cfg.Database.AutoMigrate {
		if err := Migrate(connectionPool); err != nil {
			return nil, err
		}
	}

	return connectionPool, nil
}

// Migrate enables pgvector and creates the trip and profile tables.
func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("enable pgvector: %w", err)
	}
	if err := db.AutoMigrate(&db_models.Profile{}, &db_models.Trip{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Error("Error getting database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		zap.L().Error("Error closing database connection", zap.Error(err))
	} else {
		zap.L().Info("PostgreSQL database connection closed successfully")
	}
}
