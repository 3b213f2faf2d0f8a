package psql

import (
	"context"

	"agentw/agentw/config"
	"agentw/agentw/sources/psql/models"
	"agentw/agentw/utils/logging"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	DB *gorm.DB
}

func NewDatabase(ctx context.Context, cfg config.Config) (*Database, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Credentials never reach the logs.
	logging.AppLogger.Info("connected to database",
		zap.String("url", cfg.RedactedDatabaseURL()))

	err = db.WithContext(ctx).AutoMigrate(
		&models.Wallet{},
		&models.ChatSession{},
		&models.ChatMessage{},
	)
	if err != nil {
		return nil, err
	}

	return &Database{DB: db}, nil
}

func (db *Database) Close() {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
