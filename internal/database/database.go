package database

import (
	"fmt"

	"github.com/tatibku/backend/internal/config"
	"github.com/tatibku/backend/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode,
	)

	logLevel := gormlogger.Warn
	if cfg.App.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// Migrate runs gorm auto-migration for every model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.TahunAjaran{},
		&domain.Guru{},
		&domain.Kelas{},
		&domain.JenisPoin{},
		&domain.Siswa{},
		&domain.CatatanPoin{},
		&domain.User{},
		&domain.RefreshToken{},
		&domain.TokenBlacklist{},
	)
}
