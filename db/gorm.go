package db

import (
	"fmt"
	"time"

	"wavefm/config"
	"wavefm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectGorm opens the GORM database handle. The handle is returned to the
// caller and injected into repositories; there is no package-level singleton.
func ConnectGorm(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database with GORM: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logger.Info("Successfully connected to the database with GORM")
	return gdb, nil
}

// CloseGorm closes the underlying connection pool of a GORM handle.
func CloseGorm(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// AutoMigrateModels migrates the given model structs.
func AutoMigrateModels(gdb *gorm.DB, models ...interface{}) error {
	if gdb == nil {
		return fmt.Errorf("GORM database not initialized")
	}

	if err := gdb.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}

	logger.Info("Models migrated successfully with GORM")
	return nil
}
