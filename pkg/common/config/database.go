package config

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const mysqlParams = "charset=utf8mb4&parseTime=True&loc=Local"

// Dialector 根据 DATABASE_URL 的 scheme 选择 GORM 驱动
//
//	sqlite://path/to/file.db
//	postgres://user:pw@host:5432/db?sslmode=disable
//	mysql://user:pw@tcp(host:3306)/db
func Dialector(url string) (gorm.Dialector, error) {
	switch {
	case strings.HasPrefix(url, "sqlite://"):
		return sqlite.Open(strings.TrimPrefix(url, "sqlite://")), nil
	case strings.HasPrefix(url, "file:"):
		return sqlite.Open(url), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return postgres.Open(url), nil
	case strings.HasPrefix(url, "mysql://"):
		return mysql.Open(mysqlDSN(strings.TrimPrefix(url, "mysql://"))), nil
	default:
		return nil, fmt.Errorf("unsupported database url scheme: %q", url)
	}
}

// mysqlDSN 确保时间列解析为 time.Time
func mysqlDSN(dsn string) string {
	if !strings.Contains(dsn, "?") {
		return dsn + "?" + mysqlParams
	}
	if !strings.Contains(dsn, "parseTime=") {
		return dsn + "&parseTime=True"
	}
	return dsn
}

func (c *Config) InitDB() (*gorm.DB, error) {
	dialector, err := Dialector(c.Database.URL)
	if err != nil {
		return nil, err
	}

	gormConfig := &gorm.Config{TranslateError: true}
	switch c.Database.LogLevel {
	case "silent":
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	case "error":
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	case "warn":
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	case "info":
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	if c.Database.MinPoolSize > 0 {
		sqlDB.SetMaxIdleConns(c.Database.MinPoolSize)
	}
	if c.Database.MaxPoolSize > 0 {
		sqlDB.SetMaxOpenConns(c.Database.MaxPoolSize)
	}

	return db, nil
}
