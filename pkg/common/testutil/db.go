// Package testutil 为测试创建临时数据库
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"yelpcamp/pkg/common/config"
	campmodel "yelpcamp/pkg/core/campground/model"
)

// OpenDB 在 t.TempDir 中返回已迁移的 sqlite 数据库
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := config.Default()
	cfg.Database.URL = "sqlite://" + filepath.Join(t.TempDir(), "test.db")
	cfg.Database.LogLevel = "silent"
	cfg.Database.MaxPoolSize = 1

	db, err := cfg.InitDB()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := campmodel.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
