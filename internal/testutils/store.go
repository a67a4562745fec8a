package testutils

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/employee-tracker/internal/config"
	"github.com/employee-tracker/internal/database"
	"github.com/employee-tracker/internal/repository"
	"gorm.io/gorm"
)

// DiscardLogger возвращает логгер, который ничего не пишет
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// OpenDB открывает отдельную in-memory базу SQLite с применёнными миграциями
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DatabaseConfig{
		Driver:          config.DriverSQLite,
		DBName:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		ConnectAttempts: 1,
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(sqlDB, config.DriverSQLite, DiscardLogger()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// OpenStore возвращает хранилище поверх OpenDB
func OpenStore(t *testing.T) repository.Store {
	t.Helper()
	return repository.NewStore(OpenDB(t))
}
