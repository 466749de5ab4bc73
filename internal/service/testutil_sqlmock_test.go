package service

import (
	"database/sql"
	"os"
	"testing"

	"redbook-go/internal/config"
	"redbook-go/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	_ = logger.Init("error", "console", "stdout", "")
	config.Set(&config.Config{
		App: config.AppConfig{Name: "redbook-go-test"},
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	})
	os.Exit(m.Run())
}

// newMockDB 用 go-sqlmock 创建一个可被 GORM 使用的 *gorm.DB
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqldb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqldb,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	if err != nil {
		_ = sqldb.Close()
		t.Fatalf("gorm.Open: %v", err)
	}

	return db, mock, sqldb
}
