package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/knowledge-backend/internal/platform/logger"
)

func TestPostgresDSN(t *testing.T) {
	got := PostgresDSN(Config{Host: "db", User: "kb", Password: "pw", Name: "knowledge"})
	assert.Equal(t, "postgres://kb:pw@db:5432/knowledge?sslmode=disable", got)

	assert.Equal(t, "postgres://x", PostgresDSN(Config{DSN: " postgres://x ", Host: "ignored"}))
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	assert.Equal(t, "file:knowledge.db?_foreign_keys=on", SQLiteDSN(""))
	assert.Equal(t, "file:a.db?mode=memory&_foreign_keys=on", SQLiteDSN("file:a.db?mode=memory"))
	assert.Equal(t, "file:a.db?_fk=1", SQLiteDSN("file:a.db?_fk=1"))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, gormLogger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, gormLogger.Info, ParseLogLevel("INFO"))
	assert.Equal(t, gormLogger.Warn, ParseLogLevel(""))
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	_, err := NewService(Config{Driver: "oracle"}, logger.Nop())
	require.Error(t, err)
}

func TestSQLiteServiceMigratesAndPings(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	svc, err := NewService(Config{Driver: DriverSQLite, DSN: dsn, LogLevel: "silent"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	require.NoError(t, svc.AutoMigrateAll())
	require.NoError(t, svc.Ping(context.Background()))
	assert.Equal(t, DriverSQLite, svc.Driver())

	for _, table := range []string{"datasets", "documents", "knowledges"} {
		assert.True(t, svc.DB().Migrator().HasTable(table), table)
	}
}
