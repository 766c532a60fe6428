package db

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"orderapi/internal/config"
	"orderapi/internal/domain/model"
	"orderapi/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLiteMigrateAndPing(t *testing.T) {
	cfg := config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "orders.db"),
	}

	gormDB, err := Connect(cfg, logger.Nop(), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gormDB) })

	require.NoError(t, Migrate(gormDB))
	require.NoError(t, Ping(context.Background(), gormDB))

	for _, table := range []string{"categories", "products", "clients", "orders", "order_items", "audit_logs"} {
		assert.True(t, gormDB.Migrator().HasTable(table), table)
	}
	assert.True(t, gormDB.Migrator().HasColumn("categories", "is_active"))
	assert.True(t, gormDB.Migrator().HasColumn("categories", "deleted_at"))
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(config.DBConfig{Driver: "oracle"}, logger.Nop(), false)
	assert.ErrorContains(t, err, "unsupported db driver")
}

func TestConnect_InvalidPostgresDSN(t *testing.T) {
	_, err := Connect(config.DBConfig{Driver: config.DriverPostgres, URL: "host=localhost port=notaport"}, logger.Nop(), false)
	assert.ErrorContains(t, err, "parse postgres dsn")
}

func TestConnect_RecordNotFoundIsNotLogged(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewSlogLogger(logger.Options{Level: "debug", Output: &buf})

	gormDB, err := Connect(config.DBConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "orders.db"),
	}, log, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(gormDB) })
	require.NoError(t, Migrate(gormDB))

	var c model.Category
	require.Error(t, gormDB.First(&c, 999).Error)
	assert.NotContains(t, buf.String(), "record not found")

	// それ以外のエラーは slog 側に出る
	require.Error(t, gormDB.Table("missing_table").First(&c).Error)
	assert.Contains(t, buf.String(), "missing_table")
}
