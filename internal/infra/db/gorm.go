package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"orderapi/internal/config"
	"orderapi/internal/domain/model"
	"orderapi/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
func Connect(cfg config.DBConfig, log logger.Logger, debug bool) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(log, debug),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// sqliteは書き込みが1本
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	return gormDB, nil
}

// gormのログもslogに流す。record not found は通常の404なので出さない
func newGormLogger(log logger.Logger, debug bool) gormlogger.Interface {
	level, slogLevel := gormlogger.Warn, slog.LevelWarn
	if debug {
		level, slogLevel = gormlogger.Info, slog.LevelDebug
	}
	return gormlogger.New(slog.NewLogLogger(log.Slog().Handler(), slogLevel), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		// DSNはpgxで先に検証する（URL形式/key=value形式どちらも可）
		pgxCfg, err := pgx.ParseConfig(cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("parse postgres dsn: %w", err)
		}
		return postgres.New(postgres.Config{Conn: stdlib.OpenDB(*pgxCfg)}), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.DSN()), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Models lists every table the API owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.Category{},
		&model.Product{},
		&model.Client{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	}
}

func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func Ping(ctx context.Context, gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(gormDB *gorm.DB) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
