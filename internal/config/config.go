package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Configはアプリ全体の設定
type Config struct {
	Env             string        // development/production
	Port            string        // サーバーポート（8080）
	ExposeErrors    bool          // 500の本文に生のエラーを出すか
	ShutdownTimeout time.Duration // graceful shutdownの猶予

	DB  DBConfig
	Log LogConfig
}

type DBConfig struct {
	Driver      string // postgres / sqlite
	URL         string // DATABASE_URL（最優先）
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

type LogConfig struct {
	Level  string
	Format string
}

// IsDevelopment reports whether swagger and detailed errors are enabled.
func (c Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// DSN builds the connection string for the configured driver.
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Loadは.env（あれば）と環境変数から設定を読む
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// .envは任意。無ければ環境変数だけで動く
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file %s: %w", f, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	env := strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV")))

	exposeErrors := env == EnvDevelopment
	if v.IsSet("APP_EXPOSE_ERRORS") {
		exposeErrors = v.GetBool("APP_EXPOSE_ERRORS")
	}

	cfg := Config{
		Env:             env,
		Port:            strings.TrimPrefix(v.GetString("APP_PORT"), ":"),
		ExposeErrors:    exposeErrors,
		ShutdownTimeout: v.GetDuration("APP_SHUTDOWN_TIMEOUT"),
		DB: DBConfig{
			Driver:      strings.ToLower(v.GetString("DB_DRIVER")),
			URL:         v.GetString("DATABASE_URL"),
			Host:        v.GetString("POSTGRES_HOST"),
			Port:        v.GetInt("POSTGRES_PORT"),
			User:        v.GetString("POSTGRES_USER"),
			Password:    v.GetString("POSTGRES_PASSWORD"),
			Name:        v.GetString("POSTGRES_DB"),
			SSLMode:     v.GetString("POSTGRES_SSLMODE"),
			SQLitePath:  v.GetString("SQLITE_PATH"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_SHUTDOWN_TIMEOUT", 10*time.Second)

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "orders")
	v.SetDefault("POSTGRES_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "orders.db")
	v.SetDefault("DB_AUTO_MIGRATE", true)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

func (c Config) validate() error {
	//必須チェック
	if c.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.URL == "" && (c.DB.Host == "" || c.DB.Name == "") {
			return fmt.Errorf("DATABASE_URL or POSTGRES_HOST and POSTGRES_DB are required")
		}
	case DriverSQLite:
		if c.DB.URL == "" && c.DB.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DB.Driver)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
