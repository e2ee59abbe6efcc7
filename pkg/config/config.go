package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

type Config struct {
	Env         string
	Port        int
	EnableDocs  bool
	App         AppConfig
	Database    DatabaseConfig
	Admin       AdminConfig
	CORS        CORSConfig
	Log         LogConfig
	Aggregation AggregationConfig
}

// AppConfig carries display metadata for the panel.
type AppConfig struct {
	Title       string
	Description string
	Version     string
}

type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	QueryTimeout time.Duration
}

// AdminConfig holds the single basic-auth credential. PasswordHash, when set, takes
// precedence over the plain Password.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AggregationConfig tunes the read-model builders.
type AggregationConfig struct {
	PageSize             int
	MaxPageSize          int
	LookupConcurrency    int
	ProgressStudentLimit int
	ProgressRowLimit     int
	RecentSessions       int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.EnableDocs = v.GetBool("ENABLE_DOCS")

	cfg.App = AppConfig{
		Title:       v.GetString("APP_TITLE"),
		Description: v.GetString("APP_DESCRIPTION"),
		Version:     v.GetString("APP_VERSION"),
	}

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		URL:          v.GetString("DATABASE_URL"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
		QueryTimeout: parseDuration(v.GetString("DB_QUERY_TIMEOUT"), 5*time.Second),
	}
	if cfg.Database.Driver != DriverPgx {
		cfg.Database.Driver = DriverPostgres
	}

	cfg.Admin = AdminConfig{
		Username:     v.GetString("ADMIN_USERNAME"),
		Password:     v.GetString("ADMIN_PASSWORD"),
		PasswordHash: v.GetString("ADMIN_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Aggregation = AggregationConfig{
		PageSize:             positiveOr(v.GetInt("PAGE_SIZE"), 20),
		MaxPageSize:          positiveOr(v.GetInt("MAX_PAGE_SIZE"), 100),
		LookupConcurrency:    positiveOr(v.GetInt("LOOKUP_CONCURRENCY"), 8),
		ProgressStudentLimit: positiveOr(v.GetInt("PROGRESS_STUDENT_LIMIT"), 100),
		ProgressRowLimit:     v.GetInt("PROGRESS_ROW_LIMIT"),
		RecentSessions:       positiveOr(v.GetInt("STATISTICS_RECENT_SESSIONS"), 10),
	}
	if cfg.Aggregation.ProgressRowLimit < 0 {
		cfg.Aggregation.ProgressRowLimit = 0
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("ENABLE_DOCS", true)

	v.SetDefault("APP_TITLE", "Learning Assistant Admin Panel")
	v.SetDefault("APP_DESCRIPTION", "Admin panel for monitoring the learning Telegram bot")
	v.SetDefault("APP_VERSION", "1.0.0")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_QUERY_TIMEOUT", "5s")

	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("ADMIN_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PAGE_SIZE", 20)
	v.SetDefault("MAX_PAGE_SIZE", 100)
	v.SetDefault("LOOKUP_CONCURRENCY", 8)
	v.SetDefault("PROGRESS_STUDENT_LIMIT", 100)
	v.SetDefault("PROGRESS_ROW_LIMIT", 0)
	v.SetDefault("STATISTICS_RECENT_SESSIONS", 10)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

// viper reports a missing explicit config file as a plain fs error rather than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
