package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"gstaudit/internal/category"
	"gstaudit/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Log       LogConfig
	CORS      CORSConfig
	Reference ReferenceConfig
	Analysis  AnalysisConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ReferenceConfig selects where the HSN/SAC rate reference is loaded from.
type ReferenceConfig struct {
	Source    domain.ReferenceSource `mapstructure:"source"`
	XLSXPath  string                 `mapstructure:"xlsx_path"`
	SheetName string                 `mapstructure:"sheet"`
}

// AnalysisConfig holds the fallback used for items no rule recognizes.
type AnalysisConfig struct {
	DefaultCategory string          `mapstructure:"default_category"`
	DefaultRate     decimal.Decimal `mapstructure:"default_rate"`
	Workers         int             `mapstructure:"workers"`
}

// Load reads configuration from environment variables with the GSTAUDIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTAUDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstaudit")
	v.SetDefault("db.password", "gstaudit_secret")
	v.SetDefault("db.name", "gstaudit_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 10)
	v.SetDefault("db.max_idle", 5)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "stdout")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Reference defaults: no reference table, keyword rules only
	v.SetDefault("reference.source", string(domain.ReferenceSourceNone))
	v.SetDefault("reference.xlsx_path", "")
	v.SetDefault("reference.sheet", "")

	v.SetDefault("analysis.default_category", category.RestaurantServices)
	v.SetDefault("analysis.default_rate", "5")
	v.SetDefault("analysis.workers", 4)

	envBindings := map[string]string{
		"server.port":               "GSTAUDIT_SERVER_PORT",
		"server.read_timeout":       "GSTAUDIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":      "GSTAUDIT_SERVER_WRITE_TIMEOUT",
		"server.environment":        "GSTAUDIT_SERVER_ENVIRONMENT",
		"server.max_body_bytes":     "GSTAUDIT_SERVER_MAX_BODY_BYTES",
		"db.host":                   "GSTAUDIT_DB_HOST",
		"db.port":                   "GSTAUDIT_DB_PORT",
		"db.user":                   "GSTAUDIT_DB_USER",
		"db.password":               "GSTAUDIT_DB_PASSWORD",
		"db.name":                   "GSTAUDIT_DB_NAME",
		"db.sslmode":                "GSTAUDIT_DB_SSLMODE",
		"db.max_open":               "GSTAUDIT_DB_MAX_OPEN",
		"db.max_idle":               "GSTAUDIT_DB_MAX_IDLE",
		"log.level":                 "GSTAUDIT_LOG_LEVEL",
		"log.format":                "GSTAUDIT_LOG_FORMAT",
		"log.output_path":           "GSTAUDIT_LOG_OUTPUT_PATH",
		"cors.allowed_origins":      "GSTAUDIT_CORS_ALLOWED_ORIGINS",
		"reference.source":          "GSTAUDIT_REFERENCE_SOURCE",
		"reference.xlsx_path":       "GSTAUDIT_REFERENCE_XLSX_PATH",
		"reference.sheet":           "GSTAUDIT_REFERENCE_SHEET",
		"analysis.default_category": "GSTAUDIT_ANALYSIS_DEFAULT_CATEGORY",
		"analysis.default_rate":     "GSTAUDIT_ANALYSIS_DEFAULT_RATE",
		"analysis.workers":          "GSTAUDIT_ANALYSIS_WORKERS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTAUDIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTAUDIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxBodyBytes: v.GetInt64("server.max_body_bytes"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:      v.GetString("log.level"),
		Format:     v.GetString("log.format"),
		OutputPath: v.GetString("log.output_path"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Reference = ReferenceConfig{
		Source:    domain.ReferenceSource(strings.ToLower(v.GetString("reference.source"))),
		XLSXPath:  v.GetString("reference.xlsx_path"),
		SheetName: v.GetString("reference.sheet"),
	}

	rate, err := decimal.NewFromString(strings.TrimSpace(v.GetString("analysis.default_rate")))
	if err != nil {
		return nil, fmt.Errorf("parsing analysis.default_rate: %w", err)
	}
	cfg.Analysis = AnalysisConfig{
		DefaultCategory: v.GetString("analysis.default_category"),
		DefaultRate:     rate,
		Workers:         v.GetInt("analysis.workers"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the analysis cannot run with.
func (c *Config) Validate() error {
	if !category.IsSlab(c.Analysis.DefaultRate) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidDefaultRate, c.Analysis.DefaultRate)
	}
	if strings.TrimSpace(c.Analysis.DefaultCategory) == "" {
		return fmt.Errorf("analysis.default_category must not be empty")
	}
	switch c.Reference.Source {
	case domain.ReferenceSourceNone, domain.ReferenceSourcePostgres:
	case domain.ReferenceSourceXLSX:
		if c.Reference.XLSXPath == "" {
			return fmt.Errorf("reference.xlsx_path is required when reference.source is %q", c.Reference.Source)
		}
	default:
		return fmt.Errorf("unknown reference.source %q", c.Reference.Source)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("analysis.workers must be at least 1, got %d", c.Analysis.Workers)
	}
	return nil
}
