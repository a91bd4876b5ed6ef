package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	pkglogger "github.com/cardinal-wishlist/wishlist-backend/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Config application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Redis     RedisConfig     `yaml:"redis"`
	Storage   StorageConfig   `yaml:"storage"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Scraper   ScraperConfig   `yaml:"scraper"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port int    `yaml:"port"`
	Mode string `yaml:"mode"` // local, development, production
}

// DatabaseConfig database settings; URL takes precedence over the individual parts
type DatabaseConfig struct {
	Driver          string `yaml:"driver"` // postgres | mysql
	URL             string `yaml:"url"`
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	SSLMode         string `yaml:"sslmode"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	LogLevel        string `yaml:"log_level"`         // silent, error, warn, info
}

// JWTConfig token settings (seconds)
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"`
	RefreshIn int    `yaml:"refresh_in"`
}

// RedisConfig Redis settings, used for rate limiting only
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// StorageConfig S3 compatible object storage
type StorageConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
	MaxUploadMB     int    `yaml:"max_upload_mb"`
}

// CORSConfig comma separated origins
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// RateLimitConfig requests per minute per client IP
type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// ScraperConfig product page scraper
type ScraperConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Load reads the YAML file at path (optional) and applies env overrides
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// 설정 파일이 없으면 기본값 + 환경변수만 사용
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8000, Mode: "local"},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "wishlist",
			SSLMode:         "disable",
			MaxIdleConns:    5,
			MaxOpenConns:    25,
			ConnMaxLifetime: 300,
			LogLevel:        "warn",
		},
		JWT:       JWTConfig{ExpiresIn: 60 * 60 * 24, RefreshIn: 60 * 60 * 24 * 7},
		Redis:     RedisConfig{Host: "localhost", Port: 6379, PoolSize: 10},
		Storage:   StorageConfig{Region: "us-east-1", MaxUploadMB: 10},
		CORS:      CORSConfig{AllowOrigins: "http://localhost:3000,http://localhost:8081,http://localhost:5173"},
		RateLimit: RateLimitConfig{RequestsPerMinute: 120},
		Scraper:   ScraperConfig{TimeoutSeconds: 15},
	}
}

func (c *Config) applyEnv() {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}
	setBool := func(dst *bool, key string) {
		if v := os.Getenv(key); v != "" {
			if b, err := strconv.ParseBool(v); err == nil {
				*dst = b
			}
		}
	}

	setString(&c.Server.Mode, "APP_ENV")
	setInt(&c.Server.Port, "PORT")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")

	setString(&c.JWT.Secret, "JWT_SECRET")

	setBool(&c.Redis.Enabled, "REDIS_ENABLED")
	setString(&c.Redis.Host, "REDIS_HOST")
	setInt(&c.Redis.Port, "REDIS_PORT")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setBool(&c.Storage.Enabled, "STORAGE_ENABLED")
	setString(&c.Storage.Endpoint, "AWS_ENDPOINT_URL")
	setString(&c.Storage.Region, "AWS_REGION")
	setString(&c.Storage.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.Storage.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.Storage.Bucket, "AWS_BUCKET_NAME")
	setString(&c.Storage.CDNURL, "CDN_URL")

	setString(&c.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
}

// Validate checks required settings
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required (JWT_SECRET)")
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage enabled but bucket is empty (AWS_BUCKET_NAME)")
	}
	return nil
}

// IsDevelopment reports whether the server runs in a local/dev mode
func (c *Config) IsDevelopment() bool {
	switch c.Server.Mode {
	case "local", "dev", "development":
		return true
	}
	return false
}

// GetDSN builds a driver specific DSN
func (d *DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	if d.Driver == "mysql" {
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.DBName)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// AllowOriginList splits CORS origins
func (c *CORSConfig) AllowOriginList() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogResolved logs the effective (non-secret) configuration
func LogResolved(c *Config) {
	pkglogger.GetLogger().Info().
		Str("mode", c.Server.Mode).
		Int("port", c.Server.Port).
		Str("db_driver", c.Database.Driver).
		Bool("redis", c.Redis.Enabled).
		Bool("storage", c.Storage.Enabled).
		Msg("config resolved")
}
