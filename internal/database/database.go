// Package database opens the GORM connection for the configured driver.
package database

import (
	"fmt"
	"time"

	"github.com/cardinal-wishlist/wishlist-backend/internal/config"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to postgres or mysql and applies pool settings.
// TranslateError is on so unique violations surface as gorm.ErrDuplicatedKey.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel(cfg.LogLevel)),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	return db, nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "mysql":
		mysqlCfg, err := mysqldriver.ParseDSN(cfg.GetDSN())
		if err != nil {
			return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
		}
		// timestamps are stored in UTC regardless of the server zone
		mysqlCfg.ParseTime = true
		mysqlCfg.Loc = time.UTC
		if mysqlCfg.Params == nil {
			mysqlCfg.Params = map[string]string{}
		}
		mysqlCfg.Params["time_zone"] = "'+00:00'"
		return mysql.Open(mysqlCfg.FormatDSN()), nil
	case "postgres", "":
		return postgres.Open(cfg.GetDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func logLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
