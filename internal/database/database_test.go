package database

import (
	"testing"

	"github.com/cardinal-wishlist/wishlist-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func TestDialectorFor(t *testing.T) {
	mysqlCfg := &config.DatabaseConfig{Driver: "mysql", User: "u", Password: "p", Host: "db", Port: 3306, DBName: "w"}
	d, err := dialectorFor(mysqlCfg)
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	d, err = dialectorFor(&config.DatabaseConfig{Driver: "postgres", URL: "postgres://u:p@localhost/w"})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = dialectorFor(&config.DatabaseConfig{Driver: "mysql", URL: "::not a dsn"})
	assert.Error(t, err)

	_, err = dialectorFor(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, logLevel("silent"))
	assert.Equal(t, gormlogger.Info, logLevel("info"))
	assert.Equal(t, gormlogger.Warn, logLevel(""))
}
