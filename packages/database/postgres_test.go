package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDSN(t *testing.T) {
	cfg := &PostgresConfig{
		Username: "foodgram",
		Password: "secret",
		Database: "foodgram",
	}
	setDefaults(cfg)

	assert.Equal(t,
		"host=localhost user=foodgram password=secret dbname=foodgram port=5432 sslmode=disable TimeZone=UTC",
		BuildDSN(cfg))

	cfg.SSLMode = true
	assert.Contains(t, BuildDSN(cfg), "sslmode=require")
}

func TestSetDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &PostgresConfig{Host: "db", Port: 6543, MaxOpenConns: 5, ConnMaxLifetime: time.Minute}
	setDefaults(cfg)

	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 5, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
}

func TestSetRedisDefaults(t *testing.T) {
	cfg := &RedisConfig{}
	setRedisDefaults(cfg)

	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 6379, cfg.Port)
	assert.Equal(t, 10, cfg.PoolSize)
}
