package testutils

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/internal/model"
	dbPkg "terminal-terrace/foodgram/packages/database"
)

// SetupTestDB creates a test database connection.
// Uses an isolated in-memory sqlite database unless TEST_DATABASE_DSN points at Postgres,
// in which case every test runs inside a transaction that is rolled back on cleanup.
// Automatically migrates all tables before returning the connection.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		return setupPostgres(t, dsn)
	}

	// 每个测试独立的内存库, 打开外键以验证级联删除
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), dbPkg.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("Failed to open sqlite test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get sqlite handle: %v", err)
	}
	// 单连接, 避免内存库在连接间丢失
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func setupPostgres(t *testing.T, dsn string) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(postgres.Open(dsn), dbPkg.NewGormConfig("silent"))
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Return a transaction for automatic rollback
	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return tx
}

// SetupTestRedis creates a test Redis connection
// Returns nil if Redis is not available (tests can skip Redis-dependent features)
func SetupTestRedis(t *testing.T) *dbPkg.RedisClient {
	t.Helper()

	redisHost := getEnvOrDefault("REDIS_HOST", "localhost")
	redisPort, err := strconv.Atoi(getEnvOrDefault("REDIS_PORT", "6380"))
	if err != nil || redisPort == 0 {
		redisPort = 6380
	}

	// 每个测试独立的命名空间
	redisClient, err := dbPkg.InitRedis(context.Background(), dbPkg.RedisConfig{
		ServiceName: "foodgram-test",
		Host:        redisHost,
		Port:        redisPort,
		Namespace:   "foodgram-test:" + uuid.NewString()[:8],
		DialTimeout: 500 * time.Millisecond,
	})
	if err != nil || redisClient == nil {
		return nil
	}

	t.Cleanup(func() {
		redisClient.FlushDB(context.Background())
		redisClient.Close()
	})
	return redisClient
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
