package service

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/foodgram/internal/testutils"
)

func TestHealthService_Check(t *testing.T) {
	db := testutils.SetupTestDB(t)

	status, err := NewHealthService(db, nil).Check(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "ok", status.Database)
	assert.Equal(t, "disabled", status.Redis)
}

func TestHealthService_CheckWithRedis(t *testing.T) {
	db := testutils.SetupTestDB(t)
	redis := testutils.SetupTestRedis(t)
	if redis == nil {
		t.Skip("Redis 不可用")
	}

	status, err := NewHealthService(db, redis).Check(context.Background())
	require.Nil(t, err)
	assert.Equal(t, "ok", status.Redis)
}

func TestHealthService_CheckClosedDatabase(t *testing.T) {
	if os.Getenv("TEST_DATABASE_DSN") != "" {
		t.Skip("Postgres 测试库运行在事务中")
	}
	db := testutils.SetupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, bizErr := NewHealthService(db, nil).Check(context.Background())
	require.NotNil(t, bizErr)
	assert.Equal(t, "数据库不可用", bizErr.Msg)
}
