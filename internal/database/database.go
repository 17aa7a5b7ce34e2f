package database

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"terminal-terrace/foodgram/config"
	"terminal-terrace/foodgram/internal/model"
	"terminal-terrace/foodgram/packages/database"
)

var (
	PostgresDB *gorm.DB
	// RedisDB 未启用 Redis 时为 nil, 令牌注销随之关闭
	RedisDB *database.RedisClient
)

func InitDatabase() {
	initPostgres()
	initRedis()
}

func initPostgres() {
	databaseConf := config.Conf.Database

	// 设置默认日志级别
	logLevel := databaseConf.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	var err error
	PostgresDB, err = database.InitPostgres(
		&database.PostgresConfig{
			ServiceName:     "foodgram",
			Username:        databaseConf.Username,
			Password:        databaseConf.Password,
			Host:            databaseConf.Host,
			Port:            databaseConf.Port,
			Database:        databaseConf.Database,
			SSLMode:         databaseConf.SSLMode,
			LogLevel:        logLevel,
			MaxIdleConns:    databaseConf.MaxIdleConns,
			MaxOpenConns:    databaseConf.MaxOpenConns,
			ConnMaxLifetime: time.Duration(databaseConf.MaxLifetime) * time.Second,
		},
	)

	if err != nil {
		panic(err)
	}

	// 初始化数据库表
	err = model.InitTable(PostgresDB)
	if err != nil {
		panic(err)
	}
}

func initRedis() {
	redisConf := config.Conf.Redis
	if !redisConf.Enabled {
		zap.S().Infow("Redis 未启用, 令牌注销不可用")
		return
	}

	var err error
	RedisDB, err = database.InitRedis(context.Background(), database.RedisConfig{
		ServiceName: "foodgram",
		Host:        redisConf.Host,
		Port:        redisConf.Port,
		Password:    redisConf.Password,
		DB:          redisConf.DB,
		PoolSize:    redisConf.PoolSize,
		Namespace:   redisConf.Namespace,
	})
	if err != nil {
		panic(err)
	}
}

// Close 关闭数据库连接
func Close() {
	if RedisDB != nil {
		if err := RedisDB.Close(); err != nil {
			zap.S().Warnw("关闭 Redis 失败", "error", err)
		}
	}
	if PostgresDB != nil {
		if sqlDB, err := PostgresDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// GetDB 获取数据库实例
func GetDB() *gorm.DB {
	return PostgresDB
}
