package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/foodgram/packages/database"
	"terminal-terrace/foodgram/packages/response"
)

const pingTimeout = 2 * time.Second

// HealthStatus 各依赖的连通状态
type HealthStatus struct {
	Database string `json:"database"`
	Redis    string `json:"redis"`
}

type HealthService struct {
	db    *gorm.DB
	redis *database.RedisClient
}

// redis 可以为 nil, 此时状态为 disabled
func NewHealthService(db *gorm.DB, redis *database.RedisClient) *HealthService {
	return &HealthService{db: db, redis: redis}
}

func (s *HealthService) Check(ctx context.Context) (*HealthStatus, *response.BusinessError) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := &HealthStatus{Database: "ok", Redis: "disabled"}

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return nil, response.NewInternalError("数据库不可用", err)
	}

	if s.redis != nil {
		if err := s.redis.Healthy(ctx); err != nil {
			return nil, response.NewInternalError("Redis 不可用", err)
		}
		status.Redis = "ok"
	}
	return status, nil
}
