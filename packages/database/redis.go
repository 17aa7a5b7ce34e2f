package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig 令牌注销列表所用的 Redis 连接参数
type RedisConfig struct {
	ServiceName string // 日志标识
	Host        string
	Port        int
	Password    string
	DB          int
	PoolSize    int

	// Namespace 作为所有键的前缀, 多个环境共用一个实例时互不干扰
	Namespace string

	DialTimeout time.Duration

	// OpTimeout 同时用作读写超时与启动时 PING 的超时
	OpTimeout time.Duration
}

// Addr host:port 形式的地址
func (c RedisConfig) Addr() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 6379
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func (c RedisConfig) options() *redis.Options {
	opts := &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.OpTimeout,
		WriteTimeout: c.OpTimeout,
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = 10
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 3 * time.Second
	}
	if c.OpTimeout == 0 {
		opts.ReadTimeout = 2 * time.Second
		opts.WriteTimeout = 2 * time.Second
	}
	return opts
}

// RedisClient 带命名空间的 Redis 客户端
type RedisClient struct {
	*redis.Client
	namespace string
}

// InitRedis 建立连接并 PING 一次, 失败时不返回客户端
func InitRedis(ctx context.Context, config RedisConfig) (*RedisClient, error) {
	opts := config.options()
	client := redis.NewClient(opts)
	rc := &RedisClient{Client: client, namespace: strings.Trim(config.Namespace, ":")}

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout+opts.ReadTimeout)
	defer cancel()
	if err := rc.Healthy(pingCtx); err != nil {
		_ = client.Close()
		return nil, err
	}

	serviceName := config.ServiceName
	if serviceName == "" {
		serviceName = "unknown-service"
	}
	zap.S().Infow("Redis连接成功", "service", serviceName, "addr", opts.Addr, "namespace", rc.namespace)
	return rc, nil
}

// Key 拼接命名空间与各段, 如 foodgram:revoked_token:<jti>
func (c *RedisClient) Key(parts ...string) string {
	if c.namespace == "" {
		return strings.Join(parts, ":")
	}
	return c.namespace + ":" + strings.Join(parts, ":")
}

// Healthy PING 一次, nil 客户端视为未启用
func (c *RedisClient) Healthy(ctx context.Context) error {
	if c == nil || c.Client == nil {
		return errors.New("redis 未启用")
	}
	if err := c.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("连接 Redis 失败 (%s): %w", c.Options().Addr, err)
	}
	return nil
}
