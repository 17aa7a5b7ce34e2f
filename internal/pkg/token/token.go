// Package token 访问令牌的签发、解析与注销
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"terminal-terrace/foodgram/packages/database"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrRevokedToken = errors.New("token revoked")
)

const (
	// 注销令牌 Redis key 段
	revokedTokenKey = "revoked_token"
	// Redis 操作超时
	storeTimeout = 2 * time.Second
)

// Claims JWT 自定义声明, jti 用于注销
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Store 已注销令牌的存储
type Store interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Manager 签发与校验访问令牌
type Manager struct {
	secret []byte
	expire time.Duration
	store  Store
}

// NewManager store 为 nil 时不支持注销
func NewManager(secret string, expire time.Duration, store Store) *Manager {
	return &Manager{
		secret: []byte(secret),
		expire: expire,
		store:  store,
	}
}

// Generate 生成访问令牌
func (m *Manager) Generate(userID uint, role string) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("签名令牌失败: %w", err)
	}
	return signed, claims, nil
}

// Parse 解析并验证访问令牌, 包括注销检查
func (m *Manager) Parse(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if m.store != nil && claims.ID != "" {
		ctx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()

		revoked, err := m.store.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("检查令牌状态失败: %w", err)
		}
		if revoked {
			return nil, ErrRevokedToken
		}
	}
	return claims, nil
}

// Revoke 注销令牌直到其自然过期
func (m *Manager) Revoke(ctx context.Context, claims *Claims) error {
	if m.store == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	return m.store.Revoke(ctx, claims.ID, ttl)
}

// RedisStore 基于 Redis 的注销列表
type RedisStore struct {
	redis *database.RedisClient
}

func NewRedisStore(redisClient *database.RedisClient) *RedisStore {
	return &RedisStore{redis: redisClient}
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.redis.Key(revokedTokenKey, jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("存储注销令牌失败: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.redis.Key(revokedTokenKey, jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
