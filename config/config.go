// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Log       LogConfig       `koanf:"log"`
	JWT       JWTConfig       `koanf:"jwt"`
	Media     MediaConfig     `koanf:"media"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release
	FrontendURL  string        `koanf:"frontend_url"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	MaxBodyBytes int64         `koanf:"max_body_bytes"` // 请求体上限
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`

	// 键前缀, 共用实例时区分环境
	Namespace string `koanf:"namespace"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

// MediaConfig 图片存储配置
type MediaConfig struct {
	Root      string `koanf:"root"`       // 本地存储目录
	URLPrefix string `koanf:"url_prefix"` // 对外访问前缀
	MaxWidth  int    `koanf:"max_width"`  // 超过该宽度的图片会被等比缩放
	MaxBytes  int    `koanf:"max_bytes"`  // 单张图片解码后的字节上限
	MaxPixels int    `koanf:"max_pixels"` // 单张图片的像素上限
}

// RateLimitConfig 认证接口限流
type RateLimitConfig struct {
	RPS   float64 `koanf:"rps"`
	Burst int     `koanf:"burst"`
}

// Addr 服务监听地址
func (s ServerConfig) Addr() string {
	port := s.Port
	if port == 0 {
		port = 8080
	}
	return fmt.Sprintf("%s:%d", s.Host, port)
}

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(); envErr != nil {
			zap.S().Warnw("无法加载 .env 文件", "error", envErr)
		}

		k = koanf.New(".")

		// 加载配置文件
		if err = k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			err = fmt.Errorf("加载配置文件失败: %w", err)
			return
		}

		// 加载环境变量（会覆盖配置文件）, FOODGRAM_DATABASE_HOST -> database.host
		if envErr := k.Load(env.Provider("FOODGRAM_", ".", envKey), nil); envErr != nil {
			zap.S().Warnw("加载环境变量失败", "error", envErr)
		}

		conf, parseErr := parse(k)
		if parseErr != nil {
			err = parseErr
			return
		}
		Conf = conf
	})

	return err
}

// MustLoad 加载配置，失败则 panic
func MustLoad(configPath string) {
	if err := Load(configPath); err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}
}

// envKey 环境变量名转换为配置键（仅第一个下划线之后的部分按段切分）
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "FOODGRAM_"))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

// parse 解析到结构体并补齐默认值
func parse(k *koanf.Koanf) (*AppConfig, error) {
	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// 转换时间单位
	conf.Server.ReadTimeout = conf.Server.ReadTimeout * time.Second
	conf.Server.WriteTimeout = conf.Server.WriteTimeout * time.Second

	applyDefaults(conf)
	return conf, nil
}

func applyDefaults(conf *AppConfig) {
	if conf.Server.FrontendURL == "" {
		conf.Server.FrontendURL = "http://localhost:3000"
	}
	if conf.JWT.ExpireTime == 0 {
		conf.JWT.ExpireTime = 24
	}
	if conf.Media.Root == "" {
		conf.Media.Root = "media"
	}
	if conf.Media.URLPrefix == "" {
		conf.Media.URLPrefix = "/media"
	}
	if conf.Media.MaxWidth == 0 {
		conf.Media.MaxWidth = 1600
	}
	if conf.Media.MaxBytes == 0 {
		conf.Media.MaxBytes = 8 << 20
	}
	if conf.Media.MaxPixels == 0 {
		conf.Media.MaxPixels = 40_000_000
	}
	if conf.Server.MaxBodyBytes == 0 {
		// base64 图片膨胀约 4/3, 再留出其余字段的余量
		conf.Server.MaxBodyBytes = int64(conf.Media.MaxBytes)/3*4 + 1<<20
	}
	if conf.Redis.Namespace == "" {
		conf.Redis.Namespace = "foodgram"
	}
	if conf.RateLimit.RPS == 0 {
		conf.RateLimit.RPS = 5
	}
	if conf.RateLimit.Burst == 0 {
		conf.RateLimit.Burst = 10
	}
}
