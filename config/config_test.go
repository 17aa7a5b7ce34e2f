package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
server:
  port: 9090
  mode: release
  read_timeout: 15
database:
  host: db
  username: foodgram
  max_lifetime: 60
jwt:
  secret: s3cret
media:
  root: /srv/media
`

func TestParse_FileAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	kk := koanf.New(".")
	require.NoError(t, kk.Load(file.Provider(path), yaml.Parser()))

	conf, err := parse(kk)
	require.NoError(t, err)

	assert.Equal(t, 9090, conf.Server.Port)
	assert.Equal(t, ":9090", conf.Server.Addr())
	assert.Equal(t, 15*time.Second, conf.Server.ReadTimeout)
	assert.Equal(t, "db", conf.Database.Host)
	assert.Equal(t, "s3cret", conf.JWT.Secret)
	// 默认值
	assert.Equal(t, 24, conf.JWT.ExpireTime)
	assert.Equal(t, "/srv/media", conf.Media.Root)
	assert.Equal(t, "/media", conf.Media.URLPrefix)
	assert.Equal(t, 1600, conf.Media.MaxWidth)
	assert.Equal(t, 8<<20, conf.Media.MaxBytes)
	assert.Equal(t, 40_000_000, conf.Media.MaxPixels)
	assert.Greater(t, conf.Server.MaxBodyBytes, int64(conf.Media.MaxBytes))
	assert.Equal(t, "foodgram", conf.Redis.Namespace)
	assert.Equal(t, 10, conf.RateLimit.Burst)
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FOODGRAM_DATABASE_HOST", "database.host"},
		{"FOODGRAM_DATABASE_MAX_OPEN_CONNS", "database.max_open_conns"},
		{"FOODGRAM_JWT_SECRET", "jwt.secret"},
		{"FOODGRAM_DEBUG", "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

func TestServerAddr_DefaultPort(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8080", ServerConfig{Host: "127.0.0.1"}.Addr())
}
