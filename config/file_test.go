package config_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaTgBotAPI/config"
)

type fileRedisConfig struct {
	Host string `toml:"host" yaml:"host" default:"localhost"`
	DB   int    `toml:"db" yaml:"db" default:"0"`
}

type fileConfig struct {
	BotToken string          `toml:"bot_token" yaml:"bot_token"`
	Timeout  time.Duration   `toml:"timeout" yaml:"timeout" default:"40s"`
	Admins   []int64         `toml:"admins" yaml:"admins"`
	Redis    fileRedisConfig `toml:"redis" yaml:"redis"`
}

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigFile_TOML(t *testing.T) {
	t.Setenv("REDIS_DB", "2")

	path := writeConfigFile(t, "bot.toml", `
bot_token = "1:file"
admins = [10, 20]

[redis]
host = "redis.internal"
`)

	var cfg fileConfig

	err := config.LoadConfigFile(path, &cfg, nil)
	require.Nil(t, err)

	assert.Equal(t, fileConfig{
		BotToken: "1:file",
		Timeout:  40 * time.Second,
		Admins:   []int64{10, 20},
		Redis:    fileRedisConfig{Host: "redis.internal", DB: 2},
	}, cfg)
}

func TestLoadConfigFile_YAMLWithEnvOverride(t *testing.T) {
	t.Setenv("BOT_TOKEN", "1:env")

	path := writeConfigFile(t, "bot.yaml", `
bot_token: "1:file"
timeout: 5s
admins: [1, 2]
`)

	var cfg fileConfig

	err := config.LoadConfigFile(path, &cfg, nil)
	require.Nil(t, err)

	assert.Equal(t, "1:env", cfg.BotToken)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []int64{1, 2}, cfg.Admins)
	assert.Equal(t, "localhost", cfg.Redis.Host)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	var cfg fileConfig

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"), &cfg, nil)
		require.NotNil(t, err)

		assert.ErrorIs(t, err, config.ErrFailedToReadConfigFile)
		assert.Equal(t, http.StatusNotFound, err.Code())
	})

	t.Run("unsupported extension", func(t *testing.T) {
		err := config.LoadConfigFile(writeConfigFile(t, "bot.ini", "a=b"), &cfg, nil)
		require.NotNil(t, err)

		assert.ErrorIs(t, err, config.ErrUnsupportedConfigFormat)
	})

	t.Run("broken toml", func(t *testing.T) {
		err := config.LoadConfigFile(writeConfigFile(t, "bot.toml", "bot_token = "), &cfg, nil)
		require.NotNil(t, err)

		assert.ErrorIs(t, err, config.ErrFailedToDecodeConfigFile)
		assert.Equal(t, http.StatusBadRequest, err.Code())
	})
}
