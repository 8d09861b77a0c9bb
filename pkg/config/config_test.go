package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itcguard/itc-api/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "bolt")
	t.Setenv("AI_PROVIDER", "anthropic")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverBolt, cfg.Store.Driver)
	assert.Equal(t, config.ProviderAnthropic, cfg.AI.Provider)
	assert.Equal(t, 45*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "BOLT")
	t.Setenv("BOLT_PATH", "/tmp/records.db")
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("OPENAI_BASE_URL", "https://router.example/api/v1")
	t.Setenv("AI_TIMEOUT", "10s")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverBolt, cfg.Store.Driver)
	assert.Equal(t, "/tmp/records.db", cfg.Store.BoltPath)
	assert.Equal(t, config.ProviderOpenAI, cfg.AI.Provider)
	assert.Equal(t, "https://router.example/api/v1", cfg.AI.OpenAIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("AI_PROVIDER", "anthropic")

	_, err := config.Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}

func TestDBConfig_DSNEscapesPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "itc", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/itc?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://override"
	assert.Equal(t, "postgres://override", c.ConnectionString())
}
