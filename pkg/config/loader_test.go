package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/config"
)

type testConfig struct {
	Addr    string        `env:"TEST_CFG_ADDR" envDefault:":8080"`
	Timeout time.Duration `env:"TEST_CFG_TIMEOUT" envDefault:"5s"`
	Token   string        `env:"TEST_CFG_TOKEN"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Token)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TEST_CFG_ADDR", ":9999")
	t.Setenv("TEST_CFG_TOKEN", "secret")

	var cfg testConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "secret", cfg.Token)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[testConfig](nil)
	require.ErrorIs(t, err, config.ErrNilPointer)
}

type requiredConfig struct {
	Required string `env:"TEST_CFG_REQUIRED,required"`
}

func TestLoadRequiredMissing(t *testing.T) {
	var cfg requiredConfig
	err := config.Load(&cfg)
	require.ErrorIs(t, err, config.ErrParsingConfig)
}
