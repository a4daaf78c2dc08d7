package mongo_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/config"
	"github.com/aasthachits/chitfund/pkg/mongo"
)

func TestConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")

	var cfg mongo.Config
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "mongodb://localhost:27017", cfg.ConnectionURL)
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, uint64(100), cfg.MaxPoolSize)
	assert.Equal(t, uint64(1), cfg.MinPoolSize)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.RetryInterval)
}

func TestConfigRequiresURL(t *testing.T) {
	t.Setenv("MONGODB_URL", "")
	require.NoError(t, os.Unsetenv("MONGODB_URL"))

	var cfg mongo.Config
	assert.Error(t, config.Load(&cfg))
}
