package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "gateway_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	require.Equal(t, "gateway_test", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, BackendMongo, cfg.Store.Backend)
	require.Equal(t, "localhost:6380", cfg.RedisAddr())
	require.Equal(t, "bcrypt", cfg.Security.PasswordHasher)
}

func TestLoadConfig_PortDefaultAndOverride(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "5000", cfg.Server.Port)

	t.Setenv("PORT", "8081")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8081", cfg.Server.Port)

	t.Setenv("SERVER_PORT", "9090")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Server.Port)
}

func TestLoadConfig_MongoBackendNeedsURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("STORE_BACKEND", "mongo")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingMongoURI)
}

func TestLoadConfig_MemoryBackend(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.True(t, cfg.RateLimit.Enabled)
	require.InDelta(t, 2.5, cfg.RateLimit.RPS, 0.0001)
	require.Empty(t, cfg.RedisAddr())
}
