package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("RESULTS_ENABLED", "")
	t.Setenv("RESULTS_BACKENDS", "")
	t.Setenv("ZEEBE_ADDRESS", "")
	path := writeConfig(t, "app:\n  name: lookup-test\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "lookup-test", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10000, cfg.Providers.Timeout)
	assert.Equal(t, DefaultGooglePlacesURL, cfg.Providers.Google.BaseURL)
	assert.Equal(t, DefaultYelpURL, cfg.Providers.Yelp.BaseURL)
	assert.Equal(t, DefaultAzureMapsURL, cfg.Providers.AzureMaps.BaseURL)
	assert.False(t, cfg.Results.Enabled)
	assert.Equal(t, []string{BackendFile}, cfg.Results.Backends)
	assert.Equal(t, "results", cfg.Results.Dir)
	assert.Equal(t, "all-results.json", cfg.Results.File)
	assert.False(t, cfg.Camunda.Enabled())
}

func TestLoadFromFile_FlatEnvironmentKeys(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("YELP_API_KEY", "y-key")
	t.Setenv("AZURE_MAPS_KEY", "a-key")
	t.Setenv("COHERE_API_KEY", "c-key")
	t.Setenv("PORT", "4010")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: env-test\n"))
	require.NoError(t, err)

	assert.Equal(t, "g-key", cfg.Providers.Google.APIKey)
	assert.Equal(t, "y-key", cfg.Providers.Yelp.APIKey)
	assert.Equal(t, "a-key", cfg.Providers.AzureMaps.APIKey)
	assert.Equal(t, "c-key", cfg.LLM.Cohere.APIKey)
	assert.Equal(t, 4010, cfg.Server.Port)
	assert.Equal(t, ":4010", cfg.Server.Addr())
}

func TestLoadFromFile_FileValuesWinOverFlatKeys(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "from-env")

	cfg, err := LoadFromFile(writeConfig(t, "providers:\n  google:\n    api_key: from-file\n    base_url: http://places.local/\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.Providers.Google.APIKey)
	assert.Equal(t, "http://places.local", cfg.Providers.Google.BaseURL)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_YELP_TOKEN", "expanded-token")

	cfg, err := LoadFromFile(writeConfig(t, "providers:\n  yelp:\n    api_key: ${TEST_YELP_TOKEN}\n"))
	require.NoError(t, err)

	assert.Equal(t, "expanded-token", cfg.Providers.Yelp.APIKey)
}

func TestLoadFromFile_ResultBackendsFromEnv(t *testing.T) {
	t.Setenv("RESULTS_ENABLED", "true")
	t.Setenv("RESULTS_BACKENDS", "file, redis")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := LoadFromFile(writeConfig(t, "app:\n  name: results\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Results.Enabled)
	assert.Equal(t, []string{"file", "redis"}, cfg.Results.Backends)
	assert.True(t, cfg.Results.HasBackend(BackendRedis))
	assert.False(t, cfg.Results.HasBackend(BackendPostgres))
}

func TestLoadFromFile_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	_, err := LoadFromFile(writeConfig(t, "app:\n  name: bad\n"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "port out of range",
			mutate:  func(cfg *Config) { cfg.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "unknown backend",
			mutate:  func(cfg *Config) { cfg.Results.Backends = []string{"s3"} },
			wantErr: "unknown backend",
		},
		{
			name: "redis backend without address",
			mutate: func(cfg *Config) {
				cfg.Results.Enabled = true
				cfg.Results.Backends = []string{BackendRedis}
			},
			wantErr: "database.redis.address",
		},
		{
			name: "postgres backend without host",
			mutate: func(cfg *Config) {
				cfg.Results.Enabled = true
				cfg.Results.Backends = []string{BackendPostgres}
			},
			wantErr: "database.postgres.host",
		},
		{
			name: "elasticsearch backend without address",
			mutate: func(cfg *Config) {
				cfg.Results.Enabled = true
				cfg.Results.Backends = []string{BackendElasticsearch}
			},
			wantErr: "database.elasticsearch",
		},
		{
			name: "backends are not checked while results are disabled",
			mutate: func(cfg *Config) {
				cfg.Results.Enabled = false
				cfg.Results.Backends = []string{BackendRedis}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig_Fallback(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	wcfg := GetWorkerConfig(cfg, "check-business")
	assert.True(t, wcfg.Enabled)
	assert.Equal(t, 10, wcfg.MaxJobsActive)
	assert.Equal(t, 30000, wcfg.Timeout)
}
