// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Public endpoints used when no base URL is configured.
const (
	DefaultGooglePlacesURL = "https://maps.googleapis.com"
	DefaultYelpURL         = "https://api.yelp.com"
	DefaultAzureMapsURL    = "https://atlas.microsoft.com"
	DefaultOpenAIURL       = "https://api.openai.com"
	DefaultAnthropicURL    = "https://api.anthropic.com"
	DefaultGeminiURL       = "https://generativelanguage.googleapis.com"
	DefaultCohereURL       = "https://api.cohere.ai"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// PROVIDERS_GOOGLE_API_KEY overrides providers.google.api_key
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	return build(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return build(v)
}

// envKeys are bound explicitly so AutomaticEnv can see them without a config file.
var envKeys = []string{
	"server.port",
	"providers.timeout",
	"providers.google.api_key", "providers.google.base_url",
	"providers.yelp.api_key", "providers.yelp.base_url",
	"providers.azure_maps.api_key", "providers.azure_maps.base_url",
	"llm.timeout",
	"llm.openai.api_key", "llm.anthropic.api_key", "llm.gemini.api_key", "llm.cohere.api_key",
	"results.dir", "results.file",
	"camunda.broker_address",
	"database.redis.address",
	"logging.level", "logging.format",
}

func build(v *viper.Viper) (*Config, error) {
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := overrideFromEnv(&cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideFromEnv fills empty values from the flat variable names the
// services have always used (GOOGLE_API_KEY, PORT, ...).
func overrideFromEnv(cfg *Config) error {
	setIfEmpty(&cfg.Providers.Google.APIKey, "GOOGLE_API_KEY")
	setIfEmpty(&cfg.Providers.Yelp.APIKey, "YELP_API_KEY")
	setIfEmpty(&cfg.Providers.AzureMaps.APIKey, "AZURE_MAPS_KEY")

	setIfEmpty(&cfg.LLM.OpenAI.APIKey, "OPENAI_API_KEY")
	setIfEmpty(&cfg.LLM.Anthropic.APIKey, "ANTHROPIC_API_KEY")
	setIfEmpty(&cfg.LLM.Gemini.APIKey, "GEMINI_API_KEY")
	setIfEmpty(&cfg.LLM.Cohere.APIKey, "COHERE_API_KEY")

	setIfEmpty(&cfg.Camunda.BrokerAddress, "ZEEBE_ADDRESS")
	setIfEmpty(&cfg.Database.Redis.Address, "REDIS_ADDRESS")
	setIfEmpty(&cfg.Database.Postgres.User, "DB_USER")
	setIfEmpty(&cfg.Database.Postgres.Password, "DB_PASSWORD")

	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			port, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("PORT must be a number, got %q", val)
			}
			cfg.Server.Port = port
		}
	}

	if val := os.Getenv("RESULTS_ENABLED"); val != "" {
		enabled, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("RESULTS_ENABLED must be a boolean, got %q", val)
		}
		cfg.Results.Enabled = enabled
	}
	if val := os.Getenv("RESULTS_BACKENDS"); val != "" {
		cfg.Results.Backends = splitList(val)
	}

	return nil
}

func setIfEmpty(dst *string, envKey string) {
	if *dst != "" {
		return
	}
	if val := os.Getenv(envKey); val != "" {
		*dst = val
	}
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "business-lookup"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}
	if len(cfg.Database.Elasticsearch.Addresses) == 0 && cfg.Database.Elasticsearch.URL != "" {
		cfg.Database.Elasticsearch.Addresses = []string{cfg.Database.Elasticsearch.URL}
	}

	// Provider defaults
	if cfg.Providers.Timeout == 0 {
		cfg.Providers.Timeout = 10000
	}
	defaultURL(&cfg.Providers.Google.BaseURL, DefaultGooglePlacesURL)
	defaultURL(&cfg.Providers.Yelp.BaseURL, DefaultYelpURL)
	defaultURL(&cfg.Providers.AzureMaps.BaseURL, DefaultAzureMapsURL)

	// LLM defaults
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60000
	}
	defaultURL(&cfg.LLM.OpenAI.BaseURL, DefaultOpenAIURL)
	defaultURL(&cfg.LLM.Anthropic.BaseURL, DefaultAnthropicURL)
	defaultURL(&cfg.LLM.Gemini.BaseURL, DefaultGeminiURL)
	defaultURL(&cfg.LLM.Cohere.BaseURL, DefaultCohereURL)

	// Result defaults
	if len(cfg.Results.Backends) == 0 {
		cfg.Results.Backends = []string{BackendFile}
	}
	if cfg.Results.Dir == "" {
		cfg.Results.Dir = "results"
	}
	if cfg.Results.File == "" {
		cfg.Results.File = "all-results.json"
	}
	if cfg.Results.RedisKey == "" {
		cfg.Results.RedisKey = "business-checks"
	}
	if cfg.Results.PostgresTable == "" {
		cfg.Results.PostgresTable = "business_checks"
	}
	if cfg.Results.ElasticsearchIndex == "" {
		cfg.Results.ElasticsearchIndex = "business-checks"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	if cfg.Workers == nil {
		cfg.Workers = map[string]WorkerConfig{}
	}
	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = cfg.Camunda.MaxJobsActive
		}
		if worker.Timeout == 0 {
			worker.Timeout = cfg.Camunda.Timeout
		}
		cfg.Workers[key] = worker
	}
}

func defaultURL(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
	*dst = strings.TrimRight(*dst, "/")
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	for _, backend := range cfg.Results.Backends {
		switch backend {
		case BackendFile, BackendRedis, BackendPostgres, BackendElasticsearch:
		default:
			return fmt.Errorf("results.backends: unknown backend %q", backend)
		}
	}

	if !cfg.Results.Enabled {
		return nil
	}

	if cfg.Results.HasBackend(BackendRedis) && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required for the redis result backend")
	}
	if cfg.Results.HasBackend(BackendPostgres) {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required for the postgres result backend")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required for the postgres result backend")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required for the postgres result backend")
		}
	}
	if cfg.Results.HasBackend(BackendElasticsearch) && cfg.Database.Elasticsearch.GetURL() == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required for the elasticsearch result backend")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
	}
}
