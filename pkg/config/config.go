package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. TIMELINE_SERVER_PORT
const EnvPrefix = "TIMELINE"

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		initErr = load("./config/settings.yaml")
	})
	return initErr
}

func load(configPath string) error {
	// .env only fills variables that are not already set
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error reading .env: %w", err)
	}

	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configPath = filepath.Clean(configPath)
	viper.SetConfigFile(configPath)
	if err := viper.ReadInConfig(); err != nil {
		// A missing file means defaults and env vars only
		if !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetFloat64 returns a float config value
func GetFloat64(key string) float64 {
	return viper.GetFloat64(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	switch viper.GetString("persistence.backend") {
	case "database":
		if viper.GetString("database.path") == "" {
			return fmt.Errorf("persistence backend database requires database.path")
		}
	case "file":
		if viper.GetString("persistence.dir") == "" {
			return fmt.Errorf("persistence backend file requires persistence.dir")
		}
	default:
		return fmt.Errorf("invalid persistence backend: %q", viper.GetString("persistence.backend"))
	}

	switch viper.GetString("persistence.format") {
	case "json", "yaml":
	default:
		fmt.Printf("Warning: unknown persistence format %q, using json\n", viper.GetString("persistence.format"))
		viper.Set("persistence.format", "json")
	}

	// Auto-correct invalid values
	if viper.GetDuration("persistence.debounce") <= 0 {
		viper.Set("persistence.debounce", 2*time.Second)
	}
	if viper.GetInt("persistence.retry_attempts") < 0 {
		viper.Set("persistence.retry_attempts", 3)
	}
	if viper.GetInt("editor.history_limit") <= 0 {
		viper.Set("editor.history_limit", 50)
	}
	if viper.GetFloat64("editor.snap_interval") < 0 {
		viper.Set("editor.snap_interval", 0.1)
	}
	if viper.GetFloat64("editor.zoom") <= 0 {
		viper.Set("editor.zoom", 1.0)
	}
	if viper.GetFloat64("editor.frame_rate") < 0 {
		viper.Set("editor.frame_rate", 0.0)
	}
	if viper.GetFloat64("rate_limiting.requests_per_second") <= 0 {
		viper.Set("rate_limiting.requests_per_second", 20.0)
	}
	if viper.GetInt("rate_limiting.burst") <= 0 {
		viper.Set("rate_limiting.burst", 40)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Persistence.Backend {
	case "database":
		if c.Database.Path == "" {
			return fmt.Errorf("persistence backend database requires database.path")
		}
	case "file":
		if c.Persistence.Dir == "" {
			return fmt.Errorf("persistence backend file requires persistence.dir")
		}
	default:
		return fmt.Errorf("invalid persistence backend: %q", c.Persistence.Backend)
	}

	if c.Persistence.Format != "json" && c.Persistence.Format != "yaml" {
		c.Persistence.Format = "json"
	}
	if c.Persistence.Debounce <= 0 {
		c.Persistence.Debounce = 2 * time.Second
	}
	if c.Persistence.RetryAttempts < 0 {
		c.Persistence.RetryAttempts = 3
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = 50
	}
	if c.Editor.SnapInterval < 0 {
		c.Editor.SnapInterval = 0.1
	}
	if c.Editor.Zoom <= 0 {
		c.Editor.Zoom = 1
	}
	if c.Editor.FrameRate < 0 {
		c.Editor.FrameRate = 0
	}
	if c.RateLimiting.RequestsPerSecond <= 0 {
		c.RateLimiting.RequestsPerSecond = 20
	}
	if c.RateLimiting.Burst <= 0 {
		c.RateLimiting.Burst = 40
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)
	viper.SetDefault("server.max_body_bytes", 10485760)

	// Database defaults
	viper.SetDefault("database.path", "./data/timelines.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.enable_wal", true)
	viper.SetDefault("database.enable_foreign_keys", true)
	viper.SetDefault("database.log_queries", false)

	// Persistence defaults
	viper.SetDefault("persistence.backend", "database")
	viper.SetDefault("persistence.dir", "./data/timelines")
	viper.SetDefault("persistence.format", "json")
	viper.SetDefault("persistence.debounce", 2*time.Second)
	viper.SetDefault("persistence.retry_attempts", 3)

	// Editor defaults
	viper.SetDefault("editor.history_limit", 50)
	viper.SetDefault("editor.snap_interval", 0.1)
	viper.SetDefault("editor.frame_rate", 0)
	viper.SetDefault("editor.zoom", 1.0)

	// Transcript fetch defaults
	viper.SetDefault("transcripts.fetch_timeout", 30*time.Second)
	viper.SetDefault("transcripts.max_size", 10485760)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 20.0)
	viper.SetDefault("rate_limiting.burst", 40)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.cors_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("security.cors_headers", []string{"Content-Type", "Authorization"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.debug", false)
}
