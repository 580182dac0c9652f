package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string            `mapstructure:"environment"`
	Server       ServerConfig      `mapstructure:"server"`
	Database     DatabaseConfig    `mapstructure:"database"`
	Persistence  PersistenceConfig `mapstructure:"persistence"`
	Editor       EditorConfig      `mapstructure:"editor"`
	Transcripts  TranscriptConfig  `mapstructure:"transcripts"`
	RateLimiting RateLimitConfig   `mapstructure:"rate_limiting"`
	Security     SecurityConfig    `mapstructure:"security"`
	Logging      LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	EnableWAL             bool          `mapstructure:"enable_wal"`
	EnableForeignKeys     bool          `mapstructure:"enable_foreign_keys"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// PersistenceConfig controls where and how timelines are saved
type PersistenceConfig struct {
	Backend       string        `mapstructure:"backend"` // database or file
	Dir           string        `mapstructure:"dir"`
	Format        string        `mapstructure:"format"` // json or yaml, file backend only
	Debounce      time.Duration `mapstructure:"debounce"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
}

// EditorConfig holds the defaults of newly seeded timelines and edit sessions
type EditorConfig struct {
	HistoryLimit int     `mapstructure:"history_limit"`
	SnapInterval float64 `mapstructure:"snap_interval"`
	FrameRate    float64 `mapstructure:"frame_rate"`
	Zoom         float64 `mapstructure:"zoom"`
}

// TranscriptConfig controls fetching transcripts for seeding
type TranscriptConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	MaxSize      int64         `mapstructure:"max_size"`
}

// RateLimitConfig contains rate limiting settings
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS  bool     `mapstructure:"enable_cors"`
	CORSOrigins []string `mapstructure:"cors_origins"`
	CORSMethods []string `mapstructure:"cors_methods"`
	CORSHeaders []string `mapstructure:"cors_headers"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Debug bool   `mapstructure:"debug"`
}
