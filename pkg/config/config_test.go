package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T)
	}{
		{
			name: "load from settings.yaml",
			content: `
server:
  host: "127.0.0.1"
  port: 8081
persistence:
  backend: file
  dir: ./timelines
  format: yaml
editor:
  history_limit: 20
`,
			check: func(t *testing.T) {
				if GetInt("server.port") != 8081 {
					t.Errorf("Expected server.port to be 8081, got %d", GetInt("server.port"))
				}
				if GetString("persistence.format") != "yaml" {
					t.Errorf("Expected persistence.format yaml, got %s", GetString("persistence.format"))
				}
				if GetInt("editor.history_limit") != 20 {
					t.Errorf("Expected editor.history_limit 20, got %d", GetInt("editor.history_limit"))
				}
			},
		},
		{
			name:    "environment variable override",
			content: "server:\n  port: 8080\n",
			env: map[string]string{
				"TIMELINE_SERVER_PORT":          "9090",
				"TIMELINE_PERSISTENCE_DEBOUNCE": "500ms",
			},
			check: func(t *testing.T) {
				if GetInt("server.port") != 9090 {
					t.Errorf("Expected server.port to be overridden to 9090, got %d", GetInt("server.port"))
				}
				if GetDuration("persistence.debounce") != 500*time.Millisecond {
					t.Errorf("Expected debounce 500ms, got %s", GetDuration("persistence.debounce"))
				}
			},
		},
		{
			name: "missing config file with defaults",
			check: func(t *testing.T) {
				if GetInt("server.port") != 8080 {
					t.Errorf("Expected default server.port to be 8080, got %d", GetInt("server.port"))
				}
				if GetDuration("persistence.debounce") != 2*time.Second {
					t.Errorf("Expected default debounce 2s, got %s", GetDuration("persistence.debounce"))
				}
				if GetFloat64("editor.snap_interval") != 0.1 {
					t.Errorf("Expected default snap interval 0.1, got %v", GetFloat64("editor.snap_interval"))
				}
			},
		},
		{
			name:    "invalid values are corrected",
			content: "persistence:\n  format: xml\n  debounce: 0s\neditor:\n  zoom: -1\n",
			check: func(t *testing.T) {
				if GetString("persistence.format") != "json" {
					t.Errorf("Expected format corrected to json, got %s", GetString("persistence.format"))
				}
				if GetDuration("persistence.debounce") != 2*time.Second {
					t.Errorf("Expected debounce corrected to 2s, got %s", GetDuration("persistence.debounce"))
				}
				if GetFloat64("editor.zoom") != 1 {
					t.Errorf("Expected zoom corrected to 1, got %v", GetFloat64("editor.zoom"))
				}
			},
		},
		{
			name:    "unknown backend",
			content: "persistence:\n  backend: s3\n",
			wantErr: true,
		},
		{
			name:    "invalid port",
			content: "server:\n  port: 70000\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			defer viper.Reset()

			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
					t.Fatal(err)
				}
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			err := load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t)
			}
		})
	}
}

func TestGetConfig(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	if err := load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatal(err)
	}
	cfg, err := GetConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Persistence.Backend != "database" {
		t.Errorf("Expected database backend, got %s", cfg.Persistence.Backend)
	}
	if cfg.Editor.HistoryLimit != 50 {
		t.Errorf("Expected history limit 50, got %d", cfg.Editor.HistoryLimit)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Unexpected CORS origins %v", cfg.Security.CORSOrigins)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name: "valid database config",
			config: &Config{
				Server:      ServerConfig{Host: "localhost", Port: 8080},
				Database:    DatabaseConfig{Path: "./data/timelines.db"},
				Persistence: PersistenceConfig{Backend: "database"},
			},
		},
		{
			name: "valid file config",
			config: &Config{
				Server:      ServerConfig{Host: "localhost", Port: 8080},
				Persistence: PersistenceConfig{Backend: "file", Dir: "./timelines"},
			},
		},
		{
			name: "invalid port",
			config: &Config{
				Server:      ServerConfig{Host: "localhost", Port: 0},
				Persistence: PersistenceConfig{Backend: "file", Dir: "./timelines"},
			},
			wantErr: true,
		},
		{
			name: "database backend without path",
			config: &Config{
				Server:      ServerConfig{Port: 8080},
				Persistence: PersistenceConfig{Backend: "database"},
			},
			wantErr: true,
		},
		{
			name: "file backend without dir",
			config: &Config{
				Server:      ServerConfig{Port: 8080},
				Persistence: PersistenceConfig{Backend: "file"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCorrects(t *testing.T) {
	c := &Config{
		Server:      ServerConfig{Port: 8080},
		Persistence: PersistenceConfig{Backend: "file", Dir: "x", Format: "toml", RetryAttempts: -1},
		Editor:      EditorConfig{SnapInterval: -1, FrameRate: -5},
	}
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	if c.Persistence.Format != "json" || c.Persistence.Debounce != 2*time.Second || c.Persistence.RetryAttempts != 3 {
		t.Errorf("Persistence not corrected: %+v", c.Persistence)
	}
	if c.Editor.HistoryLimit != 50 || c.Editor.SnapInterval != 0.1 || c.Editor.Zoom != 1 || c.Editor.FrameRate != 0 {
		t.Errorf("Editor not corrected: %+v", c.Editor)
	}
	if c.RateLimiting.RequestsPerSecond != 20 || c.RateLimiting.Burst != 40 {
		t.Errorf("Rate limiting not corrected: %+v", c.RateLimiting)
	}
}
