package cmd

import (
	"fmt"
	"log"

	"github.com/killallgit/timeline-api/internal/database"
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/pkg/config"
)

const (
	backendDatabase = "database"
	backendFile     = "file"
)

// openRepository builds the timeline repository for the configured backend.
// The returned database is nil for the file backend.
func openRepository(cfg *config.Config) (persistence.Repository, *database.DB, error) {
	switch cfg.Persistence.Backend {
	case backendFile:
		format := persistence.ParseFormat(cfg.Persistence.Format)
		repo, err := persistence.NewFileRepository(cfg.Persistence.Dir, format)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open timeline directory: %w", err)
		}
		log.Printf("[INFO] Saving timelines as %s files in %s", format, cfg.Persistence.Dir)
		return repo, nil, nil

	case backendDatabase, "":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Printf("[INFO] Saving timelines to %s", cfg.Database.Path)
		return persistence.NewRepository(db.DB), db, nil

	default:
		return nil, nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}

// managerOptions maps configuration onto session manager options
func managerOptions(cfg *config.Config) []sessions.Option {
	settings := models.Settings{Zoom: 1, SnapInterval: 0.1}
	if cfg.Editor.SnapInterval > 0 {
		settings.SnapInterval = cfg.Editor.SnapInterval
	}
	if cfg.Editor.FrameRate > 0 {
		settings.FrameRate = cfg.Editor.FrameRate
	}
	if cfg.Editor.Zoom > 0 {
		settings.Zoom = cfg.Editor.Zoom
	}

	opts := []sessions.Option{sessions.WithDefaultSettings(settings)}
	if cfg.Persistence.Debounce > 0 {
		opts = append(opts, sessions.WithDebounce(cfg.Persistence.Debounce))
	}
	if cfg.Persistence.RetryAttempts > 0 {
		opts = append(opts, sessions.WithRetryAttempts(cfg.Persistence.RetryAttempts))
	}
	if cfg.Editor.HistoryLimit > 0 {
		opts = append(opts, sessions.WithHistoryLimit(cfg.Editor.HistoryLimit))
	}
	return opts
}
