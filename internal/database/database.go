package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// Models lists every table owned by the application, in migration order
func Models() []any {
	return []any{&models.TimelineRecord{}}
}

// TableStatus reports whether one model's table exists
type TableStatus struct {
	Model   string
	Table   string
	Present bool
}

// Initialize creates a new database connection with default pool settings
func Initialize(dbPath string, verbose bool) (*DB, error) {
	return Open(config.DatabaseConfig{
		Path:                  dbPath,
		MaxConnections:        10,
		MaxIdleConnections:    5,
		ConnectionMaxLifetime: time.Hour,
		LogQueries:            verbose,
	})
}

// Open creates a new database connection from configuration
func Open(cfg config.DatabaseConfig) (*DB, error) {
	// Ensure the database directory exists
	dir := filepath.Dir(cfg.Path)
	if cfg.Path != ":memory:" && dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logLevel := logger.Error
	if cfg.LogQueries {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	maxOpen := cfg.MaxConnections
	if cfg.Path == "" || cfg.Path == ":memory:" {
		// Every connection to :memory: is a separate database
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if cfg.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)
	}
	if cfg.ConnectionMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnectionMaxLifetime)
	}

	if cfg.EnableWAL {
		if err := db.Exec("PRAGMA journal_mode=WAL").Error; err != nil {
			log.Printf("[WARN] Failed to enable WAL mode: %v", err)
		}
	}
	if cfg.EnableForeignKeys {
		if err := db.Exec("PRAGMA foreign_keys=ON").Error; err != nil {
			log.Printf("[WARN] Failed to enable foreign keys: %v", err)
		}
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(models ...any) error {
	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Printf("[DEBUG] Migrated %d model(s)", len(models))
	return nil
}

// Migrate brings every application table up to date
func (db *DB) Migrate() error {
	return db.AutoMigrate(Models()...)
}

// MigrationStatus reports which application tables exist
func (db *DB) MigrationStatus() ([]TableStatus, error) {
	migrator := db.DB.Migrator()
	statuses := make([]TableStatus, 0, len(Models()))
	for _, m := range Models() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}
		statuses = append(statuses, TableStatus{
			Model:   stmt.Schema.Name,
			Table:   stmt.Schema.Table,
			Present: migrator.HasTable(m),
		})
	}
	return statuses, nil
}
