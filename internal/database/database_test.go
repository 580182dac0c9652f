package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name        string
		dbPath      string
		wantErr     bool
		checkResult func(*testing.T, *DB)
	}{
		{
			name:   "successful connection with in-memory database",
			dbPath: ":memory:",
			checkResult: func(t *testing.T, conn *DB) {
				assert.NotNil(t, conn.DB)
				sqlDB, err := conn.DB.DB()
				require.NoError(t, err)
				assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
			},
		},
		{
			name:   "successful connection with file database in a new directory",
			dbPath: filepath.Join(t.TempDir(), "nested", "timelines.db"),
			checkResult: func(t *testing.T, conn *DB) {
				sqlDB, err := conn.DB.DB()
				require.NoError(t, err)
				assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer conn.Close()

			if tt.checkResult != nil {
				tt.checkResult(t, conn)
			}
		})
	}
}

func TestOpen_Pragmas(t *testing.T) {
	conn, err := Open(config.DatabaseConfig{
		Path:              filepath.Join(t.TempDir(), "wal.db"),
		MaxConnections:    4,
		EnableWAL:         true,
		EnableForeignKeys: true,
	})
	require.NoError(t, err)
	defer conn.Close()

	var mode string
	require.NoError(t, conn.DB.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)
}

func TestDB_Close(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	assert.NoError(t, conn.Close())
	assert.Error(t, conn.HealthCheck(), "HealthCheck should fail after database is closed")
}

func TestDB_HealthCheck(t *testing.T) {
	tests := []struct {
		name      string
		setupConn func() (*DB, func())
		wantErr   bool
	}{
		{
			name: "healthy connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				return conn, func() { conn.Close() }
			},
		},
		{
			name: "closed connection",
			setupConn: func() (*DB, func()) {
				conn, _ := Initialize(":memory:", false)
				conn.Close()
				return conn, func() {}
			},
			wantErr: true,
		},
		{
			name: "nil connection",
			setupConn: func() (*DB, func()) {
				return nil, func() {}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, cleanup := tt.setupConn()
			defer cleanup()

			err := conn.HealthCheck()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDB_Migrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	before, err := conn.MigrationStatus()
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, "TimelineRecord", before[0].Model)
	assert.Equal(t, "timelines", before[0].Table)
	assert.False(t, before[0].Present)

	require.NoError(t, conn.Migrate())
	// running twice is harmless
	require.NoError(t, conn.Migrate())

	after, err := conn.MigrationStatus()
	require.NoError(t, err)
	assert.True(t, after[0].Present)

	var count int64
	err = conn.DB.Raw("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='timelines'").Scan(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestDB_TimelineRecordUnique(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.Migrate())

	rec := models.TimelineRecord{MediaID: "ep-1", Version: 1, SnapshotData: []byte("{}"), SavedAt: time.Now()}
	require.NoError(t, conn.DB.Create(&rec).Error)

	dup := models.TimelineRecord{MediaID: "ep-1", Version: 1, SnapshotData: []byte("{}")}
	assert.Error(t, conn.DB.Create(&dup).Error)
}

func TestDB_Transaction(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.Migrate())

	err = conn.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.TimelineRecord{MediaID: "rollback", SnapshotData: []byte("{}")}).Error; err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	assert.Error(t, err)

	var count int64
	conn.DB.Model(&models.TimelineRecord{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
