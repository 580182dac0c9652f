package models

import (
	"time"

	"gorm.io/gorm"
)

// TimelineRecord is the persisted snapshot of one media item's timeline
type TimelineRecord struct {
	gorm.Model
	MediaID      string    `json:"media_id" gorm:"not null;uniqueIndex;size:255"`
	Version      int       `json:"version" gorm:"not null;default:1"`       // Snapshot format version
	SnapshotData []byte    `json:"-" gorm:"type:blob;not null"`             // JSON-encoded persistence document
	TrackCount   int       `json:"track_count" gorm:"default:0"`            // Denormalized for listing
	ClipCount    int       `json:"clip_count" gorm:"default:0"`             // Denormalized for listing
	Duration     float64   `json:"duration" gorm:"default:0"`               // Timeline duration in seconds
	SavedAt      time.Time `json:"saved_at" gorm:"index"`
}

// TableName returns the table name for the TimelineRecord model
func (TimelineRecord) TableName() string {
	return "timelines"
}
