package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// repository implements Repository on top of the timelines table
type repository struct {
	db *gorm.DB
}

// NewRepository creates a database backed timeline repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Load retrieves and decodes the snapshot for a media id
func (r *repository) Load(ctx context.Context, mediaID string) (*Document, error) {
	var record models.TimelineRecord
	err := r.db.WithContext(ctx).
		Where("media_id = ?", mediaID).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimelineNotFound
		}
		return nil, err
	}

	return DecodeDocument(record.SnapshotData, FormatJSON)
}

// Save upserts the snapshot row for the document's media id
func (r *repository) Save(ctx context.Context, doc *Document) error {
	if doc.SavedAt.IsZero() {
		doc.SavedAt = time.Now().UTC()
	}
	data, err := doc.Encode(FormatJSON)
	if err != nil {
		return fmt.Errorf("failed to encode timeline %s: %w", doc.MediaID, err)
	}

	record := &models.TimelineRecord{
		MediaID:      doc.MediaID,
		Version:      doc.Version,
		SnapshotData: data,
		TrackCount:   len(doc.Tracks),
		ClipCount:    doc.ClipCount(),
		Duration:     doc.Duration,
		SavedAt:      doc.SavedAt,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "media_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "snapshot_data", "track_count", "clip_count", "duration", "saved_at", "updated_at"}),
	}).Create(record).Error
}

// Delete removes the snapshot for a media id
func (r *repository) Delete(ctx context.Context, mediaID string) error {
	result := r.db.WithContext(ctx).
		Unscoped().
		Where("media_id = ?", mediaID).
		Delete(&models.TimelineRecord{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTimelineNotFound
	}

	return nil
}

// List returns stored timelines, most recently saved first
func (r *repository) List(ctx context.Context) ([]Summary, error) {
	var records []models.TimelineRecord
	err := r.db.WithContext(ctx).
		Select("media_id", "track_count", "clip_count", "duration", "saved_at").
		Order("saved_at DESC").
		Find(&records).Error

	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, Summary{
			MediaID:    rec.MediaID,
			TrackCount: rec.TrackCount,
			ClipCount:  rec.ClipCount,
			Duration:   rec.Duration,
			SavedAt:    rec.SavedAt,
		})
	}
	return summaries, nil
}
