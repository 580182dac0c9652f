package persistence

import (
	"context"
	"time"
)

// Repository stores timeline documents keyed by media id
type Repository interface {
	// Load returns the stored document or ErrTimelineNotFound
	Load(ctx context.Context, mediaID string) (*Document, error)

	// Save creates or replaces the document for its media id
	Save(ctx context.Context, doc *Document) error

	// Delete removes the document for a media id
	Delete(ctx context.Context, mediaID string) error

	// List returns summaries of all stored timelines
	List(ctx context.Context) ([]Summary, error)
}

// Summary describes a stored timeline without decoding it
type Summary struct {
	MediaID    string    `json:"media_id"`
	TrackCount int       `json:"track_count"`
	ClipCount  int       `json:"clip_count"`
	Duration   float64   `json:"duration"`
	SavedAt    time.Time `json:"saved_at"`
}
