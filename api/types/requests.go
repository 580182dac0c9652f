package types

import (
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/seeding"
)

// SeedRequest creates a timeline. Exactly one of Segments, Transcript or
// TranscriptURL supplies the caption segments; none gives an empty caption track.
type SeedRequest struct {
	MediaDuration    float64           `json:"media_duration" example:"1800"`
	FrameRate        float64           `json:"frame_rate,omitempty" example:"29.97"`
	SourceURI        string            `json:"source_uri,omitempty" example:"file:///media/interview.mp4"`
	Segments         []seeding.Segment `json:"segments,omitempty"`
	Transcript       string            `json:"transcript,omitempty"`        // Inline VTT, SRT or JSON
	TranscriptFormat string            `json:"transcript_format,omitempty"` // vtt, srt or json; detected when empty
	TranscriptURL    string            `json:"transcript_url,omitempty"`
	Overwrite        bool              `json:"overwrite,omitempty"`
}

// ClipEditRequest is a partial clip update; omitted fields are unchanged
type ClipEditRequest struct {
	Label    *string                 `json:"label,omitempty"`
	Start    *float64                `json:"start,omitempty"`
	End      *float64                `json:"end,omitempty"`
	Volume   *float64                `json:"volume,omitempty"`
	Opacity  *float64                `json:"opacity,omitempty"`
	Locked   *bool                   `json:"locked,omitempty"`
	Disabled *bool                   `json:"disabled,omitempty"`
	Effects  *[]models.Effect        `json:"effects,omitempty"`
	Payload  *models.PayloadEnvelope `json:"payload,omitempty"`
}

// TimeRequest carries a single timeline position
type TimeRequest struct {
	Time *float64 `json:"time" binding:"required" example:"12.5"`
}

// TrimRequest sets new clip bounds; omitted bounds are unchanged
type TrimRequest struct {
	Start *float64 `json:"start,omitempty" example:"2"`
	End   *float64 `json:"end,omitempty" example:"8"`
}

// MoveRequest moves a clip to a new start time
type MoveRequest struct {
	Start *float64 `json:"start" binding:"required" example:"30"`
}

// RangeRequest selects a [start, end) span within a clip
type RangeRequest struct {
	Start *float64 `json:"start" binding:"required" example:"3"`
	End   *float64 `json:"end" binding:"required" example:"7"`
}

// MergeRequest names the two clips to merge
type MergeRequest struct {
	ClipA string `json:"clip_a" binding:"required"`
	ClipB string `json:"clip_b" binding:"required"`
}

// ToggleRequest names the track flag to flip
type ToggleRequest struct {
	Property models.TrackProperty `json:"property" binding:"required" example:"muted"`
}

// TrackEditRequest is a partial track update
type TrackEditRequest struct {
	Name    *string  `json:"name,omitempty"`
	Volume  *float64 `json:"volume,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// SettingsRequest changes view settings; omitted fields are unchanged
type SettingsRequest struct {
	Zoom         *float64 `json:"zoom,omitempty" example:"2"`
	SnapInterval *float64 `json:"snap_interval,omitempty" example:"0.5"`
}
