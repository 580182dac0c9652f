package types

import (
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	"github.com/killallgit/timeline-api/pkg/segment"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// TimelineResponse returns the full state after an operation
type TimelineResponse struct {
	BaseResponse
	Timeline *models.TimelineState `json:"timeline"`
	History  timeline.HistoryInfo  `json:"history"`
	Save     persistence.Status    `json:"save"`
	ClipID   string                `json:"clip_id,omitempty"` // Id of a clip created by the operation
}

// TimelineSummary describes one stored timeline
type TimelineSummary struct {
	MediaID    string    `json:"media_id"`
	TrackCount int       `json:"track_count"`
	ClipCount  int       `json:"clip_count"`
	Duration   float64   `json:"duration"`
	SavedAt    time.Time `json:"saved_at"`
	Open       bool      `json:"open"`
}

// TimelineListResponse lists stored timelines
type TimelineListResponse struct {
	BaseResponse
	Timelines []TimelineSummary `json:"timelines"`
	Count     int               `json:"count"`
}

// HistoryResponse describes the undo log
type HistoryResponse struct {
	BaseResponse
	History timeline.HistoryInfo `json:"history"`
	Applied bool                 `json:"applied"` // False when undo or redo had nothing to do
}

// PlayheadResponse returns the clamped playhead position
type PlayheadResponse struct {
	BaseResponse
	CurrentTime float64 `json:"current_time"`
	Snapped     float64 `json:"snapped"`
}

// SaveStatusResponse reports persistence state
type SaveStatusResponse struct {
	BaseResponse
	Save persistence.Status `json:"save"`
}

// StatisticsResponse returns track diagnostics
type StatisticsResponse struct {
	BaseResponse
	Statistics segment.Statistics `json:"statistics"`
}

// GapsResponse lists empty spans on a track
type GapsResponse struct {
	BaseResponse
	Gaps  []segment.Interval `json:"gaps"`
	Count int                `json:"count"`
}

// OverlapsResponse lists intersecting enabled clips on a track
type OverlapsResponse struct {
	BaseResponse
	Overlaps []segment.Overlap `json:"overlaps"`
	Count    int               `json:"count"`
}

// EdgeResponse returns the nearest clip edge, if any
type EdgeResponse struct {
	BaseResponse
	Found bool          `json:"found"`
	Edge  *segment.Edge `json:"edge,omitempty"`
}
