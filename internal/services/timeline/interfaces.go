package timeline

import (
	"github.com/killallgit/timeline-api/internal/models"
)

// EventBus delivers store events to subscribers synchronously and in subscription order
type EventBus interface {
	// Subscribe registers a handler and returns a function that removes it
	Subscribe(handler Handler) (unsubscribe func())

	// Publish delivers the event to every current subscriber before returning
	Publish(event Event)
}

// Clipboard is the single staging slot used by copy and paste
type Clipboard interface {
	// Stage replaces the slot content (last copy wins)
	Stage(entry ClipboardEntry)

	// Peek returns a deep copy of the staged entry
	Peek() (ClipboardEntry, bool)

	// Clear empties the slot
	Clear()
}

// Saver receives a deep snapshot after every committed mutation.
// Implementations must not block the caller on I/O.
type Saver interface {
	Schedule(state *models.TimelineState)
}

// ClipboardEntry is a copied clip together with the track it came from
type ClipboardEntry struct {
	Clip          models.Clip `json:"clip"`
	OriginTrackID string      `json:"origin_track_id"`
}

// ClipUpdate is a partial update of a clip's mutable fields; nil means unchanged
type ClipUpdate struct {
	Label    *string          `json:"label,omitempty"`
	Start    *float64         `json:"start,omitempty"`
	End      *float64         `json:"end,omitempty"`
	Volume   *float64         `json:"volume,omitempty"`
	Opacity  *float64         `json:"opacity,omitempty"`
	Locked   *bool            `json:"locked,omitempty"`
	Disabled *bool            `json:"disabled,omitempty"`
	Effects  *[]models.Effect `json:"effects,omitempty"`
	Payload  models.Payload   `json:"-"`
}

// onlyLock reports whether the update touches nothing but the lock flag
func (u ClipUpdate) onlyLock() bool {
	return u.Locked != nil && u.Label == nil && u.Start == nil && u.End == nil &&
		u.Volume == nil && u.Opacity == nil && u.Disabled == nil && u.Effects == nil && u.Payload == nil
}

// TrackUpdate is a partial update of a track's scalar properties
type TrackUpdate struct {
	Name    *string  `json:"name,omitempty"`
	Volume  *float64 `json:"volume,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
}

// HistoryInfo describes the undo log for callers and UIs
type HistoryInfo struct {
	Index   int             `json:"index"`
	Actions []models.Action `json:"actions"`
	CanUndo bool            `json:"can_undo"`
	CanRedo bool            `json:"can_redo"`
}
