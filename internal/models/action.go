package models

import (
	"time"

	"github.com/google/uuid"
)

// ActionKind discriminates history entries
type ActionKind string

const (
	ActionClipEdit    ActionKind = "clip_edit"
	ActionClipDelete  ActionKind = "clip_delete"
	ActionClipSplit   ActionKind = "clip_split"
	ActionClipMerge   ActionKind = "clip_merge"
	ActionTrackEdit   ActionKind = "track_edit"
	ActionClipInsert  ActionKind = "clip_insert"
	ActionClipExtract ActionKind = "clip_extract"
)

// Action describes one committed, reversible mutation
type Action struct {
	ID          string     `json:"id"`
	Kind        ActionKind `json:"kind"`
	Timestamp   time.Time  `json:"timestamp"`
	TrackID     string     `json:"track_id"`
	ClipIDs     []string   `json:"clip_ids,omitempty"`
	Description string     `json:"description"`
}

// NewAction creates an action descriptor stamped with the current time
func NewAction(kind ActionKind, trackID, description string, clipIDs ...string) Action {
	return Action{
		ID:          uuid.New().String(),
		Kind:        kind,
		Timestamp:   time.Now().UTC(),
		TrackID:     trackID,
		ClipIDs:     clipIDs,
		Description: description,
	}
}
