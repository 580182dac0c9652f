package models

import (
	"sort"

	"github.com/google/uuid"
)

// Editing constants shared by the segment algebra, the store and the persistence layer
const (
	MinClipDuration    = 0.1  // Seconds; no committed clip may be shorter
	AdjacencyTolerance = 0.1  // Seconds; clips closer than this count as touching
	SourceTolerance    = 1e-6 // Float tolerance for source span vs duration
	LabelPreviewLength = 30   // Runes kept in a text clip label preview
)

// TrackKind is the media kind carried by a track and all of its clips
type TrackKind string

const (
	TrackKindVideo   TrackKind = "video"
	TrackKindAudio   TrackKind = "audio"
	TrackKindText    TrackKind = "text"
	TrackKindOverlay TrackKind = "overlay"
)

// Valid reports whether k is one of the known track kinds
func (k TrackKind) Valid() bool {
	switch k {
	case TrackKindVideo, TrackKindAudio, TrackKindText, TrackKindOverlay:
		return true
	}
	return false
}

// TrackProperty names a boolean track flag that can be toggled
type TrackProperty string

const (
	TrackPropertyVisible TrackProperty = "visible"
	TrackPropertyMuted   TrackProperty = "muted"
	TrackPropertyLocked  TrackProperty = "locked"
)

// Effect is an ordered modifier owned by exactly one clip.
// Start and End, when set, are local bounds relative to the clip start.
type Effect struct {
	ID     string             `json:"id"`
	Type   string             `json:"type"` // fade_in, fade_out, transition, crop, color, speed, filter
	Params map[string]float64 `json:"params,omitempty"`
	Start  *float64           `json:"start,omitempty"`
	End    *float64           `json:"end,omitempty"`
}

// Clone returns a deep copy that keeps the effect ID
func (e Effect) Clone() Effect {
	out := e
	if e.Params != nil {
		out.Params = make(map[string]float64, len(e.Params))
		for k, v := range e.Params {
			out.Params[k] = v
		}
	}
	if e.Start != nil {
		v := *e.Start
		out.Start = &v
	}
	if e.End != nil {
		v := *e.End
		out.End = &v
	}
	return out
}

// Bounded reports whether the effect applies to a sub-range of its clip
func (e Effect) Bounded() bool {
	return e.Start != nil || e.End != nil
}

// Clip is a time-bounded unit placed on a track
type Clip struct {
	ID          string    `json:"id"`
	Kind        TrackKind `json:"kind"`
	Start       float64   `json:"start"` // Timeline seconds
	End         float64   `json:"end"`   // Timeline seconds, exclusive
	SourceStart *float64  `json:"source_start,omitempty"`
	SourceEnd   *float64  `json:"source_end,omitempty"`
	Label       string    `json:"label,omitempty"`
	Locked      bool      `json:"locked"`
	Disabled    bool      `json:"disabled"`
	Volume      float64   `json:"volume"`
	Opacity     float64   `json:"opacity"`
	Effects     []Effect  `json:"effects,omitempty"`
	Payload     Payload   `json:"-"`
}

// Duration returns the timeline length of the clip
func (c Clip) Duration() float64 {
	return c.End - c.Start
}

// Enabled reports whether the clip takes part in overlap and duration checks
func (c Clip) Enabled() bool {
	return !c.Disabled
}

// HasSource reports whether the clip maps into source media time
func (c Clip) HasSource() bool {
	return c.SourceStart != nil && c.SourceEnd != nil
}

// Clone returns a deep copy of the clip, keeping every identifier
func (c Clip) Clone() Clip {
	out := c
	if c.SourceStart != nil {
		v := *c.SourceStart
		out.SourceStart = &v
	}
	if c.SourceEnd != nil {
		v := *c.SourceEnd
		out.SourceEnd = &v
	}
	if c.Effects != nil {
		out.Effects = make([]Effect, len(c.Effects))
		for i, e := range c.Effects {
			out.Effects[i] = e.Clone()
		}
	}
	if c.Payload != nil {
		out.Payload = c.Payload.clonePayload()
	}
	return out
}

// Text returns the caption text of a text clip, or an empty string
func (c Clip) Text() string {
	if p, ok := c.Payload.(TextPayload); ok {
		return p.Text
	}
	return ""
}

// SetSource sets both source bounds
func (c *Clip) SetSource(start, end float64) {
	c.SourceStart = &start
	c.SourceEnd = &end
}

// NewClipID returns a fresh clip identifier
func NewClipID() string {
	return "clip_" + uuid.New().String()
}

// NewEffectID returns a fresh effect identifier
func NewEffectID() string {
	return "fx_" + uuid.New().String()
}

// Track is an ordered lane of clips of a single kind
type Track struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Kind    TrackKind `json:"kind"`
	Order   int       `json:"order"` // z-order, higher draws on top
	Visible bool      `json:"visible"`
	Muted   bool      `json:"muted"`
	Locked  bool      `json:"locked"`
	Volume  float64   `json:"volume"`
	Opacity float64   `json:"opacity"`
	Clips   []Clip    `json:"clips"`
}

// Clone returns a deep copy of the track and its clips
func (t Track) Clone() Track {
	out := t
	if t.Clips != nil {
		out.Clips = make([]Clip, len(t.Clips))
		for i, c := range t.Clips {
			out.Clips[i] = c.Clone()
		}
	}
	return out
}

// ClipIndex returns the index of the clip with the given id, or -1
func (t *Track) ClipIndex(clipID string) int {
	for i := range t.Clips {
		if t.Clips[i].ID == clipID {
			return i
		}
	}
	return -1
}

// SortClips orders clips by start time, keeping the relative order of equal starts
func (t *Track) SortClips() {
	sort.SliceStable(t.Clips, func(i, j int) bool {
		return t.Clips[i].Start < t.Clips[j].Start
	})
}

// EnabledClips returns the enabled clips in track order
func (t Track) EnabledClips() []Clip {
	out := make([]Clip, 0, len(t.Clips))
	for _, c := range t.Clips {
		if c.Enabled() {
			out = append(out, c)
		}
	}
	return out
}

// Settings holds view and snapping preferences persisted with a timeline
type Settings struct {
	Zoom         float64 `json:"zoom"`
	SnapInterval float64 `json:"snap_interval"`
	FrameRate    float64 `json:"frame_rate,omitempty"`
}

// TimelineState is the full editable state of one media item's timeline
type TimelineState struct {
	MediaID       string   `json:"media_id"`
	Tracks        []Track  `json:"tracks"`
	MediaDuration float64  `json:"media_duration"`
	Duration      float64  `json:"duration"`
	CurrentTime   float64  `json:"current_time"`
	Settings      Settings `json:"settings"`
}

// Clone returns a deep copy suitable for handing to subscribers or a save
func (s *TimelineState) Clone() *TimelineState {
	out := *s
	if s.Tracks != nil {
		out.Tracks = make([]Track, len(s.Tracks))
		for i, t := range s.Tracks {
			out.Tracks[i] = t.Clone()
		}
	}
	return &out
}

// Track returns a pointer to the track with the given id, or nil
func (s *TimelineState) Track(trackID string) *Track {
	for i := range s.Tracks {
		if s.Tracks[i].ID == trackID {
			return &s.Tracks[i]
		}
	}
	return nil
}

// RecomputeDuration derives Duration from the media duration and enabled clip ends
func (s *TimelineState) RecomputeDuration() {
	d := s.MediaDuration
	for _, t := range s.Tracks {
		for _, c := range t.Clips {
			if c.Enabled() && c.End > d {
				d = c.End
			}
		}
	}
	s.Duration = d
	if s.CurrentTime > d {
		s.CurrentTime = d
	}
}
