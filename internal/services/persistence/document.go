package persistence

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"gopkg.in/yaml.v3"
)

// DocumentVersion is the snapshot format written by this package
const DocumentVersion = 1

// Document is the external snapshot of a timeline
type Document struct {
	Version       int         `json:"version" yaml:"version"`
	MediaID       string      `json:"media_id" yaml:"media_id"`
	MediaDuration float64     `json:"media_duration" yaml:"media_duration"`
	Duration      float64     `json:"duration" yaml:"duration"`
	CurrentTime   float64     `json:"current_time" yaml:"current_time"`
	Settings      DocSettings `json:"settings" yaml:"settings"`
	Tracks        []DocTrack  `json:"tracks" yaml:"tracks"`
	SavedAt       time.Time   `json:"saved_at" yaml:"saved_at"`
}

// DocSettings mirrors models.Settings
type DocSettings struct {
	Zoom         float64 `json:"zoom" yaml:"zoom"`
	SnapInterval float64 `json:"snap_interval" yaml:"snap_interval"`
	FrameRate    float64 `json:"frame_rate,omitempty" yaml:"frame_rate,omitempty"`
}

// DocTrack is one track of a Document
type DocTrack struct {
	ID      string    `json:"id" yaml:"id"`
	Name    string    `json:"name" yaml:"name"`
	Kind    string    `json:"kind" yaml:"kind"`
	Order   int       `json:"order" yaml:"order"`
	Visible bool      `json:"visible" yaml:"visible"`
	Muted   bool      `json:"muted" yaml:"muted"`
	Locked  bool      `json:"locked" yaml:"locked"`
	Volume  float64   `json:"volume" yaml:"volume"`
	Opacity float64   `json:"opacity" yaml:"opacity"`
	Clips   []DocClip `json:"clips" yaml:"clips"`
}

// DocClip is one clip of a DocTrack
type DocClip struct {
	ID          string                  `json:"id" yaml:"id"`
	Kind        string                  `json:"kind" yaml:"kind"`
	Start       float64                 `json:"start" yaml:"start"`
	End         float64                 `json:"end" yaml:"end"`
	SourceStart *float64                `json:"source_start,omitempty" yaml:"source_start,omitempty"`
	SourceEnd   *float64                `json:"source_end,omitempty" yaml:"source_end,omitempty"`
	Label       string                  `json:"label,omitempty" yaml:"label,omitempty"`
	Locked      bool                    `json:"locked" yaml:"locked"`
	Disabled    bool                    `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Volume      float64                 `json:"volume" yaml:"volume"`
	Opacity     float64                 `json:"opacity" yaml:"opacity"`
	Effects     []DocEffect             `json:"effects,omitempty" yaml:"effects,omitempty"`
	Payload     *models.PayloadEnvelope `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// DocEffect is one effect of a DocClip
type DocEffect struct {
	ID     string             `json:"id" yaml:"id"`
	Type   string             `json:"type" yaml:"type"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
	Start  *float64           `json:"start,omitempty" yaml:"start,omitempty"`
	End    *float64           `json:"end,omitempty" yaml:"end,omitempty"`
}

// ClipCount returns the number of clips across all tracks
func (d *Document) ClipCount() int {
	n := 0
	for _, t := range d.Tracks {
		n += len(t.Clips)
	}
	return n
}

// FromState converts a state into a document
func FromState(state *models.TimelineState) *Document {
	doc := &Document{
		Version:       DocumentVersion,
		MediaID:       state.MediaID,
		MediaDuration: state.MediaDuration,
		Duration:      state.Duration,
		CurrentTime:   state.CurrentTime,
		Settings: DocSettings{
			Zoom:         state.Settings.Zoom,
			SnapInterval: state.Settings.SnapInterval,
			FrameRate:    state.Settings.FrameRate,
		},
		Tracks: make([]DocTrack, 0, len(state.Tracks)),
	}

	for _, t := range state.Tracks {
		dt := DocTrack{
			ID:      t.ID,
			Name:    t.Name,
			Kind:    string(t.Kind),
			Order:   t.Order,
			Visible: t.Visible,
			Muted:   t.Muted,
			Locked:  t.Locked,
			Volume:  t.Volume,
			Opacity: t.Opacity,
			Clips:   make([]DocClip, 0, len(t.Clips)),
		}
		for _, c := range t.Clips {
			c = c.Clone()
			dc := DocClip{
				ID:          c.ID,
				Kind:        string(c.Kind),
				Start:       c.Start,
				End:         c.End,
				SourceStart: c.SourceStart,
				SourceEnd:   c.SourceEnd,
				Label:       c.Label,
				Locked:      c.Locked,
				Disabled:    c.Disabled,
				Volume:      c.Volume,
				Opacity:     c.Opacity,
				Payload:     models.EncodePayload(c.Payload),
			}
			for _, e := range c.Effects {
				dc.Effects = append(dc.Effects, DocEffect{ID: e.ID, Type: e.Type, Params: e.Params, Start: e.Start, End: e.End})
			}
			dt.Clips = append(dt.Clips, dc)
		}
		doc.Tracks = append(doc.Tracks, dt)
	}
	return doc
}

// ToState validates the document and converts it to a state. Clips are sorted
// by start and the duration is recomputed from the clips.
func (d *Document) ToState() (*models.TimelineState, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	state := &models.TimelineState{
		MediaID:       d.MediaID,
		MediaDuration: d.MediaDuration,
		CurrentTime:   d.CurrentTime,
		Settings: models.Settings{
			Zoom:         d.Settings.Zoom,
			SnapInterval: d.Settings.SnapInterval,
			FrameRate:    d.Settings.FrameRate,
		},
		Tracks: make([]models.Track, 0, len(d.Tracks)),
	}

	for _, dt := range d.Tracks {
		track := models.Track{
			ID:      dt.ID,
			Name:    dt.Name,
			Kind:    models.TrackKind(dt.Kind),
			Order:   dt.Order,
			Visible: dt.Visible,
			Muted:   dt.Muted,
			Locked:  dt.Locked,
			Volume:  dt.Volume,
			Opacity: dt.Opacity,
			Clips:   make([]models.Clip, 0, len(dt.Clips)),
		}
		for _, dc := range dt.Clips {
			payload, _ := dc.Payload.Decode() // checked by Validate
			clip := models.Clip{
				ID:       dc.ID,
				Kind:     models.TrackKind(dc.Kind),
				Start:    dc.Start,
				End:      dc.End,
				Label:    dc.Label,
				Locked:   dc.Locked,
				Disabled: dc.Disabled,
				Volume:   dc.Volume,
				Opacity:  dc.Opacity,
				Payload:  payload,
			}
			if dc.SourceStart != nil && dc.SourceEnd != nil {
				clip.SetSource(*dc.SourceStart, *dc.SourceEnd)
			}
			for _, de := range dc.Effects {
				clip.Effects = append(clip.Effects, models.Effect{ID: de.ID, Type: de.Type, Params: de.Params, Start: de.Start, End: de.End}.Clone())
			}
			track.Clips = append(track.Clips, clip)
		}
		track.SortClips()
		state.Tracks = append(state.Tracks, track)
	}
	state.RecomputeDuration()
	if state.CurrentTime < 0 {
		state.CurrentTime = 0
	}
	return state, nil
}

// Validate checks the structural invariants of a loaded document
func (d *Document) Validate() error {
	if d.Version > DocumentVersion {
		return fmt.Errorf("%w: version %d is newer than supported version %d", ErrInvalidDocument, d.Version, DocumentVersion)
	}
	if d.MediaID == "" {
		return fmt.Errorf("%w: media_id is required", ErrInvalidDocument)
	}
	if d.MediaDuration < 0 {
		return fmt.Errorf("%w: media_duration must not be negative", ErrInvalidDocument)
	}

	trackIDs := make(map[string]bool, len(d.Tracks))
	clipIDs := make(map[string]bool)
	for _, t := range d.Tracks {
		if t.ID == "" || trackIDs[t.ID] {
			return fmt.Errorf("%w: track id %q is empty or duplicated", ErrInvalidDocument, t.ID)
		}
		trackIDs[t.ID] = true
		if !models.TrackKind(t.Kind).Valid() {
			return fmt.Errorf("%w: track %s has unknown kind %q", ErrInvalidDocument, t.ID, t.Kind)
		}

		enabled := make([]DocClip, 0, len(t.Clips))
		for _, c := range t.Clips {
			if err := validateClip(t, c, clipIDs); err != nil {
				return err
			}
			if !c.Disabled {
				enabled = append(enabled, c)
			}
		}

		sort.SliceStable(enabled, func(i, j int) bool { return enabled[i].Start < enabled[j].Start })
		for i := 1; i < len(enabled); i++ {
			if enabled[i].Start < enabled[i-1].End-1e-9 {
				return fmt.Errorf("%w: clips %s and %s overlap on track %s", ErrInvalidDocument, enabled[i-1].ID, enabled[i].ID, t.ID)
			}
		}
	}
	return nil
}

func validateClip(t DocTrack, c DocClip, seen map[string]bool) error {
	if c.ID == "" || seen[c.ID] {
		return fmt.Errorf("%w: clip id %q is empty or duplicated", ErrInvalidDocument, c.ID)
	}
	seen[c.ID] = true
	if c.Kind != t.Kind {
		return fmt.Errorf("%w: clip %s kind %q does not match track %s kind %q", ErrInvalidDocument, c.ID, c.Kind, t.ID, t.Kind)
	}
	if c.Start < 0 || c.End <= c.Start {
		return fmt.Errorf("%w: clip %s has invalid range [%g, %g)", ErrInvalidDocument, c.ID, c.Start, c.End)
	}
	if c.End-c.Start < models.MinClipDuration-1e-9 {
		return fmt.Errorf("%w: clip %s is shorter than %gs", ErrInvalidDocument, c.ID, models.MinClipDuration)
	}
	if (c.SourceStart == nil) != (c.SourceEnd == nil) {
		return fmt.Errorf("%w: clip %s must set both source bounds or neither", ErrInvalidDocument, c.ID)
	}
	if c.SourceStart != nil {
		span := *c.SourceEnd - *c.SourceStart
		if *c.SourceStart < 0 || math.Abs(span-(c.End-c.Start)) > models.SourceTolerance {
			return fmt.Errorf("%w: clip %s source span %g does not match duration %g", ErrInvalidDocument, c.ID, span, c.End-c.Start)
		}
	}
	payload, err := c.Payload.Decode()
	if err != nil {
		return fmt.Errorf("%w: clip %s: %v", ErrInvalidDocument, c.ID, err)
	}
	if payload != nil && payload.PayloadKind() != models.PayloadKindFor(models.TrackKind(c.Kind)) {
		return fmt.Errorf("%w: clip %s carries a %s payload", ErrInvalidDocument, c.ID, payload.PayloadKind())
	}
	return nil
}

// Format names a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Extension returns the file extension used for the format
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// ParseFormat maps a config value to a Format, defaulting to JSON
func ParseFormat(s string) Format {
	switch s {
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Encode serializes the document
func (d *Document) Encode(format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		return yaml.Marshal(d)
	default:
		return json.MarshalIndent(d, "", "  ")
	}
}

// DecodeDocument parses a document in the given format
func DecodeDocument(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}
