// Package seeding builds the first timeline of a media item from its duration
// and transcription segments.
package seeding

import (
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/transcript"
)

// Track ids of a seeded timeline
const (
	VideoTrackID = "video-1"
	AudioTrackID = "audio-1"
	TextTrackID  = "captions-1"
)

// Segment is one transcribed span
type Segment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
	Speaker    string  `json:"speaker,omitempty"`
}

// Seed is everything needed to create a timeline for a media item
type Seed struct {
	MediaID       string    `json:"media_id"`
	MediaDuration float64   `json:"media_duration"`
	FrameRate     float64   `json:"frame_rate,omitempty"`
	SourceURI     string    `json:"source_uri,omitempty"`
	Segments      []Segment `json:"segments"`
}

// Builder turns seeds into timeline states
type Builder struct {
	defaults models.Settings
}

// NewBuilder creates a builder applying the given default view settings
func NewBuilder(defaults models.Settings) *Builder {
	return &Builder{defaults: defaults}
}

// Build creates a timeline with a video and an audio track spanning the media
// and a caption track with one text clip per segment. A segment that starts
// before its predecessor ends is clamped to the predecessor end; segments left
// shorter than the minimum clip duration are skipped.
func (b *Builder) Build(seed Seed) (*models.TimelineState, error) {
	if strings.TrimSpace(seed.MediaID) == "" {
		return nil, apperrors.ValidationError("media_id", "is required")
	}
	if seed.MediaDuration < 0 || math.IsNaN(seed.MediaDuration) {
		return nil, apperrors.ValidationError("media_duration", "must not be negative")
	}

	segments := append([]Segment(nil), seed.Segments...)
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	duration := seed.MediaDuration
	if duration == 0 && len(segments) > 0 {
		for _, s := range segments {
			duration = math.Max(duration, s.End)
		}
	}

	settings := b.defaults
	if seed.FrameRate > 0 {
		settings.FrameRate = seed.FrameRate
	}

	state := &models.TimelineState{
		MediaID:       seed.MediaID,
		MediaDuration: duration,
		Settings:      settings,
		Tracks: []models.Track{
			newTrack(VideoTrackID, "Video", models.TrackKindVideo, 0),
			newTrack(AudioTrackID, "Audio", models.TrackKindAudio, 1),
			newTrack(TextTrackID, "Captions", models.TrackKindText, 2),
		},
	}

	if duration >= models.MinClipDuration {
		for i := 0; i < 2; i++ {
			clip := models.Clip{
				ID:      models.NewClipID(),
				Kind:    state.Tracks[i].Kind,
				Start:   0,
				End:     duration,
				Label:   state.Tracks[i].Name,
				Volume:  1,
				Opacity: 1,
				Payload: models.MediaPayload{SourceURI: seed.SourceURI},
			}
			clip.SetSource(0, duration)
			state.Tracks[i].Clips = append(state.Tracks[i].Clips, clip)
		}
	}

	captions, skipped := captionClips(segments)
	state.Tracks[2].Clips = captions
	if skipped > 0 {
		log.Printf("[DEBUG] Seeding %s skipped %d segments shorter than %.1fs after clamping", seed.MediaID, skipped, models.MinClipDuration)
	}

	state.RecomputeDuration()
	return state, nil
}

func captionClips(segments []Segment) ([]models.Clip, int) {
	clips := make([]models.Clip, 0, len(segments))
	skipped := 0
	prevEnd := 0.0

	for _, s := range segments {
		text := strings.TrimSpace(s.Text)
		start := math.Max(s.Start, prevEnd)
		if text == "" || s.End-start < models.MinClipDuration-1e-9 {
			skipped++
			continue
		}
		clips = append(clips, models.Clip{
			ID:      models.NewClipID(),
			Kind:    models.TrackKindText,
			Start:   start,
			End:     s.End,
			Label:   models.LabelPreview(text),
			Volume:  1,
			Opacity: 1,
			Payload: models.TextPayload{
				Text:       text,
				Speaker:    s.Speaker,
				Confidence: clampUnit(s.Confidence),
			},
		})
		prevEnd = s.End
	}
	return clips, skipped
}

func newTrack(id, name string, kind models.TrackKind, order int) models.Track {
	return models.Track{
		ID:      id,
		Name:    name,
		Kind:    kind,
		Order:   order,
		Visible: true,
		Volume:  1,
		Opacity: 1,
		Clips:   []models.Clip{},
	}
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// FromTranscript converts a parsed transcript into a seed. A zero media duration
// falls back to the transcript duration.
func FromTranscript(mediaID string, mediaDuration float64, t *transcript.Transcript) (Seed, error) {
	if t == nil {
		return Seed{}, fmt.Errorf("nil transcript")
	}
	if len(t.Segments) == 0 {
		return Seed{}, apperrors.ValidationError("transcript", fmt.Sprintf("%s transcript has no timed segments", t.Format))
	}

	seed := Seed{
		MediaID:       mediaID,
		MediaDuration: mediaDuration,
		Segments:      make([]Segment, 0, len(t.Segments)),
	}
	if seed.MediaDuration == 0 {
		seed.MediaDuration = t.Duration.Seconds()
	}
	for _, s := range t.Segments {
		seed.Segments = append(seed.Segments, Segment{
			Start:      s.Start.Seconds(),
			End:        s.End.Seconds(),
			Text:       s.Text,
			Confidence: s.Confidence,
			Speaker:    s.Speaker,
		})
	}
	return seed, nil
}
