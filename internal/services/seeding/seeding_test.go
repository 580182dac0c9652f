package seeding

import (
	"testing"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/transcript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaults = models.Settings{Zoom: 1, SnapInterval: 0.1}

func TestBuild(t *testing.T) {
	seed := Seed{
		MediaID:       "media-1",
		MediaDuration: 60,
		FrameRate:     25,
		SourceURI:     "file:///media/clip-1.mp4",
		Segments: []Segment{
			{Start: 5, End: 9, Text: "second", Confidence: 0.8},
			{Start: 0, End: 5.5, Text: "  first caption that is long enough to be cut short  ", Confidence: 1.4, Speaker: "SPEAKER_00"},
			{Start: 8.95, End: 9.02, Text: "sliver"},
			{Start: 10, End: 12, Text: "   "},
		},
	}

	state, err := NewBuilder(defaults).Build(seed)
	require.NoError(t, err)

	assert.Equal(t, "media-1", state.MediaID)
	assert.Equal(t, 60.0, state.Duration)
	assert.Equal(t, 25.0, state.Settings.FrameRate)
	assert.Equal(t, 0.1, state.Settings.SnapInterval)
	require.Len(t, state.Tracks, 3)

	video := state.Tracks[0]
	assert.Equal(t, models.TrackKindVideo, video.Kind)
	require.Len(t, video.Clips, 1)
	assert.Equal(t, 60.0, video.Clips[0].End)
	assert.Equal(t, 60.0, *video.Clips[0].SourceEnd)
	assert.Equal(t, models.MediaPayload{SourceURI: seed.SourceURI}, video.Clips[0].Payload)
	assert.Len(t, state.Tracks[1].Clips, 1)

	captions := state.Tracks[2].Clips
	require.Len(t, captions, 2)
	assert.Equal(t, 0.0, captions[0].Start)
	assert.Equal(t, "first caption that is long eno...", captions[0].Label)
	first := captions[0].Payload.(models.TextPayload)
	assert.Equal(t, "SPEAKER_00", first.Speaker)
	assert.Equal(t, 1.0, first.Confidence)

	// clamped to the end of the previous caption
	assert.Equal(t, 5.5, captions[1].Start)
	assert.Equal(t, 9.0, captions[1].End)
	assert.Equal(t, "second", captions[1].Text())
	assert.NotEqual(t, captions[0].ID, captions[1].ID)
}

func TestBuild_NoMedia(t *testing.T) {
	state, err := NewBuilder(defaults).Build(Seed{
		MediaID:  "podcast",
		Segments: []Segment{{Start: 0, End: 3, Text: "audio only"}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3.0, state.MediaDuration)
	assert.Len(t, state.Tracks[0].Clips, 1)
	assert.Len(t, state.Tracks[2].Clips, 1)

	empty, err := NewBuilder(defaults).Build(Seed{MediaID: "empty"})
	require.NoError(t, err)
	assert.Empty(t, empty.Tracks[0].Clips)
	assert.Zero(t, empty.Duration)
}

func TestBuild_Validation(t *testing.T) {
	_, err := NewBuilder(defaults).Build(Seed{})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))

	_, err = NewBuilder(defaults).Build(Seed{MediaID: "x", MediaDuration: -1})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestFromTranscript(t *testing.T) {
	tr, err := transcript.NewParser().Parse(`{"segments": [
		{"start": 0.5, "end": 2.25, "text": "Hello", "speaker": "SPEAKER_00", "score": 0.7},
		{"start": 2.25, "end": 4, "text": "world"}
	]}`, transcript.FormatJSON)
	require.NoError(t, err)

	seed, err := FromTranscript("m1", 0, tr)
	require.NoError(t, err)
	assert.Equal(t, 4.0, seed.MediaDuration)
	require.Len(t, seed.Segments, 2)
	assert.Equal(t, Segment{Start: 0.5, End: 2.25, Text: "Hello", Confidence: 0.7, Speaker: "SPEAKER_00"}, seed.Segments[0])

	seed, err = FromTranscript("m1", 90, tr)
	require.NoError(t, err)
	assert.Equal(t, 90.0, seed.MediaDuration)

	_, err = FromTranscript("m1", 0, &transcript.Transcript{Format: transcript.FormatText, Duration: time.Second})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}
