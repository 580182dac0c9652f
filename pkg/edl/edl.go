// Package edl renders a track's clip list as a CMX3600 edit decision list.
package edl

import (
	"fmt"
	"math"
	"strings"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

// DefaultFrameRate is used when neither the options nor the timeline name one
const DefaultFrameRate = 30.0

// Options controls EDL rendering
type Options struct {
	Title     string
	FrameRate float64
	Reel      string // defaults to AX
}

// IsDropFrame reports whether the rate is one of the NTSC drop-frame rates
func IsDropFrame(frameRate float64) bool {
	return math.Abs(frameRate-29.97) < 0.01 || math.Abs(frameRate-59.94) < 0.01
}

// Generate renders the enabled clips of a track. Source in/out come from the
// clip's source range, or its timeline range when it has none; record in/out
// are timeline positions.
func Generate(track models.Track, opts Options) (string, error) {
	channel, err := channelFor(track.Kind)
	if err != nil {
		return "", err
	}

	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}
	reel := opts.Reel
	if reel == "" {
		reel = "AX"
	}
	title := opts.Title
	if title == "" {
		title = track.Name
	}

	tc := newTimecoder(frameRate)

	lines := []string{fmt.Sprintf("TITLE: %s", title)}
	if tc.drop {
		lines = append(lines, "FCM: DROP FRAME")
	} else {
		lines = append(lines, "FCM: NON-DROP FRAME")
	}
	lines = append(lines, "")

	for i, clip := range track.EnabledClips() {
		srcIn, srcOut := clip.Start, clip.End
		if clip.HasSource() {
			srcIn, srcOut = *clip.SourceStart, *clip.SourceEnd
		}

		lines = append(lines,
			fmt.Sprintf("%03d  %-8s %-5s C        %s %s %s %s", i+1, reel, channel,
				tc.format(srcIn), tc.format(srcOut), tc.format(clip.Start), tc.format(clip.End)),
			fmt.Sprintf("* FROM CLIP NAME:  %s", clipName(clip)),
		)
		if p, ok := clip.Payload.(models.MediaPayload); ok && p.SourceURI != "" {
			lines = append(lines, fmt.Sprintf("* MEDIA PATH:  %s", p.SourceURI))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n"), nil
}

func channelFor(kind models.TrackKind) (string, error) {
	switch kind {
	case models.TrackKindVideo, models.TrackKindOverlay:
		return "V", nil
	case models.TrackKindAudio:
		return "A", nil
	default:
		return "", apperrors.Newf(apperrors.ErrCodeTypeMismatch, "%s tracks have no source media to export", kind)
	}
}

func clipName(c models.Clip) string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

type timecoder struct {
	rate    float64 // actual frames per second
	nominal int     // frames counted per timecode second
	drop    bool
	dropped int // frame numbers skipped per minute in drop-frame mode
}

func newTimecoder(frameRate float64) timecoder {
	tc := timecoder{
		rate:    frameRate,
		nominal: int(math.Round(frameRate)),
		drop:    IsDropFrame(frameRate),
	}
	if tc.nominal <= 0 {
		tc.nominal = int(DefaultFrameRate)
	}
	if tc.drop {
		tc.dropped = tc.nominal / 15 // 2 at 29.97, 4 at 59.94
	}
	return tc
}

// format converts seconds to HH:MM:SS:FF, or HH:MM:SS;FF for drop-frame rates
func (tc timecoder) format(seconds float64) string {
	frames := int(math.Round(math.Max(0, seconds) * tc.rate))
	sep := ":"
	if tc.drop {
		frames = tc.dropFrameNumber(frames)
		sep = ";"
	}

	ff := frames % tc.nominal
	totalSeconds := frames / tc.nominal
	return fmt.Sprintf("%02d:%02d:%02d%s%02d", totalSeconds/3600, (totalSeconds/60)%60, totalSeconds%60, sep, ff)
}

// dropFrameNumber maps a real frame count to the timecode frame number, skipping
// the first frame numbers of every minute except each tenth.
func (tc timecoder) dropFrameNumber(frames int) int {
	perMinute := tc.nominal*60 - tc.dropped
	perTenMinutes := perMinute*10 + tc.dropped

	tens := frames / perTenMinutes
	rem := frames % perTenMinutes

	frames += 9 * tc.dropped * tens
	if rem > tc.dropped {
		frames += tc.dropped * ((rem - tc.dropped) / perMinute)
	}
	return frames
}
