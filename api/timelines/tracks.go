package timelines

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	"github.com/killallgit/timeline-api/pkg/edl"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/segment"
)

// trackSnapshot returns a copy of the track and the timeline settings.
// On failure the error response has been sent.
func trackSnapshot(c *gin.Context, deps *types.Dependencies) (models.Track, models.Settings, bool) {
	s, ok := openSession(c, deps)
	if !ok {
		return models.Track{}, models.Settings{}, false
	}
	state := s.State()
	track := state.Track(c.Param("trackId"))
	if track == nil {
		types.SendError(c, apperrors.NotFound("track", c.Param("trackId")))
		return models.Track{}, models.Settings{}, false
	}
	return *track, state.Settings, true
}

// EditTrack updates track name, volume and opacity
// @Summary      Edit track
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        request body types.TrackEditRequest true "Fields to change"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid update"
// @Failure      409 {object} types.ErrorResponse "Track locked"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId} [patch]
func EditTrack(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TrackEditRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		update := timeline.TrackUpdate{Name: req.Name, Volume: req.Volume, Opacity: req.Opacity}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return "", store.EditTrack(c.Param("trackId"), update)
		})
	}
}

// ToggleTrack flips a boolean track flag
// @Summary      Toggle track flag
// @Description  Flip visible, muted or locked. Allowed on locked tracks so they can be unlocked.
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        request body types.ToggleRequest true "Property"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Unknown property"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/toggle [post]
func ToggleTrack(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ToggleRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return "", store.ToggleTrack(c.Param("trackId"), req.Property)
		})
	}
}

// MergeClips joins two adjacent clips
// @Summary      Merge clips
// @Description  Merge two clips of the same kind separated by at most 0.1s. Text payloads are joined with a space.
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        request body types.MergeRequest true "Clips to merge"
// @Success      200 {object} types.TimelineResponse "Timeline with the merged clip"
// @Failure      409 {object} types.ErrorResponse "Not adjacent, locked or kind mismatch"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/merge [post]
func MergeClips(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.MergeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return "", store.MergeClips(c.Param("trackId"), req.ClipA, req.ClipB)
		})
	}
}

// PasteClip inserts the clipboard clip on a track
// @Summary      Paste clip
// @Description  Insert a fresh copy of the clipboard clip at the given time
// @Tags         tracks
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        request body types.TimeRequest true "Insert time"
// @Success      201 {object} types.TimelineResponse "Timeline with the pasted clip"
// @Failure      400 {object} types.ErrorResponse "Clipboard empty"
// @Failure      409 {object} types.ErrorResponse "Overlap or kind mismatch"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/paste [post]
func PasteClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TimeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusCreated, func(store *timeline.Store) (string, error) {
			return store.PasteClip(c.Param("trackId"), *req.Time)
		})
	}
}

// GetTrackStatistics reports clip counts and coverage for a track
// @Summary      Track statistics
// @Tags         tracks
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Success      200 {object} types.StatisticsResponse "Statistics"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/stats [get]
func GetTrackStatistics(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, _, ok := trackSnapshot(c, deps)
		if !ok {
			return
		}
		types.SendSuccess(c, types.StatisticsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Track statistics"},
			Statistics:   segment.TrackStatistics(track),
		})
	}
}

// GetTrackGaps lists empty spans between enabled clips
// @Summary      Track gaps
// @Tags         tracks
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        min_gap query number false "Ignore gaps shorter than this (seconds)"
// @Success      200 {object} types.GapsResponse "Gaps"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/gaps [get]
func GetTrackGaps(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		minGap, ok := queryFloat(c, "min_gap", 0)
		if !ok {
			return
		}
		track, _, ok := trackSnapshot(c, deps)
		if !ok {
			return
		}
		gaps := segment.DetectGaps(track, minGap)
		types.SendSuccess(c, types.GapsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Track gaps"},
			Gaps:         gaps,
			Count:        len(gaps),
		})
	}
}

// GetTrackOverlaps lists overlapping enabled clip pairs
// @Summary      Track overlaps
// @Tags         tracks
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Success      200 {object} types.OverlapsResponse "Overlaps"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/overlaps [get]
func GetTrackOverlaps(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		track, _, ok := trackSnapshot(c, deps)
		if !ok {
			return
		}
		overlaps := segment.DetectOverlaps(track)
		types.SendSuccess(c, types.OverlapsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Track overlaps"},
			Overlaps:     overlaps,
			Count:        len(overlaps),
		})
	}
}

// ExportEDL renders a track as a CMX3600 edit decision list
// @Summary      Export EDL
// @Description  Export the enabled clips of a video, overlay or audio track as CMX3600 text
// @Tags         tracks
// @Produce      plain
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        title query string false "EDL title (defaults to the track name)"
// @Param        reel query string false "Reel name (defaults to AX)"
// @Param        frame_rate query number false "Frame rate (defaults to the timeline frame rate, then 30)"
// @Success      200 {string} string "EDL text"
// @Failure      404 {object} types.ErrorResponse "Track not found"
// @Failure      409 {object} types.ErrorResponse "Text tracks cannot be exported"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/export.edl [get]
func ExportEDL(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		rate, ok := queryFloat(c, "frame_rate", 0)
		if !ok {
			return
		}
		if rate < 0 {
			types.SendBadRequest(c, "Invalid frame_rate")
			return
		}
		track, settings, ok := trackSnapshot(c, deps)
		if !ok {
			return
		}
		if rate == 0 {
			rate = settings.FrameRate
		}

		out, err := edl.Generate(track, edl.Options{
			Title:     c.Query("title"),
			Reel:      c.Query("reel"),
			FrameRate: rate,
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", c.Param("mediaId")+"-"+track.ID+".edl"))
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(out))
	}
}
