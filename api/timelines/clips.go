package timelines

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

// AddClip places a new clip on a track
// @Summary      Add clip
// @Description  Insert a new clip. Kind defaults to the track kind; an id is generated when missing. Rejected if it overlaps an enabled clip.
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clip body models.Clip true "Clip"
// @Success      201 {object} types.TimelineResponse "Timeline with the new clip"
// @Failure      400 {object} types.ErrorResponse "Invalid clip"
// @Failure      409 {object} types.ErrorResponse "Overlap or kind mismatch"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips [post]
func AddClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var clip models.Clip
		if !types.BindJSONOrError(c, &clip) {
			return
		}
		mutate(c, deps, http.StatusCreated, func(store *timeline.Store) (string, error) {
			return store.AddClip(c.Param("trackId"), clip)
		})
	}
}

// EditClip applies a partial update to a clip
// @Summary      Edit clip
// @Description  Update label, bounds, volume, opacity, lock, disabled flag, effects or payload. A locked clip only accepts a lock change.
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.ClipEditRequest true "Fields to change"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid update"
// @Failure      409 {object} types.ErrorResponse "Locked or overlapping"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId} [patch]
func EditClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.ClipEditRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		payload, err := req.Payload.Decode()
		if err != nil {
			types.SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "invalid payload"))
			return
		}
		update := timeline.ClipUpdate{
			Label:    req.Label,
			Start:    req.Start,
			End:      req.End,
			Volume:   req.Volume,
			Opacity:  req.Opacity,
			Locked:   req.Locked,
			Disabled: req.Disabled,
			Effects:  req.Effects,
			Payload:  payload,
		}

		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return c.Param("clipId"), store.EditClip(c.Param("trackId"), c.Param("clipId"), update)
		})
	}
}

// DeleteClip removes a clip
// @Summary      Delete clip
// @Tags         clips
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Failure      409 {object} types.ErrorResponse "Locked"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId} [delete]
func DeleteClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return "", store.DeleteClip(c.Param("trackId"), c.Param("clipId"))
		})
	}
}

// SplitClip cuts a clip in two
// @Summary      Split clip
// @Description  Cut the clip at a time strictly inside it. The first piece keeps the clip id.
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.TimeRequest true "Cut time"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Time outside the clip"
// @Failure      409 {object} types.ErrorResponse "Locked"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/split [post]
func SplitClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TimeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return c.Param("clipId"), store.SplitClip(c.Param("trackId"), c.Param("clipId"), *req.Time)
		})
	}
}

// TrimClip changes clip bounds
// @Summary      Trim clip
// @Description  Move the start and/or end of a clip; the source range follows. Fails with TOO_SHORT below 0.1s.
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.TrimRequest true "New bounds"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid range"
// @Failure      409 {object} types.ErrorResponse "Locked or overlapping"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/trim [post]
func TrimClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TrimRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		if req.Start == nil && req.End == nil {
			types.SendBadRequest(c, "start or end is required")
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return c.Param("clipId"), store.TrimClip(c.Param("trackId"), c.Param("clipId"), req.Start, req.End)
		})
	}
}

// MoveClip shifts a clip along the timeline
// @Summary      Move clip
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.MoveRequest true "New start"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid start"
// @Failure      409 {object} types.ErrorResponse "Locked or overlapping"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/move [post]
func MoveClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.MoveRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return c.Param("clipId"), store.MoveClip(c.Param("trackId"), c.Param("clipId"), *req.Start)
		})
	}
}

// ExtractRange isolates a span of a clip
// @Summary      Extract range
// @Description  Split the clip so that [start, end) becomes its own clip, leaving up to two remainders
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.RangeRequest true "Range"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid range"
// @Failure      409 {object} types.ErrorResponse "Locked"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/extract [post]
func ExtractRange(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.RangeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			return "", store.ExtractRange(c.Param("trackId"), c.Param("clipId"), *req.Start, *req.End)
		})
	}
}

// DuplicateClip copies a clip to another position on its track
// @Summary      Duplicate clip
// @Tags         clips
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Param        request body types.TimeRequest true "Insert time"
// @Success      201 {object} types.TimelineResponse "Timeline with the copy"
// @Failure      409 {object} types.ErrorResponse "Overlapping"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/duplicate [post]
func DuplicateClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TimeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusCreated, func(store *timeline.Store) (string, error) {
			return store.DuplicateClip(c.Param("trackId"), c.Param("clipId"), *req.Time)
		})
	}
}

// CopyClip stages a clip on the clipboard
// @Summary      Copy clip
// @Description  Stage the clip in the shared clipboard slot; the last copy wins
// @Tags         clips
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        trackId path string true "Track ID"
// @Param        clipId path string true "Clip ID"
// @Success      200 {object} types.BaseResponse "Copied"
// @Failure      404 {object} types.ErrorResponse "Clip not found"
// @Router       /api/v1/timelines/{mediaId}/tracks/{trackId}/clips/{clipId}/copy [post]
func CopyClip(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		err := s.Do(func(store *timeline.Store) error {
			return store.CopyClip(c.Param("trackId"), c.Param("clipId"))
		})
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Clip copied"})
	}
}
