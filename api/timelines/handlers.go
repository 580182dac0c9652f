package timelines

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/timeline-api/api/types"
	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/segment"
	"github.com/killallgit/timeline-api/pkg/transcript"
)

// openSession returns the session for the :mediaId parameter, loading it if needed.
// On failure the error response has been sent.
func openSession(c *gin.Context, deps *types.Dependencies) (*sessions.Session, bool) {
	s, err := deps.Sessions.Open(c.Request.Context(), c.Param("mediaId"))
	if err != nil {
		types.SendError(c, err)
		return nil, false
	}
	return s, true
}

// mutate runs fn against the store and answers with the resulting timeline
func mutate(c *gin.Context, deps *types.Dependencies, status int, fn func(store *timeline.Store) (string, error)) {
	s, ok := openSession(c, deps)
	if !ok {
		return
	}

	var resp types.TimelineResponse
	err := s.Do(func(store *timeline.Store) error {
		clipID, err := fn(store)
		if err != nil {
			return err
		}
		resp = timelineResponse(store, clipID)
		return nil
	})
	if err != nil {
		types.SendError(c, err)
		return
	}
	resp.Save = s.SaveStatus()
	c.JSON(status, resp)
}

// timelineResponse reads the state and history in one go; call it inside Do
func timelineResponse(store *timeline.Store, clipID string) types.TimelineResponse {
	return types.TimelineResponse{
		BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Timeline updated"},
		ClipID:       clipID,
		Timeline:     store.State(),
		History:      store.History(),
	}
}

// readTimeline answers with a consistent snapshot of the session
func readTimeline(s *sessions.Session) types.TimelineResponse {
	var resp types.TimelineResponse
	_ = s.Do(func(store *timeline.Store) error {
		resp = timelineResponse(store, "")
		return nil
	})
	resp.Save = s.SaveStatus()
	return resp
}

// queryFloat parses an optional float query parameter
func queryFloat(c *gin.Context, name string, fallback float64) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		types.SendBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return v, true
}

// ListTimelines lists stored timelines
// @Summary      List timelines
// @Description  List every stored timeline with its track and clip counts, newest save first
// @Tags         timelines
// @Produce      json
// @Success      200 {object} types.TimelineListResponse "Stored timelines"
// @Failure      503 {object} types.ErrorResponse "Storage unavailable"
// @Router       /api/v1/timelines [get]
func ListTimelines(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		summaries, err := deps.Sessions.List(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}

		open := make(map[string]bool)
		for _, id := range deps.Sessions.OpenIDs() {
			open[id] = true
		}

		out := make([]types.TimelineSummary, 0, len(summaries))
		for _, s := range summaries {
			out = append(out, types.TimelineSummary{
				MediaID:    s.MediaID,
				TrackCount: s.TrackCount,
				ClipCount:  s.ClipCount,
				Duration:   s.Duration,
				SavedAt:    s.SavedAt,
				Open:       open[s.MediaID],
			})
		}

		types.SendSuccess(c, types.TimelineListResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Timelines retrieved"},
			Timelines:    out,
			Count:        len(out),
		})
	}
}

// SeedTimeline creates a timeline for a media item
// @Summary      Seed timeline
// @Description  Create the first timeline of a media item from its duration and transcript segments. Segments may be given inline, as transcript text (VTT, SRT or JSON) or as a transcript URL.
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        request body types.SeedRequest true "Seed input"
// @Success      201 {object} types.TimelineResponse "Created timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid seed"
// @Failure      409 {object} types.ErrorResponse "Timeline already exists"
// @Router       /api/v1/timelines/{mediaId} [post]
func SeedTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SeedRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		seed, err := buildSeed(c, deps, c.Param("mediaId"), req)
		if err != nil {
			types.SendError(c, err)
			return
		}

		s, err := deps.Sessions.Seed(c.Request.Context(), seed, req.Overwrite)
		if err != nil {
			types.SendError(c, err)
			return
		}

		resp := readTimeline(s)
		resp.Message = "Timeline created"
		types.SendCreated(c, resp)
	}
}

func buildSeed(c *gin.Context, deps *types.Dependencies, mediaID string, req types.SeedRequest) (seeding.Seed, error) {
	sources := 0
	for _, set := range []bool{len(req.Segments) > 0, req.Transcript != "", req.TranscriptURL != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return seeding.Seed{}, apperrors.New(apperrors.ErrCodeInvalidInput, "give only one of segments, transcript or transcript_url")
	}

	var seed seeding.Seed
	switch {
	case req.TranscriptURL != "":
		if deps.TranscriptFetcher == nil {
			return seeding.Seed{}, apperrors.New(apperrors.ErrCodeInvalidInput, "transcript fetching is not enabled")
		}
		t, err := deps.TranscriptFetcher.Fetch(c.Request.Context(), req.TranscriptURL)
		if err != nil {
			return seeding.Seed{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "failed to fetch transcript")
		}
		if seed, err = seeding.FromTranscript(mediaID, req.MediaDuration, t); err != nil {
			return seeding.Seed{}, err
		}

	case req.Transcript != "":
		format := transcript.TranscriptFormat(strings.ToLower(req.TranscriptFormat))
		if format == "" {
			format = transcript.DetectFormat("", req.Transcript)
		}
		t, err := transcript.NewParser().Parse(req.Transcript, format)
		if err != nil {
			return seeding.Seed{}, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "failed to parse transcript")
		}
		if seed, err = seeding.FromTranscript(mediaID, req.MediaDuration, t); err != nil {
			return seeding.Seed{}, err
		}

	default:
		seed = seeding.Seed{MediaID: mediaID, MediaDuration: req.MediaDuration, Segments: req.Segments}
	}

	seed.FrameRate = req.FrameRate
	seed.SourceURI = req.SourceURI
	return seed, nil
}

// GetTimeline returns the current state of a timeline, opening it if needed
// @Summary      Get timeline
// @Description  Return the full timeline state, undo history and save status
// @Tags         timelines
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Router       /api/v1/timelines/{mediaId} [get]
func GetTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		resp := readTimeline(s)
		resp.Message = "Timeline retrieved"
		types.SendSuccess(c, resp)
	}
}

// CloseTimeline flushes pending saves and ends the editing session
// @Summary      Close timeline session
// @Description  Write any unsaved changes and drop the in-memory session; the stored timeline is kept
// @Tags         timelines
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.BaseResponse "Closed"
// @Failure      404 {object} types.ErrorResponse "Session not open"
// @Failure      503 {object} types.ErrorResponse "Final save failed"
// @Router       /api/v1/timelines/{mediaId}/session [delete]
func CloseTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Sessions.Close(c.Request.Context(), c.Param("mediaId")); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Session closed"})
	}
}

// DeleteTimeline removes a stored timeline
// @Summary      Delete timeline
// @Description  Close the editing session, if open, and remove the stored timeline together with its undo history
// @Tags         timelines
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.BaseResponse "Deleted"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Failure      503 {object} types.ErrorResponse "Storage unavailable"
// @Router       /api/v1/timelines/{mediaId} [delete]
func DeleteTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Sessions.Delete(c.Request.Context(), c.Param("mediaId")); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.BaseResponse{Status: types.StatusOK, Message: "Timeline deleted"})
	}
}

// GetHistory returns the undo log
// @Summary      Get history
// @Description  List the recorded actions and the undo cursor
// @Tags         history
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.HistoryResponse "History"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Router       /api/v1/timelines/{mediaId}/history [get]
func GetHistory(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		var info timeline.HistoryInfo
		_ = s.Do(func(store *timeline.Store) error {
			info = store.History()
			return nil
		})
		types.SendSuccess(c, types.HistoryResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "History retrieved"},
			History:      info,
			Applied:      true,
		})
	}
}

// Undo reverts the last action
// @Summary      Undo
// @Description  Revert the most recent action. Applied is false when there was nothing to undo.
// @Tags         history
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.HistoryResponse "History after undo"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Router       /api/v1/timelines/{mediaId}/undo [post]
func Undo(deps *types.Dependencies) gin.HandlerFunc {
	return historyStep(deps, (*timeline.Store).Undo, "Undone", "Nothing to undo")
}

// Redo re-applies the last undone action
// @Summary      Redo
// @Description  Re-apply the most recently undone action. Applied is false when there was nothing to redo.
// @Tags         history
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.HistoryResponse "History after redo"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Router       /api/v1/timelines/{mediaId}/redo [post]
func Redo(deps *types.Dependencies) gin.HandlerFunc {
	return historyStep(deps, (*timeline.Store).Redo, "Redone", "Nothing to redo")
}

func historyStep(deps *types.Dependencies, step func(*timeline.Store) (bool, error), done, noop string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}

		var applied bool
		var info timeline.HistoryInfo
		err := s.Do(func(store *timeline.Store) error {
			var err error
			if applied, err = step(store); err != nil {
				return err
			}
			info = store.History()
			return nil
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		msg := done
		if !applied {
			msg = noop
		}
		types.SendSuccess(c, types.HistoryResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: msg},
			History:      info,
			Applied:      applied,
		})
	}
}

// SaveTimeline writes the timeline immediately
// @Summary      Save now
// @Description  Write the current state without waiting for the debounce. A failed save keeps the in-memory edits.
// @Tags         persistence
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.SaveStatusResponse "Saved"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Failure      503 {object} types.ErrorResponse "Save failed"
// @Router       /api/v1/timelines/{mediaId}/save [post]
func SaveTimeline(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		if err := s.SaveNow(c.Request.Context()); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SaveStatusResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Timeline saved"},
			Save:         s.SaveStatus(),
		})
	}
}

// GetSaveStatus reports whether there are unsaved changes
// @Summary      Save status
// @Description  Report the save state, unsaved changes and the last save error
// @Tags         persistence
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.SaveStatusResponse "Save status"
// @Failure      404 {object} types.ErrorResponse "Timeline not found"
// @Router       /api/v1/timelines/{mediaId}/save [get]
func GetSaveStatus(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		status := s.SaveStatus()
		msg := "All changes saved"
		if status.Unsaved {
			msg = "Unsaved changes"
		}
		types.SendSuccess(c, types.SaveStatusResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: msg},
			Save:         status,
		})
	}
}

// SetPlayhead moves the playhead
// @Summary      Set playhead
// @Description  Move the playhead, clamped to the timeline duration. With snap=true the time is first snapped to the grid. Not recorded in history.
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        snap query bool false "Snap to grid"
// @Param        request body types.TimeRequest true "Playhead time"
// @Success      200 {object} types.PlayheadResponse "Playhead"
// @Failure      400 {object} types.ErrorResponse "Invalid request"
// @Router       /api/v1/timelines/{mediaId}/playhead [put]
func SetPlayhead(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.TimeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		s, ok := openSession(c, deps)
		if !ok {
			return
		}

		snap := c.Query("snap") == "true"
		var current, snapped float64
		err := s.Do(func(store *timeline.Store) error {
			t := *req.Time
			snapped = store.Snap(t)
			if snap {
				t = snapped
			}
			var err error
			current, err = store.SetCurrentTime(t)
			return err
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.PlayheadResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Playhead moved"},
			CurrentTime:  current,
			Snapped:      snapped,
		})
	}
}

// UpdateSettings changes zoom and snap interval
// @Summary      Update settings
// @Description  Change the view zoom and the snap interval; zero disables snapping. Not recorded in history.
// @Tags         timelines
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        request body types.SettingsRequest true "Settings"
// @Success      200 {object} types.TimelineResponse "Timeline"
// @Failure      400 {object} types.ErrorResponse "Invalid settings"
// @Router       /api/v1/timelines/{mediaId}/settings [patch]
func UpdateSettings(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SettingsRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		mutate(c, deps, http.StatusOK, func(store *timeline.Store) (string, error) {
			if req.Zoom != nil {
				if err := store.SetZoom(*req.Zoom); err != nil {
					return "", err
				}
			}
			if req.SnapInterval != nil {
				if err := store.SetSnapInterval(*req.SnapInterval); err != nil {
					return "", err
				}
			}
			return "", nil
		})
	}
}

// NearestEdge finds the clip edge closest to a time
// @Summary      Nearest clip edge
// @Description  Find the clip start or end nearest to t across all tracks within the tolerance (default: the snap interval, or 0.1s)
// @Tags         timelines
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        t query number true "Time in seconds"
// @Param        tolerance query number false "Search tolerance in seconds"
// @Param        exclude query string false "Comma separated clip ids to ignore"
// @Success      200 {object} types.EdgeResponse "Nearest edge"
// @Failure      400 {object} types.ErrorResponse "Invalid query"
// @Router       /api/v1/timelines/{mediaId}/edges [get]
func NearestEdge(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("t") == "" {
			types.SendBadRequest(c, "t is required")
			return
		}
		t, ok := queryFloat(c, "t", 0)
		if !ok {
			return
		}
		tolerance, ok := queryFloat(c, "tolerance", -1)
		if !ok {
			return
		}
		var exclude []string
		if raw := c.Query("exclude"); raw != "" {
			exclude = strings.Split(raw, ",")
		}

		s, ok := openSession(c, deps)
		if !ok {
			return
		}
		state := s.State()
		if tolerance < 0 {
			tolerance = state.Settings.SnapInterval
			if tolerance <= 0 {
				tolerance = 0.1
			}
		}

		edge, found := segment.FindNearestEdge(state.Tracks, t, tolerance, exclude...)
		resp := types.EdgeResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "No edge within tolerance"},
			Found:        found,
		}
		if found {
			resp.Message = "Edge found"
			resp.Edge = &edge
		}
		types.SendSuccess(c, resp)
	}
}
