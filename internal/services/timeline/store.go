package timeline

import (
	"fmt"
	"log"
	"math"
	"reflect"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/segment"
)

// Store owns one TimelineState and is the only path through which it changes.
// Every committed mutation is validated, recorded in history, published once on
// the event bus and handed to the saver.
//
// A Store is not safe for concurrent use; sessions.Session serializes access.
type Store struct {
	state     *models.TimelineState
	history   *history
	bus       EventBus
	clipboard Clipboard
	saver     Saver
}

// Option configures a Store
type Option func(*Store)

// WithEventBus replaces the default synchronous bus
func WithEventBus(bus EventBus) Option {
	return func(s *Store) {
		if bus != nil {
			s.bus = bus
		}
	}
}

// WithClipboard shares a clipboard between stores
func WithClipboard(c Clipboard) Option {
	return func(s *Store) {
		if c != nil {
			s.clipboard = c
		}
	}
}

// WithSaver schedules a save after each committed mutation
func WithSaver(saver Saver) Option {
	return func(s *Store) {
		s.saver = saver
	}
}

// WithHistoryLimit sets the undo depth
func WithHistoryLimit(limit int) Option {
	return func(s *Store) {
		s.history = newHistory(limit)
	}
}

// NewStore takes a deep copy of initial and normalizes it: clips sorted by start,
// duration recomputed, playhead clamped
func NewStore(initial *models.TimelineState, opts ...Option) *Store {
	state := &models.TimelineState{}
	if initial != nil {
		state = initial.Clone()
	}
	for i := range state.Tracks {
		state.Tracks[i].SortClips()
	}
	state.RecomputeDuration()
	if state.CurrentTime < 0 {
		state.CurrentTime = 0
	}

	s := &Store{
		state:     state,
		history:   newHistory(DefaultHistoryLimit),
		bus:       NewEventBus(),
		clipboard: NewMemoryClipboard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a deep snapshot of the current state
func (s *Store) State() *models.TimelineState {
	return s.state.Clone()
}

// History returns the action log and cursor
func (s *Store) History() HistoryInfo {
	return s.history.info()
}

// Subscribe registers a handler for store events
func (s *Store) Subscribe(handler Handler) func() {
	return s.bus.Subscribe(handler)
}

// Snap rounds t to the configured snap interval and frame rate
func (s *Store) Snap(t float64) float64 {
	return segment.SnapToGrid(t, s.state.Settings.SnapInterval, s.state.Settings.FrameRate)
}

// EditClip applies a partial update to a clip. Nothing on a locked track can be
// edited; a locked clip only accepts an update that changes nothing but its
// lock flag.
func (s *Store) EditClip(trackID, clipID string, update ClipUpdate) error {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return err
	}
	if track.Locked {
		return apperrors.Locked("track", trackID)
	}
	before := track.Clips[idx]
	if before.Locked && !update.onlyLock() {
		return apperrors.Locked("clip", clipID)
	}

	after := before.Clone()
	if update.Start != nil || update.End != nil {
		if after, err = segment.Trim(before, update.Start, update.End); err != nil {
			return err
		}
	}
	if update.Label != nil {
		after.Label = *update.Label
	}
	if update.Volume != nil {
		if err := validateUnit("volume", *update.Volume); err != nil {
			return err
		}
		after.Volume = *update.Volume
	}
	if update.Opacity != nil {
		if err := validateUnit("opacity", *update.Opacity); err != nil {
			return err
		}
		after.Opacity = *update.Opacity
	}
	if update.Locked != nil {
		after.Locked = *update.Locked
	}
	if update.Disabled != nil {
		after.Disabled = *update.Disabled
	}
	if update.Effects != nil {
		after.Effects = normalizeEffects(*update.Effects)
	}
	if update.Payload != nil {
		if update.Payload.PayloadKind() != models.PayloadKindFor(before.Kind) {
			return apperrors.Newf(apperrors.ErrCodeTypeMismatch, "%s payload cannot be set on a %s clip",
				update.Payload.PayloadKind(), before.Kind)
		}
		after.Payload = update.Payload
		if p, ok := update.Payload.(models.TextPayload); ok && update.Label == nil {
			after.Label = models.LabelPreview(p.Text)
		}
	}

	if reflect.DeepEqual(before, after) {
		return nil
	}
	if err := s.checkOverlap(track, after, before.ID); err != nil {
		return err
	}

	action := models.NewAction(models.ActionClipEdit, trackID, fmt.Sprintf("Edit clip %s", clipLabel(before)), clipID)
	return s.commit(action, &clipEditCmd{
		trackID: trackID,
		before:  placedClip{Index: idx, Clip: before.Clone()},
		after:   after,
	})
}

// TrimClip moves one or both edges of a clip
func (s *Store) TrimClip(trackID, clipID string, start, end *float64) error {
	track, idx, err := s.editable(trackID, clipID)
	if err != nil {
		return err
	}
	before := track.Clips[idx]
	after, err := segment.Trim(before, start, end)
	if err != nil {
		return err
	}
	if err := s.checkOverlap(track, after, before.ID); err != nil {
		return err
	}

	action := models.NewAction(models.ActionClipEdit, trackID,
		fmt.Sprintf("Trim clip %s to %.2f-%.2f", clipLabel(before), after.Start, after.End), clipID)
	return s.commit(action, &clipEditCmd{
		trackID: trackID,
		before:  placedClip{Index: idx, Clip: before.Clone()},
		after:   after,
	})
}

// MoveClip shifts a clip to a new start time on the same track
func (s *Store) MoveClip(trackID, clipID string, newStart float64) error {
	track, idx, err := s.editable(trackID, clipID)
	if err != nil {
		return err
	}
	before := track.Clips[idx]
	after, err := segment.Move(before, newStart)
	if err != nil {
		return err
	}
	if err := s.checkOverlap(track, after, before.ID); err != nil {
		return err
	}

	action := models.NewAction(models.ActionClipEdit, trackID,
		fmt.Sprintf("Move clip %s to %.2f", clipLabel(before), after.Start), clipID)
	return s.commit(action, &clipEditCmd{
		trackID: trackID,
		before:  placedClip{Index: idx, Clip: before.Clone()},
		after:   after,
	})
}

// DeleteClip removes a clip
func (s *Store) DeleteClip(trackID, clipID string) error {
	track, idx, err := s.editable(trackID, clipID)
	if err != nil {
		return err
	}
	clip := track.Clips[idx]

	action := models.NewAction(models.ActionClipDelete, trackID, fmt.Sprintf("Delete clip %s", clipLabel(clip)), clipID)
	return s.commit(action, &clipDeleteCmd{
		trackID: trackID,
		removed: placedClip{Index: idx, Clip: clip.Clone()},
	})
}

// SplitClip cuts a clip in two at timeline time t
func (s *Store) SplitClip(trackID, clipID string, t float64) error {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return err
	}
	if track.Locked {
		return apperrors.Locked("track", trackID)
	}
	original := track.Clips[idx]
	left, right, err := segment.CutAt(*track, clipID, t)
	if err != nil {
		return err
	}

	action := models.NewAction(models.ActionClipSplit, trackID,
		fmt.Sprintf("Split clip %s at %.2f", clipLabel(original), t), left.ID, right.ID)
	return s.commit(action, &clipSplitCmd{
		trackID:  trackID,
		original: placedClip{Index: idx, Clip: original.Clone()},
		pieces:   []models.Clip{left, right},
	})
}

// ExtractRange isolates [start, end) of a clip as its own clip
func (s *Store) ExtractRange(trackID, clipID string, start, end float64) error {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return err
	}
	if track.Locked {
		return apperrors.Locked("track", trackID)
	}
	original := track.Clips[idx]
	result, err := segment.ExtractRange(original, start, end)
	if err != nil {
		return err
	}
	pieces := result.Pieces()
	ids := make([]string, len(pieces))
	for i, p := range pieces {
		ids[i] = p.ID
	}

	action := models.NewAction(models.ActionClipExtract, trackID,
		fmt.Sprintf("Extract %.2f-%.2f from clip %s", result.Extracted.Start, result.Extracted.End, clipLabel(original)), ids...)
	return s.commit(action, &clipSplitCmd{
		trackID:  trackID,
		original: placedClip{Index: idx, Clip: original.Clone()},
		pieces:   pieces,
	})
}

// MergeClips joins two adjacent clips of the same track
func (s *Store) MergeClips(trackID, clipA, clipB string) error {
	track, idxA, err := s.lookup(trackID, clipA)
	if err != nil {
		return err
	}
	if track.Locked {
		return apperrors.Locked("track", trackID)
	}
	if clipA == clipB {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "cannot merge a clip with itself")
	}
	idxB := track.ClipIndex(clipB)
	if idxB < 0 {
		return apperrors.NotFound("clip", clipB)
	}

	a, b := track.Clips[idxA], track.Clips[idxB]
	result, err := segment.MergeAdjacent(a, b)
	if err != nil {
		return err
	}
	if err := s.checkOverlap(track, result.Clip, a.ID, b.ID); err != nil {
		return err
	}

	earlier, later := placedClip{Index: idxA, Clip: a.Clone()}, placedClip{Index: idxB, Clip: b.Clone()}
	if b.Start < a.Start {
		earlier, later = later, earlier
	}
	description := fmt.Sprintf("Merge clips %s and %s", clipLabel(earlier.Clip), clipLabel(later.Clip))
	if math.Abs(result.ErasedGap) > 1e-9 {
		log.Printf("[DEBUG] Merge of %s and %s erased a %.3fs gap", earlier.Clip.ID, later.Clip.ID, result.ErasedGap)
		description += fmt.Sprintf(" (erased %.3fs gap)", result.ErasedGap)
	}

	action := models.NewAction(models.ActionClipMerge, trackID, description, earlier.Clip.ID, later.Clip.ID)
	return s.commit(action, &clipMergeCmd{
		trackID: trackID,
		earlier: earlier,
		later:   later,
		merged:  result.Clip,
	})
}

// CopyClip stages a copy of the clip on the clipboard. State is not changed.
func (s *Store) CopyClip(trackID, clipID string) error {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return err
	}
	s.clipboard.Stage(ClipboardEntry{Clip: track.Clips[idx].Clone(), OriginTrackID: trackID})
	return nil
}

// PasteClip inserts the clipboard clip into a track at time t under a new id.
// The target track must be of the same kind and the pasted clip must not
// overlap an enabled clip.
func (s *Store) PasteClip(trackID string, t float64) (string, error) {
	entry, ok := s.clipboard.Peek()
	if !ok {
		return "", apperrors.New(apperrors.ErrCodeClipboardEmpty, "nothing has been copied")
	}
	return s.insertCopy(trackID, entry.Clip, t, "Paste")
}

// DuplicateClip inserts a copy of an existing clip at time t on the same track
func (s *Store) DuplicateClip(trackID, clipID string, t float64) (string, error) {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return "", err
	}
	return s.insertCopy(trackID, track.Clips[idx], t, "Duplicate")
}

func (s *Store) insertCopy(trackID string, src models.Clip, t float64, verb string) (string, error) {
	track := s.state.Track(trackID)
	if track == nil {
		return "", apperrors.NotFound("track", trackID)
	}
	if track.Locked {
		return "", apperrors.Locked("track", trackID)
	}
	if src.Kind != track.Kind {
		return "", apperrors.Newf(apperrors.ErrCodeTypeMismatch, "cannot place a %s clip on %s track %s", src.Kind, track.Kind, trackID).
			WithDetail("clip_kind", src.Kind).
			WithDetail("track_kind", track.Kind)
	}
	clip, err := segment.Duplicate(src, t)
	if err != nil {
		return "", err
	}
	clip.Locked = false
	if err := s.checkOverlap(track, clip); err != nil {
		return "", err
	}

	action := models.NewAction(models.ActionClipInsert, trackID,
		fmt.Sprintf("%s clip %s at %.2f", verb, clipLabel(src), t), clip.ID)
	if err := s.commit(action, &clipInsertCmd{trackID: trackID, clip: clip}); err != nil {
		return "", err
	}
	return clip.ID, nil
}

// AddClip inserts a new clip. An empty id is filled in, an empty kind defaults
// to the track kind.
func (s *Store) AddClip(trackID string, clip models.Clip) (string, error) {
	track := s.state.Track(trackID)
	if track == nil {
		return "", apperrors.NotFound("track", trackID)
	}
	if track.Locked {
		return "", apperrors.Locked("track", trackID)
	}
	clip = clip.Clone()
	if clip.Kind == "" {
		clip.Kind = track.Kind
	}
	if clip.Kind != track.Kind {
		return "", apperrors.Newf(apperrors.ErrCodeTypeMismatch, "cannot place a %s clip on %s track %s", clip.Kind, track.Kind, trackID)
	}
	if clip.ID == "" {
		clip.ID = models.NewClipID()
	} else if s.findClip(clip.ID) {
		return "", apperrors.Newf(apperrors.ErrCodeConflict, "clip %s already exists", clip.ID)
	}
	if clip.Start < 0 || clip.End <= clip.Start {
		return "", apperrors.Newf(apperrors.ErrCodeInvalidRange, "invalid range [%.3f, %.3f)", clip.Start, clip.End)
	}
	if clip.Duration() < models.MinClipDuration-1e-9 {
		return "", apperrors.Newf(apperrors.ErrCodeTooShort, "clip duration %.3fs is below the %.1fs minimum", clip.Duration(), models.MinClipDuration)
	}
	if clip.HasSource() && math.Abs((*clip.SourceEnd-*clip.SourceStart)-clip.Duration()) > models.SourceTolerance {
		return "", apperrors.ValidationError("source", "source span must equal the clip duration")
	}
	if clip.Payload != nil && clip.Payload.PayloadKind() != models.PayloadKindFor(clip.Kind) {
		return "", apperrors.Newf(apperrors.ErrCodeTypeMismatch, "%s payload cannot be set on a %s clip", clip.Payload.PayloadKind(), clip.Kind)
	}
	if clip.Label == "" && clip.Kind == models.TrackKindText {
		clip.Label = models.LabelPreview(clip.Text())
	}
	clip.Effects = normalizeEffects(clip.Effects)
	if err := s.checkOverlap(track, clip); err != nil {
		return "", err
	}

	action := models.NewAction(models.ActionClipInsert, trackID, fmt.Sprintf("Add clip %s", clipLabel(clip)), clip.ID)
	if err := s.commit(action, &clipInsertCmd{trackID: trackID, clip: clip}); err != nil {
		return "", err
	}
	return clip.ID, nil
}

// ToggleTrack flips a boolean track property. It works on locked tracks so
// that a track can always be unlocked.
func (s *Store) ToggleTrack(trackID string, property models.TrackProperty) error {
	track := s.state.Track(trackID)
	if track == nil {
		return apperrors.NotFound("track", trackID)
	}
	before := propsOf(track)
	after := before
	switch property {
	case models.TrackPropertyVisible:
		after.Visible = !after.Visible
	case models.TrackPropertyMuted:
		after.Muted = !after.Muted
	case models.TrackPropertyLocked:
		after.Locked = !after.Locked
	default:
		return apperrors.ValidationError("property", fmt.Sprintf("unknown track property %q", property))
	}

	action := models.NewAction(models.ActionTrackEdit, trackID, fmt.Sprintf("Toggle %s on track %s", property, track.Name))
	return s.commit(action, &trackEditCmd{trackID: trackID, before: before, after: after})
}

// EditTrack updates a track's name, volume or opacity
func (s *Store) EditTrack(trackID string, update TrackUpdate) error {
	track := s.state.Track(trackID)
	if track == nil {
		return apperrors.NotFound("track", trackID)
	}
	if track.Locked {
		return apperrors.Locked("track", trackID)
	}
	before := propsOf(track)
	after := before
	if update.Name != nil {
		after.Name = *update.Name
	}
	if update.Volume != nil {
		if err := validateUnit("volume", *update.Volume); err != nil {
			return err
		}
		after.Volume = *update.Volume
	}
	if update.Opacity != nil {
		if err := validateUnit("opacity", *update.Opacity); err != nil {
			return err
		}
		after.Opacity = *update.Opacity
	}
	if after == before {
		return nil
	}

	action := models.NewAction(models.ActionTrackEdit, trackID, fmt.Sprintf("Edit track %s", before.Name))
	return s.commit(action, &trackEditCmd{trackID: trackID, before: before, after: after})
}

// SetCurrentTime moves the playhead, clamped to [0, duration]. It is not an
// undoable edit and does not trigger a save.
func (s *Store) SetCurrentTime(t float64) (float64, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return s.state.CurrentTime, apperrors.ValidationError("current_time", "must be a finite number")
	}
	t = math.Max(0, math.Min(t, s.state.Duration))
	if t == s.state.CurrentTime {
		return t, nil
	}
	s.state.CurrentTime = t
	s.bus.Publish(Event{Type: EventPlayheadChanged, State: s.state.Clone()})
	return t, nil
}

// SetZoom changes the view zoom factor
func (s *Store) SetZoom(zoom float64) error {
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		return apperrors.ValidationError("zoom", "must be a positive number")
	}
	s.state.Settings.Zoom = zoom
	s.settingsChanged()
	return nil
}

// SetSnapInterval changes the snap grid; zero disables snapping
func (s *Store) SetSnapInterval(interval float64) error {
	if interval < 0 || math.IsNaN(interval) || math.IsInf(interval, 0) {
		return apperrors.ValidationError("snap_interval", "must be zero or positive")
	}
	s.state.Settings.SnapInterval = interval
	s.settingsChanged()
	return nil
}

// Undo reverts the most recent applied action. It returns false when there is
// nothing to undo.
func (s *Store) Undo() (bool, error) {
	action, err := s.history.undo(s.state)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "undo failed")
	}
	if action == nil {
		return false, nil
	}
	s.changed(action, OriginUndo)
	return true, nil
}

// Redo re-applies the next undone action. It returns false when there is
// nothing to redo.
func (s *Store) Redo() (bool, error) {
	action, err := s.history.redo(s.state)
	if err != nil {
		return false, apperrors.Wrap(err, apperrors.ErrCodeInternal, "redo failed")
	}
	if action == nil {
		return false, nil
	}
	s.changed(action, OriginRedo)
	return true, nil
}

func (s *Store) commit(action models.Action, cmd command) error {
	playhead := s.state.CurrentTime
	if err := cmd.apply(s.state); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "apply edit")
	}
	s.history.push(action, cmd, playhead, s.state.CurrentTime)
	s.changed(&action, OriginCommit)
	return nil
}

func (s *Store) changed(action *models.Action, origin EventOrigin) {
	s.bus.Publish(Event{Type: EventStateChanged, Origin: origin, Action: action, State: s.state.Clone()})
	if s.saver != nil {
		s.saver.Schedule(s.state.Clone())
	}
}

func (s *Store) settingsChanged() {
	s.bus.Publish(Event{Type: EventSettingsChanged, State: s.state.Clone()})
	if s.saver != nil {
		s.saver.Schedule(s.state.Clone())
	}
}

func (s *Store) lookup(trackID, clipID string) (*models.Track, int, error) {
	track := s.state.Track(trackID)
	if track == nil {
		return nil, -1, apperrors.NotFound("track", trackID)
	}
	idx := track.ClipIndex(clipID)
	if idx < 0 {
		return nil, -1, apperrors.NotFound("clip", clipID)
	}
	return track, idx, nil
}

// editable is lookup plus the track and clip lock checks
func (s *Store) editable(trackID, clipID string) (*models.Track, int, error) {
	track, idx, err := s.lookup(trackID, clipID)
	if err != nil {
		return nil, -1, err
	}
	if track.Locked {
		return nil, -1, apperrors.Locked("track", trackID)
	}
	if track.Clips[idx].Locked {
		return nil, -1, apperrors.Locked("clip", clipID)
	}
	return track, idx, nil
}

func (s *Store) findClip(clipID string) bool {
	for i := range s.state.Tracks {
		if s.state.Tracks[i].ClipIndex(clipID) >= 0 {
			return true
		}
	}
	return false
}

// checkOverlap rejects an enabled clip that would intersect another enabled
// clip on the track
func (s *Store) checkOverlap(track *models.Track, clip models.Clip, exclude ...string) error {
	if !clip.Enabled() {
		return nil
	}
	hits := segment.Overlaps(*track, clip.Start, clip.End, exclude...)
	if len(hits) == 0 {
		return nil
	}
	return apperrors.Newf(apperrors.ErrCodeOverlap, "clip would overlap %s on track %s", hits[0].ID, track.ID).
		WithDetail("clip_id", hits[0].ID).
		WithDetail("start", hits[0].Start).
		WithDetail("end", hits[0].End)
}

func validateUnit(field string, v float64) error {
	if v < 0 || v > 1 || math.IsNaN(v) {
		return apperrors.ValidationError(field, "must be between 0 and 1")
	}
	return nil
}

func normalizeEffects(effects []models.Effect) []models.Effect {
	if effects == nil {
		return nil
	}
	out := make([]models.Effect, len(effects))
	for i, e := range effects {
		out[i] = e.Clone()
		if out[i].ID == "" {
			out[i].ID = models.NewEffectID()
		}
	}
	return out
}

func clipLabel(c models.Clip) string {
	if c.Label != "" {
		return fmt.Sprintf("%q", c.Label)
	}
	return c.ID
}
