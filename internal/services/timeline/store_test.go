package timeline

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	states []*models.TimelineState
}

func (r *recordingSaver) Schedule(state *models.TimelineState) {
	r.states = append(r.states, state)
}

func ptr(v float64) *float64 { return &v }

func mediaClip(id string, start, end float64) models.Clip {
	c := models.Clip{ID: id, Kind: models.TrackKindVideo, Start: start, End: end, Volume: 1, Opacity: 1}
	c.SetSource(start, end)
	return c
}

func textClip(id string, start, end float64, text string) models.Clip {
	return models.Clip{
		ID:      id,
		Kind:    models.TrackKindText,
		Start:   start,
		End:     end,
		Label:   models.LabelPreview(text),
		Volume:  1,
		Opacity: 1,
		Payload: models.TextPayload{Text: text, Confidence: 0.9},
	}
}

func newTestState() *models.TimelineState {
	return &models.TimelineState{
		MediaID:       "media-1",
		MediaDuration: 30,
		Settings:      models.Settings{Zoom: 1, SnapInterval: 0.5},
		Tracks: []models.Track{
			{ID: "v1", Name: "Video", Kind: models.TrackKindVideo, Visible: true, Volume: 1, Opacity: 1,
				Clips: []models.Clip{mediaClip("a", 0, 10), mediaClip("b", 10, 20)}},
			{ID: "t1", Name: "Captions", Kind: models.TrackKindText, Order: 1, Visible: true, Volume: 1, Opacity: 1,
				Clips: []models.Clip{textClip("c", 0, 5, "hello there")}},
		},
	}
}

func TestStore_MergeUndoRedo(t *testing.T) {
	saver := &recordingSaver{}
	store := NewStore(newTestState(), WithSaver(saver))
	initial := store.State()

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	require.NoError(t, store.MergeClips("v1", "a", "b"))
	merged := store.State()
	require.Len(t, merged.Tracks[0].Clips, 1)
	clip := merged.Tracks[0].Clips[0]
	assert.Equal(t, "a", clip.ID)
	assert.Equal(t, 0.0, clip.Start)
	assert.Equal(t, 20.0, clip.End)
	require.Len(t, events, 1)
	assert.Equal(t, EventStateChanged, events[0].Type)
	assert.Equal(t, OriginCommit, events[0].Origin)
	assert.Equal(t, models.ActionClipMerge, events[0].Action.Kind)

	ok, err := store.Undo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, initial, store.State())

	ok, err = store.Redo()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, merged, store.State())

	assert.Len(t, events, 3)
	assert.Len(t, saver.states, 3)
}

func TestStore_MergeErasesSmallGap(t *testing.T) {
	state := newTestState()
	state.Tracks[0].Clips[1] = mediaClip("b", 10.05, 20)
	store := NewStore(state)

	require.NoError(t, store.MergeClips("v1", "b", "a"))
	clips := store.State().Tracks[0].Clips
	require.Len(t, clips, 1)
	assert.Equal(t, 0.0, clips[0].Start)
	assert.Equal(t, 20.0, clips[0].End)

	history := store.History()
	require.Len(t, history.Actions, 1)
	assert.Contains(t, history.Actions[0].Description, "erased 0.050s gap")
}

func TestStore_UndoRestoresExactState(t *testing.T) {
	tests := []struct {
		name  string
		state func() *models.TimelineState
		edit  func(s *Store) error
	}{
		{name: "split", edit: func(s *Store) error { return s.SplitClip("v1", "a", 4) }},
		{name: "delete", edit: func(s *Store) error { return s.DeleteClip("v1", "a") }},
		{name: "extract", edit: func(s *Store) error { return s.ExtractRange("v1", "b", 12, 15) }},
		{name: "trim", edit: func(s *Store) error { return s.TrimClip("v1", "b", ptr(11), nil) }},
		{name: "move", edit: func(s *Store) error { return s.MoveClip("v1", "b", 22) }},
		{name: "edit text", edit: func(s *Store) error {
			return s.EditClip("t1", "c", ClipUpdate{Payload: models.TextPayload{Text: "changed"}})
		}},
		{name: "toggle", edit: func(s *Store) error { return s.ToggleTrack("v1", models.TrackPropertyMuted) }},
		{name: "duplicate", edit: func(s *Store) error {
			_, err := s.DuplicateClip("v1", "a", 20)
			return err
		}},
		{
			name: "delete clamping the playhead",
			state: func() *models.TimelineState {
				state := newTestState()
				state.MediaDuration = 10
				state.CurrentTime = 15
				return state
			},
			edit: func(s *Store) error { return s.DeleteClip("v1", "b") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := newTestState()
			if tt.state != nil {
				state = tt.state()
			}
			store := NewStore(state)
			initial := store.State()

			require.NoError(t, tt.edit(store))
			edited := store.State()
			assert.NotEqual(t, initial, edited)

			ok, err := store.Undo()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, initial, store.State())

			ok, err = store.Redo()
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, edited, store.State())
		})
	}
}

func TestStore_UndoKeepsMovedPlayhead(t *testing.T) {
	state := newTestState()
	state.MediaDuration = 10
	state.CurrentTime = 15
	store := NewStore(state)

	require.NoError(t, store.DeleteClip("v1", "b"))
	assert.Equal(t, 10.0, store.State().CurrentTime)

	_, err := store.SetCurrentTime(4)
	require.NoError(t, err)

	ok, err := store.Undo()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4.0, store.State().CurrentTime)
	assert.Equal(t, 20.0, store.State().Duration)
}

// TestStore_EditSequencesNeverOverlap drives random edit sequences, including
// rejected ones, and checks after every step that no two enabled clips of a
// track overlap and that a rejected edit left the state untouched. Undoing
// everything at the end must give back the starting state.
func TestStore_EditSequencesNeverOverlap(t *testing.T) {
	const steps = 150

	for seed := int64(1); seed <= 8; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			state := newTestState()
			state.CurrentTime = 25
			store := NewStore(state, WithHistoryLimit(steps+1))
			initial := store.State()

			at := func() float64 { return float64(rng.Intn(81)) * 0.5 }
			pick := func() (string, string, int) {
				s := store.State()
				track := s.Tracks[rng.Intn(len(s.Tracks))]
				if len(track.Clips) == 0 {
					return track.ID, "missing", -1
				}
				i := rng.Intn(len(track.Clips))
				return track.ID, track.Clips[i].ID, i
			}

			ops := []struct {
				name string
				run  func() error
			}{
				{"split", func() error {
					trackID, clipID, _ := pick()
					return store.SplitClip(trackID, clipID, at())
				}},
				{"merge", func() error {
					trackID, _, i := pick()
					clips := store.State().Track(trackID).Clips
					if i < 0 || i+1 >= len(clips) {
						return store.MergeClips(trackID, "missing", "missing")
					}
					return store.MergeClips(trackID, clips[i].ID, clips[i+1].ID)
				}},
				{"move", func() error {
					trackID, clipID, _ := pick()
					return store.MoveClip(trackID, clipID, at())
				}},
				{"trim", func() error {
					trackID, clipID, _ := pick()
					start, end := at(), at()
					return store.TrimClip(trackID, clipID, &start, &end)
				}},
				{"paste", func() error {
					trackID, clipID, _ := pick()
					if err := store.CopyClip(trackID, clipID); err != nil {
						return err
					}
					_, err := store.PasteClip(trackID, at())
					return err
				}},
				{"duplicate", func() error {
					trackID, clipID, _ := pick()
					_, err := store.DuplicateClip(trackID, clipID, at())
					return err
				}},
				{"extract", func() error {
					trackID, clipID, _ := pick()
					start := at()
					return store.ExtractRange(trackID, clipID, start, start+float64(1+rng.Intn(6))*0.5)
				}},
				{"delete", func() error {
					trackID, clipID, _ := pick()
					return store.DeleteClip(trackID, clipID)
				}},
				{"undo", func() error {
					_, err := store.Undo()
					return err
				}},
				{"redo", func() error {
					_, err := store.Redo()
					return err
				}},
			}

			for step := 0; step < steps; step++ {
				op := ops[rng.Intn(len(ops))]
				before := store.State()
				if err := op.run(); err != nil {
					require.NotEqual(t, apperrors.ErrCodeInternal, apperrors.GetCode(err), "step %d %s: %v", step, op.name, err)
					require.Equal(t, before, store.State(), "step %d: rejected %s changed the state", step, op.name)
					continue
				}
				after := store.State()
				for _, track := range after.Tracks {
					require.Empty(t, segment.DetectOverlaps(track), "step %d %s on %s", step, op.name, track.ID)
				}
				require.LessOrEqual(t, after.CurrentTime, after.Duration)
			}

			for store.History().CanUndo {
				_, err := store.Undo()
				require.NoError(t, err)
			}
			assert.Equal(t, initial, store.State())
		})
	}
}

func TestStore_SplitKeepsClipsSorted(t *testing.T) {
	store := NewStore(newTestState())

	require.NoError(t, store.SplitClip("v1", "b", 15))
	clips := store.State().Tracks[0].Clips
	require.Len(t, clips, 3)
	assert.Equal(t, "a", clips[0].ID)
	assert.Equal(t, "b", clips[1].ID)
	assert.Equal(t, 15.0, clips[1].End)
	assert.Equal(t, 15.0, clips[2].Start)
	assert.Equal(t, 15.0, *clips[2].SourceStart)
}

func TestStore_Paste(t *testing.T) {
	t.Run("empty clipboard", func(t *testing.T) {
		store := NewStore(newTestState())
		_, err := store.PasteClip("v1", 25)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeClipboardEmpty))
	})

	t.Run("rejects kind mismatch", func(t *testing.T) {
		store := NewStore(newTestState())
		require.NoError(t, store.CopyClip("v1", "a"))
		before := store.State()

		_, err := store.PasteClip("t1", 20)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeTypeMismatch))
		assert.Equal(t, before, store.State())
		assert.False(t, store.History().CanUndo)
	})

	t.Run("rejects overlap", func(t *testing.T) {
		store := NewStore(newTestState())
		require.NoError(t, store.CopyClip("v1", "a"))

		_, err := store.PasteClip("v1", 5)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeOverlap))
		assert.Len(t, store.State().Tracks[0].Clips, 2)
	})

	t.Run("inserts copy with new id", func(t *testing.T) {
		store := NewStore(newTestState())
		require.NoError(t, store.CopyClip("v1", "a"))

		id, err := store.PasteClip("v1", 20)
		require.NoError(t, err)
		assert.NotEqual(t, "a", id)

		state := store.State()
		clips := state.Tracks[0].Clips
		require.Len(t, clips, 3)
		assert.Equal(t, id, clips[2].ID)
		assert.Equal(t, 20.0, clips[2].Start)
		assert.Equal(t, 30.0, clips[2].End)
		assert.Equal(t, 0.0, *clips[2].SourceStart)
		assert.Equal(t, 30.0, state.Duration)
		assert.Equal(t, models.ActionClipInsert, store.History().Actions[0].Kind)
	})

	t.Run("paste past media end grows duration", func(t *testing.T) {
		store := NewStore(newTestState())
		require.NoError(t, store.CopyClip("v1", "a"))

		_, err := store.PasteClip("v1", 35)
		require.NoError(t, err)
		assert.Equal(t, 45.0, store.State().Duration)
	})
}

func TestStore_LockedClip(t *testing.T) {
	store := NewStore(newTestState())

	require.NoError(t, store.EditClip("v1", "a", ClipUpdate{Locked: boolPtr(true)}))
	locked := store.State()

	label := "renamed"
	err := store.EditClip("v1", "a", ClipUpdate{Label: &label})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeLocked))
	assert.True(t, apperrors.Is(store.DeleteClip("v1", "a"), apperrors.ErrCodeLocked))
	assert.True(t, apperrors.Is(store.SplitClip("v1", "a", 5), apperrors.ErrCodeLocked))
	assert.True(t, apperrors.Is(store.MergeClips("v1", "a", "b"), apperrors.ErrCodeLocked))
	assert.True(t, apperrors.Is(store.MoveClip("v1", "a", 1), apperrors.ErrCodeLocked))
	assert.Equal(t, locked, store.State())
	assert.Len(t, store.History().Actions, 1)

	require.NoError(t, store.EditClip("v1", "a", ClipUpdate{Locked: boolPtr(false)}))
	require.NoError(t, store.EditClip("v1", "a", ClipUpdate{Label: &label}))
	assert.Equal(t, "renamed", store.State().Tracks[0].Clips[0].Label)
}

func TestStore_LockedTrack(t *testing.T) {
	store := NewStore(newTestState())
	require.NoError(t, store.ToggleTrack("v1", models.TrackPropertyLocked))

	assert.True(t, apperrors.Is(store.DeleteClip("v1", "b"), apperrors.ErrCodeLocked))
	_, err := store.AddClip("v1", mediaClip("", 25, 28))
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeLocked))

	// not even the clip lock flag changes on a locked track
	before := store.State()
	err = store.EditClip("v1", "a", ClipUpdate{Locked: boolPtr(true)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeLocked))
	assert.Equal(t, before, store.State())
	assert.False(t, store.State().Tracks[0].Clips[0].Locked)

	require.NoError(t, store.ToggleTrack("v1", models.TrackPropertyLocked))
	require.NoError(t, store.DeleteClip("v1", "b"))
}

func TestStore_EditValidation(t *testing.T) {
	store := NewStore(newTestState())

	err := store.EditClip("v1", "a", ClipUpdate{Volume: ptr(1.5)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))

	err = store.EditClip("v1", "a", ClipUpdate{Payload: models.TextPayload{Text: "x"}})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTypeMismatch))

	err = store.EditClip("v1", "a", ClipUpdate{End: ptr(12)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeOverlap))

	err = store.EditClip("v1", "missing", ClipUpdate{Volume: ptr(0.5)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	require.NoError(t, store.EditClip("v1", "a", ClipUpdate{Volume: ptr(1)}))
	assert.False(t, store.History().CanUndo, "an update that changes nothing is not recorded")
}

func TestStore_DisabledClipsMayOverlap(t *testing.T) {
	store := NewStore(newTestState())

	disabled := mediaClip("", 5, 8)
	disabled.Disabled = true
	id, err := store.AddClip("v1", disabled)
	require.NoError(t, err)

	err = store.EditClip("v1", id, ClipUpdate{Disabled: boolPtr(false)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeOverlap))
}

func TestStore_AddClip(t *testing.T) {
	store := NewStore(newTestState())

	id, err := store.AddClip("t1", models.Clip{Start: 6, End: 9, Payload: models.TextPayload{Text: "second caption"}})
	require.NoError(t, err)
	clip := store.State().Tracks[1].Clips[1]
	assert.Equal(t, id, clip.ID)
	assert.Equal(t, models.TrackKindText, clip.Kind)
	assert.Equal(t, "second caption", clip.Label)

	_, err = store.AddClip("t1", models.Clip{Start: 10, End: 10.05})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeTooShort))

	_, err = store.AddClip("t1", models.Clip{ID: "a", Start: 20, End: 21})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))

	_, err = store.AddClip("missing", models.Clip{Start: 20, End: 21})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestStore_SetCurrentTime(t *testing.T) {
	saver := &recordingSaver{}
	store := NewStore(newTestState(), WithSaver(saver))

	var events []Event
	store.Subscribe(func(e Event) { events = append(events, e) })

	for _, tc := range []struct{ in, want float64 }{{100, 30}, {-5, 0}, {12.5, 12.5}} {
		got, err := store.SetCurrentTime(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		got, err := store.SetCurrentTime(bad)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
		assert.Equal(t, 12.5, got)
	}
	assert.Equal(t, 12.5, store.State().CurrentTime)

	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, EventPlayheadChanged, e.Type)
	}
	assert.False(t, store.History().CanUndo)
	assert.Empty(t, saver.states)
}

func TestStore_Settings(t *testing.T) {
	saver := &recordingSaver{}
	store := NewStore(newTestState(), WithSaver(saver))

	require.NoError(t, store.SetZoom(2.5))
	require.NoError(t, store.SetSnapInterval(0))
	assert.True(t, apperrors.Is(store.SetZoom(0), apperrors.ErrCodeValidation))
	assert.True(t, apperrors.Is(store.SetSnapInterval(-1), apperrors.ErrCodeValidation))

	state := store.State()
	assert.Equal(t, 2.5, state.Settings.Zoom)
	assert.Equal(t, 0.0, state.Settings.SnapInterval)
	assert.Len(t, saver.states, 2)
	assert.Equal(t, 3.3, store.Snap(3.3))
}

func TestStore_HistoryLimitAndTruncation(t *testing.T) {
	store := NewStore(newTestState(), WithHistoryLimit(3))

	for i := 0; i < 5; i++ {
		require.NoError(t, store.ToggleTrack("v1", models.TrackPropertyVisible))
	}
	info := store.History()
	assert.Len(t, info.Actions, 3)
	assert.Equal(t, 2, info.Index)

	for i := 0; i < 3; i++ {
		ok, err := store.Undo()
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := store.Undo()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ToggleTrack("v1", models.TrackPropertyMuted))
	info = store.History()
	assert.Len(t, info.Actions, 1)
	assert.False(t, info.CanRedo)

	ok, err = store.Redo()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_EditTrack(t *testing.T) {
	store := NewStore(newTestState())
	name := "Main"

	require.NoError(t, store.EditTrack("v1", TrackUpdate{Name: &name, Volume: ptr(0.5)}))
	track := store.State().Tracks[0]
	assert.Equal(t, "Main", track.Name)
	assert.Equal(t, 0.5, track.Volume)

	err := store.EditTrack("v1", TrackUpdate{Opacity: ptr(-1)})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
}

func TestStore_SharedClipboard(t *testing.T) {
	clipboard := NewMemoryClipboard()
	first := NewStore(newTestState(), WithClipboard(clipboard))
	second := NewStore(newTestState(), WithClipboard(clipboard))

	require.NoError(t, first.CopyClip("t1", "c"))
	id, err := second.PasteClip("t1", 10)
	require.NoError(t, err)

	clips := second.State().Tracks[1].Clips
	require.Len(t, clips, 2)
	assert.Equal(t, id, clips[1].ID)
	assert.Equal(t, "hello there", clips[1].Text())
}

func TestSyncBus_Unsubscribe(t *testing.T) {
	bus := NewEventBus()
	var calls int
	unsubscribe := bus.Subscribe(func(Event) { calls++ })

	bus.Publish(Event{Type: EventStateChanged})
	unsubscribe()
	bus.Publish(Event{Type: EventStateChanged})

	assert.Equal(t, 1, calls)
}

func boolPtr(v bool) *bool { return &v }
