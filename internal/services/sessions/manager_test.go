package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, dir string) *Manager {
	t.Helper()
	repo, err := persistence.NewFileRepository(dir, persistence.FormatJSON)
	require.NoError(t, err)
	return NewManager(repo, WithDebounce(time.Hour), WithRetryAttempts(1))
}

func testSeed(id string) seeding.Seed {
	return seeding.Seed{
		MediaID:       id,
		MediaDuration: 20,
		Segments: []seeding.Segment{
			{Start: 0, End: 4, Text: "first"},
			{Start: 4, End: 8, Text: "second"},
		},
	}
}

func TestManager_OpenUnknown(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	_, err := m.Open(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	assert.Empty(t, m.OpenIDs())
}

func TestManager_SeedEditReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	m := newTestManager(t, dir)

	s, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)
	assert.Equal(t, "ep-1", s.MediaID())
	assert.Equal(t, []string{"ep-1"}, m.OpenIDs())

	got, ok := m.Get("ep-1")
	require.True(t, ok)
	assert.Same(t, s, got)

	state := s.State()
	captions := state.Tracks[2].Clips
	require.Len(t, captions, 2)

	err = s.Do(func(store *timeline.Store) error {
		return store.MergeClips(seeding.TextTrackID, captions[0].ID, captions[1].ID)
	})
	require.NoError(t, err)
	assert.True(t, s.SaveStatus().Unsaved)

	require.NoError(t, s.SaveNow(ctx))
	status := s.SaveStatus()
	assert.False(t, status.Unsaved)
	assert.Equal(t, persistence.SaveIdle, status.State)

	// a fresh manager sees the saved edit
	other := newTestManager(t, dir)
	reopened, err := other.Open(ctx, "ep-1")
	require.NoError(t, err)
	merged := reopened.State().Tracks[2].Clips
	require.Len(t, merged, 1)
	assert.Equal(t, "first second", merged[0].Text())
	assert.False(t, reopened.State().Tracks[2].Locked)

	summaries, err := other.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "ep-1", summaries[0].MediaID)
}

func TestManager_SeedConflict(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	m := newTestManager(t, dir)

	_, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)

	_, err = m.Seed(ctx, testSeed("ep-1"), false)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))

	// stored but not open is still a conflict
	other := newTestManager(t, dir)
	_, err = other.Seed(ctx, testSeed("ep-1"), false)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))

	replaced, err := other.Seed(ctx, seeding.Seed{MediaID: "ep-1", MediaDuration: 5}, true)
	require.NoError(t, err)
	assert.Empty(t, replaced.State().Tracks[2].Clips)
}

func TestManager_SeedInvalid(t *testing.T) {
	m := newTestManager(t, t.TempDir())

	_, err := m.Seed(context.Background(), seeding.Seed{}, false)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	assert.Empty(t, m.OpenIDs())
}

func TestManager_CloseAllFlushes(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	m := newTestManager(t, dir)

	s, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)
	require.NoError(t, s.Do(func(store *timeline.Store) error {
		return store.SetZoom(4)
	}))

	require.NoError(t, m.CloseAll(ctx))
	assert.Empty(t, m.OpenIDs())

	reopened, err := newTestManager(t, dir).Open(ctx, "ep-1")
	require.NoError(t, err)
	assert.Equal(t, 4.0, reopened.State().Settings.Zoom)
}

func TestManager_Close(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir())

	_, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)

	require.NoError(t, m.Close(ctx, "ep-1"))
	_, ok := m.Get("ep-1")
	assert.False(t, ok)

	err = m.Close(ctx, "ep-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	// reopening loads from storage
	s, err := m.Open(ctx, "ep-1")
	require.NoError(t, err)
	assert.Len(t, s.State().Tracks[2].Clips, 2)
}

func TestManager_SharedClipboard(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, t.TempDir())

	a, err := m.Seed(ctx, testSeed("a"), false)
	require.NoError(t, err)
	b, err := m.Seed(ctx, seeding.Seed{MediaID: "b", MediaDuration: 20}, false)
	require.NoError(t, err)

	clipID := a.State().Tracks[2].Clips[0].ID
	require.NoError(t, a.Do(func(store *timeline.Store) error {
		return store.CopyClip(seeding.TextTrackID, clipID)
	}))

	var pasted string
	require.NoError(t, b.Do(func(store *timeline.Store) error {
		var err error
		pasted, err = store.PasteClip(seeding.TextTrackID, 10)
		return err
	}))
	assert.NotEqual(t, clipID, pasted)

	clips := b.State().Tracks[2].Clips
	require.Len(t, clips, 1)
	assert.Equal(t, 10.0, clips[0].Start)
	assert.Equal(t, "first", clips[0].Text())
}

func TestManager_Delete(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	m := newTestManager(t, dir)

	s, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)
	require.NoError(t, s.Do(func(store *timeline.Store) error {
		return store.SetZoom(3)
	}))

	require.NoError(t, m.Delete(ctx, "ep-1"))
	assert.Empty(t, m.OpenIDs())

	_, err = m.Open(ctx, "ep-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
	_, err = newTestManager(t, dir).Open(ctx, "ep-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	err = m.Delete(ctx, "ep-1")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	// stored but not open
	_, err = m.Seed(ctx, testSeed("ep-2"), false)
	require.NoError(t, err)
	require.NoError(t, m.Close(ctx, "ep-2"))
	require.NoError(t, m.Delete(ctx, "ep-2"))
	summaries, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestSession_ClosedRejectsEdits(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	m := newTestManager(t, dir)

	stale, err := m.Seed(ctx, testSeed("ep-1"), false)
	require.NoError(t, err)
	captions := stale.State().Tracks[2].Clips

	// overwriting the seed closes the session a caller may still hold
	fresh, err := m.Seed(ctx, seeding.Seed{MediaID: "ep-1", MediaDuration: 20}, true)
	require.NoError(t, err)
	require.NotSame(t, stale, fresh)

	err = stale.Do(func(store *timeline.Store) error {
		return store.DeleteClip(seeding.TextTrackID, captions[0].ID)
	})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConflict))
	assert.True(t, apperrors.Is(stale.SaveNow(ctx), apperrors.ErrCodeConflict))

	// the stale session kept its state and the stored timeline is the fresh one
	assert.Len(t, stale.State().Tracks[2].Clips, 2)
	reopened, err := newTestManager(t, dir).Open(ctx, "ep-1")
	require.NoError(t, err)
	assert.Empty(t, reopened.State().Tracks[2].Clips)
}
