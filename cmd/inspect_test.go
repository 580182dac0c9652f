package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/pkg/config"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = `WEBVTT

00:00:00.000 --> 00:00:03.000
Hello there

00:00:05.000 --> 00:00:08.000
General Kenobi
`

func sampleState(t *testing.T) *models.TimelineState {
	t.Helper()
	state, err := seeding.NewBuilder(models.Settings{Zoom: 1, SnapInterval: 0.1}).Build(seeding.Seed{
		MediaID:       "ep-1",
		MediaDuration: 10,
		Segments: []seeding.Segment{
			{Start: 0, End: 3, Text: "Hello there"},
			{Start: 5, End: 8, Text: "General Kenobi"},
		},
	})
	require.NoError(t, err)
	return state
}

func TestPrintTimeline(t *testing.T) {
	state := sampleState(t)
	state.Tracks[1].Muted = true

	buf := new(bytes.Buffer)
	printTimeline(buf, state)
	out := buf.String()

	assert.Contains(t, out, "ep-1")
	assert.Contains(t, out, seeding.VideoTrackID)
	assert.Contains(t, out, seeding.TextTrackID)
	assert.Contains(t, out, "muted")
	assert.Contains(t, out, "Gaps")
	assert.Contains(t, out, "3.00 - 5.00")
	assert.NotContains(t, out, "Overlaps")
}

func TestWriteTrackEDL(t *testing.T) {
	state := sampleState(t)

	buf := new(bytes.Buffer)
	require.NoError(t, writeTrackEDL(buf, state, seeding.VideoTrackID, 0))
	assert.True(t, strings.HasPrefix(buf.String(), "TITLE: ep-1 Video"))
	assert.Contains(t, buf.String(), "FCM: NON-DROP FRAME")

	buf.Reset()
	require.NoError(t, writeTrackEDL(buf, state, seeding.VideoTrackID, 29.97))
	assert.Contains(t, buf.String(), "FCM: DROP FRAME")

	err := writeTrackEDL(buf, state, "missing", 0)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestSeedFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ep-1.vtt")
	require.NoError(t, os.WriteFile(path, []byte(sampleVTT), 0o644))

	seed, err := seedFromFile("ep-1", path, 0)
	require.NoError(t, err)
	assert.Equal(t, "ep-1", seed.MediaID)
	assert.InDelta(t, 8.0, seed.MediaDuration, 1e-9)
	require.Len(t, seed.Segments, 2)
	assert.Equal(t, "General Kenobi", seed.Segments[1].Text)

	seed, err = seedFromFile("ep-1", path, 60)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, seed.MediaDuration, 1e-9)

	_, err = seedFromFile("ep-1", filepath.Join(dir, "missing.vtt"), 0)
	assert.Error(t, err)
}

func TestOpenOrSeed(t *testing.T) {
	repo, err := persistence.NewFileRepository(t.TempDir(), persistence.FormatJSON)
	require.NoError(t, err)
	manager := sessions.NewManager(repo, sessions.WithDebounce(time.Hour))
	ctx := context.Background()
	defer manager.CloseAll(ctx)

	_, err = openOrSeed(ctx, manager, "ep-1", "", 0)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))

	path := filepath.Join(t.TempDir(), "ep-1.vtt")
	require.NoError(t, os.WriteFile(path, []byte(sampleVTT), 0o644))

	session, err := openOrSeed(ctx, manager, "ep-1", path, 0)
	require.NoError(t, err)
	assert.Len(t, session.State().Track(seeding.TextTrackID).Clips, 2)

	// an existing timeline is opened, the transcript is ignored
	again, err := openOrSeed(ctx, manager, "ep-1", filepath.Join(t.TempDir(), "unused.vtt"), 0)
	require.NoError(t, err)
	assert.Same(t, session, again)
}

func TestManagerOptions(t *testing.T) {
	cfg := &config.Config{
		Persistence: config.PersistenceConfig{Backend: "file", Dir: t.TempDir(), Format: "yaml", Debounce: time.Hour, RetryAttempts: 1},
		Editor:      config.EditorConfig{HistoryLimit: 5, SnapInterval: 0.5, FrameRate: 25, Zoom: 2},
	}

	repo, db, err := openRepository(cfg)
	require.NoError(t, err)
	assert.Nil(t, db)

	manager := sessions.NewManager(repo, managerOptions(cfg)...)
	session, err := manager.Seed(context.Background(), seeding.Seed{MediaID: "ep-1", MediaDuration: 10}, false)
	require.NoError(t, err)
	defer manager.CloseAll(context.Background())

	settings := session.State().Settings
	assert.Equal(t, models.Settings{Zoom: 2, SnapInterval: 0.5, FrameRate: 25}, settings)

	_, err = os.Stat(filepath.Join(cfg.Persistence.Dir, "ep-1.yaml"))
	assert.NoError(t, err)

	_, _, err = openRepository(&config.Config{Persistence: config.PersistenceConfig{Backend: "s3"}})
	assert.Error(t, err)
}

func TestCommandArgs(t *testing.T) {
	for _, name := range []string{"edit", "inspect"} {
		t.Run(name, func(t *testing.T) {
			cmd := NewRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{name})

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "accepts 1 arg")
		})
	}
}
