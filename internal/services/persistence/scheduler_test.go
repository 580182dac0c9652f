package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fakeWriter records saved snapshots and fails the first failN writes
type fakeWriter struct {
	mu    sync.Mutex
	saved []*models.TimelineState
	calls int
	failN int
	block chan struct{}
}

func (f *fakeWriter) save(ctx context.Context, state *models.TimelineState) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failN {
		return errors.New("disk full")
	}
	f.saved = append(f.saved, state)
	return nil
}

func (f *fakeWriter) snapshot() (int, []*models.TimelineState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls, append([]*models.TimelineState(nil), f.saved...)
}

func stateAt(t float64) *models.TimelineState {
	return &models.TimelineState{MediaID: "m", MediaDuration: 100, CurrentTime: t}
}

func TestScheduler_DebounceCoalesces(t *testing.T) {
	w := &fakeWriter{}
	s := NewScheduler(w.save, 30*time.Millisecond, 0, nil)

	for i := 1; i <= 5; i++ {
		s.Schedule(stateAt(float64(i)))
	}
	assert.Equal(t, SavePending, s.Status().State)
	assert.True(t, s.Status().Unsaved)

	assert.Eventually(t, func() bool {
		_, saved := w.snapshot()
		return len(saved) == 1
	}, time.Second, 5*time.Millisecond)

	_, saved := w.snapshot()
	assert.Equal(t, 5.0, saved[0].CurrentTime)

	assert.Eventually(t, func() bool {
		st := s.Status()
		return st.State == SaveIdle && !st.Unsaved
	}, time.Second, 5*time.Millisecond)
	assert.False(t, s.Status().LastSavedAt.IsZero())

	time.Sleep(60 * time.Millisecond)
	calls, _ := w.snapshot()
	assert.Equal(t, 1, calls)
}

func TestScheduler_FlushBypassesDebounce(t *testing.T) {
	w := &fakeWriter{}
	s := NewScheduler(w.save, time.Hour, 0, nil)

	require.NoError(t, s.Flush(context.Background()))
	calls, _ := w.snapshot()
	assert.Zero(t, calls, "nothing pending means nothing written")

	s.Schedule(stateAt(7))
	require.NoError(t, s.Flush(context.Background()))

	_, saved := w.snapshot()
	require.Len(t, saved, 1)
	assert.Equal(t, 7.0, saved[0].CurrentTime)
	assert.Equal(t, SaveIdle, s.Status().State)
	assert.False(t, s.Status().Unsaved)
}

func TestScheduler_RetriesFailedSave(t *testing.T) {
	w := &fakeWriter{failN: 2}
	var mu sync.Mutex
	var reported []error
	s := NewScheduler(w.save, 20*time.Millisecond, 3, func(err error) {
		mu.Lock()
		defer mu.Unlock()
		reported = append(reported, err)
	})

	s.Schedule(stateAt(1))

	assert.Eventually(t, func() bool {
		_, saved := w.snapshot()
		return len(saved) == 1
	}, time.Second, 5*time.Millisecond)

	calls, _ := w.snapshot()
	assert.Equal(t, 3, calls)
	mu.Lock()
	assert.Len(t, reported, 2)
	mu.Unlock()

	st := s.Status()
	assert.False(t, st.Unsaved)
	assert.Empty(t, st.LastError)
	assert.Zero(t, st.Failures)
}

func TestScheduler_GivesUpAfterRetryLimit(t *testing.T) {
	w := &fakeWriter{failN: 100}
	s := NewScheduler(w.save, 10*time.Millisecond, 1, nil)

	s.Schedule(stateAt(1))

	assert.Eventually(t, func() bool {
		st := s.Status()
		return st.Failures == 2 && st.State == SaveIdle
	}, time.Second, 5*time.Millisecond)

	time.Sleep(50 * time.Millisecond)
	calls, _ := w.snapshot()
	assert.Equal(t, 2, calls)

	st := s.Status()
	assert.True(t, st.Unsaved, "in-memory edits stay unsaved, never rolled back")
	assert.Equal(t, "disk full", st.LastError)

	// An explicit save always retries
	w.mu.Lock()
	w.failN = 0
	w.mu.Unlock()
	require.NoError(t, s.Flush(context.Background()))
	assert.False(t, s.Status().Unsaved)
}

func TestScheduler_NewerSnapshotWinsDuringSave(t *testing.T) {
	w := &fakeWriter{block: make(chan struct{})}
	s := NewScheduler(w.save, 10*time.Millisecond, 0, nil)

	s.Schedule(stateAt(1))
	assert.Eventually(t, func() bool { return s.Status().State == SaveSaving }, time.Second, 2*time.Millisecond)

	s.Schedule(stateAt(2))
	close(w.block)

	assert.Eventually(t, func() bool {
		_, saved := w.snapshot()
		return len(saved) == 2
	}, time.Second, 5*time.Millisecond)

	_, saved := w.snapshot()
	assert.Equal(t, 1.0, saved[0].CurrentTime)
	assert.Equal(t, 2.0, saved[1].CurrentTime)
	assert.Eventually(t, func() bool { return !s.Status().Unsaved }, time.Second, 5*time.Millisecond)
}

func TestScheduler_CloseFlushes(t *testing.T) {
	w := &fakeWriter{}
	var reported []error
	s := NewScheduler(w.save, time.Hour, 0, func(err error) { reported = append(reported, err) })

	s.Schedule(stateAt(3))
	require.NoError(t, s.Close(context.Background()))
	assert.False(t, s.Status().Unsaved)

	s.Schedule(stateAt(4))
	require.NoError(t, s.Flush(context.Background()))

	_, saved := w.snapshot()
	require.Len(t, saved, 1)
	assert.Equal(t, 3.0, saved[0].CurrentTime)

	// the late snapshot is reported rather than dropped silently
	st := s.Status()
	assert.True(t, st.Unsaved)
	assert.Equal(t, ErrBridgeClosed.Error(), st.LastError)
	assert.Equal(t, SaveIdle, st.State)
	require.Len(t, reported, 1)
	assert.ErrorIs(t, reported[0], ErrBridgeClosed)
}

// MockRepository is a mock implementation of Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Load(ctx context.Context, mediaID string) (*Document, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Document), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, doc *Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, mediaID string) error {
	args := m.Called(ctx, mediaID)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context) ([]Summary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]Summary), args.Error(1)
}

func TestBridge_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("not found is reported", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "missing").Return(nil, ErrTimelineNotFound)

		_, err := NewBridge(repo, "missing").Load(ctx)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
		repo.AssertExpectations(t)
	})

	t.Run("invalid document", func(t *testing.T) {
		doc := FromState(sampleState())
		doc.Tracks[0].Clips[1].Disabled = false
		repo := new(MockRepository)
		repo.On("Load", ctx, "media-42").Return(doc, nil)

		_, err := NewBridge(repo, "media-42").Load(ctx)
		assert.True(t, apperrors.Is(err, apperrors.ErrCodeValidation))
	})

	t.Run("loads state", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("Load", ctx, "media-42").Return(FromState(sampleState()), nil)

		state, err := NewBridge(repo, "media-42").Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleState(), state)
	})
}

func TestBridge_SaveNowFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("Save", ctx, mock.AnythingOfType("*persistence.Document")).Return(errors.New("connection refused")).Once()
	repo.On("Save", ctx, mock.AnythingOfType("*persistence.Document")).Return(nil)

	var failures int
	bridge := NewBridge(repo, "media-42", WithDebounce(time.Hour), WithErrorHandler(func(error) { failures++ }))

	err := bridge.SaveNow(ctx, sampleState())
	assert.True(t, apperrors.Is(err, apperrors.ErrCodePersistence))
	assert.Equal(t, 1, failures)
	assert.True(t, bridge.Status().Unsaved)

	require.NoError(t, bridge.SaveNow(ctx, sampleState()))
	assert.False(t, bridge.Status().Unsaved)
	repo.AssertNumberOfCalls(t, "Save", 2)
}

func TestBridge_DebouncedSaveWritesRepository(t *testing.T) {
	repo, err := NewFileRepository(t.TempDir(), FormatYAML)
	require.NoError(t, err)
	bridge := NewBridge(repo, "media-42", WithDebounce(20*time.Millisecond), WithRetryAttempts(1))

	bridge.Schedule(sampleState())
	assert.Eventually(t, func() bool {
		_, err := repo.Load(context.Background(), "media-42")
		return err == nil
	}, time.Second, 5*time.Millisecond)

	loaded, err := bridge.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sampleState(), loaded)
	require.NoError(t, bridge.Close(context.Background()))
}
