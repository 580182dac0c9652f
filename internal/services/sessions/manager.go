package sessions

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

// Manager owns at most one open Session per media id
type Manager struct {
	repo      persistence.Repository
	clipboard timeline.Clipboard

	debounce      time.Duration
	retryAttempts int
	historyLimit  int
	defaults      models.Settings

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option configures a Manager
type Option func(*Manager)

// WithDebounce sets the save quiet period of new sessions
func WithDebounce(d time.Duration) Option {
	return func(m *Manager) {
		m.debounce = d
	}
}

// WithRetryAttempts sets how often a failed debounced save is retried
func WithRetryAttempts(n int) Option {
	return func(m *Manager) {
		m.retryAttempts = n
	}
}

// WithHistoryLimit sets the undo depth of new sessions
func WithHistoryLimit(n int) Option {
	return func(m *Manager) {
		m.historyLimit = n
	}
}

// WithDefaultSettings sets the view settings of seeded timelines
func WithDefaultSettings(s models.Settings) Option {
	return func(m *Manager) {
		m.defaults = s
	}
}

// WithClipboard replaces the clipboard shared by all sessions
func WithClipboard(c timeline.Clipboard) Option {
	return func(m *Manager) {
		if c != nil {
			m.clipboard = c
		}
	}
}

// NewManager creates a session manager over a repository
func NewManager(repo persistence.Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:          repo,
		clipboard:     timeline.NewMemoryClipboard(),
		debounce:      persistence.DefaultDebounce,
		retryAttempts: persistence.DefaultRetryAttempts,
		historyLimit:  timeline.DefaultHistoryLimit,
		defaults:      models.Settings{Zoom: 1, SnapInterval: 0.1},
		sessions:      make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open returns the open session for a media id, loading it from the
// repository if needed. A timeline that was never seeded is reported as not
// found.
func (m *Manager) Open(ctx context.Context, mediaID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[mediaID]; ok {
		return s, nil
	}

	bridge := m.newBridge(mediaID)
	state, err := bridge.Load(ctx)
	if err != nil {
		return nil, err
	}

	s := m.newSession(mediaID, state, bridge)
	m.sessions[mediaID] = s
	log.Printf("[DEBUG] Opened timeline session %s", mediaID)
	return s, nil
}

// Seed creates a timeline from a seed and saves it immediately. An existing
// timeline is only replaced when overwrite is set.
func (m *Manager) Seed(ctx context.Context, seed seeding.Seed, overwrite bool) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !overwrite {
		if _, ok := m.sessions[seed.MediaID]; ok {
			return nil, apperrors.Newf(apperrors.ErrCodeConflict, "timeline %s already exists", seed.MediaID)
		}
		if _, err := m.repo.Load(ctx, seed.MediaID); err == nil {
			return nil, apperrors.Newf(apperrors.ErrCodeConflict, "timeline %s already exists", seed.MediaID)
		} else if !errors.Is(err, persistence.ErrTimelineNotFound) {
			return nil, apperrors.PersistenceError("load", err)
		}
	}

	state, err := seeding.NewBuilder(m.defaults).Build(seed)
	if err != nil {
		return nil, err
	}

	if old, ok := m.sessions[seed.MediaID]; ok {
		_ = old.close(ctx)
		delete(m.sessions, seed.MediaID)
	}

	bridge := m.newBridge(seed.MediaID)
	s := m.newSession(seed.MediaID, state, bridge)
	if err := bridge.SaveNow(ctx, s.store.State()); err != nil {
		return nil, err
	}
	m.sessions[seed.MediaID] = s
	log.Printf("[DEBUG] Seeded timeline %s with %d caption clips", seed.MediaID, len(state.Tracks[2].Clips))
	return s, nil
}

// Get returns an already open session
func (m *Manager) Get(mediaID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[mediaID]
	return s, ok
}

// OpenIDs returns the media ids of all open sessions, sorted
func (m *Manager) OpenIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// List returns summaries of all stored timelines
func (m *Manager) List(ctx context.Context) ([]persistence.Summary, error) {
	summaries, err := m.repo.List(ctx)
	if err != nil {
		return nil, apperrors.PersistenceError("list", err)
	}
	return summaries, nil
}

// Close flushes pending saves of a session and drops it
func (m *Manager) Close(ctx context.Context, mediaID string) error {
	m.mu.Lock()
	s, ok := m.sessions[mediaID]
	delete(m.sessions, mediaID)
	m.mu.Unlock()

	if !ok {
		return apperrors.NotFound("session", mediaID)
	}
	return s.close(ctx)
}

// Delete closes the session of a media id, if open, and removes its stored
// timeline. A pending save of the closed session is written before the delete
// and so cannot resurrect the timeline.
func (m *Manager) Delete(ctx context.Context, mediaID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[mediaID]; ok {
		delete(m.sessions, mediaID)
		if err := s.close(ctx); err != nil {
			log.Printf("[WARN] Discarding unsaved changes of deleted timeline %s: %v", mediaID, err)
		}
	}

	if err := m.repo.Delete(ctx, mediaID); err != nil {
		if errors.Is(err, persistence.ErrTimelineNotFound) {
			return apperrors.NotFound("timeline", mediaID)
		}
		return apperrors.PersistenceError("delete", err)
	}
	log.Printf("[INFO] Deleted timeline %s", mediaID)
	return nil
}

// CloseAll flushes and drops every session, returning the first flush error
func (m *Manager) CloseAll(ctx context.Context) error {
	m.mu.Lock()
	open := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	var first error
	for id, s := range open {
		if err := s.close(ctx); err != nil {
			log.Printf("[ERROR] Failed to flush timeline %s on close: %v", id, err)
			if first == nil {
				first = err
			}
		}
	}
	return first
}

func (m *Manager) newBridge(mediaID string) *persistence.Bridge {
	return persistence.NewBridge(m.repo, mediaID,
		persistence.WithDebounce(m.debounce),
		persistence.WithRetryAttempts(m.retryAttempts),
	)
}

func (m *Manager) newSession(mediaID string, state *models.TimelineState, bridge *persistence.Bridge) *Session {
	store := timeline.NewStore(state,
		timeline.WithSaver(bridge),
		timeline.WithClipboard(m.clipboard),
		timeline.WithHistoryLimit(m.historyLimit),
	)
	return &Session{
		mediaID:  mediaID,
		store:    store,
		bridge:   bridge,
		openedAt: time.Now().UTC(),
	}
}
