package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/persistence"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

// Session is one open timeline. The store behind it expects a single logical
// thread of control, so every access goes through Do.
type Session struct {
	mu       sync.Mutex
	mediaID  string
	store    *timeline.Store
	bridge   *persistence.Bridge
	openedAt time.Time
	closed   bool
}

// MediaID returns the media id of the session
func (s *Session) MediaID() string {
	return s.mediaID
}

// OpenedAt returns when the session was opened
func (s *Session) OpenedAt() time.Time {
	return s.openedAt
}

// Do runs fn with exclusive access to the store. A closed session accepts no
// further work.
func (s *Session) Do(fn func(store *timeline.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errSessionClosed(s.mediaID)
	}
	return fn(s.store)
}

// State returns a snapshot of the current state
func (s *Session) State() *models.TimelineState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.State()
}

// SaveNow writes the current state immediately, bypassing the debounce.
// The snapshot is queued under the session lock so that it cannot overtake a
// later edit; the write itself happens outside it.
func (s *Session) SaveNow(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return errSessionClosed(s.mediaID)
	}
	s.bridge.Schedule(s.store.State())
	s.mu.Unlock()
	return s.bridge.Flush(ctx)
}

// SaveStatus reports the persistence state of the session
func (s *Session) SaveStatus() persistence.Status {
	return s.bridge.Status()
}

func (s *Session) close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.bridge.Close(ctx)
}

func errSessionClosed(mediaID string) error {
	return apperrors.Newf(apperrors.ErrCodeConflict, "timeline session %s was closed", mediaID).
		WithDetail("media_id", mediaID)
}
