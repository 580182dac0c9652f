package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
)

// SaveState is the position of a Scheduler in its save cycle
type SaveState string

const (
	SaveIdle    SaveState = "idle"
	SavePending SaveState = "pending"
	SaveSaving  SaveState = "saving"
)

const (
	// DefaultDebounce is the quiet period before a scheduled save is written
	DefaultDebounce = 2 * time.Second

	// DefaultRetryAttempts is how many debounce windows a failed save is retried in
	DefaultRetryAttempts = 3

	flushTimeout = 30 * time.Second
)

// SaveFunc writes one snapshot
type SaveFunc func(ctx context.Context, state *models.TimelineState) error

// Status reports the save state of one timeline
type Status struct {
	State       SaveState `json:"state"`
	Unsaved     bool      `json:"unsaved"`
	LastError   string    `json:"last_error,omitempty"`
	LastSavedAt time.Time `json:"last_saved_at,omitempty"`
	Failures    int       `json:"consecutive_failures"`
}

// Scheduler debounces snapshots into single writes.
//
// Schedule moves idle to pending and restarts the quiet period; when it ends the
// latest snapshot is written (saving) and the scheduler returns to idle, or to
// pending if a newer snapshot arrived meanwhile or a failed write will be retried.
// Writes never overlap and always take the newest snapshot, so an older state
// cannot overwrite a newer one.
type Scheduler struct {
	save     SaveFunc
	debounce time.Duration
	retries  int
	onError  func(error)

	writeMu sync.Mutex

	mu          sync.Mutex
	state       SaveState
	pending     *models.TimelineState
	generation  uint64
	timer       *time.Timer
	unsaved     bool
	lastErr     error
	lastSavedAt time.Time
	failures    int
	closed      bool
}

// NewScheduler creates an idle scheduler. A non-positive debounce uses the default.
func NewScheduler(save SaveFunc, debounce time.Duration, retries int, onError func(error)) *Scheduler {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if retries < 0 {
		retries = 0
	}
	return &Scheduler{
		save:     save,
		debounce: debounce,
		retries:  retries,
		onError:  onError,
		state:    SaveIdle,
	}
}

// Schedule replaces the pending snapshot and restarts the quiet period. It never
// blocks on I/O. After Close nothing is written any more: the status reports
// unsaved changes with ErrBridgeClosed and onError is called.
func (s *Scheduler) Schedule(state *models.TimelineState) {
	s.mu.Lock()
	if s.closed {
		s.unsaved = true
		s.lastErr = ErrBridgeClosed
		s.mu.Unlock()
		if s.onError != nil {
			s.onError(ErrBridgeClosed)
		}
		return
	}
	defer s.mu.Unlock()

	s.pending = state
	s.generation++
	s.unsaved = true
	s.failures = 0
	if s.state != SaveSaving {
		s.state = SavePending
	}
	s.arm()
}

// Flush writes the pending snapshot immediately, bypassing the debounce.
// It returns nil when there is nothing to save.
func (s *Scheduler) Flush(ctx context.Context) error {
	return s.write(ctx)
}

// Status returns the current save status
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:       s.state,
		Unsaved:     s.unsaved,
		LastSavedAt: s.lastSavedAt,
		Failures:    s.failures,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// Close flushes any pending snapshot and stops accepting new ones
func (s *Scheduler) Close(ctx context.Context) error {
	err := s.write(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	return err
}

// arm (re)starts the debounce timer; callers hold mu
func (s *Scheduler) arm() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()
	_ = s.write(ctx)
}

func (s *Scheduler) write(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	snapshot, gen := s.pending, s.generation
	if snapshot == nil {
		s.mu.Unlock()
		return nil
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.state = SaveSaving
	s.mu.Unlock()

	err := s.save(ctx, snapshot)

	s.mu.Lock()
	newer := s.generation != gen
	if err != nil {
		s.lastErr = err
		s.failures++
		switch {
		case newer:
			s.state = SavePending
		case s.failures <= s.retries && !s.closed:
			s.state = SavePending
			s.arm()
		default:
			s.state = SaveIdle
		}
		s.mu.Unlock()

		if s.onError != nil {
			s.onError(err)
		}
		return err
	}

	s.lastErr = nil
	s.failures = 0
	s.lastSavedAt = time.Now().UTC()
	if newer {
		s.state = SavePending
	} else {
		s.pending = nil
		s.unsaved = false
		s.state = SaveIdle
	}
	s.mu.Unlock()
	return nil
}
