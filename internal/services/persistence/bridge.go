package persistence

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/killallgit/timeline-api/internal/models"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

// Bridge connects one timeline to a Repository: it loads the stored snapshot
// and debounces saves of the live state. It implements timeline.Saver.
type Bridge struct {
	repo     Repository
	mediaID  string
	debounce time.Duration
	retries  int
	onError  func(error)
	sched    *Scheduler
}

// Option configures a Bridge
type Option func(*Bridge)

// WithDebounce sets the quiet period before a scheduled save is written
func WithDebounce(d time.Duration) Option {
	return func(b *Bridge) {
		b.debounce = d
	}
}

// WithRetryAttempts sets how many debounce windows a failed save is retried in
func WithRetryAttempts(n int) Option {
	return func(b *Bridge) {
		b.retries = n
	}
}

// WithErrorHandler is called after every failed write, in addition to logging
func WithErrorHandler(fn func(error)) Option {
	return func(b *Bridge) {
		b.onError = fn
	}
}

// NewBridge creates a bridge for one media id
func NewBridge(repo Repository, mediaID string, opts ...Option) *Bridge {
	b := &Bridge{
		repo:     repo,
		mediaID:  mediaID,
		debounce: DefaultDebounce,
		retries:  DefaultRetryAttempts,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.sched = NewScheduler(b.write, b.debounce, b.retries, b.failed)
	return b
}

// Load reads and validates the stored timeline. A missing timeline is
// reported as ErrTimelineNotFound; nothing is created.
func (b *Bridge) Load(ctx context.Context) (*models.TimelineState, error) {
	doc, err := b.repo.Load(ctx, b.mediaID)
	if err != nil {
		if errors.Is(err, ErrTimelineNotFound) {
			return nil, apperrors.NotFound("timeline", b.mediaID).WithCause(err)
		}
		return nil, apperrors.PersistenceError("load", err).WithDetail("media_id", b.mediaID)
	}
	state, err := doc.ToState()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "stored timeline is invalid").WithDetail("media_id", b.mediaID)
	}
	log.Printf("[DEBUG] Loaded timeline %s: %d tracks, %d clips", b.mediaID, len(doc.Tracks), doc.ClipCount())
	return state, nil
}

// Schedule queues a debounced save of the snapshot
func (b *Bridge) Schedule(state *models.TimelineState) {
	b.sched.Schedule(state)
}

// SaveNow writes the snapshot immediately
func (b *Bridge) SaveNow(ctx context.Context, state *models.TimelineState) error {
	b.sched.Schedule(state)
	return b.Flush(ctx)
}

// Flush writes the pending snapshot, if any, without waiting for the debounce
func (b *Bridge) Flush(ctx context.Context) error {
	if err := b.sched.Flush(ctx); err != nil {
		return apperrors.PersistenceError("save", err).WithDetail("media_id", b.mediaID)
	}
	return nil
}

// Status reports the save state
func (b *Bridge) Status() Status {
	return b.sched.Status()
}

// Close flushes any pending save
func (b *Bridge) Close(ctx context.Context) error {
	if err := b.sched.Close(ctx); err != nil {
		return apperrors.PersistenceError("flush", err).WithDetail("media_id", b.mediaID)
	}
	return nil
}

func (b *Bridge) write(ctx context.Context, state *models.TimelineState) error {
	if state.MediaID != b.mediaID {
		return fmt.Errorf("snapshot for %s handed to bridge for %s", state.MediaID, b.mediaID)
	}
	doc := FromState(state)
	doc.SavedAt = time.Now().UTC()
	if err := b.repo.Save(ctx, doc); err != nil {
		return err
	}
	log.Printf("[DEBUG] Saved timeline %s (%d clips)", b.mediaID, doc.ClipCount())
	return nil
}

func (b *Bridge) failed(err error) {
	log.Printf("[ERROR] Failed to save timeline %s: %v", b.mediaID, err)
	if b.onError != nil {
		b.onError(err)
	}
}
