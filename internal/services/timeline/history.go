package timeline

import (
	"github.com/killallgit/timeline-api/internal/models"
)

// DefaultHistoryLimit bounds the undo log
const DefaultHistoryLimit = 50

// historyEntry keeps the playhead around the edit so undo can put back a
// playhead the edit clamped
type historyEntry struct {
	action        models.Action
	cmd           command
	playheadFrom  float64
	playheadAfter float64
}

// history is a bounded linear undo log. index points at the last applied entry
// and is -1 when nothing can be undone.
type history struct {
	entries []historyEntry
	index   int
	limit   int
}

func newHistory(limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{index: -1, limit: limit}
}

// push records a committed edit, dropping any undone tail and the oldest entry
// once the limit is exceeded
func (h *history) push(action models.Action, cmd command, playheadFrom, playheadAfter float64) {
	h.entries = append(h.entries[:h.index+1], historyEntry{
		action:        action,
		cmd:           cmd,
		playheadFrom:  playheadFrom,
		playheadAfter: playheadAfter,
	})
	if len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]historyEntry(nil), h.entries[drop:]...)
	}
	h.index = len(h.entries) - 1
}

func (h *history) canUndo() bool {
	return h.index >= 0
}

func (h *history) canRedo() bool {
	return h.index < len(h.entries)-1
}

// undo reverts the entry at the cursor and moves the cursor back. The playhead
// returns to where it was before the edit unless it was moved since.
func (h *history) undo(s *models.TimelineState) (*models.Action, error) {
	if !h.canUndo() {
		return nil, nil
	}
	e := h.entries[h.index]
	moved := s.CurrentTime != e.playheadAfter
	if err := e.cmd.revert(s); err != nil {
		return nil, err
	}
	if !moved && e.playheadFrom <= s.Duration {
		s.CurrentTime = e.playheadFrom
	}
	h.index--
	a := e.action
	return &a, nil
}

// redo re-applies the entry after the cursor
func (h *history) redo(s *models.TimelineState) (*models.Action, error) {
	if !h.canRedo() {
		return nil, nil
	}
	e := h.entries[h.index+1]
	moved := s.CurrentTime != e.playheadFrom
	if err := e.cmd.apply(s); err != nil {
		return nil, err
	}
	if !moved && e.playheadAfter <= s.Duration {
		s.CurrentTime = e.playheadAfter
	}
	h.index++
	a := e.action
	return &a, nil
}

func (h *history) info() HistoryInfo {
	actions := make([]models.Action, len(h.entries))
	for i, e := range h.entries {
		actions[i] = e.action
		actions[i].ClipIDs = append([]string(nil), e.action.ClipIDs...)
	}
	return HistoryInfo{
		Index:   h.index,
		Actions: actions,
		CanUndo: h.canUndo(),
		CanRedo: h.canRedo(),
	}
}
