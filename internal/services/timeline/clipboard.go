package timeline

import "sync"

// MemoryClipboard is a single-slot in-memory Clipboard
type MemoryClipboard struct {
	mu    sync.Mutex
	entry *ClipboardEntry
}

// NewMemoryClipboard creates an empty clipboard
func NewMemoryClipboard() *MemoryClipboard {
	return &MemoryClipboard{}
}

// Stage replaces the slot content with a deep copy of entry
func (c *MemoryClipboard) Stage(entry ClipboardEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry.Clip = entry.Clip.Clone()
	c.entry = &entry
}

// Peek returns a deep copy of the staged entry
func (c *MemoryClipboard) Peek() (ClipboardEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entry == nil {
		return ClipboardEntry{}, false
	}
	out := *c.entry
	out.Clip = out.Clip.Clone()
	return out, true
}

// Clear empties the slot
func (c *MemoryClipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
