package tui

import (
	"encoding/json"
	"log"

	"github.com/atotto/clipboard"
	"github.com/killallgit/timeline-api/internal/services/timeline"
)

// SystemClipboard stages clips in an in-memory slot and mirrors each copy to
// the OS clipboard as JSON. Paste always reads the in-memory slot.
type SystemClipboard struct {
	timeline.Clipboard
	write func(string) error
}

// NewSystemClipboard wraps slot with an OS clipboard mirror
func NewSystemClipboard(slot timeline.Clipboard) *SystemClipboard {
	c := &SystemClipboard{Clipboard: slot}
	if !clipboard.Unsupported {
		c.write = clipboard.WriteAll
	}
	return c
}

// Stage replaces the slot content and mirrors it
func (c *SystemClipboard) Stage(entry timeline.ClipboardEntry) {
	c.Clipboard.Stage(entry)
	if c.write == nil {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[WARN] Failed to encode copied clip %s: %v", entry.Clip.ID, err)
		return
	}
	if err := c.write(string(data)); err != nil {
		log.Printf("[DEBUG] OS clipboard unavailable: %v", err)
	}
}
