package tui

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/internal/services/timeline"
)

const (
	defaultWidth = 100
	playheadStep = 1.0
)

type savedMsg struct {
	err error
}

// Model is the bubbletea model of the terminal editor
type Model struct {
	session *sessions.Session
	state   *models.TimelineState

	track  int
	clipID string

	status    string
	statusErr bool

	keys  keyMap
	help  help.Model
	width int
}

// NewModel creates an editor over an open session
func NewModel(session *sessions.Session) Model {
	m := Model{
		session: session,
		state:   session.State(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		width:   defaultWidth,
	}
	m.selectClipAtPlayhead()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("Saved")
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Left):
		m.movePlayhead(-playheadStep)

	case key.Matches(msg, m.keys.Right):
		m.movePlayhead(playheadStep)

	case key.Matches(msg, m.keys.Up):
		if m.track > 0 {
			m.track--
		}
		m.selectClipAtPlayhead()

	case key.Matches(msg, m.keys.Down):
		if m.track < len(m.state.Tracks)-1 {
			m.track++
		}
		m.selectClipAtPlayhead()

	case key.Matches(msg, m.keys.NextClip):
		m.nextClip()

	case key.Matches(msg, m.keys.Split):
		m.withClip("Split", func(store *timeline.Store, trackID, clipID string) error {
			return store.SplitClip(trackID, clipID, m.state.CurrentTime)
		})

	case key.Matches(msg, m.keys.Delete):
		if m.withClip("Deleted", func(store *timeline.Store, trackID, clipID string) error {
			return store.DeleteClip(trackID, clipID)
		}) {
			m.selectClipAtPlayhead()
		}

	case key.Matches(msg, m.keys.Merge):
		next := m.neighbour(1)
		if next == "" {
			m.setStatus("No clip after the selection")
			break
		}
		m.withClip("Merged", func(store *timeline.Store, trackID, clipID string) error {
			return store.MergeClips(trackID, clipID, next)
		})

	case key.Matches(msg, m.keys.Copy):
		m.withClip("Copied", func(store *timeline.Store, trackID, clipID string) error {
			return store.CopyClip(trackID, clipID)
		})

	case key.Matches(msg, m.keys.Paste):
		track := m.currentTrack()
		if track == nil {
			break
		}
		var pasted string
		err := m.session.Do(func(store *timeline.Store) error {
			var err error
			pasted, err = store.PasteClip(track.ID, m.state.CurrentTime)
			return err
		})
		if m.apply("Pasted", err) {
			m.clipID = pasted
		}

	case key.Matches(msg, m.keys.Lock):
		clip := m.currentClip()
		if clip == nil {
			break
		}
		locked := !clip.Locked
		label := "Unlocked"
		if locked {
			label = "Locked"
		}
		m.withClip(label, func(store *timeline.Store, trackID, clipID string) error {
			return store.EditClip(trackID, clipID, timeline.ClipUpdate{Locked: &locked})
		})

	case key.Matches(msg, m.keys.Undo):
		m.history("Undone", "Nothing to undo", (*timeline.Store).Undo)

	case key.Matches(msg, m.keys.Redo):
		m.history("Redone", "Nothing to redo", (*timeline.Store).Redo)

	case key.Matches(msg, m.keys.Save):
		m.setStatus("Saving...")
		return m, m.save()
	}
	return m, nil
}

func (m Model) save() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return savedMsg{err: s.SaveNow(ctx)}
	}
}

func (m *Model) movePlayhead(delta float64) {
	_ = m.session.Do(func(store *timeline.Store) error {
		_, err := store.SetCurrentTime(store.Snap(m.state.CurrentTime + delta))
		return err
	})
	m.refresh()
	m.selectClipAtPlayhead()
}

// withClip runs fn on the selected clip and reports whether it succeeded
func (m *Model) withClip(done string, fn func(store *timeline.Store, trackID, clipID string) error) bool {
	track, clip := m.currentTrack(), m.currentClip()
	if track == nil || clip == nil {
		m.setStatus("No clip selected")
		return false
	}
	err := m.session.Do(func(store *timeline.Store) error {
		return fn(store, track.ID, clip.ID)
	})
	return m.apply(done, err)
}

func (m *Model) history(done, noop string, step func(*timeline.Store) (bool, error)) {
	var applied bool
	err := m.session.Do(func(store *timeline.Store) error {
		var err error
		applied, err = step(store)
		return err
	})
	if err == nil && !applied {
		m.setStatus(noop)
		return
	}
	if m.apply(done, err) && m.currentClip() == nil {
		m.selectClipAtPlayhead()
	}
}

func (m *Model) apply(done string, err error) bool {
	m.refresh()
	if err != nil {
		m.setError(err)
		return false
	}
	m.setStatus(done)
	return true
}

func (m *Model) refresh() {
	m.state = m.session.State()
	if m.track >= len(m.state.Tracks) {
		m.track = len(m.state.Tracks) - 1
	}
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}

func (m *Model) currentTrack() *models.Track {
	if m.track < 0 || m.track >= len(m.state.Tracks) {
		return nil
	}
	return &m.state.Tracks[m.track]
}

func (m *Model) currentClip() *models.Clip {
	track := m.currentTrack()
	if track == nil || m.clipID == "" {
		return nil
	}
	if idx := track.ClipIndex(m.clipID); idx >= 0 {
		return &track.Clips[idx]
	}
	return nil
}

func (m *Model) sortedClips() []models.Clip {
	track := m.currentTrack()
	if track == nil {
		return nil
	}
	clips := append([]models.Clip(nil), track.Clips...)
	sort.SliceStable(clips, func(i, j int) bool { return clips[i].Start < clips[j].Start })
	return clips
}

func (m *Model) selectClipAtPlayhead() {
	m.clipID = ""
	clips := m.sortedClips()
	for _, c := range clips {
		if m.state.CurrentTime >= c.Start && m.state.CurrentTime < c.End {
			m.clipID = c.ID
			return
		}
	}
	if len(clips) > 0 {
		m.clipID = clips[0].ID
	}
}

func (m *Model) nextClip() {
	clips := m.sortedClips()
	if len(clips) == 0 {
		m.clipID = ""
		return
	}
	if next := m.neighbour(1); next != "" {
		m.clipID = next
		return
	}
	m.clipID = clips[0].ID
}

// neighbour returns the id of the clip offset positions away from the selection
func (m *Model) neighbour(offset int) string {
	clips := m.sortedClips()
	for i, c := range clips {
		if c.ID == m.clipID {
			if j := i + offset; j >= 0 && j < len(clips) {
				return clips[j].ID
			}
			return ""
		}
	}
	return ""
}

func (m Model) View() string {
	var b strings.Builder

	status := m.session.SaveStatus()
	saved := successStyle.Render("saved")
	if status.Unsaved {
		saved = mutedStyle.Render(string(status.State))
	}
	if status.LastError != "" {
		saved = errorStyle.Render("save failed: " + status.LastError)
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n",
		titleStyle.Render(m.state.MediaID),
		playheadStyle.Render(formatTime(m.state.CurrentTime)+" / "+formatTime(m.state.Duration)),
		saved)

	barWidth := m.width - 16
	if barWidth < 20 {
		barWidth = 20
	}
	for i, track := range m.state.Tracks {
		name := trackNameStyle
		if i == m.track {
			name = selectedTrackStyle
		}
		flags := ""
		if track.Locked {
			flags += "L"
		}
		if track.Muted {
			flags += "M"
		}
		if !track.Visible {
			flags += "H"
		}
		fmt.Fprintf(&b, "%s %s %s\n", name.Render(truncate(track.Name, 11)), m.renderTrack(track, i == m.track, barWidth), mutedStyle.Render(flags))
	}

	b.WriteString("\n")
	if clip := m.currentClip(); clip != nil {
		b.WriteString(panelStyle.Render(describeClip(*clip)))
		b.WriteString("\n")
	}
	if m.status != "" {
		style := mutedStyle
		if m.statusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// renderTrack draws the clips of a track as a bar scaled to the timeline duration
func (m Model) renderTrack(track models.Track, selected bool, width int) string {
	duration := math.Max(m.state.Duration, models.MinClipDuration)
	cells := make([]string, width)
	for i := range cells {
		cells[i] = mutedStyle.Render("·")
	}

	col := func(t float64) int {
		c := int(t / duration * float64(width))
		return min(max(c, 0), width-1)
	}

	for _, c := range track.Clips {
		style := clipStyle
		switch {
		case selected && c.ID == m.clipID:
			style = selectedClipStyle
		case c.Locked:
			style = lockedClipStyle
		}
		glyph := "█"
		if c.Disabled {
			glyph = "░"
		}
		for i := col(c.Start); i <= col(math.Max(c.Start, c.End-1e-9)); i++ {
			cells[i] = style.Render(glyph)
		}
		cells[col(c.Start)] = style.Render("▌")
	}
	cells[col(m.state.CurrentTime)] = playheadStyle.Render("│")
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func describeClip(c models.Clip) string {
	lines := []string{
		fmt.Sprintf("%s  %s → %s  (%s)", c.Label, formatTime(c.Start), formatTime(c.End), formatTime(c.Duration())),
	}
	var flags []string
	if c.Locked {
		flags = append(flags, "locked")
	}
	if c.Disabled {
		flags = append(flags, "disabled")
	}
	if len(c.Effects) > 0 {
		flags = append(flags, fmt.Sprintf("%d effects", len(c.Effects)))
	}
	if len(flags) > 0 {
		lines = append(lines, mutedStyle.Render(strings.Join(flags, ", ")))
	}
	if text := c.Text(); text != "" {
		lines = append(lines, truncate(text, 80))
	}
	return strings.Join(lines, "\n")
}

func formatTime(seconds float64) string {
	total := int(math.Round(seconds * 10))
	return fmt.Sprintf("%02d:%02d.%d", total/600, (total/10)%60, total%10)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
