package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/killallgit/timeline-api/internal/models"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/edl"
	"github.com/killallgit/timeline-api/pkg/segment"
	"github.com/spf13/cobra"
)

var (
	inspectEDLTrack  string
	inspectFrameRate float64
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))

// inspectCmd prints a summary of a stored timeline
var inspectCmd = &cobra.Command{
	Use:   "inspect <media-id>",
	Short: "Summarize a stored timeline",
	Long: `Print the tracks of a stored timeline with clip counts, coverage,
gaps and overlaps. With --edl the given track is written as a CMX 3600
edit decision list instead.

Example:
  timeline-api inspect media-42
  timeline-api inspect media-42 --edl video-1 --frame-rate 29.97 > media-42.edl`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVar(&inspectEDLTrack, "edl", "", "write the EDL of this track instead of the summary")
	inspectCmd.Flags().Float64Var(&inspectFrameRate, "frame-rate", 0, "EDL frame rate (default: timeline setting)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectFrameRate < 0 {
		return fmt.Errorf("frame rate must not be negative")
	}

	cfg, err := appConfig()
	if err != nil {
		return err
	}
	repo, db, err := openRepository(cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	ctx := commandContext(cmd)
	manager := sessions.NewManager(repo, managerOptions(cfg)...)
	session, err := manager.Open(ctx, args[0])
	if err != nil {
		return err
	}
	defer manager.CloseAll(ctx)

	state := session.State()
	if inspectEDLTrack != "" {
		return writeTrackEDL(cmd.OutOrStdout(), state, inspectEDLTrack, inspectFrameRate)
	}
	printTimeline(cmd.OutOrStdout(), state)
	return nil
}

func writeTrackEDL(out io.Writer, state *models.TimelineState, trackID string, frameRate float64) error {
	track := state.Track(trackID)
	if track == nil {
		return apperrors.NotFound("track", trackID)
	}
	if frameRate == 0 {
		frameRate = state.Settings.FrameRate
	}

	doc, err := edl.Generate(*track, edl.Options{
		Title:     state.MediaID + " " + track.Name,
		FrameRate: frameRate,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, doc)
	return err
}

// printTimeline renders one row per track followed by the gaps and overlaps found
func printTimeline(out io.Writer, state *models.TimelineState) {
	fmt.Fprintf(out, "%s  duration %.2fs  media %.2fs  playhead %.2fs\n\n",
		headerStyle.Render(state.MediaID), state.Duration, state.MediaDuration, state.CurrentTime)

	rows := make([][]string, 0, len(state.Tracks))
	var gaps, overlaps []string
	for _, track := range state.Tracks {
		stats := segment.TrackStatistics(track)
		rows = append(rows, []string{
			track.ID,
			string(track.Kind),
			strconv.Itoa(stats.ClipCount),
			fmt.Sprintf("%.2f", stats.TotalDuration),
			fmt.Sprintf("%.0f%%", stats.Coverage*100),
			trackFlags(track),
		})
		for _, g := range stats.Gaps {
			gaps = append(gaps, fmt.Sprintf("  %s  %.2f - %.2f (%.2fs)", track.ID, g.Start, g.End, g.Length()))
		}
		for _, o := range stats.Overlaps {
			overlaps = append(overlaps, fmt.Sprintf("  %s  %s / %s  %.2f - %.2f", track.ID, o.ClipA, o.ClipB, o.Intersection.Start, o.Intersection.End))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("TRACK", "KIND", "CLIPS", "SECONDS", "COVERAGE", "FLAGS").
		Rows(rows...)
	fmt.Fprintln(out, t.Render())

	printSection(out, "Gaps", gaps)
	printSection(out, "Overlaps", overlaps)
}

func printSection(out io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", headerStyle.Render(title))
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}

func trackFlags(t models.Track) string {
	var flags string
	if t.Locked {
		flags += "locked "
	}
	if t.Muted {
		flags += "muted "
	}
	if !t.Visible {
		flags += "hidden "
	}
	if flags == "" {
		return "-"
	}
	return flags[:len(flags)-1]
}
