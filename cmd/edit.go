package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/killallgit/timeline-api/internal/services/seeding"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"github.com/killallgit/timeline-api/internal/services/timeline"
	"github.com/killallgit/timeline-api/internal/tui"
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
	"github.com/killallgit/timeline-api/pkg/transcript"
	"github.com/spf13/cobra"
)

var (
	editTranscript string
	editDuration   float64
)

// editCmd opens a timeline in the terminal editor
var editCmd = &cobra.Command{
	Use:   "edit <media-id>",
	Short: "Edit a timeline in the terminal",
	Long: `Open a timeline in an interactive terminal editor.

A timeline that does not exist yet can be seeded from a local VTT, SRT
or JSON transcript with --transcript. Copied clips are also placed on
the system clipboard as JSON. The timeline is saved on exit.

Example:
  timeline-api edit media-42
  timeline-api edit media-42 --transcript media-42.vtt --duration 1800`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTranscript, "transcript", "", "seed a missing timeline from this transcript file")
	editCmd.Flags().Float64Var(&editDuration, "duration", 0, "media duration in seconds when seeding (default: transcript length)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	if editDuration < 0 {
		return fmt.Errorf("duration must not be negative")
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

	opts := append(managerOptions(cfg), sessions.WithClipboard(tui.NewSystemClipboard(timeline.NewMemoryClipboard())))
	manager := sessions.NewManager(repo, opts...)

	ctx := commandContext(cmd)
	session, err := openOrSeed(ctx, manager, args[0], editTranscript, editDuration)
	if err != nil {
		return err
	}
	defer func() {
		if err := manager.CloseAll(context.WithoutCancel(ctx)); err != nil {
			log.Printf("[ERROR] Failed to save timeline %s: %v", args[0], err)
		}
	}()

	return tui.Run(ctx, session, tui.Options{Input: os.Stdin, Output: cmd.OutOrStdout()})
}

// openOrSeed opens an existing timeline, or seeds it from a transcript file when
// one is given and nothing is stored yet
func openOrSeed(ctx context.Context, manager *sessions.Manager, mediaID, transcriptPath string, duration float64) (*sessions.Session, error) {
	session, err := manager.Open(ctx, mediaID)
	if err == nil || !apperrors.Is(err, apperrors.ErrCodeNotFound) {
		return session, err
	}
	if transcriptPath == "" {
		return nil, fmt.Errorf("timeline %s does not exist, seed it with --transcript: %w", mediaID, err)
	}

	seed, err := seedFromFile(mediaID, transcriptPath, duration)
	if err != nil {
		return nil, err
	}
	return manager.Seed(ctx, seed, false)
}

func seedFromFile(mediaID, path string, duration float64) (seeding.Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return seeding.Seed{}, fmt.Errorf("failed to read transcript: %w", err)
	}

	content := string(data)
	format := transcript.DetectFormat(filepath.Base(path), content)
	parsed, err := transcript.NewParser().Parse(content, format)
	if err != nil {
		return seeding.Seed{}, fmt.Errorf("failed to parse transcript %s: %w", path, err)
	}

	seed, err := seeding.FromTranscript(mediaID, duration, parsed)
	if err != nil {
		return seeding.Seed{}, err
	}
	if seed.MediaDuration <= 0 {
		return seeding.Seed{}, errors.New("media duration is unknown, pass --duration")
	}
	return seed, nil
}
