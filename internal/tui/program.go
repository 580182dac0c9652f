package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/killallgit/timeline-api/internal/services/sessions"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the editor is started without a TTY
var ErrNotTerminal = errors.New("the editor needs an interactive terminal")

// Options configures the editor program
type Options struct {
	Input  *os.File
	Output io.Writer
}

// Run opens the editor over a session and blocks until the user quits.
// Pending edits are flushed before returning.
func Run(ctx context.Context, session *sessions.Session, opts Options) error {
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if !term.IsTerminal(int(opts.Input.Fd())) {
		return ErrNotTerminal
	}

	program := tea.NewProgram(NewModel(session),
		tea.WithContext(ctx),
		tea.WithInput(opts.Input),
		tea.WithOutput(opts.Output),
		tea.WithAltScreen(),
	)
	_, runErr := program.Run()
	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = fmt.Errorf("editor failed: %w", runErr)
	} else {
		runErr = nil
	}

	if err := session.SaveNow(context.WithoutCancel(ctx)); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
