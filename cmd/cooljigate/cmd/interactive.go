package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/darkstorm/cooljigate/internal/clipboard"
	"github.com/darkstorm/cooljigate/internal/flashcard"
	"github.com/darkstorm/cooljigate/internal/logger"
	"github.com/darkstorm/cooljigate/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"i", "ui"},
	Short:   "Launch interactive TUI",
	Long: `Launch an interactive terminal UI for looking up verbs.

The formatting flags of the root command apply to every lookup.

Controls:
  Enter    Look up verb
  ↑/↓      Scroll
  Ctrl+Y   Copy flashcards to clipboard
  Esc      Quit`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	// Log output would corrupt the alt screen.
	s, err := newSession(logger.Discard())
	if err != nil {
		return err
	}
	opts := renderOptionsFromFlags(cmd, s.cfg)

	lookup := func(ctx context.Context, verb string) (tui.Result, error) {
		primary, secondary, err := s.builder.Pair(ctx, verb, opts.build)
		if err != nil {
			return tui.Result{}, err
		}
		return tui.Result{
			Header: flashcard.Header(primary, secondary),
			Lines:  flashcard.Format(primary, secondary, opts.format),
		}, nil
	}

	p := tea.NewProgram(
		tui.New(cmd.Context(), lookup, clipboard.System{}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}
