package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/breakoutish/internal/platform/tui"
	"github.com/vovakirdan/breakoutish/internal/storage"
)

var flagLogPath string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the current terminal",
	Long: `Start a game sized to the current terminal.

Controls:
  Mouse        - Hold and drag to steer the paddle
  Left/Right   - Steer (also h/l, a/d)
  Space        - Grab or let go of the paddle
  P            - Pause
  ?            - Help
  Q/Ctrl+C     - Quit

The ball waits after every reset: press or click to launch it.

Difficulty options:
  easy   - Slower ball, faster paddle, wider dead zone
  normal - Config values
  hard   - Faster ball, slower paddle

Examples:
  breakoutish play
  breakoutish play --difficulty hard
  breakoutish play --config ./my-breakout.yaml --log ./breakout.log`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogPath, "log", "", "Write logs to this file (the terminal belongs to the game)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := log.New(io.Discard)
	if flagLogPath != "" {
		f, openErr := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return fmt.Errorf("cannot open log file: %w", openErr)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "breakoutish",
			Level:           log.DebugLevel,
		})
	}

	cols, rows := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cols, rows = w, h
	}

	store, err := storage.Open(flagDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open round ledger: %v\n", err)
		// Continue without a ledger - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	session, err := tui.NewSession(cfg, tui.SessionOptions{
		Player: currentUser(),
		Cols:   cols,
		Rows:   rows,
		Store:  store,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	summary, err := tui.Run(session, cols, cfg.Loop.FPS)
	if err != nil {
		return fmt.Errorf("error running game: %w", err)
	}

	fmt.Printf("Score %d  Lives %d  Steps %d  Best %d\n", summary.Score, summary.Lives, summary.Steps, summary.Best)
	return nil
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
