package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/core"
	"github.com/vovakirdan/breakoutish/internal/games/breakout"
	"github.com/vovakirdan/breakoutish/internal/loop"
	"github.com/vovakirdan/breakoutish/internal/storage"
)

// helpRows is the number of rows below the HUD used by the help footer.
const helpRows = 1

// SessionOptions configures a Session.
type SessionOptions struct {
	Player string
	Cols   int // Terminal width in cells
	Rows   int // Terminal height in cells, HUD and help included
	Store  *storage.Store
	Logger *log.Logger
	Clock  loop.Clock
}

// Summary describes a session after it stopped.
type Summary struct {
	Player string
	Score  int
	Lives  int
	Steps  uint64
	Best   int
}

// Session is one player's game: input signal, world, loop and surface.
type Session struct {
	player  string
	cfg     config.BreakoutConfig
	input   *core.Signal
	world   *breakout.World
	loop    *loop.Loop
	surface *Surface
	store   *storage.Store
	logger  *log.Logger
	best    int
}

// PlayfieldSize returns the playfield in pixels for a terminal of
// cols x rows cells.
func PlayfieldSize(cfg config.BreakoutConfig, cols, rows int) (width, height float64) {
	return float64(cols) * cfg.Playfield.CellWidth,
		float64(rows-hudRows-helpRows) * cfg.Playfield.CellHeight
}

// NewSession builds a session whose playfield fills the terminal.
func NewSession(cfg config.BreakoutConfig, opts SessionOptions) (*Session, error) {
	cfg.Playfield.Width, cfg.Playfield.Height = PlayfieldSize(cfg, opts.Cols, opts.Rows)

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		player:  opts.Player,
		cfg:     cfg,
		input:   core.NewSignal(),
		surface: NewSurface(opts.Cols, opts.Rows-helpRows),
		store:   opts.Store,
		logger:  logger.With("player", opts.Player),
	}

	if s.store != nil {
		best, err := s.store.HighScore()
		if err != nil {
			s.logger.Warn("could not read high score", "error", err)
		}
		s.best = best
	}
	s.surface.SetBest(s.best)

	world, err := breakout.NewWorld(cfg, s.input, breakout.WithResetHook(s.onReset))
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start session for %dx%d terminal: %w", opts.Cols, opts.Rows, err)
	}
	s.world = world

	loopOpts := []loop.Option{
		loop.WithLogger(s.logger),
		loop.WithFPS(cfg.Loop.FPS),
	}
	if opts.Clock != nil {
		loopOpts = append(loopOpts, loop.WithClock(opts.Clock))
	}
	s.loop = loop.New(world, s.surface, loopOpts...)

	return s, nil
}

// onReset runs on the simulation goroutine.
func (s *Session) onReset(ev breakout.ResetEvent) {
	s.logger.Info("round over", "kind", ev.Kind, "score", ev.Score, "step", ev.Step)

	if ev.Score > s.best {
		s.best = ev.Score
		s.surface.SetBest(s.best)
	}
	if s.store == nil {
		return
	}
	if _, err := s.store.RecordReset(s.player, ev); err != nil {
		s.logger.Warn("could not record round", "error", err)
	}
}

// Start runs the simulation goroutine.
func (s *Session) Start() { s.loop.Resume() }

// Stop ends the simulation goroutine and reports the session state.
// A stopped session cannot be started again.
func (s *Session) Stop() Summary {
	s.loop.Stop()
	return Summary{
		Player: s.player,
		Score:  s.world.Score(),
		Lives:  s.world.Lives(),
		Steps:  s.world.Steps(),
		Best:   max(s.best, s.world.Score()),
	}
}

// TogglePause pauses a running session or resumes a paused one.
func (s *Session) TogglePause() { s.loop.Toggle() }

// Running reports whether the simulation goroutine is active.
func (s *Session) Running() bool { return s.loop.Running() }

// Input returns the session's input signal.
func (s *Session) Input() *core.Signal { return s.input }

// Surface returns the session's terminal surface.
func (s *Session) Surface() *Surface { return s.surface }

// Resize adapts the picture to a new terminal size.
func (s *Session) Resize(cols, rows int) {
	s.surface.Resize(cols, rows-helpRows)
}
