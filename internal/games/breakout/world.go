package breakout

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/core"
)

// ErrInvalidPlayfield is returned when the configuration cannot produce a
// playable field.
var ErrInvalidPlayfield = errors.New("breakout: invalid playfield")

// ResetKind tells why the playfield was reset.
type ResetKind int

const (
	ResetGameOver   ResetKind = iota // Lives ran out; score and lives restart
	ResetLevelClear                  // Every brick destroyed; score and lives carry over
)

// String returns the ledger name of the reset kind.
func (k ResetKind) String() string {
	switch k {
	case ResetGameOver:
		return "game_over"
	case ResetLevelClear:
		return "level_clear"
	default:
		return "unknown"
	}
}

// ResetEvent describes a reset that just happened. Score and Lives are the
// values at the moment the reset was triggered.
type ResetEvent struct {
	Kind  ResetKind
	Score int
	Lives int
	Step  uint64
}

// Option configures a World.
type Option func(*World)

// WithResetHook registers a callback invoked after every reset, on the
// goroutine that runs the simulation.
func WithResetHook(fn func(ResetEvent)) Option {
	return func(w *World) {
		w.onReset = fn
	}
}

// World owns every entity plus score and lives, and advances the simulation
// one fixed step at a time. It is not safe for concurrent use: a single
// goroutine steps and draws it. Input arrives through the shared Signal.
type World struct {
	cfg    config.BreakoutConfig
	width  float64
	height float64
	step   float64 // Fixed step in seconds, used to extrapolate drawing

	input     *core.Signal
	lastPress uint64

	paddle *Paddle
	ball   *Ball
	level  *Level

	score  int
	lives  int
	paused bool
	steps  uint64

	onReset func(ResetEvent)
}

// NewWorld creates a world for the configured playfield. The world starts
// paused and resumes on the next press of input. A nil input gets a fresh
// signal.
func NewWorld(cfg config.BreakoutConfig, input *core.Signal, opts ...Option) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlayfield, err)
	}
	if err := checkFit(cfg.Playfield.Width, cfg.Playfield.Height, cfg.Playfield.Unit); err != nil {
		return nil, err
	}
	level, err := NewLevel(cfg.Playfield.Width, cfg.Playfield.Height, cfg.BrickSize())
	if err != nil {
		return nil, err
	}

	if input == nil {
		input = core.NewSignal()
	}

	w := &World{
		cfg:       cfg,
		width:     cfg.Playfield.Width,
		height:    cfg.Playfield.Height,
		step:      cfg.Step().Seconds(),
		input:     input,
		lastPress: input.Presses(),
		paddle:    NewPaddle(cfg.Playfield.Unit, cfg.Paddle.Speed),
		ball:      NewBall(float64(cfg.Playfield.Unit), cfg.Ball.Speed),
		level:     level,
		lives:     cfg.Gameplay.Lives,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.reset()
	return w, nil
}

// checkFit rejects playfields the paddle and the ball's starting row do not
// fit in. The paddle is 4 units wide and 2 tall; the ball starts 2 units
// above it and must start below the brick grid, which takes the top half.
func checkFit(width, height float64, unit int) error {
	u := float64(unit)
	switch {
	case width < 4*u:
		return fmt.Errorf("%w: width %v is narrower than the paddle (%v)", ErrInvalidPlayfield, width, 4*u)
	case height < 8*u:
		return fmt.Errorf("%w: height %v leaves no room below the bricks (need %v)", ErrInvalidPlayfield, height, 8*u)
	}
	return nil
}

// reset rebuilds the brick grid and puts the ball and paddle back at their
// starting positions. Score and lives restart only when lives ran out.
// The world is left paused.
func (w *World) reset() {
	w.paused = true

	w.level = newGrid(w.level.Columns, w.level.Rows, w.cfg.BrickSize())

	w.paddle.Movement = MoveNone
	w.paddle.MoveTo(w.width/2-w.paddle.Width()/2, w.height-w.paddle.Height())

	w.ball.SetDirection(1, -1)
	w.ball.MoveTo(w.width/2, w.height-w.paddle.Height()-w.ball.Size()*2)

	if w.lives <= 0 {
		w.score = 0
		w.lives = w.cfg.Gameplay.Lives
	}
}

// Poll consumes pending presses from the input signal. A new press resumes a
// paused world. It returns true if the world was resumed.
func (w *World) Poll() bool {
	presses := w.input.Presses()
	if presses == w.lastPress {
		return false
	}
	w.lastPress = presses
	if !w.paused {
		return false
	}
	w.paused = false
	return true
}

// Resume un-pauses the world without waiting for a press.
func (w *World) Resume() {
	w.lastPress = w.input.Presses()
	w.paused = false
}

// Update advances the simulation by dt seconds. It does nothing while the
// world is paused.
func (w *World) Update(dt float64) {
	if w.paused {
		return
	}
	w.steps++

	w.paddle.Movement = Steer(w.targetRatio())
	w.paddle.Update(dt)
	w.ball.Update(dt)

	// Every brick the ball overlaps breaks and flips the ball, so two hits in
	// one step cancel out.
	for _, brick := range w.level.Bricks {
		bounce, hit := BrickBounce(w.ball.Bounds(), brick)
		if !hit {
			continue
		}
		brick.Visible = false
		bounce.Apply(w.ball)
		w.score += w.cfg.Gameplay.BrickPoints
	}

	dirX, _ := w.ball.Direction()
	if bounce, hit := PaddleBounce(w.ball.Bounds(), dirX, w.paddle.Bounds(), w.paddle.Movement); hit {
		bounce.Apply(w.ball)
	}

	bounce, dropped := WallBounce(w.ball.Bounds(), w.width, w.height)
	bounce.Apply(w.ball)
	if dropped {
		w.lives--
	}

	if x, clamped := PaddleClamp(w.paddle.Bounds(), w.width); clamped {
		w.paddle.MoveToX(x)
		w.paddle.Movement = MoveNone
	}

	if w.lives <= 0 {
		w.fireReset(ResetGameOver)
		return
	}
	if w.level.Cleared() {
		w.fireReset(ResetLevelClear)
	}
}

// targetRatio returns the Steer arguments for the current input.
func (w *World) targetRatio() (target, center, deadZone float64, active bool) {
	target, active = w.input.Read()
	center = w.paddle.Bounds().CenterX() / w.width
	return target, center, w.cfg.Paddle.DeadZone, active
}

func (w *World) fireReset(kind ResetKind) {
	ev := ResetEvent{
		Kind:  kind,
		Score: w.score,
		Lives: w.lives,
		Step:  w.steps,
	}
	w.reset()
	if w.onReset != nil {
		w.onReset(ev)
	}
}

// Paused reports whether the world is waiting for a press.
func (w *World) Paused() bool { return w.paused }

// Score returns the current score.
func (w *World) Score() int { return w.score }

// Lives returns the remaining lives.
func (w *World) Lives() int { return w.lives }

// Steps returns how many steps have been simulated.
func (w *World) Steps() uint64 { return w.steps }

// Ball returns the ball.
func (w *World) Ball() *Ball { return w.ball }

// Paddle returns the paddle.
func (w *World) Paddle() *Paddle { return w.paddle }

// Level returns the current brick grid.
func (w *World) Level() *Level { return w.level }

// Step returns the fixed simulation step.
func (w *World) Step() time.Duration { return w.cfg.Step() }

// Size returns the playfield dimensions in pixels.
func (w *World) Size() (width, height float64) { return w.width, w.height }
