// Package loop runs a breakout world on its own goroutine with a fixed
// simulation step and interpolated drawing.
package loop

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakoutish/internal/games/breakout"
)

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) {
		l.clock = c
	}
}

// WithLogger sets the logger for dropped frames and lifecycle events.
func WithLogger(logger *log.Logger) Option {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithFPS paces drawing to fps frames per second. Zero disables pacing.
func WithFPS(fps int) Option {
	return func(l *Loop) {
		if fps > 0 {
			l.frame = time.Second / time.Duration(fps)
		} else {
			l.frame = 0
		}
	}
}

// Loop steps a World by whole fixed increments of elapsed time and draws it
// onto a Surface once per iteration.
//
// Resume and Pause control the simulation goroutine and may be called from
// any goroutine. While the goroutine runs, the world belongs to it.
type Loop struct {
	world   *breakout.World
	surface Surface
	clock   Clock
	logger  *log.Logger
	step    time.Duration
	frame   time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool

	// Owned by whoever calls Tick.
	accumulator time.Duration
	last        time.Time
	started     bool

	steps   atomic.Uint64
	frames  atomic.Uint64
	skipped atomic.Uint64
}

// New creates a paused loop for world drawing onto surface.
func New(world *breakout.World, surface Surface, opts ...Option) *Loop {
	l := &Loop{
		world:   world,
		surface: surface,
		clock:   SystemClock{},
		logger:  log.New(io.Discard),
		step:    world.Step(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resume starts the simulation goroutine with fresh timing state.
// It does nothing if the loop is already running or has been stopped.
func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.resumeLocked()
}

func (l *Loop) resumeLocked() {
	if l.cancel != nil || l.stopped {
		return
	}

	l.accumulator = 0
	l.started = false

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
	l.logger.Debug("simulation resumed")
}

// Pause stops the simulation goroutine and waits for it to exit. The
// iteration in progress completes first. It does nothing if the loop is not
// running.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pauseLocked()
}

// Toggle pauses a running loop or resumes a paused one, as one step with
// respect to Stop.
func (l *Loop) Toggle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.pauseLocked()
		return
	}
	l.resumeLocked()
}

// Stop pauses the loop for good: later calls to Resume and Toggle do
// nothing.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.pauseLocked()
	l.stopped = true
}

func (l *Loop) pauseLocked() {
	if l.cancel == nil {
		return
	}

	l.cancel()
	<-l.done
	l.cancel = nil
	l.done = nil
	l.logger.Debug("simulation paused", "steps", l.steps.Load())
}

// Running reports whether the simulation goroutine is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

func (l *Loop) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	next := l.clock.Now()
	for {
		if ctx.Err() != nil {
			return
		}
		l.Tick()

		if l.frame <= 0 {
			continue
		}
		next = next.Add(l.frame)
		if wait := next.Sub(l.clock.Now()); wait > 0 {
			l.clock.Sleep(wait)
		} else {
			next = l.clock.Now()
		}
	}
}

// Tick runs one loop iteration: measure elapsed time, poll input, run every
// whole step that fits in the accumulator and draw with the remainder as
// alpha. It must not be called while the loop is running.
func (l *Loop) Tick() {
	now := l.clock.Now()
	var elapsed time.Duration
	if l.started {
		elapsed = max(now.Sub(l.last), 0)
	}
	l.last = now
	l.started = true

	wasPaused := l.world.Paused()
	l.world.Poll()
	if !wasPaused && !l.world.Paused() {
		l.accumulator += elapsed
	}

	for l.accumulator >= l.step {
		l.world.Update(l.step.Seconds())
		l.accumulator -= l.step
		l.steps.Add(1)

		if l.world.Paused() {
			l.accumulator = 0
			break
		}
	}

	l.draw(l.Alpha())
}

// Alpha returns the fraction of a step waiting in the accumulator.
func (l *Loop) Alpha() float64 {
	if l.step <= 0 {
		return 0
	}
	return float64(l.accumulator) / float64(l.step)
}

func (l *Loop) draw(alpha float64) {
	canvas, ok := l.surface.Lock()
	if !ok {
		l.skipped.Add(1)
		return
	}
	defer l.surface.UnlockAndPost(canvas)
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("paint panicked", "panic", r)
		}
	}()

	if err := canvas.Paint(l.world.Draw(alpha)); err != nil {
		l.logger.Warn("dropped frame", "error", err)
		return
	}
	l.frames.Add(1)
}

// Steps returns how many fixed steps the loop has run.
func (l *Loop) Steps() uint64 { return l.steps.Load() }

// Frames returns how many frames were painted successfully.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Skipped returns how many draws were skipped because the surface was not
// ready.
func (l *Loop) Skipped() uint64 { return l.skipped.Load() }
