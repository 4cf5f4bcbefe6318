package loop

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/core"
	"github.com/vovakirdan/breakoutish/internal/games/breakout"
)

const step = 20 * time.Millisecond

func newTestWorld(t *testing.T, mutate func(*config.BreakoutConfig)) (*breakout.World, *core.Signal) {
	t.Helper()
	cfg := config.DefaultBreakoutConfig()
	cfg.Loop.TickRate = 50
	if mutate != nil {
		mutate(&cfg)
	}
	input := core.NewSignal()
	w, err := breakout.NewWorld(cfg, input)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	return w, input
}

func newTestLoop(t *testing.T, surface Surface, opts ...Option) (*Loop, *breakout.World, *FakeClock) {
	t.Helper()
	w, _ := newTestWorld(t, nil)
	w.Resume()
	clock := NewFakeClock(time.Unix(0, 0))
	opts = append([]Option{WithClock(clock)}, opts...)
	return New(w, surface, opts...), w, clock
}

func TestTickRunsWholeSteps(t *testing.T) {
	rec := NewRecorder()
	l, w, clock := newTestLoop(t, rec)

	l.Tick()
	if l.Steps() != 0 {
		t.Fatalf("first tick should not simulate, ran %d steps", l.Steps())
	}

	clock.Advance(2*step + step/2)
	l.Tick()
	if l.Steps() != 2 || w.Steps() != 2 {
		t.Errorf("steps = %d, expected 2", l.Steps())
	}
	if math.Abs(l.Alpha()-0.5) > 1e-9 {
		t.Errorf("Alpha() = %v, expected 0.5", l.Alpha())
	}
	frame, ok := rec.Last()
	if !ok {
		t.Fatal("expected a posted frame")
	}
	if math.Abs(frame.Alpha-0.5) > 1e-9 {
		t.Errorf("frame alpha = %v, expected 0.5", frame.Alpha)
	}

	clock.Advance(step / 2)
	l.Tick()
	if l.Steps() != 3 {
		t.Errorf("steps = %d, expected 3 once the remainder completes a step", l.Steps())
	}
	if l.Alpha() != 0 {
		t.Errorf("Alpha() = %v, expected 0", l.Alpha())
	}
	if rec.Posts() != 3 || l.Frames() != 3 {
		t.Errorf("posts=%d frames=%d, expected 3", rec.Posts(), l.Frames())
	}
}

func TestTickDoesNotAccumulateWhilePaused(t *testing.T) {
	w, input := newTestWorld(t, nil)
	clock := NewFakeClock(time.Unix(0, 0))
	l := New(w, NewRecorder(), WithClock(clock))

	l.Tick()
	clock.Advance(time.Second)
	l.Tick()
	if l.Steps() != 0 || l.Alpha() != 0 {
		t.Errorf("paused world: steps=%d alpha=%v", l.Steps(), l.Alpha())
	}

	// The press resumes the world, but time spent paused is not simulated.
	input.Press(0.5)
	clock.Advance(time.Second)
	l.Tick()
	if w.Paused() {
		t.Fatal("press should resume the world")
	}
	if l.Steps() != 0 {
		t.Errorf("steps = %d, expected none for the paused interval", l.Steps())
	}

	clock.Advance(2 * step)
	l.Tick()
	if l.Steps() != 2 {
		t.Errorf("steps = %d, expected 2", l.Steps())
	}
}

func TestTickDiscardsStepsAfterReset(t *testing.T) {
	w, _ := newTestWorld(t, func(c *config.BreakoutConfig) { c.Gameplay.Lives = 1 })
	w.Resume()
	w.Ball().MoveTo(100, 1270)

	clock := NewFakeClock(time.Unix(0, 0))
	rec := NewRecorder()
	l := New(w, rec, WithClock(clock))

	l.Tick()
	clock.Advance(5*step + step/4)
	l.Tick()

	if l.Steps() != 1 {
		t.Errorf("steps = %d, expected the drain to stop at the reset", l.Steps())
	}
	if !w.Paused() {
		t.Error("world should be paused after game over")
	}
	if l.Alpha() != 0 {
		t.Errorf("accumulator should be zeroed, alpha = %v", l.Alpha())
	}
	if frame, _ := rec.Last(); !frame.Paused || frame.Lives != 1 {
		t.Errorf("frame after reset: paused=%v lives=%d", frame.Paused, frame.Lives)
	}
}

func TestTickSkipsDrawWhenSurfaceNotReady(t *testing.T) {
	rec := NewRecorder()
	rec.SetReady(false)
	l, _, clock := newTestLoop(t, rec)

	l.Tick()
	clock.Advance(3 * step)
	l.Tick()

	if rec.Posts() != 0 {
		t.Errorf("posts = %d, expected none", rec.Posts())
	}
	if l.Skipped() != 2 {
		t.Errorf("Skipped() = %d, expected 2", l.Skipped())
	}
	if l.Steps() != 3 {
		t.Errorf("simulation should continue without a surface, steps = %d", l.Steps())
	}

	rec.SetReady(true)
	l.Tick()
	if rec.Posts() != 1 {
		t.Errorf("posts = %d after the surface became ready", rec.Posts())
	}
}

// faultySurface hands out canvases that fail or panic.
type faultySurface struct {
	canvas   Canvas
	locks    int
	releases int
}

func (s *faultySurface) Lock() (Canvas, bool) {
	s.locks++
	return s.canvas, true
}

func (s *faultySurface) UnlockAndPost(Canvas) {
	s.releases++
}

type errCanvas struct{}

func (errCanvas) Paint(breakout.Frame) error { return errors.New("surface lost") }

type panicCanvas struct{}

func (panicCanvas) Paint(breakout.Frame) error { panic("boom") }

func TestDrawReleasesSurfaceOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		canvas  Canvas
		message string
	}{
		{"paint error", errCanvas{}, "dropped frame"},
		{"paint panic", panicCanvas{}, "paint panicked"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			surface := &faultySurface{canvas: tc.canvas}
			l, _, _ := newTestLoop(t, surface, WithLogger(log.New(&buf)))

			l.Tick()
			l.Tick()

			if surface.locks != 2 || surface.releases != 2 {
				t.Errorf("locks=%d releases=%d, expected 2 each", surface.locks, surface.releases)
			}
			if l.Frames() != 0 {
				t.Errorf("Frames() = %d, failed paints must not count", l.Frames())
			}
			if !strings.Contains(buf.String(), tc.message) {
				t.Errorf("log %q should mention %q", buf.String(), tc.message)
			}
		})
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestResumePause(t *testing.T) {
	rec := NewRecorder()
	l, _, _ := newTestLoop(t, rec)

	l.Pause() // not running: no-op
	if l.Running() {
		t.Fatal("new loop should be stopped")
	}

	l.Resume()
	l.Resume() // already running: no-op
	if !l.Running() {
		t.Fatal("loop should be running after Resume")
	}
	waitFor(t, "frames", func() bool { return rec.Posts() > 2 })

	l.Pause()
	if l.Running() {
		t.Error("loop should be stopped after Pause")
	}
	if rec.Locked() {
		t.Error("Pause must not leave the surface locked")
	}

	posts := rec.Posts()
	time.Sleep(10 * time.Millisecond)
	if rec.Posts() != posts {
		t.Error("no frames should be drawn after Pause returns")
	}
}

func TestStopIsFinal(t *testing.T) {
	rec := NewRecorder()
	l, _, _ := newTestLoop(t, rec)

	l.Toggle()
	if !l.Running() {
		t.Fatal("Toggle should resume a paused loop")
	}
	l.Toggle()
	if l.Running() {
		t.Fatal("Toggle should pause a running loop")
	}

	l.Resume()
	l.Stop()
	if l.Running() {
		t.Fatal("loop should be stopped after Stop")
	}

	l.Resume()
	l.Toggle()
	if l.Running() {
		t.Error("Resume and Toggle must not restart a stopped loop")
	}
	l.Stop() // already stopped: no-op
}

func TestStopRacesToggle(t *testing.T) {
	for range 20 {
		rec := NewRecorder()
		l, _, _ := newTestLoop(t, rec)
		l.Resume()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for range 10 {
				l.Toggle()
			}
		}()
		go func() {
			defer wg.Done()
			l.Stop()
		}()
		wg.Wait()

		if l.Running() {
			t.Fatal("a Toggle racing Stop restarted the loop")
		}
	}
}

func TestResumeResetsTiming(t *testing.T) {
	rec := NewRecorder()
	l, _, clock := newTestLoop(t, rec)

	l.Resume()
	waitFor(t, "first frame", func() bool { return rec.Posts() > 0 })
	l.Pause()
	steps := l.Steps()

	// Time spent paused must not be replayed.
	clock.Advance(time.Second)
	posts := rec.Posts()
	l.Resume()
	waitFor(t, "frames after resume", func() bool { return rec.Posts() > posts+2 })
	l.Pause()

	if l.Steps() != steps {
		t.Errorf("steps went from %d to %d across a pause", steps, l.Steps())
	}
}

func TestPacedLoopAdvancesThroughClock(t *testing.T) {
	rec := NewRecorder()
	l, w, clock := newTestLoop(t, rec, WithFPS(100))
	start := clock.Now()

	l.Resume()
	waitFor(t, "steps", func() bool { return l.Steps() >= 10 })
	l.Pause()

	if clock.Now().Sub(start) < 10*step {
		t.Errorf("virtual time advanced %v, expected at least %v", clock.Now().Sub(start), 10*step)
	}
	if w.Steps() != l.Steps() {
		t.Errorf("world steps %d != loop steps %d", w.Steps(), l.Steps())
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewFakeClock(start)

	c.Advance(time.Second)
	c.Advance(-time.Hour)
	c.Sleep(500 * time.Millisecond)

	if got := c.Now().Sub(start); got != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, expected 1.5s", got)
	}
}
