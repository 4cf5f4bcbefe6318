package breakout

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/breakoutish/internal/config"
	"github.com/vovakirdan/breakoutish/internal/core"
)

// newTestWorld creates a running world on the default 800x1280 playfield.
func newTestWorld(t *testing.T, opts ...Option) (*World, *core.Signal) {
	t.Helper()
	input := core.NewSignal()
	w, err := NewWorld(config.DefaultBreakoutConfig(), input, opts...)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	w.Resume()
	return w, input
}

func TestNewWorldLayout(t *testing.T) {
	w, err := NewWorld(config.DefaultBreakoutConfig(), nil)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	if !w.Paused() {
		t.Error("new world should wait for a press")
	}
	if w.Level().Columns != 25 || w.Level().Rows != 20 {
		t.Errorf("grid = %dx%d, expected 25x20", w.Level().Columns, w.Level().Rows)
	}
	if n := w.Level().CountVisible(); n != 500 {
		t.Errorf("visible bricks = %d, expected 500", n)
	}
	if w.Score() != 0 || w.Lives() != 3 {
		t.Errorf("score=%d lives=%d, expected 0 and 3", w.Score(), w.Lives())
	}

	paddle := w.Paddle().Bounds()
	if paddle.Left != 368 || paddle.Top != 1248 || paddle.Bottom != 1280 {
		t.Errorf("paddle = %+v, expected centered on the bottom edge", paddle)
	}
	ball := w.Ball().Bounds()
	if ball.Left != 400 || ball.Top != 1216 {
		t.Errorf("ball at (%v, %v), expected (400, 1216)", ball.Left, ball.Top)
	}
	if x, y := w.Ball().Direction(); x != 1 || y != -1 {
		t.Errorf("ball direction = (%d, %d), expected (1, -1)", x, y)
	}
}

func TestNewWorldInvalidPlayfield(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.BreakoutConfig)
	}{
		{"too narrow", func(c *config.BreakoutConfig) { c.Playfield.Width = 20 }},
		{"too short", func(c *config.BreakoutConfig) { c.Playfield.Height = 40 }},
		{"paddle wider than field", func(c *config.BreakoutConfig) {
			c.Playfield.Width, c.Playfield.Height = 32, 64
		}},
		{"no room under the bricks", func(c *config.BreakoutConfig) {
			c.Playfield.Width, c.Playfield.Height = 800, 120
		}},
		{"zero unit", func(c *config.BreakoutConfig) { c.Playfield.Unit = 0 }},
		{"zero tick rate", func(c *config.BreakoutConfig) { c.Loop.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultBreakoutConfig()
			tc.mutate(&cfg)

			w, err := NewWorld(cfg, nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !errors.Is(err, ErrInvalidPlayfield) {
				t.Errorf("error %v should wrap ErrInvalidPlayfield", err)
			}
			if w != nil {
				t.Error("no world should be returned on error")
			}
		})
	}
}

func TestNewWorldSmallestPlayfield(t *testing.T) {
	cfg := config.DefaultBreakoutConfig()
	cfg.Playfield.Width, cfg.Playfield.Height = 64, 128

	input := core.NewSignal()
	w, err := NewWorld(cfg, input)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	input.Press(0)
	for i := range 200 {
		w.Poll()
		w.Update(w.step)
		p := w.Paddle().Bounds()
		if p.Left < -tolerance || p.Right > 64+tolerance || p.Bottom > 128+tolerance {
			t.Fatalf("step %d: paddle %+v left the field", i, p)
		}
	}
}

func TestWorldPausedUntilPress(t *testing.T) {
	input := core.NewSignal()
	input.Press(0.5) // before construction, must not count
	w, err := NewWorld(config.DefaultBreakoutConfig(), input)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	before := w.Snapshot()
	w.Update(w.step)
	if w.Snapshot().Hash() != before.Hash() {
		t.Error("Update must not change a paused world")
	}
	if w.Poll() {
		t.Error("Poll without a new press should not resume")
	}

	input.Press(0.5)
	if !w.Poll() {
		t.Error("Poll after a press should resume")
	}
	if w.Paused() {
		t.Error("world should be running after the press")
	}
	if w.Poll() {
		t.Error("the same press must not be consumed twice")
	}

	// A press while running is consumed but changes nothing.
	input.Press(0.5)
	if w.Poll() || w.Paused() {
		t.Error("press on a running world should not report a resume")
	}
}

func TestWorldStepMovesBall(t *testing.T) {
	w, _ := newTestWorld(t)

	w.Update(w.step)

	r := w.Ball().Bounds()
	if !near(r.Left, 406.67, 0.01) || !near(r.Top, 1209.33, 0.01) {
		t.Errorf("ball at (%.2f, %.2f), expected (406.67, 1209.33)", r.Left, r.Top)
	}
	if w.Steps() != 1 {
		t.Errorf("Steps() = %d, expected 1", w.Steps())
	}
}

func TestWorldSingleBrickHit(t *testing.T) {
	w, _ := newTestWorld(t)

	// Row 19 spans y 609..639, column 0 spans x 1..31.
	w.Ball().MoveTo(10, 620)
	w.Update(0)

	if w.Score() != 10 {
		t.Errorf("Score() = %d, expected 10", w.Score())
	}
	if n := w.Level().CountVisible(); n != 499 {
		t.Errorf("visible bricks = %d, expected 499", n)
	}
	if w.Level().Bricks[19*25].Visible {
		t.Error("brick (19, 0) should be destroyed")
	}
	if _, y := w.Ball().Direction(); y != 1 {
		t.Errorf("vertical direction = %d, expected 1 after a hit", y)
	}
}

func TestWorldDoubleBrickHitCancelsBounce(t *testing.T) {
	w, _ := newTestWorld(t)

	// Straddles columns 0 and 1 of row 19.
	w.Ball().MoveTo(24, 620)
	w.Update(0)

	if w.Score() != 20 {
		t.Errorf("Score() = %d, expected 20", w.Score())
	}
	if n := w.Level().CountVisible(); n != 498 {
		t.Errorf("visible bricks = %d, expected 498", n)
	}
	if _, y := w.Ball().Direction(); y != -1 {
		t.Errorf("two hits should flip twice, vertical direction = %d", y)
	}
}

func TestWorldPaddlePush(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		movement Movement
		dirX     int
	}{
		{"paddle moving with the ball", 0.9, MoveRight, -1},
		{"paddle moving against the ball", 0.1, MoveLeft, 1},
		{"paddle inside dead zone", 0.51, MoveNone, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, input := newTestWorld(t)
			input.Press(tc.target)

			w.Ball().SetDirection(1, 1)
			w.Ball().MoveTo(380, 1240)
			w.Update(0)

			if w.Paddle().Movement != tc.movement {
				t.Errorf("movement = %v, expected %v", w.Paddle().Movement, tc.movement)
			}
			x, y := w.Ball().Direction()
			if x != tc.dirX {
				t.Errorf("horizontal direction = %d, expected %d", x, tc.dirX)
			}
			if y != -1 {
				t.Errorf("vertical direction = %d, expected -1", y)
			}
			if top := w.Ball().Bounds().Top; top != 1232 {
				t.Errorf("ball top = %v, expected 1232", top)
			}
		})
	}
}

func TestWorldWallsKeepBallInside(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
	}{
		{"left", -5, 700},
		{"right", 795, 700},
		{"top", 300, -5},
		{"top left", -4, -4},
		{"bottom right", 790, 1275},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newTestWorld(t)
			w.Ball().MoveTo(tc.x, tc.y)
			w.Update(0)

			if r := w.Ball().Bounds(); !r.Within(800, 1280) {
				t.Errorf("ball outside the playfield: %+v", r)
			}
		})
	}
}

func TestWorldLifeLost(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Ball().MoveTo(100, 1270)

	w.Update(0)

	if w.Lives() != 2 {
		t.Errorf("Lives() = %d, expected 2", w.Lives())
	}
	if w.Paused() {
		t.Error("losing a life with lives left should not reset")
	}
	if _, y := w.Ball().Direction(); y != 1 {
		// Started at -1, bottom bounce flips it.
		t.Errorf("vertical direction = %d, expected 1", y)
	}
}

func TestWorldGameOverResetsInSameUpdate(t *testing.T) {
	var events []ResetEvent
	w, _ := newTestWorld(t, WithResetHook(func(ev ResetEvent) {
		events = append(events, ev)
	}))

	w.lives = 1
	w.score = 50
	w.level.Bricks[0].Visible = false
	w.Ball().SetDirection(-1, 1)
	w.Ball().MoveTo(100, 1270)

	w.Update(0)

	if w.Score() != 0 || w.Lives() != 3 {
		t.Errorf("after game over: score=%d lives=%d, expected 0 and 3", w.Score(), w.Lives())
	}
	if n := w.Level().CountVisible(); n != 500 {
		t.Errorf("visible bricks = %d, expected a full grid", n)
	}
	if !w.Paused() {
		t.Error("world should pause after a reset")
	}
	if x, y := w.Ball().Direction(); x != 1 || y != -1 {
		t.Errorf("ball direction = (%d, %d), expected (1, -1)", x, y)
	}
	if r := w.Ball().Bounds(); r.Left != 400 || r.Top != 1216 {
		t.Errorf("ball at (%v, %v), expected start position", r.Left, r.Top)
	}

	if len(events) != 1 {
		t.Fatalf("reset hook called %d times, expected 1", len(events))
	}
	ev := events[0]
	if ev.Kind != ResetGameOver || ev.Score != 50 || ev.Lives != 0 || ev.Step != 1 {
		t.Errorf("event = %+v", ev)
	}
	if ev.Kind.String() != "game_over" {
		t.Errorf("Kind.String() = %q", ev.Kind.String())
	}
}

func TestWorldLevelClearKeepsScoreAndLives(t *testing.T) {
	var events []ResetEvent
	w, _ := newTestWorld(t, WithResetHook(func(ev ResetEvent) {
		events = append(events, ev)
	}))

	for _, b := range w.level.Bricks[1:] {
		b.Visible = false
	}
	w.lives = 2
	w.score = 90
	w.Ball().MoveTo(10, 10) // Overlaps brick (0, 0)

	w.Update(0)

	if w.Score() != 100 || w.Lives() != 2 {
		t.Errorf("after clear: score=%d lives=%d, expected 100 and 2", w.Score(), w.Lives())
	}
	if n := w.Level().CountVisible(); n != 500 {
		t.Errorf("visible bricks = %d, expected a full grid", n)
	}
	if !w.Paused() {
		t.Error("world should pause after a reset")
	}
	if len(events) != 1 || events[0].Kind != ResetLevelClear || events[0].Score != 100 {
		t.Errorf("events = %+v", events)
	}
	if events[0].Kind.String() != "level_clear" {
		t.Errorf("Kind.String() = %q", events[0].Kind.String())
	}
}

func TestWorldPaddleClamp(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		target   float64
		expected float64
	}{
		{"left edge", -10, 0, 0},
		{"right edge", 750, 1, 736},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, input := newTestWorld(t)
			input.Press(tc.target)
			w.Paddle().MoveToX(tc.x)

			w.Update(0)

			if got := w.Paddle().Bounds().Left; got != tc.expected {
				t.Errorf("paddle left = %v, expected %v", got, tc.expected)
			}
			if w.Paddle().Movement != MoveNone {
				t.Errorf("clamped paddle should stop, movement = %v", w.Paddle().Movement)
			}
		})
	}
}

func TestWorldInvariantsUnderRandomInput(t *testing.T) {
	resets := 0
	w, input := newTestWorld(t, WithResetHook(func(ResetEvent) { resets++ }))
	rng := rand.New(rand.NewSource(7)) //#nosec G404 -- deterministic test input

	for i := range 5000 {
		switch rng.Intn(10) {
		case 0:
			input.Press(rng.Float64())
		case 1:
			input.Release()
		case 2:
			input.Move(rng.Float64())
		}
		w.Poll()

		scoreBefore := w.Score()
		visibleBefore := w.Level().CountVisible()
		resetsBefore := resets

		w.Update(w.step)

		if r := w.Ball().Bounds(); !r.Within(800, 1280) {
			t.Fatalf("step %d: ball left the playfield: %+v", i, r)
		}
		if p := w.Paddle().Bounds(); p.Left < 0 || p.Right > 800 {
			t.Fatalf("step %d: paddle left the playfield: %+v", i, p)
		}
		if resets == resetsBefore {
			broken := visibleBefore - w.Level().CountVisible()
			if w.Score()-scoreBefore != broken*10 {
				t.Fatalf("step %d: score moved by %d for %d bricks", i, w.Score()-scoreBefore, broken)
			}
		}
		if w.Lives() < 1 {
			t.Fatalf("step %d: lives = %d", i, w.Lives())
		}
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() uint64 {
		w, input := newTestWorld(t)
		for i := range 3000 {
			switch {
			case i%97 == 0:
				input.Press(float64(i%10) / 10)
			case i%41 == 0:
				input.Release()
			}
			w.Poll()
			w.Update(w.step)
		}
		snap := w.Snapshot()
		return snap.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("identical runs diverged: %x != %x", a, b)
	}
}

func TestWorldDraw(t *testing.T) {
	w, _ := newTestWorld(t)
	before := w.Snapshot()

	frame := w.Draw(0.5)

	if w.Snapshot().Hash() != before.Hash() {
		t.Error("Draw must not change the world")
	}
	if len(frame.Commands) != 503 {
		t.Fatalf("frame has %d commands, expected 503", len(frame.Commands))
	}
	if frame.Commands[0].Kind != core.ColorBackground || frame.Commands[1].Kind != core.ColorPaddle ||
		frame.Commands[2].Kind != core.ColorBall {
		t.Error("frame should paint background, paddle, ball, then bricks")
	}
	if frame.Count(core.ColorBrick) != 500 {
		t.Errorf("brick commands = %d, expected 500", frame.Count(core.ColorBrick))
	}

	ball := frame.Commands[2].Rect
	offset := 200 * w.step * 0.5
	if !near(ball.Left, 400+offset, tolerance) || !near(ball.Top, 1216-offset, tolerance) {
		t.Errorf("interpolated ball at (%v, %v)", ball.Left, ball.Top)
	}

	w.level.Bricks[3].Visible = false
	if got := w.Draw(0).Count(core.ColorBrick); got != 499 {
		t.Errorf("destroyed bricks must not be drawn, got %d", got)
	}
}

func TestWorldDrawPausedIgnoresAlpha(t *testing.T) {
	w, err := NewWorld(config.DefaultBreakoutConfig(), nil)
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}

	frame := w.Draw(0.9)
	if !frame.Paused || frame.Alpha != 0 {
		t.Errorf("paused frame: Paused=%v Alpha=%v", frame.Paused, frame.Alpha)
	}
	if frame.Commands[2].Rect != w.Ball().Bounds() {
		t.Error("paused world should draw the simulated position")
	}
	if f := w.Draw(7); f.Alpha != 0 {
		t.Errorf("alpha should clamp, got %v", f.Alpha)
	}
}
