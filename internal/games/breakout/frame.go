package breakout

import "github.com/vovakirdan/breakoutish/internal/core"

// DrawCommand asks the renderer to fill a rectangle with a color category.
type DrawCommand struct {
	Rect core.Rect
	Kind core.Color
}

// Frame is everything the renderer needs for one picture: draw commands in
// painting order plus HUD values.
type Frame struct {
	Width    float64
	Height   float64
	Commands []DrawCommand

	Score  int
	Lives  int
	Target float64 // Pointer ratio, shown as the control axis
	Paused bool
	Alpha  float64
}

// Draw produces the frame for the current state, interpolated by alpha, the
// fraction of a step elapsed since the last Update. It does not change the
// world. A paused world is drawn as-is.
func (w *World) Draw(alpha float64) Frame {
	alpha = core.ClampF(alpha, 0, 1)
	if w.paused {
		alpha = 0
	}

	target, _ := w.input.Read()
	frame := Frame{
		Width:    w.width,
		Height:   w.height,
		Commands: make([]DrawCommand, 0, 3+len(w.level.Bricks)),
		Score:    w.score,
		Lives:    w.lives,
		Target:   target,
		Paused:   w.paused,
		Alpha:    alpha,
	}

	frame.add(core.NewRect(0, 0, w.width, w.height), core.ColorBackground)
	frame.addEntity(w.paddle, w.step, alpha)
	frame.addEntity(w.ball, w.step, alpha)
	for _, brick := range w.level.Bricks {
		if brick.Visible {
			frame.addEntity(brick, w.step, alpha)
		}
	}
	return frame
}

func (f *Frame) add(r core.Rect, kind core.Color) {
	f.Commands = append(f.Commands, DrawCommand{Rect: r, Kind: kind})
}

func (f *Frame) addEntity(e Entity, dt, alpha float64) {
	f.add(e.Draw(dt, alpha), e.Kind())
}

// Count returns how many commands of the given kind the frame holds.
func (f Frame) Count(kind core.Color) int {
	n := 0
	for _, c := range f.Commands {
		if c.Kind == kind {
			n++
		}
	}
	return n
}
