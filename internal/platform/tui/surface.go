package tui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/vovakirdan/breakoutish/internal/core"
	"github.com/vovakirdan/breakoutish/internal/games/breakout"
	"github.com/vovakirdan/breakoutish/internal/loop"
)

// hudRows is the number of screen rows below the playfield.
const hudRows = 1

// axisWidth is the width of the control axis gauge in the HUD.
const axisWidth = 21

// errEmptyFrame is returned by Paint for frames without a playfield.
var errEmptyFrame = errors.New("tui: frame has no playfield")

// runes per drawn element.
var kindRunes = map[core.Color]rune{
	core.ColorPaddle: '█',
	core.ColorBall:   '●',
	core.ColorBrick:  '▓',
}

// Surface is a loop.Surface that rasterizes frames into a cell screen and
// keeps the latest rendered picture for the Bubble Tea view.
// It is safe for concurrent use.
type Surface struct {
	mu       sync.Mutex
	screen   *core.Screen
	locked   bool
	pending  breakout.Frame
	painted  bool
	rendered string
	best     int
	posts    int
}

var _ loop.Surface = (*Surface)(nil)

// NewSurface creates a surface for a terminal area of cols x rows cells,
// HUD included.
func NewSurface(cols, rows int) *Surface {
	return &Surface{screen: core.NewScreen(cols, rows)}
}

// Resize changes the terminal area. The next posted frame is scaled to it.
func (s *Surface) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Resize(cols, rows)
}

// SetBest sets the best score shown in the HUD.
func (s *Surface) SetBest(best int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.best = best
}

// Lock hands out a canvas unless the screen has no room for a playfield or
// a canvas is already out.
func (s *Surface) Lock() (loop.Canvas, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked || s.screen.Width() == 0 || s.screen.Height() <= hudRows {
		return nil, false
	}
	s.locked = true
	s.painted = false
	return canvas{s}, true
}

// UnlockAndPost releases the canvas and, if a frame was painted, renders it.
func (s *Surface) UnlockAndPost(loop.Canvas) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.locked {
		return
	}
	s.locked = false
	if !s.painted {
		return
	}

	s.rasterize(s.pending)
	s.rendered = RenderScreen(s.screen)
	s.posts++
}

// View returns the latest rendered picture, or an empty string before the
// first frame.
func (s *Surface) View() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

// Text returns the latest picture without styling.
func (s *Surface) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.String()
}

// Posts returns how many frames were rendered.
func (s *Surface) Posts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.posts
}

type canvas struct {
	s *Surface
}

func (c canvas) Paint(frame breakout.Frame) error {
	if frame.Width <= 0 || frame.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", errEmptyFrame, frame.Width, frame.Height)
	}
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	c.s.pending = frame
	c.s.painted = true
	return nil
}

// rasterize draws frame onto the screen. Callers hold mu.
func (s *Surface) rasterize(frame breakout.Frame) {
	s.screen.Clear()

	cols := s.screen.Width()
	rows := s.screen.Height() - hudRows
	sx := float64(cols) / frame.Width
	sy := float64(rows) / frame.Height

	for _, cmd := range frame.Commands {
		r, ok := kindRunes[cmd.Kind]
		if !ok {
			continue
		}
		x0, x1 := cellSpan(cmd.Rect.Left, cmd.Rect.Right, sx)
		y0, y1 := cellSpan(cmd.Rect.Top, cmd.Rect.Bottom, sy)
		s.screen.FillCells(x0, y0, min(x1, cols), min(y1, rows), r, cmd.Kind)
	}

	s.screen.DrawText(0, rows, hudLine(frame, s.best))
}

// cellSpan maps a pixel interval onto a half-open cell range of at least
// one cell. The far edge rounds down so neighbouring bricks keep a gap.
func cellSpan(lo, hi, scale float64) (int, int) {
	c0 := int(math.Floor(lo * scale))
	c1 := int(math.Floor(hi * scale))
	if c1 <= c0 {
		c1 = c0 + 1
	}
	return c0, c1
}

func hudLine(frame breakout.Frame, best int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score %d  Lives %d  Axis %s  Best %d", frame.Score, frame.Lives, axisGauge(frame.Target), best)
	if frame.Paused {
		sb.WriteString("  PAUSED: click or press space")
	}
	return sb.String()
}

// axisGauge draws the pointer ratio as a marker on a fixed-width bar.
func axisGauge(ratio float64) string {
	pos := int(math.Round(core.ClampF(ratio, 0, 1) * (axisWidth - 1)))
	return "[" + strings.Repeat("-", pos) + "|" + strings.Repeat("-", axisWidth-1-pos) + "]"
}
