// Package breakout implements the Breakout simulation: a paddle, a ball and
// a grid of destructible bricks advanced in fixed steps.
package breakout

import "github.com/vovakirdan/breakoutish/internal/core"

// Entity is the capability set shared by everything on the playfield.
// The set of implementations is closed: *Ball, *Paddle and *Brick.
type Entity interface {
	// Bounds returns the simulated position and size.
	Bounds() core.Rect

	// Update advances the entity by dt seconds.
	Update(dt float64)

	// Draw returns where the entity should be displayed when a fraction
	// alpha of a step of dt seconds has elapsed since the last Update.
	// It never mutates the entity.
	Draw(dt, alpha float64) core.Rect

	// Kind returns the color category used to render the entity.
	Kind() core.Color
}

var (
	_ Entity = (*Ball)(nil)
	_ Entity = (*Paddle)(nil)
	_ Entity = (*Brick)(nil)
)

// Movement is the horizontal intent of the paddle.
type Movement int

const (
	MoveLeft  Movement = -1
	MoveNone  Movement = 0
	MoveRight Movement = 1
)

// String returns a human-readable name for the movement.
func (m Movement) String() string {
	switch m {
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	default:
		return "none"
	}
}

// Ball is a square moving diagonally at a fixed speed. Each direction
// component is either -1 or +1.
type Ball struct {
	rect  core.Rect
	size  float64
	speed float64
	dirX  int
	dirY  int
}

// NewBall creates a ball of the given side at the origin, heading up-right.
func NewBall(size, speed float64) *Ball {
	return &Ball{
		rect:  core.NewRect(0, 0, size, size),
		size:  size,
		speed: speed,
		dirX:  1,
		dirY:  -1,
	}
}

// Bounds returns the simulated ball rectangle.
func (b *Ball) Bounds() core.Rect { return b.rect }

// Kind returns the ball color category.
func (b *Ball) Kind() core.Color { return core.ColorBall }

// Size returns the side of the ball.
func (b *Ball) Size() float64 { return b.size }

// Speed returns the per-axis speed in pixels per second.
func (b *Ball) Speed() float64 { return b.speed }

// Direction returns the current direction components.
func (b *Ball) Direction() (x, y int) { return b.dirX, b.dirY }

// SetDirection sets the direction components; zero values are ignored.
func (b *Ball) SetDirection(x, y int) {
	if x != 0 {
		b.dirX = sign(x)
	}
	if y != 0 {
		b.dirY = sign(y)
	}
}

// Update moves the ball by speed*dt along each axis.
func (b *Ball) Update(dt float64) {
	b.rect.Offset(b.velocityX()*dt, b.velocityY()*dt)
}

// Draw returns the ball extrapolated by alpha of a dt step.
func (b *Ball) Draw(dt, alpha float64) core.Rect {
	return b.rect.Offsetted(b.velocityX()*dt*alpha, b.velocityY()*dt*alpha)
}

// ReverseX flips the horizontal direction.
func (b *Ball) ReverseX() { b.dirX = -b.dirX }

// ReverseY flips the vertical direction.
func (b *Ball) ReverseY() { b.dirY = -b.dirY }

// MoveTo places the ball's top-left corner at (x, y).
func (b *Ball) MoveTo(x, y float64) { b.rect.OffsetTo(x, y) }

func (b *Ball) velocityX() float64 { return float64(b.dirX) * b.speed }
func (b *Ball) velocityY() float64 { return float64(b.dirY) * b.speed }

// Paddle moves horizontally along the bottom of the playfield.
type Paddle struct {
	rect     core.Rect
	speed    float64
	Movement Movement
}

// NewPaddle creates a paddle sized from the base unit (4 units wide,
// 2 units tall) at the origin.
func NewPaddle(unit int, speed float64) *Paddle {
	u := float64(unit)
	return &Paddle{
		rect:  core.NewRect(0, 0, u*4, u*2),
		speed: speed,
	}
}

// Bounds returns the simulated paddle rectangle.
func (p *Paddle) Bounds() core.Rect { return p.rect }

// Kind returns the paddle color category.
func (p *Paddle) Kind() core.Color { return core.ColorPaddle }

// Width returns the paddle width in pixels.
func (p *Paddle) Width() float64 { return p.rect.Width() }

// Height returns the paddle height in pixels.
func (p *Paddle) Height() float64 { return p.rect.Height() }

// Update moves the paddle by speed*dt in the direction of Movement.
func (p *Paddle) Update(dt float64) {
	if p.Movement == MoveNone {
		return
	}
	p.rect.Offset(float64(p.Movement)*p.speed*dt, 0)
}

// Draw returns the paddle extrapolated by alpha of a dt step.
func (p *Paddle) Draw(dt, alpha float64) core.Rect {
	return p.rect.Offsetted(float64(p.Movement)*p.speed*dt*alpha, 0)
}

// MoveTo places the paddle's top-left corner at (x, y).
func (p *Paddle) MoveTo(x, y float64) { p.rect.OffsetTo(x, y) }

// MoveToX places the paddle's left edge at x.
func (p *Paddle) MoveToX(x float64) { p.rect.OffsetToX(x) }

// brickPadding insets each brick inside its grid cell.
const brickPadding = 1

// Brick is a static cell of the brick grid.
type Brick struct {
	rect    core.Rect
	Row     int
	Column  int
	Visible bool
}

// NewBrick creates a visible brick for the grid cell (row, column) with
// cells of the given side.
func NewBrick(row, column, size int) *Brick {
	s := float64(size)
	x := float64(column) * s
	y := float64(row) * s
	return &Brick{
		rect: core.Rect{
			Left:   x + brickPadding,
			Top:    y + brickPadding,
			Right:  x + s - brickPadding,
			Bottom: y + s - brickPadding,
		},
		Row:     row,
		Column:  column,
		Visible: true,
	}
}

// Bounds returns the brick rectangle.
func (b *Brick) Bounds() core.Rect { return b.rect }

// Kind returns the brick color category.
func (b *Brick) Kind() core.Color { return core.ColorBrick }

// Update is a no-op: bricks never move.
func (b *Brick) Update(float64) {}

// Draw returns the brick rectangle unchanged.
func (b *Brick) Draw(float64, float64) core.Rect { return b.rect }

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
