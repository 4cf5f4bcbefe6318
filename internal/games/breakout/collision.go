package breakout

import "github.com/vovakirdan/breakoutish/internal/core"

// Bounce is a set of corrections to apply to the ball after a contact.
// Resolvers compute it from entity state without mutating anything; the
// world applies it.
type Bounce struct {
	ReverseX bool
	ReverseY bool
	SnapX    bool
	SnapY    bool
	X, Y     float64 // Target left/top edge when the matching Snap flag is set
}

// Apply mutates the ball according to the bounce.
func (b Bounce) Apply(ball *Ball) {
	r := ball.Bounds()
	x, y := r.Left, r.Top
	if b.SnapX {
		x = b.X
	}
	if b.SnapY {
		y = b.Y
	}
	if b.SnapX || b.SnapY {
		ball.MoveTo(x, y)
	}
	if b.ReverseX {
		ball.ReverseX()
	}
	if b.ReverseY {
		ball.ReverseY()
	}
}

// IsZero reports whether the bounce changes nothing.
func (b Bounce) IsZero() bool {
	return b == Bounce{}
}

// BrickBounce resolves a ball against one brick. Invisible bricks never
// collide. A hit reverses the vertical direction.
func BrickBounce(ball core.Rect, brick *Brick) (Bounce, bool) {
	if !brick.Visible || !ball.Intersects(brick.Bounds()) {
		return Bounce{}, false
	}
	return Bounce{ReverseY: true}, true
}

// PaddleBounce resolves a ball against the paddle. On contact the ball is
// placed on top of the paddle and its vertical direction reverses. When the
// paddle is moving the same way the ball travels horizontally, the
// horizontal direction reverses too.
func PaddleBounce(ball core.Rect, dirX int, paddle core.Rect, movement Movement) (Bounce, bool) {
	if !ball.Intersects(paddle) {
		return Bounce{}, false
	}
	return Bounce{
		ReverseY: true,
		ReverseX: movement != MoveNone && int(movement) == dirX,
		SnapY:    true,
		Y:        paddle.Top - ball.Height(),
	}, true
}

// WallBounce keeps the ball inside a width x height playfield. dropped is
// true when the ball crossed the bottom edge.
func WallBounce(ball core.Rect, width, height float64) (b Bounce, dropped bool) {
	switch {
	case ball.Bottom > height:
		b.SnapY, b.Y, b.ReverseY = true, height-ball.Height(), true
		dropped = true
	case ball.Top < 0:
		b.SnapY, b.Y, b.ReverseY = true, 0, true
	}

	switch {
	case ball.Left < 0:
		b.SnapX, b.X, b.ReverseX = true, 0, true
	case ball.Right > width:
		b.SnapX, b.X, b.ReverseX = true, width-ball.Width(), true
	}
	return b, dropped
}

// PaddleClamp returns the left edge that keeps the paddle on screen and
// whether a correction was needed.
func PaddleClamp(paddle core.Rect, width float64) (x float64, clamped bool) {
	switch {
	case paddle.Left < 0:
		return 0, true
	case paddle.Right > width:
		return width - paddle.Width(), true
	}
	return paddle.Left, false
}

// Steer derives the paddle movement from the pointer target and the paddle
// center, both as fractions of the screen width. Inside the dead zone the
// paddle stays put.
func Steer(target, center, deadZone float64, active bool) Movement {
	switch {
	case !active:
		return MoveNone
	case target-deadZone > center:
		return MoveRight
	case target+deadZone < center:
		return MoveLeft
	}
	return MoveNone
}
