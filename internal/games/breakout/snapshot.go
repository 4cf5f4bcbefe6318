package breakout

import "math"

// Snapshot contains the complete simulation state for determinism checks
// and headless reports. Uses primitive types only for stable serialization.
type Snapshot struct {
	Steps  uint64
	Score  int
	Lives  int
	Paused bool

	BallX, BallY float64
	BallDirX     int
	BallDirY     int

	PaddleX  float64
	Movement int

	// Brick visibility, row-major: 1 = visible, 0 = destroyed
	BrickData       []int
	BricksRemaining int
}

// Snapshot returns the current world state as a Snapshot.
func (w *World) Snapshot() Snapshot {
	bricks := make([]int, len(w.level.Bricks))
	for i, b := range w.level.Bricks {
		if b.Visible {
			bricks[i] = 1
		}
	}

	ball := w.ball.Bounds()
	dirX, dirY := w.ball.Direction()

	return Snapshot{
		Steps:  w.steps,
		Score:  w.score,
		Lives:  w.lives,
		Paused: w.paused,

		BallX:    ball.Left,
		BallY:    ball.Top,
		BallDirX: dirX,
		BallDirY: dirY,

		PaddleX:  w.paddle.Bounds().Left,
		Movement: int(w.paddle.Movement),

		BrickData:       bricks,
		BricksRemaining: w.level.CountVisible(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap Snapshot) Hash() uint64 {
	h := snap.Steps
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallDirX) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallDirY) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Movement) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.BallX)
	h = h*31 + math.Float64bits(snap.BallY)
	h = h*31 + math.Float64bits(snap.PaddleX)
	if snap.Paused {
		h = h*31 + 1
	}

	for _, v := range snap.BrickData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
