package breakout

import (
	"fmt"
)

// Level is the brick grid of the current round. The grid fills the top half
// of the playfield with square cells of two units.
type Level struct {
	Columns int
	Rows    int
	Bricks  []*Brick // Row-major
}

// NewLevel builds a full grid for a playfield of the given size.
// It fails if the playfield cannot hold at least one row and one column.
func NewLevel(width, height float64, brickSize int) (*Level, error) {
	if brickSize <= 0 {
		return nil, fmt.Errorf("%w: brick size must be positive, got %d", ErrInvalidPlayfield, brickSize)
	}

	columns := int(width) / brickSize
	rows := (int(height) / 2) / brickSize
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: %vx%v holds a %dx%d brick grid", ErrInvalidPlayfield, width, height, columns, rows)
	}

	return newGrid(columns, rows, brickSize), nil
}

// newGrid builds a full grid of visible bricks.
func newGrid(columns, rows, brickSize int) *Level {
	level := &Level{
		Columns: columns,
		Rows:    rows,
		Bricks:  make([]*Brick, 0, columns*rows),
	}
	for row := range rows {
		for col := range columns {
			level.Bricks = append(level.Bricks, NewBrick(row, col, brickSize))
		}
	}
	return level
}

// CountVisible returns the number of bricks still standing.
func (l *Level) CountVisible() int {
	count := 0
	for _, b := range l.Bricks {
		if b.Visible {
			count++
		}
	}
	return count
}

// Cleared reports whether every brick has been destroyed.
func (l *Level) Cleared() bool {
	for _, b := range l.Bricks {
		if b.Visible {
			return false
		}
	}
	return true
}
