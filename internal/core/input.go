package core

import (
	"math"
	"sync/atomic"
)

// Signal is the single-slot pointer input shared between the input actor
// (terminal, SSH session, autopilot) and the simulation goroutine.
//
// It carries the horizontal screen fraction most recently addressed by the
// player, whether the player is actively controlling, and a press counter the
// simulation uses to detect "new press" edges. Writers and the reader never
// block each other; the reader only sees the last write.
type Signal struct {
	ratio   atomic.Uint64 // math.Float64bits of the ratio
	active  atomic.Bool
	presses atomic.Uint64
}

// NewSignal creates a signal targeting the middle of the screen with no
// active pointer.
func NewSignal() *Signal {
	s := &Signal{}
	s.ratio.Store(math.Float64bits(0.5))
	return s
}

// Press starts active control at the given ratio and bumps the press counter.
func (s *Signal) Press(ratio float64) {
	s.store(ratio)
	s.active.Store(true)
	s.presses.Add(1)
}

// Move updates the target ratio without changing the active flag.
func (s *Signal) Move(ratio float64) {
	s.store(ratio)
}

// Release ends active control. The last ratio is kept.
func (s *Signal) Release() {
	s.active.Store(false)
}

// Read returns the current ratio and active flag.
func (s *Signal) Read() (ratio float64, active bool) {
	return math.Float64frombits(s.ratio.Load()), s.active.Load()
}

// Presses returns how many presses have been observed so far.
func (s *Signal) Presses() uint64 {
	return s.presses.Load()
}

func (s *Signal) store(ratio float64) {
	if math.IsNaN(ratio) {
		return
	}
	s.ratio.Store(math.Float64bits(ClampF(ratio, 0, 1)))
}
