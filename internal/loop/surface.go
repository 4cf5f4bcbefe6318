package loop

import (
	"sync"

	"github.com/vovakirdan/breakoutish/internal/games/breakout"
)

// Canvas receives one frame between Lock and UnlockAndPost.
type Canvas interface {
	Paint(frame breakout.Frame) error
}

// Surface is the drawing target of a Loop. Lock reports false when the
// surface is not ready, in which case the frame is skipped. Every canvas
// obtained from Lock is handed back through UnlockAndPost exactly once.
type Surface interface {
	Lock() (Canvas, bool)
	UnlockAndPost(canvas Canvas)
}

// Recorder is a Surface that keeps the most recently posted frame.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	notReady bool
	locked   bool
	pending  breakout.Frame
	last     breakout.Frame
	posts    int
}

// NewRecorder creates a ready recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetReady toggles whether Lock hands out a canvas.
func (r *Recorder) SetReady(ready bool) {
	r.mu.Lock()
	r.notReady = !ready
	r.mu.Unlock()
}

func (r *Recorder) Lock() (Canvas, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notReady || r.locked {
		return nil, false
	}
	r.locked = true
	return recorderCanvas{r}, true
}

func (r *Recorder) UnlockAndPost(Canvas) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.locked {
		return
	}
	r.locked = false
	r.last = r.pending
	r.posts++
}

// Last returns the last posted frame and false if nothing was posted yet.
func (r *Recorder) Last() (breakout.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last, r.posts > 0
}

// Posts returns how many canvases were posted.
func (r *Recorder) Posts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.posts
}

// Locked reports whether a canvas is currently out.
func (r *Recorder) Locked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locked
}

type recorderCanvas struct {
	r *Recorder
}

func (c recorderCanvas) Paint(frame breakout.Frame) error {
	c.r.mu.Lock()
	c.r.pending = frame
	c.r.mu.Unlock()
	return nil
}
